// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/vechain/stakeledger/api/restutil"
	"github.com/vechain/stakeledger/health"
)

type API struct {
	healthStatus        *health.Health
	maxTimeBetweenTicks time.Duration
}

func New(healthStatus *health.Health, maxTimeBetweenTicks time.Duration) *API {
	return &API{
		healthStatus:        healthStatus,
		maxTimeBetweenTicks: maxTimeBetweenTicks,
	}
}

func (h *API) handleGetHealth(w http.ResponseWriter, r *http.Request) error {
	maxTimeBetweenTicks := h.maxTimeBetweenTicks
	if query := r.URL.Query().Get("maxTimeBetweenTicks"); query != "" {
		if parsed, err := time.ParseDuration(query); err == nil {
			maxTimeBetweenTicks = parsed
		}
	}

	status, err := h.healthStatus.Status(maxTimeBetweenTicks)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", restutil.JSONContentType)
	if !status.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	return restutil.WriteJSON(w, status)
}

func (h *API) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /health").
		HandlerFunc(restutil.WrapHandlerFunc(h.handleGetHealth))
}
