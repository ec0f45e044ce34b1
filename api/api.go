// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/stakeledger/api/admin"
	"github.com/vechain/stakeledger/api/admin/apilogs"
	"github.com/vechain/stakeledger/api/admin/loglevel"
	"github.com/vechain/stakeledger/api/events"
	healthAPI "github.com/vechain/stakeledger/api/health"
	stakingAPI "github.com/vechain/stakeledger/api/staking"
	"github.com/vechain/stakeledger/health"
	"github.com/vechain/stakeledger/staking"
)

var logger = log.New("pkg", "api")

func SetLogger(l log.Logger) {
	logger = l
}

type Options struct {
	AllowedOrigins       string
	AdminToken           string // admin endpoints are not mounted when empty
	EventsLimit          uint64
	EnableMetrics        bool
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	LogLevel             *slog.LevelVar
	LogHandler           loglevel.Verbosity
	Health               *health.Health
	MaxTimeBetweenTicks  time.Duration // a stale period clock reports unhealthy
}

// New return api router
func New(engine *staking.Engine, eventDB events.Filterer, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	stakingAPI.New(engine).
		Mount(router, "/staking")
	if eventDB != nil {
		events.New(eventDB, opts.EventsLimit).
			Mount(router, "/events")
	}

	if opts.Health != nil {
		healthAPI.New(opts.Health, opts.MaxTimeBetweenTicks).
			Mount(router, "/health")
	}

	if opts.AdminToken != "" {
		adminRouter := router.PathPrefix("/admin").Subrouter()
		adminRouter.Use(admin.RequireToken(opts.AdminToken))

		admin.New(engine).Mount(adminRouter, "/ledger")
		if opts.EnableReqLogger != nil {
			apilogs.New(opts.EnableReqLogger).Mount(adminRouter, "/apilogs")
		}
		if opts.LogLevel != nil {
			loglevel.New(opts.LogLevel, opts.LogHandler).Mount(adminRouter, "/loglevel")
		}
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", stakingAPI.CallerHeader, admin.TokenHeader}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)(handler)

	if opts.EnableReqLogger != nil {
		handler = RequestLoggerMiddleware(logger, opts.EnableReqLogger, opts.SlowQueriesThreshold)(handler)
	}
	return handler.ServeHTTP
}
