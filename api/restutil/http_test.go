// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/vechain/stakeledger/staking"
	"github.com/vechain/stakeledger/staking/reverts"
)

func TestLedgerError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not owner", reverts.ErrNotOwner, http.StatusForbidden},
		{"wrapped not owner", errors.WithMessage(reverts.ErrNotOwner, "record 1"), http.StatusForbidden},
		{"validation", reverts.ErrUnknownAsset, http.StatusBadRequest},
		{"state conflict", reverts.ErrNothingToClaim, http.StatusConflict},
		{"resource exhaustion", reverts.ErrInsufficientRewards, http.StatusUnprocessableEntity},
		{"not initialised", staking.ErrNotInitialised, http.StatusServiceUnavailable},
		{"storage failure", errors.New("leveldb: closed"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
				return LedgerError(tt.err)
			})
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.err.Error(), strings.TrimSpace(rec.Body.String()))
		})
	}

	assert.Nil(t, LedgerError(nil))
}

func TestParseJSON(t *testing.T) {
	var v struct {
		Level string `json:"level"`
	}
	assert.NoError(t, ParseJSON(strings.NewReader(`{"level":"info"}`), &v))
	assert.Equal(t, "info", v.Level)

	assert.Error(t, ParseJSON(strings.NewReader(`{"level":"info","extra":1}`), &v))
}

func TestParseUint(t *testing.T) {
	n, err := ParseUint("id", "42")
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), n)

	_, err = ParseUint("id", "-1")
	var he *httpError
	if assert.True(t, errors.As(err, &he)) {
		assert.Equal(t, http.StatusBadRequest, he.status)
	}
}
