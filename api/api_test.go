// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakeledger/api"
	"github.com/vechain/stakeledger/api/admin"
	"github.com/vechain/stakeledger/api/admin/loglevel"
	stakingAPI "github.com/vechain/stakeledger/api/staking"
	"github.com/vechain/stakeledger/eventdb"
	"github.com/vechain/stakeledger/genesis"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/staking"
	"github.com/vechain/stakeledger/state"
)

const adminToken = "s3cret"

type clock struct {
	now ledger.Timestamp
}

func (c *clock) Now() ledger.Timestamp { return c.now }

type testServer struct {
	t     *testing.T
	url   string
	clock *clock
}

func newServer(t *testing.T, opts api.Options) *testServer {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	edb, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { edb.Close() })

	c := &clock{now: ledger.TruncateToMinute(1_700_000_000)}
	engine := staking.New(state.NewStater(db, 128), c, staking.WithEventWriter(edb))
	_, err = engine.Initialise(context.Background(), genesis.Devnet())
	require.NoError(t, err)

	if opts.EventsLimit == 0 {
		opts.EventsLimit = 100
	}
	ts := httptest.NewServer(api.New(engine, edb, opts))
	t.Cleanup(ts.Close)

	return &testServer{t: t, url: ts.URL, clock: c}
}

func (s *testServer) do(method, path string, headers map[string]string, body any) ([]byte, int) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, s.url+path, reader)
	require.NoError(s.t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(s.t, err)
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(s.t, err)
	return data, res.StatusCode
}

func (s *testServer) as(caller string) map[string]string {
	return map[string]string{stakingAPI.CallerHeader: caller}
}

func (s *testServer) admin() map[string]string {
	return map[string]string{admin.TokenHeader: adminToken}
}

// call expects status and decodes the response into out when it is not nil.
func (s *testServer) call(method, path string, headers map[string]string, body any, status int, out any) {
	data, code := s.do(method, path, headers, body)
	require.Equal(s.t, status, code, string(data))
	if out != nil {
		require.NoError(s.t, json.Unmarshal(data, out))
	}
}

func (s *testServer) newRecord(caller string) string {
	var res struct {
		ID uint64 `json:"id"`
	}
	s.call(http.MethodPost, "/staking/records", s.as(caller), nil, http.StatusOK, &res)
	return strconv.FormatUint(res.ID, 10)
}

func TestStakingFlow(t *testing.T) {
	s := newServer(t, api.Options{})

	var period stakingAPI.Period
	s.call(http.MethodGet, "/staking/period", nil, nil, http.StatusOK, &period)
	assert.Equal(t, uint64(0), period.Current)
	assert.Equal(t, uint32(7), period.Interval)

	id := s.newRecord("alice")

	var record stakingAPI.Record
	s.call(http.MethodPost, "/staking/records/"+id+"/stake", s.as("alice"),
		map[string]any{"asset": "XRD", "amount": "100"}, http.StatusOK, &record)
	assert.Equal(t, "alice", record.Owner)
	require.Len(t, record.Positions, 1)
	assert.Equal(t, "100", record.Positions[0].AmountStaked.String())

	var asset stakingAPI.Asset
	s.call(http.MethodGet, "/staking/assets/XRD", nil, nil, http.StatusOK, &asset)
	assert.Equal(t, "100", asset.TotalStaked.String())
	assert.Equal(t, "10", asset.Rate.String())

	s.clock.now = ledger.AddDays(s.clock.now, 7)

	var pending stakingAPI.Reward
	s.call(http.MethodGet, "/staking/records/"+id+"/rewards", nil, nil, http.StatusOK, &pending)
	assert.Equal(t, "1000", pending.Amount.String())

	var reward stakingAPI.Reward
	s.call(http.MethodPost, "/staking/records/"+id+"/claim", s.as("alice"), nil, http.StatusOK, &reward)
	assert.Equal(t, "1000", reward.Amount.String())

	var rate stakingAPI.Rate
	s.call(http.MethodGet, "/staking/assets/XRD/rates/0", nil, nil, http.StatusOK, &rate)
	assert.Equal(t, "10", rate.Rate.String())
	s.call(http.MethodGet, "/staking/assets/XRD/rates/5", nil, nil, http.StatusNotFound, nil)

	var balance stakingAPI.Balance
	s.call(http.MethodGet, "/staking/rewards/balance", nil, nil, http.StatusOK, &balance)
	assert.Equal(t, "99000", balance.Balance.String())
}

func TestStakingErrors(t *testing.T) {
	s := newServer(t, api.Options{})
	id := s.newRecord("alice")
	s.call(http.MethodPost, "/staking/records/"+id+"/stake", s.as("alice"),
		map[string]any{"asset": "XRD", "amount": "100"}, http.StatusOK, nil)

	tests := []struct {
		name    string
		path    string
		headers map[string]string
		body    any
		status  int
	}{
		{"missing caller", "/staking/records/" + id + "/claim", nil, nil, http.StatusUnauthorized},
		{"not owner", "/staking/records/" + id + "/claim", s.as("bob"), nil, http.StatusForbidden},
		{"nothing to claim", "/staking/records/" + id + "/claim", s.as("alice"), nil, http.StatusConflict},
		{"bad id", "/staking/records/abc/claim", s.as("alice"), nil, http.StatusBadRequest},
		{"unknown record", "/staking/records/999/claim", s.as("alice"), nil, http.StatusBadRequest},
		{"unknown asset", "/staking/records/" + id + "/stake", s.as("alice"), map[string]any{"asset": "NOPE", "amount": "1"}, http.StatusBadRequest},
		{"amount and receipt", "/staking/records/" + id + "/stake", s.as("alice"), map[string]any{"asset": "XRD", "amount": "1", "receipt": 2}, http.StatusBadRequest},
		{"unknown field", "/staking/records/" + id + "/lock", s.as("alice"), map[string]any{"asset": "XRD", "until": 1}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, code := s.do(http.MethodPost, tt.path, tt.headers, tt.body)
			assert.Equal(t, tt.status, code)
		})
	}
}

func TestUnstakeReceipt(t *testing.T) {
	s := newServer(t, api.Options{})
	id := s.newRecord("alice")
	s.call(http.MethodPost, "/staking/records/"+id+"/stake", s.as("alice"),
		map[string]any{"asset": "XRD", "amount": "100"}, http.StatusOK, nil)

	var out staking.Unstaked
	s.call(http.MethodPost, "/staking/records/"+id+"/unstake", s.as("alice"),
		map[string]any{"asset": "XRD", "amount": "40"}, http.StatusOK, &out)
	assert.Equal(t, "40", out.Amount.String())

	receipt := strconv.FormatUint(uint64(out.Receipt), 10)
	var view stakingAPI.Receipt
	s.call(http.MethodGet, "/staking/receipts/unstake-receipt/"+receipt, nil, nil, http.StatusOK, &view)
	assert.Equal(t, "alice", view.Owner)

	// devnet redeems after the default unstake delay
	s.call(http.MethodPost, "/staking/receipts/unstake-receipt/"+receipt+"/finish", s.as("alice"), nil, http.StatusConflict, nil)

	s.clock.now = ledger.AddDays(s.clock.now, 30)
	s.call(http.MethodPost, "/staking/receipts/unstake-receipt/"+receipt+"/finish", s.as("alice"), nil, http.StatusOK, nil)
	s.call(http.MethodPost, "/staking/receipts/unstake-receipt/"+receipt+"/finish", s.as("alice"), nil, http.StatusBadRequest, nil)
}

func TestAdmin(t *testing.T) {
	t.Run("disabled without token", func(t *testing.T) {
		s := newServer(t, api.Options{})
		s.call(http.MethodPost, "/admin/ledger/rewards/fill", nil, map[string]any{"amount": "1"}, http.StatusNotFound, nil)
	})

	s := newServer(t, api.Options{AdminToken: adminToken})

	s.call(http.MethodPost, "/admin/ledger/rewards/fill", nil, map[string]any{"amount": "1"}, http.StatusUnauthorized, nil)
	s.call(http.MethodPost, "/admin/ledger/rewards/fill", map[string]string{admin.TokenHeader: "wrong"}, map[string]any{"amount": "1"}, http.StatusUnauthorized, nil)

	var balance struct {
		Balance ledger.Amount `json:"balance"`
	}
	s.call(http.MethodPost, "/admin/ledger/rewards/fill", s.admin(), map[string]any{"amount": "500"}, http.StatusOK, &balance)
	assert.Equal(t, "100500", balance.Balance.String())
	s.call(http.MethodPost, "/admin/ledger/rewards/remove", s.admin(), map[string]any{"amount": "200000"}, http.StatusUnprocessableEntity, nil)

	s.call(http.MethodPost, "/admin/ledger/assets", s.admin(), map[string]any{
		"id":           "USD",
		"rewardBudget": "50",
		"lock":         map[string]any{"bonusPayment": "0", "duration": 0},
	}, http.StatusOK, nil)
	s.call(http.MethodPost, "/admin/ledger/assets", s.admin(), map[string]any{"id": "USD", "rewardBudget": "50"}, http.StatusBadRequest, nil)

	var assets []stakingAPI.Asset
	s.call(http.MethodGet, "/staking/assets", nil, nil, http.StatusOK, &assets)
	assert.Len(t, assets, 2)

	var settings staking.Settings
	s.call(http.MethodPut, "/admin/ledger/settings", s.admin(), map[string]any{"maxClaimDelay": 4, "unstakeDelay": 3}, http.StatusOK, &settings)
	assert.Equal(t, uint64(4), settings.MaxClaimDelay)
	assert.Equal(t, uint32(3), settings.UnstakeDelay)
	s.call(http.MethodPut, "/admin/ledger/settings", s.admin(), map[string]any{"unstakeDelay": 31}, http.StatusBadRequest, nil)

	var period stakingAPI.Period
	s.call(http.MethodPost, "/admin/ledger/period/next", s.admin(), nil, http.StatusOK, &period)
	assert.Equal(t, uint64(1), period.Current)

	// devnet is not dao controlled
	id := s.newRecord("alice")
	s.call(http.MethodPut, "/admin/ledger/records/"+id+"/lock", s.admin(), map[string]any{"asset": "XRD", "until": 1}, http.StatusConflict, nil)
}

func TestLogLevel(t *testing.T) {
	level := new(slog.LevelVar)
	s := newServer(t, api.Options{AdminToken: adminToken, LogLevel: level})

	var res loglevel.Response
	s.call(http.MethodGet, "/admin/loglevel", s.admin(), nil, http.StatusOK, &res)
	assert.Equal(t, "INFO", res.CurrentLevel)

	s.call(http.MethodPost, "/admin/loglevel", s.admin(), map[string]any{"level": "debug"}, http.StatusOK, &res)
	assert.Equal(t, "DEBUG", res.CurrentLevel)
	assert.Equal(t, slog.LevelDebug, level.Level())

	s.call(http.MethodPost, "/admin/loglevel", s.admin(), map[string]any{"level": "loud"}, http.StatusBadRequest, nil)
}

func TestAPILogs(t *testing.T) {
	enabled := new(atomic.Bool)
	s := newServer(t, api.Options{AdminToken: adminToken, EnableReqLogger: enabled})

	var status struct {
		Enabled bool `json:"enabled"`
	}
	s.call(http.MethodPost, "/admin/apilogs", s.admin(), map[string]any{"enabled": true}, http.StatusOK, &status)
	assert.True(t, status.Enabled)
	assert.True(t, enabled.Load())

	res, err := http.Get(s.url + "/staking/period")
	require.NoError(t, err)
	res.Body.Close()
	assert.NotEmpty(t, res.Header.Get(api.RequestIDHeader))
}

func TestEvents(t *testing.T) {
	s := newServer(t, api.Options{EventsLimit: 2})
	id := s.newRecord("alice")
	s.call(http.MethodPost, "/staking/records/"+id+"/stake", s.as("alice"),
		map[string]any{"asset": "XRD", "amount": "100"}, http.StatusOK, nil)

	var events []*eventdb.Event
	s.call(http.MethodPost, "/events", nil, map[string]any{"kind": "staked"}, http.StatusOK, &events)
	require.Len(t, events, 1)
	assert.Equal(t, "alice", events[0].Caller)
	assert.Equal(t, "100", events[0].Amount)

	s.call(http.MethodPost, "/events", nil, map[string]any{"options": map[string]any{"limit": 3}}, http.StatusForbidden, nil)
	s.call(http.MethodPost, "/events", nil, map[string]any{"order": "sideways"}, http.StatusBadRequest, nil)
	s.call(http.MethodPost, "/events", nil, map[string]any{"range": map[string]any{"from": 2, "to": 1}}, http.StatusBadRequest, nil)
}
