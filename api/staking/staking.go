// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/api/restutil"
	"github.com/vechain/stakeledger/ledger"
	core "github.com/vechain/stakeledger/staking"
	"github.com/vechain/stakeledger/staking/token"
)

// CallerHeader carries the identity of the participant calling a mutating endpoint.
const CallerHeader = "X-Caller"

type Staking struct {
	engine *core.Engine
}

func New(engine *core.Engine) *Staking {
	return &Staking{engine}
}

func caller(req *http.Request) (string, error) {
	c := req.Header.Get(CallerHeader)
	if !token.ValidOwner(c) {
		return "", restutil.Unauthorized(errors.Errorf("missing or invalid %s header", CallerHeader))
	}
	return c, nil
}

func assetVar(req *http.Request) (ledger.AssetID, error) {
	id, err := ledger.ParseAssetID(mux.Vars(req)["asset"])
	if err != nil {
		return "", restutil.BadRequest(errors.WithMessage(err, "asset"))
	}
	return id, nil
}

func idVar(req *http.Request) (token.ID, error) {
	n, err := restutil.ParseUint("id", mux.Vars(req)["id"])
	return token.ID(n), err
}

//
// queries
//

func (s *Staking) handleGetPeriod(w http.ResponseWriter, _ *http.Request) error {
	info, err := s.engine.PeriodInfo()
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, &Period{
		Current:  info.Current,
		Interval: info.Interval,
		NextAt:   info.NextAt,
		Due:      info.Due,
	})
}

func (s *Staking) handleGetSettings(w http.ResponseWriter, _ *http.Request) error {
	settings, err := s.engine.Settings()
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, settings)
}

func (s *Staking) handleGetAssets(w http.ResponseWriter, _ *http.Request) error {
	ids, assets, err := s.engine.Assets()
	if err != nil {
		return restutil.LedgerError(err)
	}
	out := make([]*Asset, 0, len(ids))
	for _, id := range ids {
		out = append(out, convertAsset(id, assets[id]))
	}
	return restutil.WriteJSON(w, out)
}

func (s *Staking) handleGetAsset(w http.ResponseWriter, req *http.Request) error {
	id, err := assetVar(req)
	if err != nil {
		return err
	}
	a, err := s.engine.Asset(id)
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, convertAsset(id, a))
}

func (s *Staking) handleGetRate(w http.ResponseWriter, req *http.Request) error {
	id, err := assetVar(req)
	if err != nil {
		return err
	}
	period, err := restutil.ParseUint("period", mux.Vars(req)["period"])
	if err != nil {
		return err
	}
	rate, ok, err := s.engine.Rate(id, period)
	if err != nil {
		return restutil.LedgerError(err)
	}
	if !ok {
		return restutil.HTTPError(errors.Errorf("no rate recorded for period %d", period), http.StatusNotFound)
	}
	return restutil.WriteJSON(w, &Rate{Asset: id, Period: period, Rate: rate})
}

func (s *Staking) handleGetVaultBalance(w http.ResponseWriter, req *http.Request) error {
	id, err := assetVar(req)
	if err != nil {
		return err
	}
	balance, err := s.engine.VaultBalance(id)
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, &Balance{Asset: id, Balance: balance})
}

func (s *Staking) handleGetRewardBalance(w http.ResponseWriter, _ *http.Request) error {
	balance, err := s.engine.RewardBalance()
	if err != nil {
		return restutil.LedgerError(err)
	}
	settings, err := s.engine.Settings()
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, &Balance{Asset: settings.RewardAsset, Balance: balance})
}

func (s *Staking) handleGetRecord(w http.ResponseWriter, req *http.Request) error {
	id, err := idVar(req)
	if err != nil {
		return err
	}
	r, owner, err := s.engine.Record(id)
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, convertRecord(id, owner, r))
}

func (s *Staking) handleGetPendingRewards(w http.ResponseWriter, req *http.Request) error {
	id, err := idVar(req)
	if err != nil {
		return err
	}
	reward, err := s.engine.PendingRewards(id)
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, &Reward{Record: id, Amount: reward})
}

func (s *Staking) handleGetUnstakeReceipt(w http.ResponseWriter, req *http.Request) error {
	id, err := idVar(req)
	if err != nil {
		return err
	}
	u, owner, err := s.engine.UnstakeReceipt(id)
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, convertUnstake(id, owner, u))
}

func (s *Staking) handleGetTransferReceipt(w http.ResponseWriter, req *http.Request) error {
	id, err := idVar(req)
	if err != nil {
		return err
	}
	t, owner, err := s.engine.StakeTransferReceipt(id)
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, convertTransfer(id, owner, t))
}

//
// operations
//

func (s *Staking) handleAdvance(w http.ResponseWriter, req *http.Request) error {
	closed, err := s.engine.Advance(req.Context())
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"closed": closed})
}

func (s *Staking) handleCreateRecord(w http.ResponseWriter, req *http.Request) error {
	c, err := caller(req)
	if err != nil {
		return err
	}
	id, err := s.engine.CreateRecord(req.Context(), c)
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"id": id})
}

func (s *Staking) handleStake(w http.ResponseWriter, req *http.Request) error {
	c, err := caller(req)
	if err != nil {
		return err
	}
	id, err := idVar(req)
	if err != nil {
		return err
	}
	var body StakeRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	switch {
	case body.Amount != nil && body.Receipt != nil:
		return restutil.BadRequest(errors.New("body: amount and receipt are exclusive"))
	case body.Receipt != nil:
		err = s.engine.StakeTransfer(req.Context(), c, id, *body.Receipt, body.Asset)
	case body.Amount != nil:
		err = s.engine.Stake(req.Context(), c, id, body.Asset, *body.Amount)
	default:
		return restutil.BadRequest(errors.New("body: amount or receipt required"))
	}
	if err != nil {
		return restutil.LedgerError(err)
	}
	return s.writeRecord(w, id)
}

func (s *Staking) handleLock(w http.ResponseWriter, req *http.Request) error {
	c, err := caller(req)
	if err != nil {
		return err
	}
	id, err := idVar(req)
	if err != nil {
		return err
	}
	var body LockRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	bonus, err := s.engine.Lock(req.Context(), c, id, body.Asset)
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, &Reward{Record: id, Amount: bonus})
}

func (s *Staking) handleStartUnstake(w http.ResponseWriter, req *http.Request) error {
	c, err := caller(req)
	if err != nil {
		return err
	}
	id, err := idVar(req)
	if err != nil {
		return err
	}
	var body UnstakeRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	out, err := s.engine.StartUnstake(req.Context(), c, id, body.Asset, body.Amount, body.Transfer)
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, out)
}

func (s *Staking) handleClaim(w http.ResponseWriter, req *http.Request) error {
	c, err := caller(req)
	if err != nil {
		return err
	}
	id, err := idVar(req)
	if err != nil {
		return err
	}
	reward, err := s.engine.Claim(req.Context(), c, id)
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, &Reward{Record: id, Amount: reward})
}

func (s *Staking) handleTransferRecord(w http.ResponseWriter, req *http.Request) error {
	c, err := caller(req)
	if err != nil {
		return err
	}
	id, err := idVar(req)
	if err != nil {
		return err
	}
	var body TransferRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := s.engine.TransferRecord(req.Context(), c, id, body.To); err != nil {
		return restutil.LedgerError(err)
	}
	return s.writeRecord(w, id)
}

func (s *Staking) handleFinishUnstake(w http.ResponseWriter, req *http.Request) error {
	c, err := caller(req)
	if err != nil {
		return err
	}
	id, err := idVar(req)
	if err != nil {
		return err
	}
	u, err := s.engine.FinishUnstake(req.Context(), c, id)
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, &Balance{Asset: u.Asset, Balance: u.Amount})
}

func (s *Staking) handleTransferReceipt(w http.ResponseWriter, req *http.Request) error {
	c, err := caller(req)
	if err != nil {
		return err
	}
	kind, err := token.ParseKind(mux.Vars(req)["kind"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "kind"))
	}
	id, err := idVar(req)
	if err != nil {
		return err
	}
	var body TransferRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := s.engine.TransferReceipt(req.Context(), c, kind, id, body.To); err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"id": id, "kind": kind.String(), "owner": body.To})
}

func (s *Staking) writeRecord(w http.ResponseWriter, id token.ID) error {
	r, owner, err := s.engine.Record(id)
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, convertRecord(id, owner, r))
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/period").Methods(http.MethodGet).Name("GET /staking/period").HandlerFunc(restutil.WrapHandlerFunc(s.handleGetPeriod))
	sub.Path("/period/advance").Methods(http.MethodPost).Name("POST /staking/period/advance").HandlerFunc(restutil.WrapHandlerFunc(s.handleAdvance))
	sub.Path("/settings").Methods(http.MethodGet).Name("GET /staking/settings").HandlerFunc(restutil.WrapHandlerFunc(s.handleGetSettings))

	sub.Path("/assets").Methods(http.MethodGet).Name("GET /staking/assets").HandlerFunc(restutil.WrapHandlerFunc(s.handleGetAssets))
	sub.Path("/assets/{asset}").Methods(http.MethodGet).Name("GET /staking/assets/{asset}").HandlerFunc(restutil.WrapHandlerFunc(s.handleGetAsset))
	sub.Path("/assets/{asset}/rates/{period}").Methods(http.MethodGet).Name("GET /staking/assets/{asset}/rates/{period}").HandlerFunc(restutil.WrapHandlerFunc(s.handleGetRate))
	sub.Path("/assets/{asset}/balance").Methods(http.MethodGet).Name("GET /staking/assets/{asset}/balance").HandlerFunc(restutil.WrapHandlerFunc(s.handleGetVaultBalance))
	sub.Path("/rewards/balance").Methods(http.MethodGet).Name("GET /staking/rewards/balance").HandlerFunc(restutil.WrapHandlerFunc(s.handleGetRewardBalance))

	sub.Path("/records").Methods(http.MethodPost).Name("POST /staking/records").HandlerFunc(restutil.WrapHandlerFunc(s.handleCreateRecord))
	sub.Path("/records/{id}").Methods(http.MethodGet).Name("GET /staking/records/{id}").HandlerFunc(restutil.WrapHandlerFunc(s.handleGetRecord))
	sub.Path("/records/{id}/rewards").Methods(http.MethodGet).Name("GET /staking/records/{id}/rewards").HandlerFunc(restutil.WrapHandlerFunc(s.handleGetPendingRewards))
	sub.Path("/records/{id}/stake").Methods(http.MethodPost).Name("POST /staking/records/{id}/stake").HandlerFunc(restutil.WrapHandlerFunc(s.handleStake))
	sub.Path("/records/{id}/lock").Methods(http.MethodPost).Name("POST /staking/records/{id}/lock").HandlerFunc(restutil.WrapHandlerFunc(s.handleLock))
	sub.Path("/records/{id}/unstake").Methods(http.MethodPost).Name("POST /staking/records/{id}/unstake").HandlerFunc(restutil.WrapHandlerFunc(s.handleStartUnstake))
	sub.Path("/records/{id}/claim").Methods(http.MethodPost).Name("POST /staking/records/{id}/claim").HandlerFunc(restutil.WrapHandlerFunc(s.handleClaim))
	sub.Path("/records/{id}/transfer").Methods(http.MethodPost).Name("POST /staking/records/{id}/transfer").HandlerFunc(restutil.WrapHandlerFunc(s.handleTransferRecord))

	sub.Path("/receipts/unstake-receipt/{id}").Methods(http.MethodGet).Name("GET /staking/receipts/unstake-receipt/{id}").HandlerFunc(restutil.WrapHandlerFunc(s.handleGetUnstakeReceipt))
	sub.Path("/receipts/transfer-receipt/{id}").Methods(http.MethodGet).Name("GET /staking/receipts/transfer-receipt/{id}").HandlerFunc(restutil.WrapHandlerFunc(s.handleGetTransferReceipt))
	sub.Path("/receipts/unstake-receipt/{id}/finish").Methods(http.MethodPost).Name("POST /staking/receipts/unstake-receipt/{id}/finish").HandlerFunc(restutil.WrapHandlerFunc(s.handleFinishUnstake))
	sub.Path("/receipts/{kind}/{id}/transfer").Methods(http.MethodPost).Name("POST /staking/receipts/{kind}/{id}/transfer").HandlerFunc(restutil.WrapHandlerFunc(s.handleTransferReceipt))
}
