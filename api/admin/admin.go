// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/api/restutil"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/staking"
	"github.com/vechain/stakeledger/staking/token"
)

// TokenHeader carries the admin token.
const TokenHeader = "X-Admin-Token"

type Admin struct {
	engine *staking.Engine
}

func New(engine *staking.Engine) *Admin {
	return &Admin{engine}
}

// RequireToken rejects requests that do not carry the admin token.
func RequireToken(token string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return restutil.WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
			got := r.Header.Get(TokenHeader)
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return restutil.Unauthorized(errors.New("invalid admin token"))
			}
			next.ServeHTTP(w, r)
			return nil
		})
	}
}

func assetVar(req *http.Request) (ledger.AssetID, error) {
	id, err := ledger.ParseAssetID(mux.Vars(req)["asset"])
	if err != nil {
		return "", restutil.BadRequest(errors.WithMessage(err, "asset"))
	}
	return id, nil
}

func (a *Admin) handleAddAsset(w http.ResponseWriter, req *http.Request) error {
	var body AssetRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := a.engine.AddAsset(req.Context(), body.ID, body.RewardBudget, body.Lock); err != nil {
		return restutil.LedgerError(err)
	}
	return a.writeAsset(w, body.ID)
}

func (a *Admin) handleEditAsset(w http.ResponseWriter, req *http.Request) error {
	id, err := assetVar(req)
	if err != nil {
		return err
	}
	var body AssetRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.ID != "" && body.ID != id {
		return restutil.BadRequest(errors.New("body: id does not match path"))
	}
	if err := a.engine.EditAsset(req.Context(), id, body.RewardBudget, body.Lock); err != nil {
		return restutil.LedgerError(err)
	}
	return a.writeAsset(w, id)
}

func (a *Admin) handleSetRewards(w http.ResponseWriter, req *http.Request) error {
	id, err := assetVar(req)
	if err != nil {
		return err
	}
	var body AmountRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := a.engine.SetRewards(req.Context(), id, body.Amount); err != nil {
		return restutil.LedgerError(err)
	}
	return a.writeAsset(w, id)
}

func (a *Admin) handleSetSettings(w http.ResponseWriter, req *http.Request) error {
	var body SettingsRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	ctx := req.Context()
	if body.PeriodInterval != nil {
		if err := a.engine.SetPeriodInterval(ctx, *body.PeriodInterval); err != nil {
			return restutil.LedgerError(err)
		}
	}
	if body.MaxClaimDelay != nil {
		if err := a.engine.SetMaxClaimDelay(ctx, *body.MaxClaimDelay); err != nil {
			return restutil.LedgerError(err)
		}
	}
	if body.UnstakeDelay != nil {
		if err := a.engine.SetUnstakeDelay(ctx, *body.UnstakeDelay); err != nil {
			return restutil.LedgerError(err)
		}
	}
	settings, err := a.engine.Settings()
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, settings)
}

func (a *Admin) handleFillRewards(w http.ResponseWriter, req *http.Request) error {
	var body AmountRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := a.engine.FillRewards(req.Context(), body.Amount); err != nil {
		return restutil.LedgerError(err)
	}
	return a.writeRewardBalance(w)
}

func (a *Admin) handleRemoveRewards(w http.ResponseWriter, req *http.Request) error {
	var body AmountRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := a.engine.RemoveRewards(req.Context(), body.Amount); err != nil {
		return restutil.LedgerError(err)
	}
	return a.writeRewardBalance(w)
}

func (a *Admin) handleNextPeriodNow(w http.ResponseWriter, req *http.Request) error {
	if err := a.engine.SetNextPeriodToNow(req.Context()); err != nil {
		return restutil.LedgerError(err)
	}
	info, err := a.engine.PeriodInfo()
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, info)
}

func (a *Admin) handleSetLock(w http.ResponseWriter, req *http.Request) error {
	n, err := restutil.ParseUint("id", mux.Vars(req)["id"])
	if err != nil {
		return err
	}
	var body LockRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := a.engine.SetLock(req.Context(), token.ID(n), body.Asset, body.Until); err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"record": n, "asset": body.Asset, "lockedUntil": body.Until})
}

func (a *Admin) writeAsset(w http.ResponseWriter, id ledger.AssetID) error {
	asset, err := a.engine.Asset(id)
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, restutil.M{
		"id":           id,
		"totalStaked":  asset.TotalStaked,
		"rewardBudget": asset.RewardBudget,
		"lock":         asset.Lock,
		"addedPeriod":  asset.AddedPeriod,
	})
}

func (a *Admin) writeRewardBalance(w http.ResponseWriter) error {
	balance, err := a.engine.RewardBalance()
	if err != nil {
		return restutil.LedgerError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"balance": balance})
}

func (a *Admin) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/assets").Methods(http.MethodPost).Name("POST /admin/ledger/assets").HandlerFunc(restutil.WrapHandlerFunc(a.handleAddAsset))
	sub.Path("/assets/{asset}").Methods(http.MethodPut).Name("PUT /admin/ledger/assets/{asset}").HandlerFunc(restutil.WrapHandlerFunc(a.handleEditAsset))
	sub.Path("/assets/{asset}/rewards").Methods(http.MethodPut).Name("PUT /admin/ledger/assets/{asset}/rewards").HandlerFunc(restutil.WrapHandlerFunc(a.handleSetRewards))
	sub.Path("/settings").Methods(http.MethodPut).Name("PUT /admin/ledger/settings").HandlerFunc(restutil.WrapHandlerFunc(a.handleSetSettings))
	sub.Path("/rewards/fill").Methods(http.MethodPost).Name("POST /admin/ledger/rewards/fill").HandlerFunc(restutil.WrapHandlerFunc(a.handleFillRewards))
	sub.Path("/rewards/remove").Methods(http.MethodPost).Name("POST /admin/ledger/rewards/remove").HandlerFunc(restutil.WrapHandlerFunc(a.handleRemoveRewards))
	sub.Path("/period/next").Methods(http.MethodPost).Name("POST /admin/ledger/period/next").HandlerFunc(restutil.WrapHandlerFunc(a.handleNextPeriodNow))
	sub.Path("/records/{id}/lock").Methods(http.MethodPut).Name("PUT /admin/ledger/records/{id}/lock").HandlerFunc(restutil.WrapHandlerFunc(a.handleSetLock))
}
