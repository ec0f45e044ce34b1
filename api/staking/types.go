// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/staking/asset"
	"github.com/vechain/stakeledger/staking/receipt"
	"github.com/vechain/stakeledger/staking/record"
	"github.com/vechain/stakeledger/staking/token"
)

type Period struct {
	Current  uint64 `json:"current"`
	Interval uint32 `json:"interval"`
	NextAt   uint64 `json:"nextAt"`
	Due      bool   `json:"due"`
}

type Asset struct {
	ID           ledger.AssetID   `json:"id"`
	TotalStaked  ledger.Amount    `json:"totalStaked"`
	RewardBudget ledger.Amount    `json:"rewardBudget"`
	Rate         ledger.Amount    `json:"rate"` // rate the asset would record if its period closed now
	Lock         asset.LockPolicy `json:"lock"`
	AddedPeriod  uint64           `json:"addedPeriod"`
}

func convertAsset(id ledger.AssetID, a *asset.Asset) *Asset {
	return &Asset{
		ID:           id,
		TotalStaked:  a.TotalStaked,
		RewardBudget: a.RewardBudget,
		Rate:         a.Rate(),
		Lock:         a.Lock,
		AddedPeriod:  a.AddedPeriod,
	}
}

type Rate struct {
	Asset  ledger.AssetID `json:"asset"`
	Period uint64         `json:"period"`
	Rate   ledger.Amount  `json:"rate"`
}

type Position struct {
	Asset        ledger.AssetID `json:"asset"`
	AmountStaked ledger.Amount  `json:"amountStaked"`
	LockedUntil  *uint64        `json:"lockedUntil"`
}

type Record struct {
	ID         token.ID   `json:"id"`
	Owner      string     `json:"owner"`
	NextPeriod uint64     `json:"nextPeriod"`
	Positions  []Position `json:"positions"`
}

func convertRecord(id token.ID, owner string, r *record.Record) *Record {
	positions := r.Positions()
	out := &Record{
		ID:         id,
		Owner:      owner,
		NextPeriod: r.NextPeriod(),
		Positions:  make([]Position, 0, len(positions)),
	}
	for _, p := range positions {
		out.Positions = append(out.Positions, Position{
			Asset:        p.Asset,
			AmountStaked: p.AmountStaked,
			LockedUntil:  p.LockedUntil,
		})
	}
	return out
}

type Receipt struct {
	ID             token.ID       `json:"id"`
	Kind           string         `json:"kind"`
	Owner          string         `json:"owner"`
	Asset          ledger.AssetID `json:"asset"`
	Amount         ledger.Amount  `json:"amount"`
	RedemptionTime *uint64        `json:"redemptionTime,omitempty"`
}

func convertUnstake(id token.ID, owner string, u *receipt.Unstake) *Receipt {
	redemption := u.RedemptionTime
	return &Receipt{
		ID:             id,
		Kind:           token.UnstakeReceipt.String(),
		Owner:          owner,
		Asset:          u.Asset,
		Amount:         u.Amount,
		RedemptionTime: &redemption,
	}
}

func convertTransfer(id token.ID, owner string, t *receipt.Transfer) *Receipt {
	return &Receipt{
		ID:     id,
		Kind:   token.TransferReceipt.String(),
		Owner:  owner,
		Asset:  t.Asset,
		Amount: t.Amount,
	}
}

type Balance struct {
	Asset   ledger.AssetID `json:"asset"`
	Balance ledger.Amount  `json:"balance"`
}

type Reward struct {
	Record token.ID      `json:"record"`
	Amount ledger.Amount `json:"amount"`
}

// requests

type StakeRequest struct {
	Asset   ledger.AssetID `json:"asset"`
	Amount  *ledger.Amount `json:"amount,omitempty"`
	Receipt *token.ID      `json:"receipt,omitempty"` // transfer receipt to stake instead of a deposit
}

type LockRequest struct {
	Asset ledger.AssetID `json:"asset"`
}

type UnstakeRequest struct {
	Asset    ledger.AssetID `json:"asset"`
	Amount   ledger.Amount  `json:"amount"`
	Transfer bool           `json:"transfer"`
}

type TransferRequest struct {
	To string `json:"to"`
}
