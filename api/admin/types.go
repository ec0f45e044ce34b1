// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/staking/asset"
)

type AssetRequest struct {
	ID           ledger.AssetID   `json:"id"`
	RewardBudget ledger.Amount    `json:"rewardBudget"`
	Lock         asset.LockPolicy `json:"lock"`
}

type AmountRequest struct {
	Amount ledger.Amount `json:"amount"`
}

// SettingsRequest changes the settings that are set. Each field is applied
// as its own operation.
type SettingsRequest struct {
	PeriodInterval *uint32 `json:"periodInterval,omitempty"` // days
	MaxClaimDelay  *uint64 `json:"maxClaimDelay,omitempty"`  // periods
	UnstakeDelay   *uint32 `json:"unstakeDelay,omitempty"`   // days
}

type LockRequest struct {
	Asset ledger.AssetID   `json:"asset"`
	Until ledger.Timestamp `json:"until"`
}
