// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package asset

import (
	"github.com/vechain/stakeledger/ledger"
)

// LockPolicy is the one-off bonus paid per staked unit for locking a position.
type LockPolicy struct {
	BonusPayment ledger.Amount `json:"bonusPayment" yaml:"bonus_payment"`
	Duration     uint32        `json:"duration" yaml:"duration"` // days
}

// Bonus returns the payout for locking amount.
func (p LockPolicy) Bonus(amount ledger.Amount) ledger.Amount {
	return p.BonusPayment.Mul(amount)
}

// Asset is a stakable asset.
type Asset struct {
	TotalStaked  ledger.Amount
	RewardBudget ledger.Amount
	Lock         LockPolicy
	AddedPeriod  uint64
}

// Rate returns the per-unit reward the asset would record if its period closed now.
func (a *Asset) Rate() ledger.Amount {
	if !a.TotalStaked.IsPositive() {
		return ledger.Amount{}
	}
	return a.RewardBudget.Quo(a.TotalStaked)
}
