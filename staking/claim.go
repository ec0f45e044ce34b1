// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/staking/record"
	"github.com/vechain/stakeledger/staking/reverts"
	"github.com/vechain/stakeledger/staking/token"
)

// claimWindow returns how many closed periods a claim on r would cover.
// At most maxClaimDelay periods are paid; older ones are forfeited.
func claimWindow(r *record.Record, current, maxClaimDelay uint64) uint64 {
	next := r.NextPeriod()
	if next > current {
		return 0
	}
	return min(current-next+1, maxClaimDelay)
}

// accrued sums rate(period) x amount staked over the n periods before current.
// Periods without a recorded rate contribute nothing.
func (s *Staker) accrued(r *record.Record, current, n uint64) (ledger.Amount, error) {
	var total ledger.Amount
	for _, pos := range r.Positions() {
		if !pos.AmountStaked.IsPositive() {
			continue
		}
		for week := uint64(1); week <= n; week++ {
			rate, ok, err := s.assetService.Rate(pos.Asset, current-week)
			if err != nil {
				return ledger.Amount{}, err
			}
			if ok {
				total = total.Add(rate.Mul(pos.AmountStaked))
			}
		}
	}
	return total, nil
}

// Claim pays the record's rewards for the claimable periods from the reward
// vault and moves its claim pointer past the current period.
func (s *Staker) Claim(recordID token.ID) (ledger.Amount, error) {
	r, err := s.ownedRecord(recordID)
	if err != nil {
		return ledger.Amount{}, err
	}
	settings, err := s.Settings()
	if err != nil {
		return ledger.Amount{}, err
	}
	current, err := s.currentPeriod()
	if err != nil {
		return ledger.Amount{}, err
	}

	n := claimWindow(r, current, settings.MaxClaimDelay)
	if n == 0 {
		return ledger.Amount{}, reverts.ErrNothingToClaim
	}
	// the pointer moves before summation; a failed withdrawal below aborts
	// the whole operation, pointer included
	if err := r.SetNextPeriod(current + 1); err != nil {
		return ledger.Amount{}, err
	}
	if err := s.recordService.Set(recordID, r); err != nil {
		return ledger.Amount{}, err
	}

	reward, err := s.accrued(r, current, n)
	if err != nil {
		return ledger.Amount{}, err
	}
	if reward.IsPositive() {
		if err := s.vaultService.WithdrawRewards(reward); err != nil {
			return ledger.Amount{}, err
		}
	}

	s.emit(EventClaimed, current, withRecord(recordID), withAmount(reward))
	logger.Debug("rewards claimed", "record", recordID, "periods", n, "reward", reward)
	return reward, nil
}

// PendingRewards returns what a claim on the record would pay now, without changing anything.
func (s *Staker) PendingRewards(recordID token.ID) (ledger.Amount, error) {
	r, _, err := s.Record(recordID)
	if err != nil {
		return ledger.Amount{}, err
	}
	settings, err := s.Settings()
	if err != nil {
		return ledger.Amount{}, err
	}
	current, err := s.currentPeriod()
	if err != nil {
		return ledger.Amount{}, err
	}
	return s.accrued(r, current, claimWindow(r, current, settings.MaxClaimDelay))
}
