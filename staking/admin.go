// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/staking/asset"
	"github.com/vechain/stakeledger/staking/reverts"
	"github.com/vechain/stakeledger/staking/token"
)

// AddAsset makes an asset stakable.
func (s *Staker) AddAsset(id ledger.AssetID, budget ledger.Amount, lock asset.LockPolicy) error {
	if _, err := ledger.ParseAssetID(string(id)); err != nil {
		return reverts.New(reverts.Validation, err.Error())
	}
	current, err := s.currentPeriod()
	if err != nil {
		return err
	}
	if err := s.assetService.Add(id, budget, lock, current); err != nil {
		return err
	}
	s.emit(EventAssetAdded, current, withAsset(id), withAmount(budget))
	return nil
}

// EditAsset replaces the reward budget and lock policy of an asset.
func (s *Staker) EditAsset(id ledger.AssetID, budget ledger.Amount, lock asset.LockPolicy) error {
	if err := s.assetService.SetBudget(id, budget); err != nil {
		return err
	}
	if err := s.assetService.SetLockPolicy(id, lock); err != nil {
		return err
	}
	return s.emitCurrent(EventAssetEdited, withAsset(id), withAmount(budget))
}

// SetRewards sets the reward budget distributed per period among the stakers of an asset.
func (s *Staker) SetRewards(id ledger.AssetID, budget ledger.Amount) error {
	if err := s.assetService.SetBudget(id, budget); err != nil {
		return err
	}
	return s.emitCurrent(EventAssetEdited, withAsset(id), withAmount(budget))
}

func (s *Staker) SetPeriodInterval(days uint32) error {
	if err := s.periodService.SetInterval(days); err != nil {
		return err
	}
	return s.emitCurrent(EventSettingsChanged)
}

func (s *Staker) SetMaxClaimDelay(periods uint64) error {
	return s.updateSettings(func(settings *Settings) error {
		settings.MaxClaimDelay = periods
		return nil
	})
}

// SetUnstakeDelay sets the delay of future unstake receipts. It cannot exceed
// the maximum fixed at genesis.
func (s *Staker) SetUnstakeDelay(days uint32) error {
	return s.updateSettings(func(settings *Settings) error {
		if days > settings.MaxUnstakeDelay {
			return reverts.ErrUnstakeDelayTooLong
		}
		settings.UnstakeDelay = days
		return nil
	})
}

func (s *Staker) FillRewards(amount ledger.Amount) error {
	settings, err := s.Settings()
	if err != nil {
		return err
	}
	if err := s.vaultService.DepositRewards(amount); err != nil {
		return err
	}
	return s.emitCurrent(EventRewardsFilled, withAsset(settings.RewardAsset), withAmount(amount))
}

func (s *Staker) RemoveRewards(amount ledger.Amount) error {
	if !amount.IsPositive() {
		return reverts.ErrInvalidAmount
	}
	settings, err := s.Settings()
	if err != nil {
		return err
	}
	if err := s.vaultService.WithdrawRewards(amount); err != nil {
		return err
	}
	return s.emitCurrent(EventRewardsRemoved, withAsset(settings.RewardAsset), withAmount(amount))
}

// SetNextPeriodToNow ends the current period now and closes it. A period
// already closed by this operation's own advance is not followed by another.
func (s *Staker) SetNextPeriodToNow() error {
	if len(s.closed) > 0 {
		return nil
	}
	if err := s.periodService.SetNextToNow(s.now); err != nil {
		return err
	}
	_, err := s.Advance()
	return err
}

// SetLock overrides the lock of a record's position. Only DAO controlled
// ledgers allow it.
func (s *Staker) SetLock(recordID token.ID, id ledger.AssetID, until ledger.Timestamp) error {
	settings, err := s.Settings()
	if err != nil {
		return err
	}
	if !settings.DAOControlled {
		return reverts.ErrNotDAOControlled
	}
	r, _, err := s.Record(recordID)
	if err != nil {
		return err
	}
	pos, ok := r.Position(id)
	if !ok {
		return reverts.ErrPositionNotFound
	}
	pos.LockedUntil = &until
	r.SetPosition(pos)
	if err := s.recordService.Set(recordID, r); err != nil {
		return err
	}
	return s.emitCurrent(EventLockSet, withRecord(recordID), withAsset(id))
}

func (s *Staker) updateSettings(fn func(*Settings) error) error {
	settings, err := s.Settings()
	if err != nil {
		return err
	}
	if err := fn(settings); err != nil {
		return err
	}
	if err := s.settings.Set(*settings); err != nil {
		return err
	}
	return s.emitCurrent(EventSettingsChanged)
}

func (s *Staker) emitCurrent(kind string, opts ...eventOption) error {
	current, err := s.currentPeriod()
	if err != nil {
		return err
	}
	s.emit(kind, current, opts...)
	return nil
}
