// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/staking/receipt"
	"github.com/vechain/stakeledger/staking/record"
	"github.com/vechain/stakeledger/staking/reverts"
	"github.com/vechain/stakeledger/staking/token"
)

// Unstaked describes the receipt issued by StartUnstake.
type Unstaked struct {
	Kind           token.Kind       `json:"kind"`
	Receipt        token.ID         `json:"receipt"`
	Asset          ledger.AssetID   `json:"asset"`
	Amount         ledger.Amount    `json:"amount"`
	RedemptionTime ledger.Timestamp `json:"redemptionTime,omitempty"`
}

// CreateRecord issues an empty staking record to the caller.
func (s *Staker) CreateRecord() (token.ID, error) {
	current, err := s.currentPeriod()
	if err != nil {
		return 0, err
	}
	id, err := s.tokenService.Mint(token.Record, s.caller)
	if err != nil {
		return 0, err
	}
	if _, err := s.recordService.Create(id, current+1); err != nil {
		return 0, err
	}
	s.emit(EventRecordCreated, current, withRecord(id))
	return id, nil
}

// Stake deposits amount of asset into custody and adds it to the record.
func (s *Staker) Stake(recordID token.ID, id ledger.AssetID, amount ledger.Amount) error {
	r, current, err := s.stakeableRecord(recordID)
	if err != nil {
		return err
	}
	if !amount.IsPositive() {
		return reverts.ErrInvalidAmount
	}
	if _, err := s.assetService.Get(id); err != nil {
		return err
	}
	if err := s.vaultService.Deposit(id, amount); err != nil {
		return err
	}
	if err := s.addStake(recordID, r, current, id, amount); err != nil {
		return err
	}
	s.emit(EventStaked, current, withRecord(recordID), withAsset(id), withAmount(amount))
	return nil
}

// StakeTransfer consumes a transfer receipt held by the caller and adds its
// stake to the record. The stake never leaves custody.
func (s *Staker) StakeTransfer(recordID, receiptID token.ID, id ledger.AssetID) error {
	r, current, err := s.stakeableRecord(recordID)
	if err != nil {
		return err
	}
	if err := s.checkReceiptOwner(token.TransferReceipt, receiptID); err != nil {
		return err
	}
	tr, err := s.receiptService.GetTransfer(receiptID)
	if err != nil {
		return err
	}
	if tr == nil {
		return reverts.ErrInvalidReceipt
	}
	if tr.Asset != id {
		return reverts.ErrAssetMismatch
	}
	if _, err := s.assetService.Get(id); err != nil {
		return err
	}

	s.tokenService.Burn(token.TransferReceipt, receiptID)
	s.receiptService.DeleteTransfer(receiptID)

	if err := s.addStake(recordID, r, current, id, tr.Amount); err != nil {
		return err
	}
	s.emit(EventStaked, current, withRecord(recordID), withReceipt(receiptID), withAsset(id), withAmount(tr.Amount))
	return nil
}

// stakeableRecord loads a caller owned record that has no unclaimed periods.
func (s *Staker) stakeableRecord(recordID token.ID) (*record.Record, uint64, error) {
	r, err := s.ownedRecord(recordID)
	if err != nil {
		return nil, 0, err
	}
	current, err := s.currentPeriod()
	if err != nil {
		return nil, 0, err
	}
	if r.NextPeriod() <= current {
		return nil, 0, reverts.ErrUnclaimedRewards
	}
	return r, current, nil
}

func (s *Staker) addStake(recordID token.ID, r *record.Record, current uint64, id ledger.AssetID, amount ledger.Amount) error {
	pos, _ := r.Position(id)
	pos.Asset = id
	pos.AmountStaked = pos.AmountStaked.Add(amount)
	r.SetPosition(pos)
	if err := r.SetNextPeriod(current + 1); err != nil {
		return err
	}
	if err := s.recordService.Set(recordID, r); err != nil {
		return err
	}
	return s.assetService.AddStake(id, amount)
}

// Lock locks the position in asset for the asset's lock duration and pays the
// lock bonus from the reward vault. It returns the bonus paid.
func (s *Staker) Lock(recordID token.ID, id ledger.AssetID) (ledger.Amount, error) {
	r, err := s.ownedRecord(recordID)
	if err != nil {
		return ledger.Amount{}, err
	}
	pos, ok := r.Position(id)
	if !ok {
		return ledger.Amount{}, reverts.ErrPositionNotFound
	}
	if pos.Locked(s.now) {
		return ledger.Amount{}, reverts.ErrAlreadyLocked
	}
	a, err := s.assetService.Get(id)
	if err != nil {
		return ledger.Amount{}, err
	}

	until := ledger.AddDays(s.now, a.Lock.Duration)
	pos.LockedUntil = &until
	r.SetPosition(pos)
	if err := s.recordService.Set(recordID, r); err != nil {
		return ledger.Amount{}, err
	}

	bonus := a.Lock.Bonus(pos.AmountStaked)
	if bonus.IsPositive() {
		if err := s.vaultService.WithdrawRewards(bonus); err != nil {
			return ledger.Amount{}, err
		}
	}

	current, err := s.currentPeriod()
	if err != nil {
		return ledger.Amount{}, err
	}
	s.emit(EventLocked, current, withRecord(recordID), withAsset(id), withAmount(bonus))
	logger.Debug("stake locked", "record", recordID, "asset", id, "until", until, "bonus", bonus)
	return bonus, nil
}

// StartUnstake removes up to amount of asset from the record. In transfer mode
// a transfer receipt is issued; otherwise an unstake receipt redeemable after
// the unstake delay. Custody is untouched until the receipt is consumed.
func (s *Staker) StartUnstake(recordID token.ID, id ledger.AssetID, amount ledger.Amount, transfer bool) (*Unstaked, error) {
	if !amount.IsPositive() {
		return nil, reverts.ErrInvalidAmount
	}
	r, err := s.ownedRecord(recordID)
	if err != nil {
		return nil, err
	}
	pos, ok := r.Position(id)
	if !ok {
		return nil, reverts.ErrPositionNotFound
	}
	if !pos.AmountStaked.IsPositive() {
		return nil, reverts.ErrNoStake
	}
	if pos.Locked(s.now) {
		return nil, reverts.ErrStakeLocked
	}
	settings, err := s.Settings()
	if err != nil {
		return nil, err
	}
	current, err := s.currentPeriod()
	if err != nil {
		return nil, err
	}

	amount = amount.Min(pos.AmountStaked)
	pos.AmountStaked = pos.AmountStaked.Sub(amount)
	r.SetPosition(pos)
	if err := s.recordService.Set(recordID, r); err != nil {
		return nil, err
	}
	if err := s.assetService.SubStake(id, amount); err != nil {
		return nil, err
	}

	out := &Unstaked{Asset: id, Amount: amount}
	if transfer {
		out.Kind = token.TransferReceipt
		if out.Receipt, err = s.tokenService.Mint(token.TransferReceipt, s.caller); err != nil {
			return nil, err
		}
		if err := s.receiptService.SetTransfer(out.Receipt, &receipt.Transfer{Asset: id, Amount: amount}); err != nil {
			return nil, err
		}
		s.emit(EventTransferIssued, current, withRecord(recordID), withReceipt(out.Receipt), withAsset(id), withAmount(amount))
	} else {
		out.Kind = token.UnstakeReceipt
		out.RedemptionTime = ledger.AddDays(s.now, settings.UnstakeDelay)
		if out.Receipt, err = s.tokenService.Mint(token.UnstakeReceipt, s.caller); err != nil {
			return nil, err
		}
		if err := s.receiptService.SetUnstake(out.Receipt, &receipt.Unstake{
			Asset:          id,
			Amount:         amount,
			RedemptionTime: out.RedemptionTime,
		}); err != nil {
			return nil, err
		}
		s.emit(EventUnstakeStarted, current, withRecord(recordID), withReceipt(out.Receipt), withAsset(id), withAmount(amount))
	}
	logger.Debug("unstake started", "record", recordID, "asset", id, "amount", amount, "receipt", out.Receipt, "kind", out.Kind)
	return out, nil
}

// FinishUnstake redeems an unstake receipt held by the caller and releases
// the stake from custody.
func (s *Staker) FinishUnstake(receiptID token.ID) (*receipt.Unstake, error) {
	if err := s.checkReceiptOwner(token.UnstakeReceipt, receiptID); err != nil {
		return nil, err
	}
	u, err := s.receiptService.GetUnstake(receiptID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, reverts.ErrInvalidReceipt
	}
	if !u.Redeemable(s.now) {
		return nil, reverts.ErrRedemptionNotYetDue
	}

	s.tokenService.Burn(token.UnstakeReceipt, receiptID)
	s.receiptService.DeleteUnstake(receiptID)
	if err := s.vaultService.Withdraw(u.Asset, u.Amount); err != nil {
		return nil, err
	}

	current, err := s.currentPeriod()
	if err != nil {
		return nil, err
	}
	s.emit(EventUnstakeFinished, current, withReceipt(receiptID), withAsset(u.Asset), withAmount(u.Amount))
	logger.Debug("unstake finished", "receipt", receiptID, "asset", u.Asset, "amount", u.Amount)
	return u, nil
}

// TransferRecord hands a caller owned record to another holder.
func (s *Staker) TransferRecord(recordID token.ID, to string) error {
	if _, err := s.ownedRecord(recordID); err != nil {
		return err
	}
	if err := s.tokenService.Transfer(token.Record, recordID, to); err != nil {
		return err
	}
	current, err := s.currentPeriod()
	if err != nil {
		return err
	}
	s.emit(EventRecordTransferred, current, withRecord(recordID))
	return nil
}

// TransferReceipt hands a caller owned unstake or transfer receipt to another holder.
func (s *Staker) TransferReceipt(kind token.Kind, receiptID token.ID, to string) error {
	if kind != token.UnstakeReceipt && kind != token.TransferReceipt {
		return reverts.ErrInvalidReceipt
	}
	if err := s.checkReceiptOwner(kind, receiptID); err != nil {
		return err
	}
	if err := s.tokenService.Transfer(kind, receiptID, to); err != nil {
		return err
	}
	current, err := s.currentPeriod()
	if err != nil {
		return err
	}
	s.emit(EventReceiptTransferred, current, withReceipt(receiptID))
	return nil
}
