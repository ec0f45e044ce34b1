// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package vault holds the custody balance of each stakable asset and the reward vault.
package vault

import (
	"github.com/pkg/errors"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/staking/reverts"
	"github.com/vechain/stakeledger/staking/slots"
)

type Service struct {
	custody *slots.Mapping[ledger.AssetID, ledger.Amount]
	rewards *slots.Amount
}

func New(sctx *slots.Context) *Service {
	return &Service{
		custody: slots.NewMapping[ledger.AssetID, ledger.Amount](sctx, "custody"),
		rewards: slots.NewAmount(sctx, "rewards"),
	}
}

func (s *Service) Balance(asset ledger.AssetID) (ledger.Amount, error) {
	return s.custody.Get(asset)
}

func (s *Service) Deposit(asset ledger.AssetID, amount ledger.Amount) error {
	if !amount.IsPositive() {
		return reverts.ErrInvalidAmount
	}
	bal, err := s.custody.Get(asset)
	if err != nil {
		return errors.Wrap(err, "get custody balance")
	}
	return s.custody.Set(asset, bal.Add(amount))
}

// Withdraw takes amount out of the custody vault of asset.
func (s *Service) Withdraw(asset ledger.AssetID, amount ledger.Amount) error {
	bal, err := s.custody.Get(asset)
	if err != nil {
		return errors.Wrap(err, "get custody balance")
	}
	if bal.LessThan(amount) {
		return reverts.ErrInsufficientBalance
	}
	return s.custody.Set(asset, bal.Sub(amount))
}

func (s *Service) RewardBalance() (ledger.Amount, error) {
	return s.rewards.Get()
}

func (s *Service) DepositRewards(amount ledger.Amount) error {
	if !amount.IsPositive() {
		return reverts.ErrInvalidAmount
	}
	_, err := s.rewards.Add(amount)
	return err
}

// WithdrawRewards pays amount out of the reward vault.
func (s *Service) WithdrawRewards(amount ledger.Amount) error {
	bal, err := s.rewards.Get()
	if err != nil {
		return errors.Wrap(err, "get reward balance")
	}
	if bal.LessThan(amount) {
		return reverts.ErrInsufficientRewards
	}
	return s.rewards.Set(bal.Sub(amount))
}
