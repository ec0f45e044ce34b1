// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/eventdb"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/staking/asset"
	"github.com/vechain/stakeledger/staking/period"
	"github.com/vechain/stakeledger/staking/receipt"
	"github.com/vechain/stakeledger/staking/record"
	"github.com/vechain/stakeledger/staking/reverts"
	"github.com/vechain/stakeledger/staking/slots"
	"github.com/vechain/stakeledger/staking/token"
	"github.com/vechain/stakeledger/staking/vault"
	"github.com/vechain/stakeledger/state"
)

var logger = log.New("pkg", "staking")

func SetLogger(l log.Logger) {
	logger = l
}

// Staker implements the ledger operations against a single state.
// It is not safe for concurrent use; the Engine serializes access.
type Staker struct {
	now    ledger.Timestamp
	caller string

	settings *slots.Value[Settings]

	periodService  *period.Service
	assetService   *asset.Service
	vaultService   *vault.Service
	tokenService   *token.Service
	recordService  *record.Service
	receiptService *receipt.Service

	dryRun bool // changes are never committed

	closed []uint64 // periods closed during this operation
	events []*eventdb.Event
}

func newStaker(st *state.State, now ledger.Timestamp, caller string) *Staker {
	ns := func(name string) *slots.Context { return slots.NewContext(name, st) }
	return &Staker{
		now:    now,
		caller: caller,

		settings: slots.NewValue[Settings](ns("config"), "settings"),

		periodService:  period.New(ns("period")),
		assetService:   asset.New(ns("asset")),
		vaultService:   vault.New(ns("vault")),
		tokenService:   token.New(ns("token")),
		recordService:  record.New(ns("record")),
		receiptService: receipt.New(ns("receipt")),
	}
}

//
// Getters - no state change
//

func (s *Staker) Settings() (*Settings, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, errors.Wrap(err, "get settings")
	}
	return &settings, nil
}

func (s *Staker) Clock() (*period.Clock, error) {
	return s.periodService.Clock()
}

func (s *Staker) Asset(id ledger.AssetID) (*asset.Asset, error) {
	return s.assetService.Get(id)
}

func (s *Staker) AssetIDs() ([]ledger.AssetID, error) {
	return s.assetService.IDs()
}

func (s *Staker) Rate(id ledger.AssetID, period uint64) (ledger.Amount, bool, error) {
	if _, err := s.assetService.Get(id); err != nil {
		return ledger.Amount{}, false, err
	}
	return s.assetService.Rate(id, period)
}

// Record returns the record data and its holder.
func (s *Staker) Record(id token.ID) (*record.Record, string, error) {
	owner, err := s.tokenService.OwnerOf(token.Record, id)
	if err != nil {
		return nil, "", err
	}
	if owner == "" {
		return nil, "", reverts.ErrInvalidRecord
	}
	r, err := s.recordService.Get(id)
	if err != nil {
		return nil, "", err
	}
	if r == nil {
		return nil, "", reverts.ErrInvalidRecord
	}
	return r, owner, nil
}

func (s *Staker) UnstakeReceipt(id token.ID) (*receipt.Unstake, string, error) {
	owner, err := s.tokenService.OwnerOf(token.UnstakeReceipt, id)
	if err != nil {
		return nil, "", err
	}
	u, err := s.receiptService.GetUnstake(id)
	if err != nil {
		return nil, "", err
	}
	if owner == "" || u == nil {
		return nil, "", reverts.ErrInvalidReceipt
	}
	return u, owner, nil
}

func (s *Staker) StakeTransferReceipt(id token.ID) (*receipt.Transfer, string, error) {
	owner, err := s.tokenService.OwnerOf(token.TransferReceipt, id)
	if err != nil {
		return nil, "", err
	}
	t, err := s.receiptService.GetTransfer(id)
	if err != nil {
		return nil, "", err
	}
	if owner == "" || t == nil {
		return nil, "", reverts.ErrInvalidReceipt
	}
	return t, owner, nil
}

func (s *Staker) VaultBalance(id ledger.AssetID) (ledger.Amount, error) {
	return s.vaultService.Balance(id)
}

func (s *Staker) RewardBalance() (ledger.Amount, error) {
	return s.vaultService.RewardBalance()
}

//
// helpers
//

// ownedRecord loads a record held by the caller.
func (s *Staker) ownedRecord(id token.ID) (*record.Record, error) {
	r, owner, err := s.Record(id)
	if err != nil {
		return nil, err
	}
	if owner != s.caller {
		return nil, reverts.ErrNotOwner
	}
	return r, nil
}

// checkReceiptOwner verifies the receipt exists and is held by the caller.
func (s *Staker) checkReceiptOwner(kind token.Kind, id token.ID) error {
	owner, err := s.tokenService.OwnerOf(kind, id)
	if err != nil {
		return err
	}
	if owner == "" {
		return reverts.ErrInvalidReceipt
	}
	if owner != s.caller {
		return reverts.ErrNotOwner
	}
	return nil
}

func (s *Staker) currentPeriod() (uint64, error) {
	current, err := s.periodService.Current()
	if err != nil {
		return 0, errors.Wrap(err, "get current period")
	}
	return current, nil
}
