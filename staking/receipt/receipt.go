// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package receipt stores the data attached to unstake and stake transfer receipts.
package receipt

import (
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/staking/slots"
	"github.com/vechain/stakeledger/staking/token"
)

// Unstake entitles its holder to withdraw Amount of Asset from custody at or after RedemptionTime.
type Unstake struct {
	Asset          ledger.AssetID
	Amount         ledger.Amount
	RedemptionTime ledger.Timestamp
}

func (u *Unstake) Redeemable(now ledger.Timestamp) bool {
	return now >= u.RedemptionTime
}

// Transfer carries stake that can be staked into another record without leaving custody.
type Transfer struct {
	Asset  ledger.AssetID
	Amount ledger.Amount
}

type Service struct {
	unstakes  *slots.Mapping[slots.Uint64Key, *Unstake]
	transfers *slots.Mapping[slots.Uint64Key, *Transfer]
}

func New(sctx *slots.Context) *Service {
	return &Service{
		unstakes:  slots.NewMapping[slots.Uint64Key, *Unstake](sctx, "unstakes"),
		transfers: slots.NewMapping[slots.Uint64Key, *Transfer](sctx, "transfers"),
	}
}

func (s *Service) SetUnstake(id token.ID, u *Unstake) error {
	return s.unstakes.Set(slots.Uint64Key(id), u)
}

// GetUnstake returns nil when the receipt does not exist.
func (s *Service) GetUnstake(id token.ID) (*Unstake, error) {
	u, exists, err := s.unstakes.Lookup(slots.Uint64Key(id))
	if err != nil || !exists {
		return nil, err
	}
	return u, nil
}

func (s *Service) DeleteUnstake(id token.ID) {
	s.unstakes.Delete(slots.Uint64Key(id))
}

func (s *Service) SetTransfer(id token.ID, t *Transfer) error {
	return s.transfers.Set(slots.Uint64Key(id), t)
}

// GetTransfer returns nil when the receipt does not exist.
func (s *Service) GetTransfer(id token.ID) (*Transfer, error) {
	t, exists, err := s.transfers.Lookup(slots.Uint64Key(id))
	if err != nil || !exists {
		return nil, err
	}
	return t, nil
}

func (s *Service) DeleteTransfer(id token.ID) {
	s.transfers.Delete(slots.Uint64Key(id))
}
