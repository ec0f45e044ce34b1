// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package asset

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/staking/reverts"
	"github.com/vechain/stakeledger/staking/slots"
)

// rateKey addresses the rate of an asset for a period.
type rateKey struct {
	asset  ledger.AssetID
	period uint64
}

func (k rateKey) Bytes() []byte {
	b := binary.BigEndian.AppendUint64(nil, k.period)
	return append(b, k.asset...)
}

// Service is the stakable asset registry together with the per-period rate history.
type Service struct {
	ids    *slots.Value[[]ledger.AssetID]
	assets *slots.Mapping[ledger.AssetID, *Asset]
	rates  *slots.Mapping[rateKey, ledger.Amount]
}

func New(sctx *slots.Context) *Service {
	return &Service{
		ids:    slots.NewValue[[]ledger.AssetID](sctx, "ids"),
		assets: slots.NewMapping[ledger.AssetID, *Asset](sctx, "assets"),
		rates:  slots.NewMapping[rateKey, ledger.Amount](sctx, "rates"),
	}
}

// Add registers a new stakable asset with nothing staked.
func (s *Service) Add(id ledger.AssetID, budget ledger.Amount, lock LockPolicy, period uint64) error {
	if budget.IsNegative() || lock.BonusPayment.IsNegative() {
		return reverts.ErrInvalidAmount
	}
	_, exists, err := s.assets.Lookup(id)
	if err != nil {
		return errors.Wrap(err, "lookup asset")
	}
	if exists {
		return reverts.ErrAssetExists
	}
	ids, err := s.ids.Get()
	if err != nil {
		return errors.Wrap(err, "get asset ids")
	}
	if err := s.ids.Set(append(ids, id)); err != nil {
		return err
	}
	return s.assets.Set(id, &Asset{
		RewardBudget: budget,
		Lock:         lock,
		AddedPeriod:  period,
	})
}

// Get returns the asset or ErrUnknownAsset.
func (s *Service) Get(id ledger.AssetID) (*Asset, error) {
	a, exists, err := s.assets.Lookup(id)
	if err != nil {
		return nil, errors.Wrap(err, "get asset")
	}
	if !exists {
		return nil, reverts.ErrUnknownAsset
	}
	return a, nil
}

// IDs returns the registered assets in registration order.
func (s *Service) IDs() ([]ledger.AssetID, error) {
	return s.ids.Get()
}

func (s *Service) SetBudget(id ledger.AssetID, budget ledger.Amount) error {
	return s.update(id, func(a *Asset) error {
		if budget.IsNegative() {
			return reverts.ErrInvalidAmount
		}
		a.RewardBudget = budget
		return nil
	})
}

func (s *Service) SetLockPolicy(id ledger.AssetID, lock LockPolicy) error {
	return s.update(id, func(a *Asset) error {
		if lock.BonusPayment.IsNegative() {
			return reverts.ErrInvalidAmount
		}
		a.Lock = lock
		return nil
	})
}

func (s *Service) AddStake(id ledger.AssetID, amount ledger.Amount) error {
	return s.update(id, func(a *Asset) error {
		a.TotalStaked = a.TotalStaked.Add(amount)
		return nil
	})
}

func (s *Service) SubStake(id ledger.AssetID, amount ledger.Amount) error {
	return s.update(id, func(a *Asset) error {
		if a.TotalStaked.LessThan(amount) {
			return errors.Errorf("total staked of %v underflow", id)
		}
		a.TotalStaked = a.TotalStaked.Sub(amount)
		return nil
	})
}

func (s *Service) update(id ledger.AssetID, fn func(*Asset) error) error {
	a, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := fn(a); err != nil {
		return err
	}
	return s.assets.Set(id, a)
}

// Rate returns the recorded rate of an asset for a closed period.
// The second return value is false when no rate was recorded.
func (s *Service) Rate(id ledger.AssetID, period uint64) (ledger.Amount, bool, error) {
	return s.rates.Lookup(rateKey{id, period})
}

// RecordRates writes the closing rate of every registered asset for period.
// A period that already has a rate keeps it.
func (s *Service) RecordRates(period uint64) (map[ledger.AssetID]ledger.Amount, error) {
	ids, err := s.ids.Get()
	if err != nil {
		return nil, errors.Wrap(err, "get asset ids")
	}
	recorded := make(map[ledger.AssetID]ledger.Amount, len(ids))
	for _, id := range ids {
		key := rateKey{id, period}
		if _, exists, err := s.rates.Lookup(key); err != nil {
			return nil, err
		} else if exists {
			continue
		}
		a, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		rate := a.Rate()
		if err := s.rates.Set(key, rate); err != nil {
			return nil, err
		}
		recorded[id] = rate
	}
	return recorded, nil
}
