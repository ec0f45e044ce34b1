// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/genesis"
	"github.com/vechain/stakeledger/ledger"
)

// ErrNotInitialised is returned by operations on a ledger that has no genesis applied.
var ErrNotInitialised = errors.New("ledger not initialised")

// Settings is the ledger wide configuration.
type Settings struct {
	Name            string         `json:"name"`
	RewardAsset     ledger.AssetID `json:"rewardAsset"`
	MaxClaimDelay   uint64         `json:"maxClaimDelay"`   // periods
	UnstakeDelay    uint32         `json:"unstakeDelay"`    // days
	MaxUnstakeDelay uint32         `json:"maxUnstakeDelay"` // days
	DAOControlled   bool           `json:"daoControlled"`
}

func (s *Settings) initialised() bool {
	return s.Name != ""
}

// Initialise applies gen unless the ledger already has settings.
// It returns false when the ledger was already initialised.
func (s *Staker) Initialise(gen *genesis.Genesis) (bool, error) {
	settings, err := s.Settings()
	if err != nil {
		return false, err
	}
	if settings.initialised() {
		return false, nil
	}
	if err := gen.Validate(); err != nil {
		return false, errors.Wrap(err, "invalid genesis")
	}

	if err := s.settings.Set(Settings{
		Name:            gen.Name,
		RewardAsset:     gen.RewardAsset,
		MaxClaimDelay:   gen.GetMaxClaimDelay(),
		UnstakeDelay:    gen.GetUnstakeDelay(),
		MaxUnstakeDelay: gen.MaxUnstakeDelay,
		DAOControlled:   gen.DAOControlled,
	}); err != nil {
		return false, err
	}
	if err := s.periodService.Init(gen.PeriodInterval, s.now); err != nil {
		return false, err
	}
	for _, a := range gen.Assets {
		if err := s.AddAsset(a.ID, a.RewardBudget, a.Lock); err != nil {
			return false, errors.Wrapf(err, "add asset %v", a.ID)
		}
	}
	if gen.InitialRewards.IsPositive() {
		if err := s.FillRewards(gen.InitialRewards); err != nil {
			return false, err
		}
	}
	logger.Info("ledger initialised", "name", gen.Name, "interval", gen.PeriodInterval, "assets", len(gen.Assets))
	return true, nil
}

func (s *Staker) requireInitialised() (*Settings, error) {
	settings, err := s.Settings()
	if err != nil {
		return nil, err
	}
	if !settings.initialised() {
		return nil, ErrNotInitialised
	}
	return settings, nil
}
