// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis describes the initial configuration of a ledger.
// It is applied once, when the ledger database is empty.
package genesis

import (
	"os"

	"github.com/pkg/errors"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/staking/asset"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxClaimDelay = 5 // periods
	DefaultUnstakeDelay  = 7 // days
)

// Genesis is the initial configuration of a ledger.
type Genesis struct {
	Name            string         `yaml:"name"`
	PeriodInterval  uint32         `yaml:"period_interval"`   // days
	MaxUnstakeDelay uint32         `yaml:"max_unstake_delay"` // days, fixed for the ledger lifetime
	UnstakeDelay    *uint32        `yaml:"unstake_delay,omitempty"`
	MaxClaimDelay   *uint64        `yaml:"max_claim_delay,omitempty"`
	DAOControlled   bool           `yaml:"dao_controlled"`
	RewardAsset     ledger.AssetID `yaml:"reward_asset"`
	InitialRewards  ledger.Amount  `yaml:"initial_rewards"`
	Assets          []Asset        `yaml:"assets"`
}

// Asset is a stakable asset registered at genesis.
type Asset struct {
	ID           ledger.AssetID   `yaml:"id"`
	RewardBudget ledger.Amount    `yaml:"reward_budget"`
	Lock         asset.LockPolicy `yaml:"lock"`
}

// Load reads and validates a YAML genesis file.
func Load(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	gen, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "genesis file %v", path)
	}
	return gen, nil
}

// Parse decodes and validates a YAML genesis document.
func Parse(data []byte) (*Genesis, error) {
	var gen Genesis
	if err := yaml.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	if err := gen.Validate(); err != nil {
		return nil, err
	}
	return &gen, nil
}

// GetUnstakeDelay returns the configured unstake delay in days, or the default.
func (g *Genesis) GetUnstakeDelay() uint32 {
	if g.UnstakeDelay != nil {
		return *g.UnstakeDelay
	}
	return min(DefaultUnstakeDelay, g.MaxUnstakeDelay)
}

// GetMaxClaimDelay returns the configured claim window in periods, or the default.
func (g *Genesis) GetMaxClaimDelay() uint64 {
	if g.MaxClaimDelay != nil {
		return *g.MaxClaimDelay
	}
	return DefaultMaxClaimDelay
}

func (g *Genesis) Validate() error {
	if g.Name == "" {
		return errors.New("name must be set")
	}
	if g.PeriodInterval == 0 {
		return errors.New("period_interval must be positive")
	}
	if g.GetUnstakeDelay() > g.MaxUnstakeDelay {
		return errors.Errorf("unstake_delay %d exceeds max_unstake_delay %d", g.GetUnstakeDelay(), g.MaxUnstakeDelay)
	}
	if _, err := ledger.ParseAssetID(string(g.RewardAsset)); err != nil {
		return errors.Wrap(err, "reward_asset")
	}
	if g.InitialRewards.IsNegative() {
		return errors.New("initial_rewards must not be negative")
	}

	seen := make(map[ledger.AssetID]bool)
	for i, a := range g.Assets {
		if _, err := ledger.ParseAssetID(string(a.ID)); err != nil {
			return errors.Wrapf(err, "assets[%d]", i)
		}
		if seen[a.ID] {
			return errors.Errorf("assets[%d]: duplicated asset %v", i, a.ID)
		}
		seen[a.ID] = true
		if a.RewardBudget.IsNegative() || a.Lock.BonusPayment.IsNegative() {
			return errors.Errorf("assets[%d]: amounts must not be negative", i)
		}
	}
	return nil
}

// Devnet returns the configuration used for local development: weekly
// periods, one stakable asset paid out in the same asset.
func Devnet() *Genesis {
	return &Genesis{
		Name:            "devnet",
		PeriodInterval:  7,
		MaxUnstakeDelay: 30,
		RewardAsset:     "XRD",
		InitialRewards:  ledger.AmountFromInt(100_000),
		Assets: []Asset{
			{
				ID:           "XRD",
				RewardBudget: ledger.AmountFromInt(1_000),
				Lock: asset.LockPolicy{
					BonusPayment: ledger.MustParseAmount("0.01"),
					Duration:     30,
				},
			},
		},
	}
}
