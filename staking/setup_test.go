// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakeledger/eventdb"
	"github.com/vechain/stakeledger/genesis"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/staking/asset"
	"github.com/vechain/stakeledger/staking/token"
	"github.com/vechain/stakeledger/state"
)

const (
	alice = "alice"
	bob   = "bob"
	carol = "carol"
)

var genesisTime = ledger.TruncateToMinute(1_700_000_000)

type manualClock struct {
	now ledger.Timestamp
}

func (c *manualClock) Now() ledger.Timestamp {
	return c.now
}

func amt(s string) ledger.Amount {
	return ledger.MustParseAmount(s)
}

// newGenesis returns a weekly ledger with asset A (budget 700, 30 day lock for 0.01 per unit).
func newGenesis() *genesis.Genesis {
	return &genesis.Genesis{
		Name:            "test",
		PeriodInterval:  7,
		MaxUnstakeDelay: 30,
		RewardAsset:     "R",
		InitialRewards:  amt("100000"),
		Assets: []genesis.Asset{
			{
				ID:           "A",
				RewardBudget: amt("700"),
				Lock:         asset.LockPolicy{BonusPayment: amt("0.01"), Duration: 30},
			},
		},
	}
}

type EngineTest struct {
	*Engine
	t      *testing.T
	ctx    context.Context
	clock  *manualClock
	events *eventdb.EventDB
}

func newTest(t *testing.T, gen *genesis.Genesis) *EngineTest {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	edb, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { edb.Close() })

	clock := &manualClock{now: genesisTime}
	engine := New(state.NewStater(db, 128), clock, WithEventWriter(edb))
	if gen != nil {
		ok, err := engine.Initialise(context.Background(), gen)
		require.NoError(t, err)
		require.True(t, ok)
	}
	return &EngineTest{
		Engine: engine,
		t:      t,
		ctx:    context.Background(),
		clock:  clock,
		events: edb,
	}
}

// Forward moves the clock forward by days.
func (et *EngineTest) Forward(days uint32) *EngineTest {
	et.clock.now = ledger.AddDays(et.clock.now, days)
	return et
}

// ForwardSeconds moves the clock forward by secs.
func (et *EngineTest) ForwardSeconds(secs uint64) *EngineTest {
	et.clock.now += secs
	return et
}

// NewRecord creates a record for caller and stakes amount of asset in it.
func (et *EngineTest) NewRecord(caller string, id ledger.AssetID, amount string) token.ID {
	recordID, err := et.CreateRecord(et.ctx, caller)
	require.NoError(et.t, err)
	if amount != "" {
		require.NoError(et.t, et.Stake(et.ctx, caller, recordID, id, amt(amount)))
	}
	return recordID
}

func (et *EngineTest) MustClaim(caller string, recordID token.ID) ledger.Amount {
	reward, err := et.Claim(et.ctx, caller, recordID)
	require.NoError(et.t, err, "claim record %d", recordID)
	return reward
}

func (et *EngineTest) Current() uint64 {
	info, err := et.PeriodInfo()
	require.NoError(et.t, err)
	return info.Current
}

// Staked returns the amount staked by a record in an asset.
func (et *EngineTest) Staked(recordID token.ID, id ledger.AssetID) ledger.Amount {
	r, _, err := et.Record(recordID)
	require.NoError(et.t, err)
	pos, _ := r.Position(id)
	return pos.AmountStaked
}

func (et *EngineTest) NextPeriod(recordID token.ID) uint64 {
	r, _, err := et.Record(recordID)
	require.NoError(et.t, err)
	return r.NextPeriod()
}

// AssertConservation checks the total staked in an asset equals the sum of the
// given records' positions, and the custody balance covers it.
func (et *EngineTest) AssertConservation(id ledger.AssetID, records ...token.ID) {
	var sum ledger.Amount
	for _, recordID := range records {
		sum = sum.Add(et.Staked(recordID, id))
	}
	a, err := et.Asset(id)
	require.NoError(et.t, err)
	assert.True(et.t, sum.Equal(a.TotalStaked), "total staked %v, positions sum %v", a.TotalStaked, sum)

	balance, err := et.VaultBalance(id)
	require.NoError(et.t, err)
	assert.False(et.t, balance.LessThan(a.TotalStaked), "vault %v below total staked %v", balance, a.TotalStaked)
}

func assertAmount(t *testing.T, expected string, actual ledger.Amount) {
	t.Helper()
	assert.Truef(t, amt(expected).Equal(actual), "expected %s, got %s", expected, actual)
}
