// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package period

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/staking/reverts"
	"github.com/vechain/stakeledger/staking/slots"
	"github.com/vechain/stakeledger/state"
)

const day = ledger.SecondsPerDay

func newService(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(slots.NewContext("period", state.NewStater(db, 0).NewState()))
}

func TestService_InitAndRoll(t *testing.T) {
	svc := newService(t)
	require.NoError(t, svc.Init(7, 1000))

	clock, err := svc.Clock()
	require.NoError(t, err)
	assert.Equal(t, &Clock{Interval: 7, Current: 0, NextAt: 1000 + 7*day}, clock)

	due, _ := clock.Due(1000 + 7*day - 1)
	assert.False(t, due)

	due, elapsed := clock.Due(1000 + 7*day)
	assert.True(t, due)
	assert.Zero(t, elapsed)

	clock, err = svc.Roll(clock, elapsed)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), clock.Current)
	assert.Equal(t, uint64(1000+14*day), clock.NextAt)

	stored, err := svc.Clock()
	require.NoError(t, err)
	assert.Equal(t, clock, stored)
}

func TestService_CatchUpLandsAfterNow(t *testing.T) {
	svc := newService(t)
	require.NoError(t, svc.Init(7, 0))
	clock, err := svc.Clock()
	require.NoError(t, err)

	now := uint64(7*day + 22*day) // three full intervals overdue, plus one day
	due, elapsed := clock.Due(now)
	assert.True(t, due)
	assert.Equal(t, uint64(3), elapsed)

	clock, err = svc.Roll(clock, elapsed)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), clock.Current, "a single period is closed")
	assert.Equal(t, uint64(35*day), clock.NextAt)
	assert.Greater(t, clock.NextAt, now)
}

func TestService_Admin(t *testing.T) {
	svc := newService(t)
	assert.Equal(t, reverts.ErrInvalidInterval, svc.Init(0, 0))
	require.NoError(t, svc.Init(7, 0))

	assert.Equal(t, reverts.ErrInvalidInterval, svc.SetInterval(0))
	require.NoError(t, svc.SetInterval(1))
	require.NoError(t, svc.SetNextToNow(500))

	clock, err := svc.Clock()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), clock.Interval)
	assert.Equal(t, uint64(500), clock.NextAt)

	due, elapsed := clock.Due(500)
	assert.True(t, due)
	assert.Zero(t, elapsed)
}
