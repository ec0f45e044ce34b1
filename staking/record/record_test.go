// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/staking/slots"
	"github.com/vechain/stakeledger/state"
)

func TestRecord_Positions(t *testing.T) {
	r := newRecord(1)

	_, ok := r.Position("XRD")
	assert.False(t, ok)

	r.SetPosition(Position{Asset: "XRD", AmountStaked: ledger.AmountFromInt(5)})
	r.SetPosition(Position{Asset: "ABC", AmountStaked: ledger.AmountFromInt(1)})
	r.SetPosition(Position{Asset: "OCI", AmountStaked: ledger.AmountFromInt(2)})
	r.SetPosition(Position{Asset: "XRD", AmountStaked: ledger.AmountFromInt(6)})

	var assets []ledger.AssetID
	for _, p := range r.Positions() {
		assets = append(assets, p.Asset)
	}
	assert.Equal(t, []ledger.AssetID{"ABC", "OCI", "XRD"}, assets)

	p, ok := r.Position("XRD")
	assert.True(t, ok)
	assert.Equal(t, "6", p.AmountStaked.String())
}

func TestRecord_NextPeriodMonotonic(t *testing.T) {
	r := newRecord(3)
	require.NoError(t, r.SetNextPeriod(5))
	assert.Error(t, r.SetNextPeriod(4))
	assert.Equal(t, uint64(5), r.NextPeriod())
}

func TestPosition_Locked(t *testing.T) {
	until := ledger.Timestamp(100)
	p := Position{LockedUntil: &until}
	assert.True(t, p.Locked(99))
	assert.False(t, p.Locked(100))
	assert.False(t, (&Position{}).Locked(0))
}

func TestService(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	svc := New(slots.NewContext("records", state.NewStater(db, 0).NewState()))

	missing, err := svc.Get(1)
	require.NoError(t, err)
	assert.Nil(t, missing)

	r, err := svc.Create(1, 4)
	require.NoError(t, err)
	until := ledger.Timestamp(77)
	r.SetPosition(Position{Asset: "XRD", AmountStaked: ledger.AmountFromInt(9), LockedUntil: &until})
	r.SetPosition(Position{Asset: "OCI", AmountStaked: ledger.AmountFromInt(1)})
	require.NoError(t, svc.Set(1, r))

	loaded, err := svc.Get(1)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, uint64(4), loaded.NextPeriod())

	p, ok := loaded.Position("XRD")
	require.True(t, ok)
	require.NotNil(t, p.LockedUntil)
	assert.Equal(t, until, *p.LockedUntil)

	p, ok = loaded.Position("OCI")
	require.True(t, ok)
	assert.Nil(t, p.LockedUntil)
}
