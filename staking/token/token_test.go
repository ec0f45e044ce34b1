// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/staking/reverts"
	"github.com/vechain/stakeledger/staking/slots"
	"github.com/vechain/stakeledger/state"
)

func newService(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(slots.NewContext("token", state.NewStater(db, 0).NewState()))
}

func TestService_Lifecycle(t *testing.T) {
	svc := newService(t)

	id1, err := svc.Mint(Record, "alice")
	require.NoError(t, err)
	id2, err := svc.Mint(Record, "bob")
	require.NoError(t, err)
	rid, err := svc.Mint(UnstakeReceipt, "alice")
	require.NoError(t, err)

	assert.Equal(t, ID(1), id1)
	assert.Equal(t, ID(2), id2)
	assert.Equal(t, ID(1), rid, "ids are sequenced per kind")

	owner, err := svc.OwnerOf(Record, id2)
	require.NoError(t, err)
	assert.Equal(t, "bob", owner)

	require.NoError(t, svc.Transfer(Record, id2, "carol"))
	owner, err = svc.OwnerOf(Record, id2)
	require.NoError(t, err)
	assert.Equal(t, "carol", owner)

	svc.Burn(UnstakeReceipt, rid)
	owner, err = svc.OwnerOf(UnstakeReceipt, rid)
	require.NoError(t, err)
	assert.Empty(t, owner)

	minted, err := svc.Minted(UnstakeReceipt)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), minted)
}

func TestService_InvalidOwner(t *testing.T) {
	svc := newService(t)
	_, err := svc.Mint(Record, "")
	assert.Equal(t, reverts.ErrInvalidRecipient, err)
	assert.Equal(t, reverts.ErrInvalidRecipient, svc.Transfer(Record, 1, " bob"))
}

func TestKind(t *testing.T) {
	for _, k := range []Kind{Record, UnstakeReceipt, TransferReceipt} {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	_, err := ParseKind("nft")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Kind(9).String())
}
