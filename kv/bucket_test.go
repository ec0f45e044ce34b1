// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/stakeledger/kv"
	"github.com/vechain/stakeledger/lvldb"
)

func TestBucket(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	a := kv.Bucket("a/").NewStore(db)
	b := kv.Bucket("b/").NewStore(db)

	require.NoError(t, a.Put([]byte("k"), []byte("va")))
	require.NoError(t, b.Put([]byte("k"), []byte("vb")))

	v, err := a.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("va"), v)

	raw, err := db.Get([]byte("b/k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("vb"), raw)

	require.NoError(t, a.Delete([]byte("k")))
	_, err = a.Get([]byte("k"))
	assert.True(t, a.IsNotFound(err))

	has, err := b.Has([]byte("k"))
	require.NoError(t, err)
	assert.True(t, has)
}

func TestBucket_BulkAndIterate(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Put([]byte("other"), []byte("x")))
	s := kv.Bucket("s/").NewStore(db)

	bulk := s.Bulk()
	require.NoError(t, bulk.Put([]byte("1"), []byte("one")))
	require.NoError(t, bulk.Put([]byte("2"), []byte("two")))
	require.NoError(t, bulk.Delete([]byte("3")))
	require.NoError(t, bulk.Write())

	it := s.Iterate(kv.Range{})
	defer it.Release()
	got := map[string]string{}
	for it.Next() {
		got[string(it.Key())] = string(it.Value())
	}
	require.NoError(t, it.Error())
	assert.Equal(t, map[string]string{"1": "one", "2": "two"}, got)
}
