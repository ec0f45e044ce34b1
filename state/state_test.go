// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/stakeledger/lvldb"
)

func newTestStater(t *testing.T) (*Stater, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStater(db, 16), db
}

func TestState_CheckpointRevert(t *testing.T) {
	stater, _ := newTestStater(t)
	st := stater.NewState()

	st.SetRaw([]byte("a"), []byte("1"))
	rev := st.NewCheckpoint()
	st.SetRaw([]byte("a"), []byte("2"))
	st.SetRaw([]byte("b"), []byte("3"))

	v, err := st.GetRaw([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)

	st.RevertTo(rev)
	v, err = st.GetRaw([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
	v, err = st.GetRaw([]byte("b"))
	require.NoError(t, err)
	assert.Empty(t, v)

	// reverting below the base level keeps the base changes
	st.RevertTo(0)
	v, err = st.GetRaw([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
}

func TestState_Commit(t *testing.T) {
	stater, db := newTestStater(t)

	st := stater.NewState()
	st.SetRaw([]byte("a"), []byte("1"))
	st.SetRaw([]byte("b"), []byte("2"))
	n, err := st.Commit()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = st.Commit()
	assert.Equal(t, ErrCommitted, err)

	raw, err := db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), raw)

	// a discarded state leaves no trace
	discarded := stater.NewState()
	discarded.SetRaw([]byte("a"), []byte("x"))

	st = stater.NewState()
	v, err := st.GetRaw([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	// deletion
	st.SetRaw([]byte("b"), nil)
	_, err = st.Commit()
	require.NoError(t, err)
	has, err := db.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, has)

	v, err = stater.NewState().GetRaw([]byte("b"))
	require.NoError(t, err)
	assert.Empty(t, v, "cache refreshed on commit")
}

func TestState_Codec(t *testing.T) {
	stater, _ := newTestStater(t)
	st := stater.NewState()

	require.NoError(t, st.EncodeStorage([]byte("k"), func() ([]byte, error) { return []byte("v"), nil }))
	var got string
	require.NoError(t, st.DecodeStorage([]byte("k"), func(raw []byte) error {
		got = string(raw)
		return nil
	}))
	assert.Equal(t, "v", got)

	boom := errors.New("boom")
	err := st.EncodeStorage([]byte("k"), func() ([]byte, error) { return nil, boom })
	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, boom, serr.Cause())
}

func TestStater_CacheStats(t *testing.T) {
	stater, _ := newTestStater(t)
	st := stater.NewState()
	_, _ = st.GetRaw([]byte("x"))
	_, _ = stater.NewState().GetRaw([]byte("x"))

	_, hit, miss := stater.CacheStats().Stats()
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)

	assert.Nil(t, NewStater(nil, 0).CacheStats())
}

func TestStater_ReportCacheStats(t *testing.T) {
	stater, _ := newTestStater(t)
	_, _ = stater.NewState().GetRaw([]byte("x"))
	_, _ = stater.NewState().GetRaw([]byte("x"))

	changed, hit, miss := stater.ReportCacheStats()
	assert.True(t, changed)
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)

	changed, _, _ = stater.ReportCacheStats()
	assert.False(t, changed)

	changed, _, _ = NewStater(nil, 0).ReportCacheStats()
	assert.False(t, changed)
}
