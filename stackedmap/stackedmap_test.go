// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vechain/stakeledger/stackedmap"
)

func M(a ...any) []any {
	return a
}

func TestStackedMap(t *testing.T) {
	assert := assert.New(t)
	src := map[string]string{"foo": "bar"}

	sm := stackedmap.New(func(key string) (string, bool, error) {
		v, r := src[key]
		return v, r, nil
	})

	tests := []struct {
		f         func()
		depth     int
		putKey    string
		putValue  string
		getKey    string
		getReturn []any
	}{
		{func() {}, 0, "", "", "foo", M("bar", true, nil)},
		{func() { sm.Push() }, 1, "foo", "baz", "foo", M("baz", true, nil)},
		{func() {}, 1, "foo", "baz1", "foo", M("baz1", true, nil)},
		{func() { sm.Push() }, 2, "foo", "qux", "foo", M("qux", true, nil)},
		{func() { sm.Pop() }, 1, "", "", "foo", M("baz1", true, nil)},
		{func() { sm.Pop() }, 0, "", "", "foo", M("bar", true, nil)},

		{func() { sm.Push(); sm.Push() }, 2, "", "", "", nil},
		{func() { sm.PopTo(0) }, 0, "", "", "foo", M("bar", true, nil)},
	}

	for _, test := range tests {
		test.f()
		assert.Equal(test.depth, sm.Depth())
		if test.putKey != "" {
			sm.Put(test.putKey, test.putValue)
		}
		if test.getKey != "" {
			assert.Equal(test.getReturn, M(sm.Get(test.getKey)))
		}
	}
}

func TestStackedMap_Journal(t *testing.T) {
	sm := stackedmap.New(func(string) (int, bool, error) {
		return 0, false, nil
	})

	kvs := []struct {
		k string
		v int
	}{
		{"a", 1},
		{"a", 2},
		{"b", 3},
		{"c", 4},
	}
	for _, kv := range kvs {
		sm.Push()
		sm.Put(kv.k, kv.v)
	}

	i := 0
	sm.Journal(func(k string, v int) bool {
		assert.Equal(t, kvs[i].k, k)
		assert.Equal(t, kvs[i].v, v)
		i++
		return true
	})
	assert.Equal(t, len(kvs), i)

	i = 0
	sm.Journal(func(string, int) bool {
		i++
		return false
	})
	assert.Equal(t, 1, i, "journal traverse should abort")

	sm.PopTo(2)
	v, ok, err := sm.Get("a")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	_, ok, _ = sm.Get("b")
	assert.False(t, ok)
}

func TestStackedMap_RepeatedPutSameLevel(t *testing.T) {
	sm := stackedmap.New(func(string) (int, bool, error) {
		return 0, false, nil
	})
	sm.Push()
	sm.Push()
	sm.Put("k", 1)
	sm.Put("k", 2)
	sm.Pop()

	_, ok, err := sm.Get("k")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestStackedMap_SourceError(t *testing.T) {
	boom := errors.New("boom")
	sm := stackedmap.New(func(string) (int, bool, error) {
		return 0, false, boom
	})
	_, _, err := sm.Get("x")
	assert.Equal(t, boom, err)
}
