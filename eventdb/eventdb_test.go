// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *EventDB {
	db, err := NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seed(t *testing.T, db *EventDB) []*Event {
	events := []*Event{
		{Time: 60, Period: 0, Kind: "record_created", Caller: "alice", Record: 1},
		{Time: 60, Period: 0, Kind: "staked", Caller: "alice", Record: 1, Asset: "XRD", Amount: "100"},
		{Time: 120, Period: 0, Kind: "staked", Caller: "bob", Record: 2, Asset: "OCI", Amount: "5"},
		{Time: 700, Period: 1, Kind: "claimed", Caller: "alice", Record: 1, Asset: "XRD", Amount: "700"},
	}
	require.NoError(t, db.Write(context.Background(), events))
	return events
}

func TestWrite_AssignsSeq(t *testing.T) {
	db := newTestDB(t)
	events := seed(t, db)
	for i, ev := range events {
		assert.Equal(t, uint64(i+1), ev.Seq)
	}
	assert.NoError(t, db.Write(context.Background(), nil))
	assert.NotEmpty(t, db.DriverVersion())
}

func TestFilter(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	ctx := context.Background()
	one := uint64(1)

	tests := []struct {
		name   string
		filter *Filter
		want   []uint64
	}{
		{"all", nil, []uint64{1, 2, 3, 4}},
		{"by record", &Filter{Record: &one}, []uint64{1, 2, 4}},
		{"by asset", &Filter{Asset: "OCI"}, []uint64{3}},
		{"by kind", &Filter{Kind: "staked"}, []uint64{2, 3}},
		{"by caller", &Filter{Caller: "bob"}, []uint64{3}},
		{"by time", &Filter{Range: &Range{From: 100, To: 700}}, []uint64{3, 4}},
		{"open range", &Filter{Range: &Range{From: 120}}, []uint64{3, 4}},
		{"desc paged", &Filter{Order: DESC, Options: &Options{Offset: 1, Limit: 2}}, []uint64{3, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := db.Filter(ctx, tt.filter)
			require.NoError(t, err)
			var seqs []uint64
			for _, ev := range events {
				seqs = append(seqs, ev.Seq)
			}
			assert.Equal(t, tt.want, seqs)
		})
	}

	events, err := db.Filter(ctx, &Filter{Kind: "claimed"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, Event{Seq: 4, Time: 700, Period: 1, Kind: "claimed", Caller: "alice", Record: 1, Asset: "XRD", Amount: "700"}, *events[0])
}

func TestPersistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	db, err := New(path)
	require.NoError(t, err)
	seed(t, db)
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()
	events, err := db.Filter(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, events, 4)
	assert.Equal(t, path, db.Path())
}
