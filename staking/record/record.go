// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package record

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/vechain/stakeledger/ledger"
)

// Position is the stake a record holds in one asset.
type Position struct {
	Asset        ledger.AssetID
	AmountStaked ledger.Amount
	LockedUntil  *ledger.Timestamp `rlp:"nil"`
}

// Locked reports whether the position cannot be unstaked at now.
func (p *Position) Locked(now ledger.Timestamp) bool {
	return p.LockedUntil != nil && now < *p.LockedUntil
}

type body struct {
	Positions  []Position // sorted by asset
	NextPeriod uint64
}

// Record is a staking record: sparse positions keyed by asset and the claim pointer.
type Record struct {
	body *body
}

func newRecord(nextPeriod uint64) *Record {
	return &Record{&body{NextPeriod: nextPeriod}}
}

// NextPeriod is the first period whose rewards have not been claimed.
func (r *Record) NextPeriod() uint64 {
	return r.body.NextPeriod
}

// SetNextPeriod moves the claim pointer. It never moves backwards.
func (r *Record) SetNextPeriod(next uint64) error {
	if next < r.body.NextPeriod {
		return errors.Errorf("claim pointer cannot move back from %d to %d", r.body.NextPeriod, next)
	}
	r.body.NextPeriod = next
	return nil
}

// Position returns a copy of the position in asset.
func (r *Record) Position(asset ledger.AssetID) (Position, bool) {
	i, found := r.find(asset)
	if !found {
		return Position{}, false
	}
	return r.body.Positions[i], true
}

// Positions returns a copy of all positions ordered by asset.
func (r *Record) Positions() []Position {
	return append([]Position(nil), r.body.Positions...)
}

// SetPosition inserts or replaces the position of p.Asset.
func (r *Record) SetPosition(p Position) {
	i, found := r.find(p.Asset)
	if found {
		r.body.Positions[i] = p
		return
	}
	r.body.Positions = append(r.body.Positions, Position{})
	copy(r.body.Positions[i+1:], r.body.Positions[i:])
	r.body.Positions[i] = p
}

func (r *Record) find(asset ledger.AssetID) (int, bool) {
	ps := r.body.Positions
	i := sort.Search(len(ps), func(i int) bool { return ps[i].Asset >= asset })
	return i, i < len(ps) && ps[i].Asset == asset
}
