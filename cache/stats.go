// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts cache lookups.
type Stats struct {
	hit, miss atomic.Int64
	lastRate  atomic.Int64 // per mille, as of the last Stats call
}

func (cs *Stats) Hit() int64  { return cs.hit.Add(1) }
func (cs *Stats) Miss() int64 { return cs.miss.Add(1) }

// HitRate returns the share of lookups served from the cache, in per mille.
func (cs *Stats) HitRate() int64 {
	return permille(cs.hit.Load(), cs.miss.Load())
}

// Stats returns the hit and miss counts, and whether the hit rate moved
// since the previous call.
func (cs *Stats) Stats() (changed bool, hit, miss int64) {
	hit, miss = cs.hit.Load(), cs.miss.Load()
	rate := permille(hit, miss)
	return cs.lastRate.Swap(rate) != rate, hit, miss
}

func permille(hit, miss int64) int64 {
	if hit+miss == 0 {
		return 0
	}
	return hit * 1000 / (hit + miss)
}
