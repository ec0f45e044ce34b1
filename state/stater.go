// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/vechain/stakeledger/cache"
	"github.com/vechain/stakeledger/kv"
)

// Stater is the state creator.
// It holds a read cache of committed values shared by all states it creates.
type Stater struct {
	store kv.Store
	cache *cache.LRU[string, []byte]
}

// NewStater creates a new stater. A non-positive cacheSize disables the read cache.
func NewStater(store kv.Store, cacheSize int) *Stater {
	s := &Stater{store: store}
	if cacheSize > 0 {
		s.cache, _ = cache.NewLRU[string, []byte](cacheSize)
	}
	return s
}

// NewState creates a new state object on top of the latest committed values.
func (s *Stater) NewState() *State {
	return newState(s)
}

// CacheStats returns the read cache counters, or nil if caching is disabled.
func (s *Stater) CacheStats() *cache.Stats {
	if s.cache == nil {
		return nil
	}
	return s.cache.Stats()
}

// ReportCacheStats publishes the read cache hit rate and tells whether it
// moved since the previous report.
func (s *Stater) ReportCacheStats() (changed bool, hit, miss int64) {
	stats := s.CacheStats()
	if stats == nil {
		return false, 0, 0
	}
	metricCacheHitRate().Set(stats.HitRate())
	return stats.Stats()
}

func (s *Stater) load(key string) ([]byte, error) {
	if s.cache != nil {
		return s.cache.GetOrLoad(key, s.loadFromStore)
	}
	return s.loadFromStore(key)
}

// loadFromStore returns nil for missing keys.
func (s *Stater) loadFromStore(key string) ([]byte, error) {
	metricStateReads().Add(1)
	val, err := s.store.Get([]byte(key))
	if err != nil {
		if s.store.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return val, nil
}
