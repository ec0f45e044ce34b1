// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/vechain/stakeledger/metrics"

var (
	metricStateReads    = metrics.LazyLoadCounter("state_store_read_count")
	metricCommittedKeys = metrics.LazyLoadCounter("state_committed_key_count")
	metricCacheHitRate  = metrics.LazyLoadGauge("state_cache_hit_rate_permille")
)
