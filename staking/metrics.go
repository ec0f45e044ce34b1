// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/stakeledger/metrics"
)

var (
	metricOperationCount    = metrics.LazyLoadCounterVec("staking_operation_count", []string{"op", "result"})
	metricOperationDuration = metrics.LazyLoadHistogramVec("staking_operation_duration_ms", []string{"op"}, metrics.Bucket10s)
	metricCurrentPeriod     = metrics.LazyLoadGauge("staking_current_period")
	metricPeriodsClosed     = metrics.LazyLoadCounter("staking_period_closed_count")
)
