// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import "time"

// Timestamp is a point in time in unix seconds.
type Timestamp = uint64

const (
	SecondsPerMinute = 60
	SecondsPerDay    = 86400
)

// Days converts a day count into seconds.
func Days(n uint32) uint64 {
	return uint64(n) * SecondsPerDay
}

// AddDays returns t shifted forward by n days.
func AddDays(t Timestamp, n uint32) Timestamp {
	return t + Days(n)
}

// TruncateToMinute drops the seconds of t.
func TruncateToMinute(t Timestamp) Timestamp {
	return t - t%SecondsPerMinute
}

// FromTime converts a wall clock time.
func FromTime(t time.Time) Timestamp {
	if t.Unix() < 0 {
		return 0
	}
	return uint64(t.Unix())
}

// ToTime converts t to a UTC wall clock time.
func ToTime(t Timestamp) time.Time {
	return time.Unix(int64(t), 0).UTC()
}
