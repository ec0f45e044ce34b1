// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"
)

// Advance closes the current period if its boundary has passed.
//
// Closing records one rate per asset for the closing period and moves to the
// next period. When more than one interval elapsed since the boundary, only a
// single period is closed and the boundary is pushed past now: the skipped
// intervals never get a rate of their own.
func (s *Staker) Advance() (bool, error) {
	clock, err := s.periodService.Clock()
	if err != nil {
		return false, err
	}
	due, elapsed := clock.Due(s.now)
	if !due {
		return false, nil
	}

	rates, err := s.assetService.RecordRates(clock.Current)
	if err != nil {
		return false, errors.Wrapf(err, "record rates of period %d", clock.Current)
	}
	next, err := s.periodService.Roll(clock, elapsed)
	if err != nil {
		return false, errors.Wrap(err, "roll period")
	}

	s.closed = append(s.closed, clock.Current)
	s.emit(EventPeriodClosed, clock.Current)
	if s.dryRun {
		return true, nil
	}
	logger.Info("period closed",
		"period", clock.Current,
		"assets", len(rates),
		"skipped", elapsed,
		"nextAt", next.NextAt,
	)
	return true, nil
}
