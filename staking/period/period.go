// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package period keeps the period clock: the index of the accrual period in
// progress and the time at which it closes.
package period

import (
	"github.com/pkg/errors"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/staking/reverts"
	"github.com/vechain/stakeledger/staking/slots"
)

// Clock is a snapshot of the period clock.
type Clock struct {
	Interval uint32 // days
	Current  uint64
	NextAt   ledger.Timestamp
}

// IntervalSeconds returns the period length in seconds.
func (c *Clock) IntervalSeconds() uint64 {
	return ledger.Days(c.Interval)
}

// Due reports whether the current period has to be closed at now, and how
// many whole intervals elapsed past the boundary.
func (c *Clock) Due(now ledger.Timestamp) (bool, uint64) {
	if now < c.NextAt {
		return false, 0
	}
	secs := c.IntervalSeconds()
	if secs == 0 {
		return true, 0
	}
	return true, (now - c.NextAt) / secs
}

type Service struct {
	interval *slots.Value[uint32]
	current  *slots.Value[uint64]
	nextAt   *slots.Value[uint64]
}

func New(sctx *slots.Context) *Service {
	return &Service{
		interval: slots.NewValue[uint32](sctx, "interval"),
		current:  slots.NewValue[uint64](sctx, "current"),
		nextAt:   slots.NewValue[uint64](sctx, "next-at"),
	}
}

// Init starts period 0, closing one interval after now.
func (s *Service) Init(interval uint32, now ledger.Timestamp) error {
	if interval == 0 {
		return reverts.ErrInvalidInterval
	}
	if err := s.interval.Set(interval); err != nil {
		return err
	}
	if err := s.current.Set(0); err != nil {
		return err
	}
	return s.nextAt.Set(ledger.AddDays(now, interval))
}

func (s *Service) Clock() (*Clock, error) {
	interval, err := s.interval.Get()
	if err != nil {
		return nil, errors.Wrap(err, "get period interval")
	}
	current, err := s.current.Get()
	if err != nil {
		return nil, errors.Wrap(err, "get current period")
	}
	nextAt, err := s.nextAt.Get()
	if err != nil {
		return nil, errors.Wrap(err, "get next period time")
	}
	return &Clock{Interval: interval, Current: current, NextAt: nextAt}, nil
}

func (s *Service) Current() (uint64, error) {
	return s.current.Get()
}

// Roll moves to the next period. The boundary is pushed forward by one
// interval per elapsed interval, so it lands after now.
// Rates for the closing period must have been recorded before.
func (s *Service) Roll(clock *Clock, elapsed uint64) (*Clock, error) {
	next := &Clock{
		Interval: clock.Interval,
		Current:  clock.Current + 1,
		NextAt:   clock.NextAt + (1+elapsed)*clock.IntervalSeconds(),
	}
	if err := s.current.Set(next.Current); err != nil {
		return nil, err
	}
	if err := s.nextAt.Set(next.NextAt); err != nil {
		return nil, err
	}
	return next, nil
}

// SetInterval changes the length of future periods.
// The pending boundary is left untouched.
func (s *Service) SetInterval(days uint32) error {
	if days == 0 {
		return reverts.ErrInvalidInterval
	}
	return s.interval.Set(days)
}

// SetNextToNow makes the current period close at now.
func (s *Service) SetNextToNow(now ledger.Timestamp) error {
	return s.nextAt.Set(now)
}
