// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/eventdb"
	"github.com/vechain/stakeledger/genesis"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/staking/asset"
	"github.com/vechain/stakeledger/staking/receipt"
	"github.com/vechain/stakeledger/staking/record"
	"github.com/vechain/stakeledger/staking/reverts"
	"github.com/vechain/stakeledger/staking/token"
	"github.com/vechain/stakeledger/state"
)

// AdminCaller is the caller identity recorded for administrative operations.
const AdminCaller = "admin"

// Clock supplies the current time.
type Clock interface {
	Now() ledger.Timestamp
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() ledger.Timestamp {
	return ledger.FromTime(time.Now())
}

// EventWriter persists the events of committed operations.
type EventWriter interface {
	Write(ctx context.Context, events []*eventdb.Event) error
}

type Option func(*Engine)

// WithEventWriter makes the engine write the events of every committed operation to w.
func WithEventWriter(w EventWriter) Option {
	return func(e *Engine) {
		e.events = w
	}
}

// Engine runs ledger operations one at a time. Every operation advances the
// period clock first and is committed atomically, or not at all.
type Engine struct {
	mu     sync.RWMutex
	stater *state.Stater
	clock  Clock
	events EventWriter
}

func New(stater *state.Stater, clock Clock, opts ...Option) *Engine {
	e := &Engine{
		stater: stater,
		clock:  clock,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) now() ledger.Timestamp {
	return ledger.TruncateToMinute(e.clock.Now())
}

// Initialise applies the genesis configuration to an empty ledger.
// It returns false if the ledger was already initialised.
func (e *Engine) Initialise(ctx context.Context, gen *genesis.Genesis) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.stater.NewState()
	staker := newStaker(st, e.now(), AdminCaller)
	ok, err := staker.Initialise(gen)
	if err != nil || !ok {
		return false, err
	}
	if _, err := st.Commit(); err != nil {
		return false, errors.Wrap(err, "commit genesis")
	}
	e.publish(ctx, staker)
	return true, nil
}

// exec runs fn as a single operation.
func (e *Engine) exec(ctx context.Context, op, caller string, fn func(*Staker) error) (err error) {
	start := time.Now()
	e.mu.Lock()
	defer e.mu.Unlock()

	defer func() {
		result := "ok"
		switch {
		case err == nil:
		case reverts.IsRevertErr(err):
			result = "revert"
			logger.Debug("operation rejected", "op", op, "caller", caller, "err", err)
		default:
			result = "error"
			logger.Warn("operation failed", "op", op, "caller", caller, "err", err)
		}
		metricOperationCount().AddWithLabel(1, map[string]string{"op": op, "result": result})
		metricOperationDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"op": op})
	}()

	st := e.stater.NewState()
	staker := newStaker(st, e.now(), caller)
	if _, err := staker.requireInitialised(); err != nil {
		return err
	}
	if _, err := staker.Advance(); err != nil {
		return err
	}
	if err := fn(staker); err != nil {
		return err
	}
	if _, err := st.Commit(); err != nil {
		return errors.Wrapf(err, "commit %v", op)
	}
	e.publish(ctx, staker)
	return nil
}

// publish reports a committed operation to metrics and the event writer.
func (e *Engine) publish(ctx context.Context, staker *Staker) {
	if n := len(staker.closed); n > 0 {
		metricPeriodsClosed().Add(int64(n))
	}
	if current, err := staker.currentPeriod(); err == nil {
		metricCurrentPeriod().Set(int64(current))
	}
	if e.events == nil || len(staker.events) == 0 {
		return
	}
	if err := e.events.Write(ctx, staker.events); err != nil {
		logger.Warn("failed to write events", "count", len(staker.events), "err", err)
	}
}

// view runs fn against the committed state. Changes made by fn are discarded.
func (e *Engine) view(fn func(*Staker) error) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	staker := newStaker(e.stater.NewState(), e.now(), "")
	staker.dryRun = true
	if _, err := staker.requireInitialised(); err != nil {
		return err
	}
	return fn(staker)
}

//
// Operations
//

// Advance closes the current period if it is due.
func (e *Engine) Advance(ctx context.Context) (closed bool, err error) {
	err = e.exec(ctx, "advance", "", func(s *Staker) error {
		closed = len(s.closed) > 0
		return nil
	})
	return
}

func (e *Engine) CreateRecord(ctx context.Context, caller string) (id token.ID, err error) {
	err = e.exec(ctx, "create_record", caller, func(s *Staker) (err error) {
		id, err = s.CreateRecord()
		return
	})
	return
}

func (e *Engine) Stake(ctx context.Context, caller string, recordID token.ID, id ledger.AssetID, amount ledger.Amount) error {
	return e.exec(ctx, "stake", caller, func(s *Staker) error {
		return s.Stake(recordID, id, amount)
	})
}

func (e *Engine) StakeTransfer(ctx context.Context, caller string, recordID, receiptID token.ID, id ledger.AssetID) error {
	return e.exec(ctx, "stake_transfer", caller, func(s *Staker) error {
		return s.StakeTransfer(recordID, receiptID, id)
	})
}

func (e *Engine) Lock(ctx context.Context, caller string, recordID token.ID, id ledger.AssetID) (bonus ledger.Amount, err error) {
	err = e.exec(ctx, "lock", caller, func(s *Staker) (err error) {
		bonus, err = s.Lock(recordID, id)
		return
	})
	return
}

func (e *Engine) StartUnstake(ctx context.Context, caller string, recordID token.ID, id ledger.AssetID, amount ledger.Amount, transfer bool) (out *Unstaked, err error) {
	err = e.exec(ctx, "start_unstake", caller, func(s *Staker) (err error) {
		out, err = s.StartUnstake(recordID, id, amount, transfer)
		return
	})
	return
}

func (e *Engine) FinishUnstake(ctx context.Context, caller string, receiptID token.ID) (u *receipt.Unstake, err error) {
	err = e.exec(ctx, "finish_unstake", caller, func(s *Staker) (err error) {
		u, err = s.FinishUnstake(receiptID)
		return
	})
	return
}

func (e *Engine) Claim(ctx context.Context, caller string, recordID token.ID) (reward ledger.Amount, err error) {
	err = e.exec(ctx, "claim", caller, func(s *Staker) (err error) {
		reward, err = s.Claim(recordID)
		return
	})
	return
}

func (e *Engine) TransferRecord(ctx context.Context, caller string, recordID token.ID, to string) error {
	return e.exec(ctx, "transfer_record", caller, func(s *Staker) error {
		return s.TransferRecord(recordID, to)
	})
}

func (e *Engine) TransferReceipt(ctx context.Context, caller string, kind token.Kind, receiptID token.ID, to string) error {
	return e.exec(ctx, "transfer_receipt", caller, func(s *Staker) error {
		return s.TransferReceipt(kind, receiptID, to)
	})
}

//
// Admin operations
//

func (e *Engine) AddAsset(ctx context.Context, id ledger.AssetID, budget ledger.Amount, lock asset.LockPolicy) error {
	return e.exec(ctx, "add_asset", AdminCaller, func(s *Staker) error {
		return s.AddAsset(id, budget, lock)
	})
}

func (e *Engine) EditAsset(ctx context.Context, id ledger.AssetID, budget ledger.Amount, lock asset.LockPolicy) error {
	return e.exec(ctx, "edit_asset", AdminCaller, func(s *Staker) error {
		return s.EditAsset(id, budget, lock)
	})
}

func (e *Engine) SetRewards(ctx context.Context, id ledger.AssetID, budget ledger.Amount) error {
	return e.exec(ctx, "set_rewards", AdminCaller, func(s *Staker) error {
		return s.SetRewards(id, budget)
	})
}

func (e *Engine) SetPeriodInterval(ctx context.Context, days uint32) error {
	return e.exec(ctx, "set_period_interval", AdminCaller, func(s *Staker) error {
		return s.SetPeriodInterval(days)
	})
}

func (e *Engine) SetMaxClaimDelay(ctx context.Context, periods uint64) error {
	return e.exec(ctx, "set_max_claim_delay", AdminCaller, func(s *Staker) error {
		return s.SetMaxClaimDelay(periods)
	})
}

func (e *Engine) SetUnstakeDelay(ctx context.Context, days uint32) error {
	return e.exec(ctx, "set_unstake_delay", AdminCaller, func(s *Staker) error {
		return s.SetUnstakeDelay(days)
	})
}

func (e *Engine) FillRewards(ctx context.Context, amount ledger.Amount) error {
	return e.exec(ctx, "fill_rewards", AdminCaller, func(s *Staker) error {
		return s.FillRewards(amount)
	})
}

func (e *Engine) RemoveRewards(ctx context.Context, amount ledger.Amount) error {
	return e.exec(ctx, "remove_rewards", AdminCaller, func(s *Staker) error {
		return s.RemoveRewards(amount)
	})
}

func (e *Engine) SetNextPeriodToNow(ctx context.Context) error {
	return e.exec(ctx, "set_next_period_to_now", AdminCaller, func(s *Staker) error {
		return s.SetNextPeriodToNow()
	})
}

func (e *Engine) SetLock(ctx context.Context, recordID token.ID, id ledger.AssetID, until ledger.Timestamp) error {
	return e.exec(ctx, "set_lock", AdminCaller, func(s *Staker) error {
		return s.SetLock(recordID, id, until)
	})
}

//
// Queries
//

// PeriodInfo is the period clock as seen at a point in time.
type PeriodInfo struct {
	Current  uint64           `json:"current"`
	Interval uint32           `json:"interval"` // days
	NextAt   ledger.Timestamp `json:"nextAt"`
	Due      bool             `json:"due"` // the current period closes with the next operation
}

func (e *Engine) PeriodInfo() (info *PeriodInfo, err error) {
	err = e.view(func(s *Staker) error {
		clock, err := s.Clock()
		if err != nil {
			return err
		}
		due, _ := clock.Due(s.now)
		info = &PeriodInfo{
			Current:  clock.Current,
			Interval: clock.Interval,
			NextAt:   clock.NextAt,
			Due:      due,
		}
		return nil
	})
	return
}

func (e *Engine) Settings() (settings *Settings, err error) {
	err = e.view(func(s *Staker) (err error) {
		settings, err = s.Settings()
		return
	})
	return
}

func (e *Engine) Asset(id ledger.AssetID) (a *asset.Asset, err error) {
	err = e.view(func(s *Staker) (err error) {
		a, err = s.Asset(id)
		return
	})
	return
}

// Assets returns every registered asset keyed by id.
func (e *Engine) Assets() (ids []ledger.AssetID, assets map[ledger.AssetID]*asset.Asset, err error) {
	err = e.view(func(s *Staker) error {
		if ids, err = s.AssetIDs(); err != nil {
			return err
		}
		assets = make(map[ledger.AssetID]*asset.Asset, len(ids))
		for _, id := range ids {
			a, err := s.Asset(id)
			if err != nil {
				return err
			}
			assets[id] = a
		}
		return nil
	})
	return
}

func (e *Engine) Rate(id ledger.AssetID, period uint64) (rate ledger.Amount, ok bool, err error) {
	err = e.view(func(s *Staker) (err error) {
		rate, ok, err = s.Rate(id, period)
		return
	})
	return
}

func (e *Engine) Record(id token.ID) (r *record.Record, owner string, err error) {
	err = e.view(func(s *Staker) (err error) {
		r, owner, err = s.Record(id)
		return
	})
	return
}

func (e *Engine) UnstakeReceipt(id token.ID) (u *receipt.Unstake, owner string, err error) {
	err = e.view(func(s *Staker) (err error) {
		u, owner, err = s.UnstakeReceipt(id)
		return
	})
	return
}

func (e *Engine) StakeTransferReceipt(id token.ID) (t *receipt.Transfer, owner string, err error) {
	err = e.view(func(s *Staker) (err error) {
		t, owner, err = s.StakeTransferReceipt(id)
		return
	})
	return
}

func (e *Engine) VaultBalance(id ledger.AssetID) (balance ledger.Amount, err error) {
	err = e.view(func(s *Staker) error {
		if _, err := s.Asset(id); err != nil {
			return err
		}
		balance, err = s.VaultBalance(id)
		return err
	})
	return
}

func (e *Engine) RewardBalance() (balance ledger.Amount, err error) {
	err = e.view(func(s *Staker) (err error) {
		balance, err = s.RewardBalance()
		return
	})
	return
}

// PendingRewards returns what claiming the record would pay now, including
// the period that would close on the next operation.
func (e *Engine) PendingRewards(recordID token.ID) (reward ledger.Amount, err error) {
	err = e.view(func(s *Staker) error {
		if _, err := s.Advance(); err != nil {
			return err
		}
		reward, err = s.PendingRewards(recordID)
		return err
	})
	return
}
