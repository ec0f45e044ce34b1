// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/stakeledger/eventdb"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/staking/token"
)

// event kinds written to the activity log
const (
	EventPeriodClosed       = "period_closed"
	EventRecordCreated      = "record_created"
	EventStaked             = "staked"
	EventLocked             = "locked"
	EventUnstakeStarted     = "unstake_started"
	EventTransferIssued     = "transfer_issued"
	EventUnstakeFinished    = "unstake_finished"
	EventClaimed            = "claimed"
	EventRecordTransferred  = "record_transferred"
	EventReceiptTransferred = "receipt_transferred"
	EventAssetAdded         = "asset_added"
	EventAssetEdited        = "asset_edited"
	EventRewardsFilled      = "rewards_filled"
	EventRewardsRemoved     = "rewards_removed"
	EventSettingsChanged    = "settings_changed"
	EventLockSet            = "lock_set"
)

type eventOption func(*eventdb.Event)

func withRecord(id token.ID) eventOption {
	return func(ev *eventdb.Event) { ev.Record = uint64(id) }
}

func withReceipt(id token.ID) eventOption {
	return func(ev *eventdb.Event) { ev.Receipt = uint64(id) }
}

func withAsset(id ledger.AssetID) eventOption {
	return func(ev *eventdb.Event) { ev.Asset = string(id) }
}

func withAmount(a ledger.Amount) eventOption {
	return func(ev *eventdb.Event) { ev.Amount = a.String() }
}

func (s *Staker) emit(kind string, period uint64, opts ...eventOption) {
	ev := &eventdb.Event{
		Time:   s.now,
		Period: period,
		Kind:   kind,
		Caller: s.caller,
	}
	for _, opt := range opts {
		opt(ev)
	}
	s.events = append(s.events, ev)
}

// Events returns the events emitted so far.
func (s *Staker) Events() []*eventdb.Event {
	return s.events
}
