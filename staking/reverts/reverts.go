// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// Kind classifies why an operation was rejected.
type Kind uint8

const (
	// Validation means the caller supplied a wrong, unknown or foreign input.
	Validation Kind = iota + 1
	// StateConflict means the input is fine but the ledger state forbids the operation now.
	StateConflict
	// ResourceExhaustion means a vault cannot cover the requested amount.
	ResourceExhaustion
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case StateConflict:
		return "state conflict"
	case ResourceExhaustion:
		return "resource exhaustion"
	default:
		return "unknown"
	}
}

// ErrRevert is a rejected operation. Nothing the operation did is kept.
type ErrRevert struct {
	kind    Kind
	message string
}

func New(kind Kind, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

var (
	ErrInvalidRecord       = New(Validation, "invalid staking record")
	ErrInvalidReceipt      = New(Validation, "invalid receipt")
	ErrNotOwner            = New(Validation, "caller does not own the token")
	ErrUnknownAsset        = New(Validation, "asset is not stakable")
	ErrAssetMismatch       = New(Validation, "receipt is for a different asset")
	ErrAssetExists         = New(Validation, "asset already stakable")
	ErrPositionNotFound    = New(Validation, "no position for asset")
	ErrInvalidAmount       = New(Validation, "amount must be positive")
	ErrInvalidInterval     = New(Validation, "period interval must be positive")
	ErrInvalidRecipient    = New(Validation, "invalid recipient")
	ErrUnstakeDelayTooLong = New(Validation, "unstake delay exceeds the maximum")
	ErrUnclaimedRewards    = New(StateConflict, "please claim unclaimed rewards on your record first")
	ErrAlreadyLocked       = New(StateConflict, "stake already locked")
	ErrStakeLocked         = New(StateConflict, "stake is locked")
	ErrRedemptionNotYetDue = New(StateConflict, "unstake not yet redeemable")
	ErrNothingToClaim      = New(StateConflict, "wait longer to claim rewards")
	ErrNoStake             = New(StateConflict, "nothing staked")
	ErrNotDAOControlled    = New(StateConflict, "lock can only be set on dao controlled ledgers")
	ErrInsufficientBalance = New(ResourceExhaustion, "insufficient vault balance")
	ErrInsufficientRewards = New(ResourceExhaustion, "insufficient rewards in reward vault")
)

func IsRevertErr(err any) bool {
	_, ok := asRevert(err)
	return ok
}

// KindOf returns the kind of a revert error, or 0 for any other error.
func KindOf(err error) Kind {
	if e, ok := asRevert(err); ok {
		return e.kind
	}
	return 0
}

func IsValidation(err error) bool         { return KindOf(err) == Validation }
func IsStateConflict(err error) bool      { return KindOf(err) == StateConflict }
func IsResourceExhaustion(err error) bool { return KindOf(err) == ResourceExhaustion }

func asRevert(err any) (*ErrRevert, bool) {
	if err == nil {
		return nil, false
	}
	e, ok := err.(error)
	if !ok {
		return nil, false
	}
	var re *ErrRevert
	if errors.As(e, &re) {
		return re, true
	}
	return nil, false
}
