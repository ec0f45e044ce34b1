// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/vechain/stakeledger/ledger"
)

// Value is a single rlp encoded storage slot.
type Value[V any] struct {
	context *Context
	pos     []byte
}

func NewValue[V any](context *Context, name string) *Value[V] {
	return &Value[V]{context: context, pos: context.position(name, nil)}
}

func (v *Value[V]) Get() (value V, err error) {
	err = v.context.state.DecodeStorage(v.pos, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (v *Value[V]) Set(value V) error {
	return v.context.state.EncodeStorage(v.pos, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Counter is a uint64 slot used for sequences.
type Counter struct {
	*Value[uint64]
}

func NewCounter(context *Context, name string) *Counter {
	return &Counter{NewValue[uint64](context, name)}
}

// Next increments the counter and returns the new value. The first value is 1.
func (c *Counter) Next() (uint64, error) {
	n, err := c.Get()
	if err != nil {
		return 0, err
	}
	n++
	return n, c.Set(n)
}

// Amount is an ledger.Amount slot.
type Amount struct {
	*Value[ledger.Amount]
}

func NewAmount(context *Context, name string) *Amount {
	return &Amount{NewValue[ledger.Amount](context, name)}
}

func (a *Amount) Add(delta ledger.Amount) (ledger.Amount, error) {
	v, err := a.Get()
	if err != nil {
		return ledger.Amount{}, err
	}
	v = v.Add(delta)
	return v, a.Set(v)
}

func (a *Amount) Sub(delta ledger.Amount) (ledger.Amount, error) {
	return a.Add(ledger.Amount{}.Sub(delta))
}
