// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"encoding/binary"
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"
)

type Key interface {
	Bytes() []byte
}

// Uint64Key is a big endian encoded integer key, so keys sort numerically.
type Uint64Key uint64

func (k Uint64Key) Bytes() []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(k))
}

// Mapping is a rlp encoded key/value storage area, similar to a mapping in Solidity.
// Reading a key that was never set yields the zero value; pointer values are allocated.
type Mapping[K Key, V any] struct {
	context *Context
	name    string
}

func NewMapping[K Key, V any](context *Context, name string) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, name: name}
}

func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	value, _, err = m.Lookup(key)
	return
}

// Lookup is like Get and also reports whether the key holds a value.
func (m *Mapping[K, V]) Lookup(key K) (value V, exists bool, err error) {
	err = m.context.state.DecodeStorage(m.context.position(m.name, key.Bytes()), func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		exists = true
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.position(m.name, key.Bytes()), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

func (m *Mapping[K, V]) Delete(key K) {
	m.context.state.SetRaw(m.context.position(m.name, key.Bytes()), nil)
}
