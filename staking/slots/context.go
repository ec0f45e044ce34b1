// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"github.com/vechain/stakeledger/state"
)

// Context binds storage slots to a state and a namespace.
type Context struct {
	namespace string
	state     *state.State
}

func NewContext(namespace string, state *state.State) *Context {
	return &Context{
		namespace: namespace,
		state:     state,
	}
}

func (c *Context) State() *state.State {
	return c.state
}

// position builds the storage key of a slot: namespace/name, a zero byte, then the sub key.
func (c *Context) position(name string, sub []byte) []byte {
	pos := make([]byte, 0, len(c.namespace)+len(name)+len(sub)+2)
	pos = append(pos, c.namespace...)
	pos = append(pos, '/')
	pos = append(pos, name...)
	pos = append(pos, 0)
	return append(pos, sub...)
}
