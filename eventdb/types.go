// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

// Event is a committed ledger operation.
type Event struct {
	Seq     uint64 `json:"seq"` // assigned on insert
	Time    uint64 `json:"time"`
	Period  uint64 `json:"period"`
	Kind    string `json:"kind"`
	Caller  string `json:"caller,omitempty"`
	Record  uint64 `json:"record,omitempty"`
	Receipt uint64 `json:"receipt,omitempty"`
	Asset   string `json:"asset,omitempty"`
	Amount  string `json:"amount,omitempty"`
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

type Range struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// Filter selects events. Nil or zero fields match everything.
type Filter struct {
	Record  *uint64  `json:"record,omitempty"`
	Asset   string   `json:"asset,omitempty"`
	Kind    string   `json:"kind,omitempty"`
	Caller  string   `json:"caller,omitempty"`
	Range   *Range   `json:"range,omitempty"` // by time
	Order   Order    `json:"order,omitempty"`
	Options *Options `json:"options,omitempty"`
}
