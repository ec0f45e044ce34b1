// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"encoding"
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Precision is the number of decimal places an Amount keeps.
const Precision = 18

var (
	_ rlp.Encoder              = Amount{}
	_ rlp.Decoder              = (*Amount)(nil)
	_ encoding.TextMarshaler   = Amount{}
	_ encoding.TextUnmarshaler = (*Amount)(nil)
)

// Amount is a fixed point quantity with Precision decimal places.
// The zero value is 0.
type Amount struct {
	d decimal.Decimal
}

// NewAmount truncates d to Precision places.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{d.Truncate(Precision)}
}

// AmountFromInt returns an integral amount.
func AmountFromInt(i int64) Amount {
	return Amount{decimal.NewFromInt(i)}
}

// ParseAmount parses a decimal string like "12.5".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, errors.Wrap(err, "parse amount")
	}
	return NewAmount(d), nil
}

// MustParseAmount is like ParseAmount but panics on error.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) Decimal() decimal.Decimal { return a.d }
func (a Amount) String() string           { return a.d.String() }
func (a Amount) Sign() int                { return a.d.Sign() }
func (a Amount) IsZero() bool             { return a.d.IsZero() }
func (a Amount) IsPositive() bool         { return a.d.IsPositive() }
func (a Amount) IsNegative() bool         { return a.d.IsNegative() }
func (a Amount) Cmp(b Amount) int         { return a.d.Cmp(b.d) }
func (a Amount) Equal(b Amount) bool      { return a.d.Equal(b.d) }
func (a Amount) LessThan(b Amount) bool   { return a.d.LessThan(b.d) }

func (a Amount) Add(b Amount) Amount { return Amount{a.d.Add(b.d)} }
func (a Amount) Sub(b Amount) Amount { return Amount{a.d.Sub(b.d)} }

// Mul returns a*b truncated to Precision places.
func (a Amount) Mul(b Amount) Amount {
	return Amount{a.d.Mul(b.d).Truncate(Precision)}
}

// Quo returns a/b truncated towards zero at Precision places.
// Division by zero yields zero.
func (a Amount) Quo(b Amount) Amount {
	if b.IsZero() {
		return Amount{}
	}
	q, _ := a.d.QuoRem(b.d, Precision)
	return Amount{q}
}

// Min returns the smaller of a and b.
func (a Amount) Min(b Amount) Amount {
	if b.LessThan(a) {
		return b
	}
	return a
}

// EncodeRLP implements rlp.Encoder. Amounts are stored as their canonical decimal string.
func (a Amount) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, a.d.String())
}

// DecodeRLP implements rlp.Decoder.
func (a *Amount) DecodeRLP(s *rlp.Stream) error {
	var str string
	if err := s.Decode(&str); err != nil {
		return err
	}
	d, err := decimal.NewFromString(str)
	if err != nil {
		return errors.Wrap(err, "decode amount")
	}
	a.d = d
	return nil
}

// MarshalText implements encoding.TextMarshaler, used by both JSON and YAML.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Amount) UnmarshalText(text []byte) error {
	parsed, err := ParseAmount(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
