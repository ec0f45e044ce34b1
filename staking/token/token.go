// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token issues the owned handles of the ledger: staking records,
// unstake receipts and stake transfer receipts.
package token

import (
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"
	"github.com/vechain/stakeledger/staking/reverts"
	"github.com/vechain/stakeledger/staking/slots"
)

type Kind uint8

const (
	Record Kind = iota + 1
	UnstakeReceipt
	TransferReceipt
)

var kindNames = map[Kind]string{
	Record:          "record",
	UnstakeReceipt:  "unstake-receipt",
	TransferReceipt: "transfer-receipt",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, errors.Errorf("unknown token kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, errors.Errorf("unknown token kind %d", k)
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ID is a token id, unique per kind. Ids start at 1.
type ID uint64

type key struct {
	kind Kind
	id   ID
}

func (k key) Bytes() []byte {
	return binary.BigEndian.AppendUint64([]byte{byte(k.kind)}, uint64(k.id))
}

// Service tracks the holder of every live token.
type Service struct {
	sctx   *slots.Context
	owners *slots.Mapping[key, string]
}

func New(sctx *slots.Context) *Service {
	return &Service{
		sctx:   sctx,
		owners: slots.NewMapping[key, string](sctx, "owners"),
	}
}

func (s *Service) counter(kind Kind) *slots.Counter {
	return slots.NewCounter(s.sctx, "seq-"+kind.String())
}

// ValidOwner reports whether owner can hold tokens.
func ValidOwner(owner string) bool {
	return owner != "" && strings.TrimSpace(owner) == owner
}

// Mint issues a new token of kind to owner.
func (s *Service) Mint(kind Kind, owner string) (ID, error) {
	if !ValidOwner(owner) {
		return 0, reverts.ErrInvalidRecipient
	}
	n, err := s.counter(kind).Next()
	if err != nil {
		return 0, errors.Wrapf(err, "next %v id", kind)
	}
	id := ID(n)
	if err := s.owners.Set(key{kind, id}, owner); err != nil {
		return 0, err
	}
	return id, nil
}

// OwnerOf returns the holder of a token, or an empty string when the token does not exist.
func (s *Service) OwnerOf(kind Kind, id ID) (string, error) {
	return s.owners.Get(key{kind, id})
}

// Minted returns the number of tokens of kind issued so far, burned ones included.
func (s *Service) Minted(kind Kind) (uint64, error) {
	return s.counter(kind).Get()
}

// Burn destroys a token. Burning a token that does not exist is a no-op.
func (s *Service) Burn(kind Kind, id ID) {
	s.owners.Delete(key{kind, id})
}

// Transfer hands a token over to a new holder.
func (s *Service) Transfer(kind Kind, id ID, to string) error {
	if !ValidOwner(to) {
		return reverts.ErrInvalidRecipient
	}
	return s.owners.Set(key{kind, id}, to)
}
