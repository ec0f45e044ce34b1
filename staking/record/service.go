// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package record

import (
	"github.com/pkg/errors"
	"github.com/vechain/stakeledger/staking/slots"
	"github.com/vechain/stakeledger/staking/token"
)

type Service struct {
	records *slots.Mapping[slots.Uint64Key, *body]
}

func New(sctx *slots.Context) *Service {
	return &Service{
		records: slots.NewMapping[slots.Uint64Key, *body](sctx, "records"),
	}
}

// Create stores the data of a freshly minted record.
func (s *Service) Create(id token.ID, nextPeriod uint64) (*Record, error) {
	r := newRecord(nextPeriod)
	if err := s.records.Set(slots.Uint64Key(id), r.body); err != nil {
		return nil, errors.Wrap(err, "create record")
	}
	return r, nil
}

// Get returns the record data, or nil if there is none.
func (s *Service) Get(id token.ID) (*Record, error) {
	b, exists, err := s.records.Lookup(slots.Uint64Key(id))
	if err != nil {
		return nil, errors.Wrap(err, "get record")
	}
	if !exists {
		return nil, nil
	}
	return &Record{b}, nil
}

func (s *Service) Set(id token.ID, r *Record) error {
	return s.records.Set(slots.Uint64Key(id), r.body)
}
