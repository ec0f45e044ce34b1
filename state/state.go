// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/vechain/stakeledger/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Cause() error {
	return e.cause
}

// ErrCommitted is returned when a committed state is used to commit again.
var ErrCommitted = errors.New("state already committed")

// State is a single-use overlay of pending changes.
type State struct {
	stater    *Stater
	sm        *stackedmap.StackedMap[string, []byte]
	committed bool
}

func newState(stater *Stater) *State {
	s := &State{stater: stater}
	s.sm = stackedmap.New(func(key string) ([]byte, bool, error) {
		val, err := stater.load(key)
		if err != nil {
			return nil, false, err
		}
		return val, len(val) > 0, nil
	})
	// the base level collects changes that are not covered by a checkpoint
	s.sm.Push()
	return s
}

// GetRaw returns the raw value stored under key. A missing key yields an empty value.
func (s *State) GetRaw(key []byte) ([]byte, error) {
	v, _, err := s.sm.Get(string(key))
	if err != nil {
		return nil, &Error{err}
	}
	return v, nil
}

// SetRaw sets the raw value of key. An empty value deletes the key on commit.
func (s *State) SetRaw(key, raw []byte) {
	s.sm.Put(string(key), raw)
}

// EncodeStorage sets the value of key encoded by enc.
func (s *State) EncodeStorage(key []byte, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRaw(key, raw)
	return nil
}

// DecodeStorage gets the value of key and decodes it with dec.
func (s *State) DecodeStorage(key []byte, dec func([]byte) error) error {
	raw, err := s.GetRaw(key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	if revision < 1 {
		revision = 1
	}
	s.sm.PopTo(revision)
}

// Changes returns the latest pending value of every touched key.
func (s *State) Changes() map[string][]byte {
	changes := make(map[string][]byte)
	s.sm.Journal(func(key string, val []byte) bool {
		changes[key] = val
		return true
	})
	return changes
}

// Commit writes all pending changes to the store atomically and refreshes the read cache.
// The state must not be used after commit.
func (s *State) Commit() (int, error) {
	if s.committed {
		return 0, ErrCommitted
	}
	changes := s.Changes()

	bulk := s.stater.store.Bulk()
	for key, val := range changes {
		if len(val) == 0 {
			if err := bulk.Delete([]byte(key)); err != nil {
				return 0, &Error{err}
			}
		} else if err := bulk.Put([]byte(key), val); err != nil {
			return 0, &Error{err}
		}
	}
	if err := bulk.Write(); err != nil {
		return 0, &Error{err}
	}
	s.committed = true

	if c := s.stater.cache; c != nil {
		for key, val := range changes {
			c.Add(key, val)
		}
	}
	metricCommittedKeys().Add(int64(len(changes)))
	return len(changes), nil
}
