// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Bucket provides a logical namespace inside a kv store by prefixing keys.
type Bucket string

func (b Bucket) key(k []byte) []byte {
	buf := make([]byte, 0, len(b)+len(k))
	return append(append(buf, b...), k...)
}

// NewStore creates a bucket store from the source store.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{b, src}
}

type bucketStore struct {
	b   Bucket
	src Store
}

func (s *bucketStore) Get(key []byte) ([]byte, error) { return s.src.Get(s.b.key(key)) }
func (s *bucketStore) Has(key []byte) (bool, error)   { return s.src.Has(s.b.key(key)) }
func (s *bucketStore) IsNotFound(err error) bool      { return s.src.IsNotFound(err) }
func (s *bucketStore) Put(key, val []byte) error      { return s.src.Put(s.b.key(key), val) }
func (s *bucketStore) Delete(key []byte) error        { return s.src.Delete(s.b.key(key)) }

func (s *bucketStore) Bulk() Bulk {
	return &bucketBulk{s.b, s.src.Bulk()}
}

func (s *bucketStore) Iterate(r Range) Iterator {
	r.Start = s.b.key(r.Start)
	if len(r.Limit) == 0 {
		r.Limit = util.BytesPrefix([]byte(s.b)).Limit
	} else {
		r.Limit = s.b.key(r.Limit)
	}
	return &bucketIterator{s.src.Iterate(r), len(s.b)}
}

type bucketBulk struct {
	b   Bucket
	src Bulk
}

func (bb *bucketBulk) Put(key, val []byte) error { return bb.src.Put(bb.b.key(key), val) }
func (bb *bucketBulk) Delete(key []byte) error   { return bb.src.Delete(bb.b.key(key)) }
func (bb *bucketBulk) Len() int                  { return bb.src.Len() }
func (bb *bucketBulk) Write() error              { return bb.src.Write() }

type bucketIterator struct {
	Iterator
	prefixLen int
}

// Key strips the bucket prefix.
func (it *bucketIterator) Key() []byte {
	return it.Iterator.Key()[it.prefixLen:]
}
