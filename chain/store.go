// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain - block data store answering peer requests
//
// headers, bodies and receipts are kept in a single leveldb database
// with a one byte key prefix per kind, and recent reads are cached
package chain

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/gogo/protobuf/proto"
	"github.com/patrickmn/go-cache"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/ethnetd/fault"
	"github.com/bitmark-inc/ethnetd/types"
)

// key prefixes
const (
	prefixHeader   = 'H' // hash -> header
	prefixNumber   = 'N' // number -> canonical hash
	prefixBody     = 'B' // hash -> body
	prefixReceipts = 'R' // hash -> receipt list
)

// for database version
var (
	versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}
	headKey    = []byte{0x00, 'H', 'E', 'A', 'D'}
)

const (
	currentVersion = 0x100

	defaultTimeout    = 1 * time.Minute
	defaultExpiration = 2 * time.Minute
)

// Store - leveldb backed block data
type Store struct {
	sync.Mutex // serialises writes

	log   *logger.L
	db    *leveldb.DB
	cache *cache.Cache
}

// Open - open or create a database directory
func Open(fileName string, readOnly bool) (*Store, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(fileName, opt)
	if nil != err {
		return nil, err
	}
	return newStore(db, readOnly)
}

// OpenStorage - open on a goleveldb storage, e.g. in memory
func OpenStorage(stor ldb_storage.Storage) (*Store, error) {
	db, err := leveldb.Open(stor, nil)
	if nil != err {
		return nil, err
	}
	return newStore(db, false)
}

func newStore(db *leveldb.DB, readOnly bool) (*Store, error) {
	log := logger.New("chain")

	versionValue, err := db.Get(versionKey, nil)
	switch {
	case leveldb.ErrNotFound == err:
		if readOnly {
			db.Close()
			return nil, fault.NotInitialised
		}
		v := make([]byte, 4)
		binary.BigEndian.PutUint32(v, currentVersion)
		if err := db.Put(versionKey, v, nil); nil != err {
			db.Close()
			return nil, err
		}

	case nil != err:
		db.Close()
		return nil, err

	case 4 != len(versionValue):
		db.Close()
		return nil, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))

	default:
		version := binary.BigEndian.Uint32(versionValue)
		if version > currentVersion {
			db.Close()
			log.Criticalf("database version: %d > current version: %d", version, currentVersion)
			return nil, fmt.Errorf("database version: %d > current version: %d", version, currentVersion)
		}
	}

	return &Store{
		log:   log,
		db:    db,
		cache: cache.New(defaultTimeout, defaultExpiration),
	}, nil
}

// Close - release the database
func (s *Store) Close() {
	s.Lock()
	defer s.Unlock()

	if nil != s.db {
		s.db.Close()
		s.db = nil
	}
	s.cache.Flush()
}

func hashKey(prefix byte, h types.Hash) []byte {
	return append([]byte{prefix}, h[:]...)
}

func numberKey(n uint64) []byte {
	k := make([]byte, 9)
	k[0] = prefixNumber
	binary.BigEndian.PutUint64(k[1:], n)
	return k
}

// WriteBlock - store a block's data and make it the canonical block at
// its number; the highest number written is the head
func (s *Store) WriteBlock(header *types.Header, body *types.Body, receipts *types.ReceiptList) error {
	if nil == header {
		return fault.InvalidStructPointer
	}

	h := header.Hash()
	batch := new(leveldb.Batch)

	put := func(key []byte, m proto.Message) error {
		data, err := proto.Marshal(m)
		if nil != err {
			return err
		}
		batch.Put(key, data)
		return nil
	}

	if err := put(hashKey(prefixHeader, h), header); nil != err {
		return err
	}
	batch.Put(numberKey(header.Number), h[:])

	if nil != body {
		if err := put(hashKey(prefixBody, h), body); nil != err {
			return err
		}
	}
	if nil != receipts {
		if err := put(hashKey(prefixReceipts, h), receipts); nil != err {
			return err
		}
	}

	s.Lock()
	defer s.Unlock()

	head, err := s.head()
	if nil == err && header.Number >= head.Number || fault.IsErrNotFound(err) {
		batch.Put(headKey, h[:])
	}

	if err := s.db.Write(batch, nil); nil != err {
		return err
	}

	// the number and head mappings may have moved
	s.cache.Delete(string(numberKey(header.Number)))
	s.cache.Delete(string(headKey))

	s.log.Debugf("block: %d  hash: %s", header.Number, h)
	return nil
}

func (s *Store) get(key []byte, notFound error) ([]byte, error) {
	if data, found := s.cache.Get(string(key)); found {
		return data.([]byte), nil
	}

	data, err := s.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, notFound
	}
	if nil != err {
		return nil, err
	}

	s.cache.SetDefault(string(key), data)
	return data, nil
}

func (s *Store) decode(key []byte, notFound error, m proto.Message) error {
	data, err := s.get(key, notFound)
	if nil != err {
		return err
	}
	return proto.Unmarshal(data, m)
}

// HeaderByHash - a header by its hash
func (s *Store) HeaderByHash(h types.Hash) (*types.Header, error) {
	header := &types.Header{}
	if err := s.decode(hashKey(prefixHeader, h), fault.HeaderNotFound, header); nil != err {
		return nil, err
	}
	return header, nil
}

// HeaderByNumber - the canonical header at a number
func (s *Store) HeaderByNumber(n uint64) (*types.Header, error) {
	data, err := s.get(numberKey(n), fault.HeaderNotFound)
	if nil != err {
		return nil, err
	}
	h, err := types.BytesToHash(data)
	if nil != err {
		return nil, err
	}
	return s.HeaderByHash(h)
}

// BodyByHash - a block body by block hash
func (s *Store) BodyByHash(h types.Hash) (*types.Body, error) {
	body := &types.Body{}
	if err := s.decode(hashKey(prefixBody, h), fault.BodyNotFound, body); nil != err {
		return nil, err
	}
	return body, nil
}

// ReceiptsByHash - a block's receipts by block hash
func (s *Store) ReceiptsByHash(h types.Hash) (*types.ReceiptList, error) {
	receipts := &types.ReceiptList{}
	if err := s.decode(hashKey(prefixReceipts, h), fault.ReceiptsNotFound, receipts); nil != err {
		return nil, err
	}
	return receipts, nil
}

// Head - the highest block written
func (s *Store) Head() (*types.Header, error) {
	return s.head()
}

func (s *Store) head() (*types.Header, error) {
	data, err := s.get(headKey, fault.HeaderNotFound)
	if nil != err {
		return nil, err
	}
	h, err := types.BytesToHash(data)
	if nil != err {
		return nil, err
	}
	return s.HeaderByHash(h)
}

// Genesis - the block at number zero
func (s *Store) Genesis() (*types.Header, error) {
	return s.HeaderByNumber(0)
}
