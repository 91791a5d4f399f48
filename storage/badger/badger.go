// Package badger provides a CookieStorage backend over BadgerDB, storing
// one gob-encoded blob per effective domain key under a shared key prefix.
package badger

import (
	"sync"

	"github.com/dgraph-io/badger/v3"

	"github.com/navcookie/cookiejar/storage"
)

// ------------------------------------------------------------------------

// dbconn encapsulates the BadgerDB database handle
type dbconn struct {
	path     string
	dbh      *badger.DB // Database handle
	useCount uint16
}

// stgBase is a generic BadgerDB storage
type stgBase struct {
	db     *dbconn
	config *config
	closed bool
}

// Storage config
type config struct {
	prefix      []byte
	clearOnOpen bool
}

// ------------------------------------------------------------------------

// Database list indexed by path
var connections = map[string]*dbconn{}

// Maximum number of storages connected to the same database.
// 0 value means no limit.
var maxUseCount uint16 = 100

var connLock = &sync.Mutex{}

// ------------------------------------------------------------------------

// connect attaches a storage to a database
func connect(path string) (*dbconn, error) {
	if path == "" {
		return nil, storage.ErrBlankPath
	}

	opt := badger.DefaultOptions(path)

	connLock.Lock()
	defer connLock.Unlock()

	conn, present := connections[path]
	if !present {
		dbh, err := badger.Open(opt)
		if err != nil {
			return nil, err
		}

		conn = &dbconn{
			path:     path,
			dbh:      dbh,
			useCount: 0,
		}
		connections[path] = conn
	}

	if maxUseCount > 0 && conn.useCount >= maxUseCount {
		return nil, storage.ErrStorageLimit
	}
	conn.useCount++

	return conn, nil
}

// ------------------------------------------------------------------------

// disconnect detaches a storage from the database
// and closes the database if no more storages are connected
func (dbc *dbconn) disconnect() {
	connLock.Lock()
	defer connLock.Unlock()

	dbc.useCount--

	// Remove dbc if this was the last connected storage
	if dbc.useCount <= 0 {
		dbc.dbh.Close()
		delete(connections, dbc.path)
	}
}

// ------------------------------------------------------------------------

// NewBaseStorage returns a pointer to a newly created BadgerDB storage.
func NewBaseStorage(path string, config *config) (*stgBase, error) {
	if config == nil || len(config.prefix) == 0 {
		return nil, storage.ErrMissingParams
	}

	db, err := connect(path)
	if err != nil {
		return nil, err
	}

	s := &stgBase{
		db:     db,
		config: config,
		closed: false,
	}

	// Clear the data if required
	if s.config.clearOnOpen {
		if err := s.DropPrefix(nil); err != nil {
			s.db.disconnect()

			return nil, err
		}
	}

	return s, nil
}

// ------------------------------------------------------------------------

// Close closes the BadgerDB storage.
func (s *stgBase) Close() error {
	if s.closed {
		return storage.ErrStorageClosed
	}

	s.db.disconnect()
	s.db = nil
	s.closed = true

	return nil
}

// ------------------------------------------------------------------------

// Clear removes all entries from the BadgerDB storage.
func (s *stgBase) Clear() error {
	if s.closed {
		return storage.ErrStorageClosed
	}

	return s.DropPrefix(nil)
}

// ------------------------------------------------------------------------

// DropPrefix drops all the keys under suffix, relative to the storage's
// own prefix.
func (s *stgBase) DropPrefix(suffix []byte) error {
	return s.db.dbh.DropPrefix(append(append([]byte{}, s.config.prefix...), suffix...))
}

// ------------------------------------------------------------------------

// Set adds a key-value pair to the storage.
func (s *stgBase) Set(key, value []byte) error {
	if len(key) == 0 {
		return storage.ErrBlankKey
	}

	if s.closed {
		return storage.ErrStorageClosed
	}

	prefixedKey := append(append([]byte{}, s.config.prefix...), key...)

	return s.db.dbh.Update(func(txn *badger.Txn) error {
		return txn.Set(prefixedKey, value)
	})
}

// ------------------------------------------------------------------------

// Get looks for key and returns the corresponding value.
// If key is not found, nil will be returned.
func (s *stgBase) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, storage.ErrBlankKey
	}

	if s.closed {
		return nil, storage.ErrStorageClosed
	}

	var (
		value       []byte
		prefixedKey = append(append([]byte{}, s.config.prefix...), key...)
	)

	err := s.db.dbh.View(func(txn *badger.Txn) error {
		item, err := txn.Get(prefixedKey)
		if err != nil {
			return err
		}

		value, err = item.ValueCopy(value)

		return err
	})

	if err == badger.ErrKeyNotFound {
		value = nil
		err = nil
	}

	return value, err
}

// ------------------------------------------------------------------------

// Remove deletes the value stored under key.
func (s *stgBase) Remove(key []byte) error {
	if s.closed {
		return storage.ErrStorageClosed
	}

	prefixedKey := append(append([]byte{}, s.config.prefix...), key...)

	return s.db.dbh.Update(func(txn *badger.Txn) error {
		return txn.Delete(prefixedKey)
	})
}

// ------------------------------------------------------------------------

// Keys lists every key currently stored under this storage's prefix, with
// the prefix stripped back off.
func (s *stgBase) Keys() ([]string, error) {
	if s.closed {
		return nil, storage.ErrStorageClosed
	}

	var keys []string

	opt := badger.DefaultIteratorOptions
	opt.PrefetchValues = false

	if err := s.db.dbh.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(opt)
		defer it.Close()

		for it.Rewind(); it.ValidForPrefix(s.config.prefix); it.Next() {
			k := it.Item().KeyCopy(nil)
			keys = append(keys, string(k[len(s.config.prefix):]))
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return keys, nil
}

// ------------------------------------------------------------------------

// Len returns the number of entries in the BadgerDB storage.
func (s *stgBase) Len() (uint, error) {
	var count uint

	opt := badger.DefaultIteratorOptions
	opt.PrefetchValues = false

	if err := s.db.dbh.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(opt)
		defer it.Close()

		for it.Rewind(); it.ValidForPrefix(s.config.prefix); it.Next() {
			count++
		}

		return nil
	}); err != nil {
		return 0, err
	}

	return count, nil
}
