// Package storage defines the CookieStorage capability — a domain-keyed
// blob store backing the jar's serialization adapters — plus
// implementations over BadgerDB, SQLite3, a single flat file, and a plain
// in-process map. None of these backends understand RFC 6265; they store
// and retrieve opaque, gob-encoded record.Record slices keyed by effective
// domain key, the same shape the teacher's CookieStorage keeps per-host
// blobs in.
package storage

import (
	"errors"
	"fmt"

	"github.com/navcookie/cookiejar/record"
)

// ------------------------------------------------------------------------

// Errors
var (
	ErrNotImplemented = errors.New("feature not implemented")
	ErrStorageClosed  = errors.New("storage is closed")
	ErrBlankPath      = errors.New("no storage path was given")
	ErrBlankKey       = errors.New("no key was given")
	ErrBlankTableName = errors.New("no table name was given")
	ErrStorageLimit   = errors.New("unable to connect to the database, storage limit exceeded")
	ErrMissingParams  = errors.New("storage parameters are missing")
	ErrMissingCmd     = func(cmd string) error { return fmt.Errorf("%s command is missing", cmd) }
)

// ------------------------------------------------------------------------

// CookieStorage manages a key/blob store of gob-encoded record.Record
// groups, one blob per effective domain key.
type CookieStorage interface {
	Set(key string, data []byte) error   // Set stores the blob for key.
	Get(key string) ([]byte, error)      // Get retrieves the blob for key, (nil, nil) if absent.
	Remove(key string) error             // Remove deletes the blob for key.
	Clear() error                        // Clear deletes every stored blob.
	Keys() ([]string, error)             // Keys lists every domain key currently stored.
	Close() error                        // Close releases any held resources.
}

// ------------------------------------------------------------------------

// SaveRecords replaces the entire contents of cs with records, grouped by
// each record's effective domain key (DomainValue).
func SaveRecords(cs CookieStorage, records []record.Record) error {
	groups := map[string][]record.Record{}
	for _, r := range records {
		groups[r.DomainValue] = append(groups[r.DomainValue], r)
	}

	if err := cs.Clear(); err != nil {
		return err
	}

	for key, recs := range groups {
		data, err := record.Encode(recs)
		if err != nil {
			return err
		}

		if err := cs.Set(key, data); err != nil {
			return err
		}
	}

	return nil
}

// ------------------------------------------------------------------------

// LoadRecords flattens every domain-keyed blob in cs back into a single
// slice of Records.
func LoadRecords(cs CookieStorage) ([]record.Record, error) {
	keys, err := cs.Keys()
	if err != nil {
		return nil, err
	}

	var out []record.Record

	for _, key := range keys {
		data, err := cs.Get(key)
		if err != nil {
			return nil, err
		}

		recs, err := record.Decode(data)
		if err != nil {
			return nil, err
		}

		out = append(out, recs...)
	}

	return out, nil
}
