// Package filesys provides a CookieStorage backend that keeps the whole
// jar in one flat file on disk: a gob-encoded map of effective domain key
// to blob, rewritten in full on every mutation.
package filesys

import (
	"bytes"
	"encoding/gob"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/navcookie/cookiejar/storage"
)

// ------------------------------------------------------------------------

const (
	DIR_PERM  fs.FileMode = 0750
	FILE_PERM fs.FileMode = 0644
)

// ------------------------------------------------------------------------

// stgCookie is a single-file cookie storage.
type stgCookie struct {
	lock   *sync.Mutex
	path   string
	blobs  map[string][]byte
	closed bool
}

// ------------------------------------------------------------------------

// NewCookieStorage returns a pointer to a newly created single-file cookie
// storage rooted at path. keepData false truncates any existing file on
// open.
func NewCookieStorage(path string, keepData bool) (*stgCookie, error) {
	if path == "" {
		return nil, storage.ErrBlankPath
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "resolving storage path")
	}

	if err := os.MkdirAll(filepath.Dir(abs), DIR_PERM); err != nil {
		return nil, errors.Wrap(err, "creating storage directory")
	}

	s := &stgCookie{
		lock:  &sync.Mutex{},
		path:  abs,
		blobs: map[string][]byte{},
	}

	if keepData {
		if err := s.load(); err != nil {
			return nil, err
		}
	} else if err := s.flush(); err != nil {
		return nil, err
	}

	return s, nil
}

// ------------------------------------------------------------------------

// load reads the backing file into memory, if it exists.
func (s *stgCookie) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return errors.Wrap(err, "reading storage file")
	}

	if len(data) == 0 {
		return nil
	}

	blobs := map[string][]byte{}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&blobs); err != nil {
		return errors.Wrap(err, "decoding storage file")
	}

	s.blobs = blobs

	return nil
}

// flush writes the in-memory blob map out to the backing file.
func (s *stgCookie) flush() error {
	w := &bytes.Buffer{}

	if err := gob.NewEncoder(w).Encode(s.blobs); err != nil {
		return errors.Wrap(err, "encoding storage file")
	}

	if err := os.WriteFile(s.path, w.Bytes(), FILE_PERM); err != nil {
		return errors.Wrap(err, "writing storage file")
	}

	return nil
}

// ------------------------------------------------------------------------

// Close closes the single-file cookie storage.
func (s *stgCookie) Close() error {
	if s.closed {
		return storage.ErrStorageClosed
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.closed = true
	s.blobs = nil

	return nil
}

// ------------------------------------------------------------------------

// Clear removes all entries from the single-file cookie storage.
func (s *stgCookie) Clear() error {
	if s.closed {
		return storage.ErrStorageClosed
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.blobs = map[string][]byte{}

	return s.flush()
}

// ------------------------------------------------------------------------

// Set stores the blob for key and persists the change.
func (s *stgCookie) Set(key string, data []byte) error {
	if key == "" {
		return storage.ErrBlankKey
	}

	if s.closed {
		return storage.ErrStorageClosed
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.blobs[key] = data

	return s.flush()
}

// ------------------------------------------------------------------------

// Get retrieves the blob for key.
func (s *stgCookie) Get(key string) ([]byte, error) {
	if s.closed {
		return nil, storage.ErrStorageClosed
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	return s.blobs[key], nil
}

// ------------------------------------------------------------------------

// Remove deletes the blob for key and persists the change.
func (s *stgCookie) Remove(key string) error {
	if s.closed {
		return storage.ErrStorageClosed
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.blobs, key)

	return s.flush()
}

// ------------------------------------------------------------------------

// Keys lists every domain key currently stored.
func (s *stgCookie) Keys() ([]string, error) {
	if s.closed {
		return nil, storage.ErrStorageClosed
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	keys := make([]string, 0, len(s.blobs))
	for k := range s.blobs {
		keys = append(keys, k)
	}

	return keys, nil
}
