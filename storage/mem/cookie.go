// Package mem provides an in-process CookieStorage backend: a plain map
// guarded by a mutex. It exists for tests and for callers with no
// durability requirement.
package mem

import (
	"sync"

	"github.com/navcookie/cookiejar/storage"
)

// ------------------------------------------------------------------------

// In-memory cookie storage
type stgCookie struct {
	lock   *sync.Mutex
	blobs  map[string][]byte
	closed bool
}

// ------------------------------------------------------------------------

// NewCookieStorage returns a pointer to a newly created in-memory cookie
// storage.
func NewCookieStorage() *stgCookie {
	return &stgCookie{
		lock:  &sync.Mutex{},
		blobs: map[string][]byte{},
	}
}

// ------------------------------------------------------------------------

// Close closes the in-memory cookie storage.
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

// Clear removes all entries from the in-memory cookie storage.
func (s *stgCookie) Clear() error {
	if s.closed {
		return storage.ErrStorageClosed
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.blobs = map[string][]byte{}

	return nil
}

// ------------------------------------------------------------------------

// Set stores the blob for key.
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

	return nil
}

// ------------------------------------------------------------------------

// Get retrieves the blob for key, (nil, nil) if absent.
func (s *stgCookie) Get(key string) ([]byte, error) {
	if s.closed {
		return nil, storage.ErrStorageClosed
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	return s.blobs[key], nil
}

// ------------------------------------------------------------------------

// Remove deletes the blob for key.
func (s *stgCookie) Remove(key string) error {
	if s.closed {
		return storage.ErrStorageClosed
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.blobs, key)

	return nil
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
