package badger

// ------------------------------------------------------------------------

type stgCookie struct {
	s *stgBase
}

// ------------------------------------------------------------------------

var prefixCookie = []byte{2, 0}

// ------------------------------------------------------------------------

// NewCookieStorage returns a pointer to a newly created BadgerDB cookie
// storage backing a jar at path. keepData false clears any data under the
// cookie prefix on open.
func NewCookieStorage(path string, keepData bool) (*stgCookie, error) {
	cfg := config{
		prefix:      prefixCookie,
		clearOnOpen: !keepData,
	}

	s, err := NewBaseStorage(path, &cfg)
	if err != nil {
		return nil, err
	}

	return &stgCookie{
		s: s,
	}, nil
}

// ------------------------------------------------------------------------

// Close closes the BadgerDB cookie storage.
func (s *stgCookie) Close() error {
	return s.s.Close()
}

// ------------------------------------------------------------------------

// Clear removes all entries from the BadgerDB cookie storage.
func (s *stgCookie) Clear() error {
	return s.s.Clear()
}

// ------------------------------------------------------------------------

// Set stores the blob for a given effective domain key.
func (s *stgCookie) Set(key string, data []byte) error {
	return s.s.Set([]byte(key), data)
}

// ------------------------------------------------------------------------

// Get retrieves the blob stored for a given effective domain key.
func (s *stgCookie) Get(key string) ([]byte, error) {
	return s.s.Get([]byte(key))
}

// ------------------------------------------------------------------------

// Remove deletes the blob stored for a given effective domain key.
func (s *stgCookie) Remove(key string) error {
	return s.s.Remove([]byte(key))
}

// ------------------------------------------------------------------------

// Keys lists every effective domain key currently stored.
func (s *stgCookie) Keys() ([]string, error) {
	return s.s.Keys()
}
