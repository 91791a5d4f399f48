package sqlite3

import "database/sql"

// ------------------------------------------------------------------------

type stgCookie struct {
	s *stgBase
}

// ------------------------------------------------------------------------

const defaultCookieJarName = "cookie_jar"

// ------------------------------------------------------------------------

var cmdCookie = map[string]string{
	"create": `CREATE TABLE IF NOT EXISTS "<table>" ("host" TEXT PRIMARY KEY, "cookies" BLOB) WITHOUT ROWID`,
	"drop":   `DROP TABLE IF EXISTS "<table>"`,
	"trim":   `DELETE FROM "<table>"`,
	"insert": `INSERT INTO "<table>" ("host", "cookies") VALUES (?, ?) ON CONFLICT("host") DO UPDATE SET "cookies" = "excluded"."cookies"`,
	"select": `SELECT "cookies" FROM "<table>" WHERE "host" = ?`,
	"delete": `DELETE FROM "<table>" WHERE "host" = ?`,
	"keys":   `SELECT "host" FROM "<table>"`,
	"count":  `SELECT COUNT(*) FROM "<table>"`,
}

// ------------------------------------------------------------------------

// NewCookieStorage returns a pointer to a newly created SQLite3 cookie
// storage backing a jar at path, using table (or a default name).
func NewCookieStorage(path string, table string, keepData bool) (*stgCookie, error) {
	cfg := config{
		table:       setTable(table, defaultCookieJarName),
		dropOnClose: false,
		clearOnOpen: !keepData,
	}

	s, err := NewBaseStorage(path, &cfg, cmdCookie)
	if err != nil {
		return nil, err
	}

	return &stgCookie{
		s: s,
	}, nil
}

// ------------------------------------------------------------------------

// Close closes the SQLite3 cookie storage.
func (s *stgCookie) Close() error {
	return s.s.Close()
}

// ------------------------------------------------------------------------

// Clear removes all entries from the SQLite3 cookie storage.
func (s *stgCookie) Clear() error {
	return s.s.Clear()
}

// ------------------------------------------------------------------------

// Set stores the blob for a given effective domain key.
func (s *stgCookie) Set(key string, data []byte) error {
	s.s.lock.Lock()
	defer s.s.lock.Unlock()

	_, err := s.s.stmts["insert"].Exec(key, data)

	return err
}

// ------------------------------------------------------------------------

// Get retrieves the blob stored for a given effective domain key, (nil,
// nil) if absent.
func (s *stgCookie) Get(key string) ([]byte, error) {
	var data []byte

	s.s.lock.Lock()
	defer s.s.lock.Unlock()

	err := s.s.stmts["select"].QueryRow(key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return data, err
}

// ------------------------------------------------------------------------

// Remove deletes the blob stored for a given effective domain key.
func (s *stgCookie) Remove(key string) error {
	s.s.lock.Lock()
	defer s.s.lock.Unlock()

	_, err := s.s.stmts["delete"].Exec(key)

	return err
}

// ------------------------------------------------------------------------

// Keys lists every effective domain key currently stored.
func (s *stgCookie) Keys() ([]string, error) {
	s.s.lock.Lock()
	defer s.s.lock.Unlock()

	rows, err := s.s.stmts["keys"].Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string

	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}

		keys = append(keys, key)
	}

	return keys, rows.Err()
}
