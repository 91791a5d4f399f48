package config

import (
	"fmt"

	"github.com/navcookie/cookiejar"
	"github.com/navcookie/cookiejar/publicsuffix"
	"github.com/navcookie/cookiejar/storage"
	"github.com/navcookie/cookiejar/storage/badger"
	"github.com/navcookie/cookiejar/storage/filesys"
	"github.com/navcookie/cookiejar/storage/mem"
	"github.com/navcookie/cookiejar/storage/sqlite3"
)

// ------------------------------------------------------------------------

// BuildJar constructs a Jar and its backing storage.CookieStorage from
// opts: Backend selects the storage.CookieStorage implementation and
// GuardSource selects the public-suffix guard, the way a caller reading
// COOKIEJAR_-prefixed environment variables would expect.
func BuildJar(opts Options) (*cookiejar.Jar, storage.CookieStorage, error) {
	cs, err := buildStorage(opts)
	if err != nil {
		return nil, nil, err
	}

	guard, err := buildGuard(opts)
	if err != nil {
		cs.Close()

		return nil, nil, err
	}

	jar := cookiejar.NewJar(cookiejar.Options{
		Guard:           guard,
		LogSecureValues: opts.LogSecureValues,
	})

	return jar, cs, nil
}

// ------------------------------------------------------------------------

func buildStorage(opts Options) (storage.CookieStorage, error) {
	switch opts.Backend {
	case "", "mem":
		return mem.NewCookieStorage(), nil
	case "badger":
		return badger.NewCookieStorage(opts.BackendPath, true)
	case "sqlite3":
		return sqlite3.NewCookieStorage(opts.BackendPath, "", true)
	case "filesys":
		return filesys.NewCookieStorage(opts.BackendPath, true)
	default:
		return nil, fmt.Errorf("config: unknown storage backend %q", opts.Backend)
	}
}

// ------------------------------------------------------------------------

func buildGuard(opts Options) (publicsuffix.Guard, error) {
	switch opts.GuardSource {
	case "", "none":
		return nil, nil
	case "net":
		return publicsuffix.FromNetPublicSuffix(), nil
	default:
		return nil, fmt.Errorf("config: unknown guard source %q", opts.GuardSource)
	}
}
