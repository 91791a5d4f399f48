package config

import "strconv"

// ------------------------------------------------------------------------

// DefaultPrefix is the environment variable prefix this package filters on
// when no caller-supplied prefix is given.
const DefaultPrefix = "COOKIEJAR_"

// Options is the subset of jar construction knobs that make sense to
// source from the environment: which storage backend to wire up, where to
// source the public-suffix guard, and whether to log secure cookie values.
type Options struct {
	// Backend selects a storage.CookieStorage implementation by name:
	// "mem", "badger", "sqlite3", or "filesys".
	Backend string
	// BackendPath is the on-disk path for backends that need one
	// (badger, sqlite3, filesys). Ignored for "mem".
	BackendPath string
	// GuardSource selects the public-suffix guard: "none" or "net" (the
	// golang.org/x/net/publicsuffix-backed guard).
	GuardSource string
	// LogSecureValues, when false (the default), elides the Value field
	// of secure cookies from log events.
	LogSecureValues bool
}

// ------------------------------------------------------------------------

var dict = map[string]string{
	"BACKEND":           "Backend",
	"BACKEND_PATH":      "BackendPath",
	"GUARD_SOURCE":      "GuardSource",
	"LOG_SECURE_VALUES": "LogSecureValues",
}

// ------------------------------------------------------------------------

// FromEnvironment builds Options from an Environment's values, applying
// defaults for anything unset.
func FromEnvironment(env Environment) Options {
	values := env.Values()

	opts := Options{
		Backend:     "mem",
		GuardSource: "net",
	}

	if v, ok := values["Backend"]; ok && v != "" {
		opts.Backend = v
	}

	if v, ok := values["BackendPath"]; ok {
		opts.BackendPath = v
	}

	if v, ok := values["GuardSource"]; ok && v != "" {
		opts.GuardSource = v
	}

	if v, ok := values["LogSecureValues"]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.LogSecureValues = b
		}
	}

	return opts
}

// OptionsFromOSEnv is a convenience wrapper around FromOSEnv +
// FromEnvironment using DefaultPrefix and this package's key dictionary.
func OptionsFromOSEnv() Options {
	return FromEnvironment(FromOSEnv(DefaultPrefix, dict))
}
