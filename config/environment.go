// Package config provides environment-driven construction options for a
// jar: which storage backend to use, where to source a public-suffix list
// from, and whether to log secure cookie values. It is adapted from the
// teacher's prefix-filtered environment reader, generalized from an
// arbitrary key/value map to a typed Options value.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ------------------------------------------------------------------------

// Environment is a prefix-filtered collection of key/value settings.
type Environment interface {
	Values() map[string]string
}

type environment struct {
	prefix string
	values map[string]string
	dict   map[string]string
}

// ------------------------------------------------------------------------

// FromMap returns an Environment built from values, keeping only keys
// starting with prefix (stripped of it) and optionally renaming them
// through dict.
func FromMap(prefix string, values map[string]string, dict map[string]string) *environment {
	env := &environment{prefix: prefix, values: map[string]string{}}
	env.SetDictionary(dict)

	skip := len(env.prefix)

	for k, v := range values {
		if !strings.HasPrefix(k, env.prefix) {
			continue
		}

		key := k[skip:]
		if _, present := dict[key]; present {
			key = dict[key]
		}

		env.values[key] = v
	}

	return env
}

// ------------------------------------------------------------------------

// FromOSEnv returns an Environment built from the process environment.
func FromOSEnv(prefix string, dict map[string]string) *environment {
	values := map[string]string{}

	for _, v := range os.Environ() {
		if !strings.HasPrefix(v, prefix) {
			continue
		}

		pair := strings.SplitN(v, "=", 2)
		values[pair[0]] = pair[1]
	}

	return FromMap(prefix, values, dict)
}

// ------------------------------------------------------------------------

// FromFile returns an Environment built from a .env-style file at path.
func FromFile(prefix, path string, dict map[string]string) (*environment, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, err
	}

	return FromMap(prefix, values, dict), nil
}

// ------------------------------------------------------------------------

// Set overrides or adds a value. Set does not check for the prefix.
func (e *environment) Set(key, value string) {
	if _, present := e.dict[key]; present {
		key = e.dict[key]
	}

	e.values[key] = value
}

// SetDictionary sets the key-rename dictionary.
func (e *environment) SetDictionary(dict map[string]string) {
	if dict == nil {
		dict = map[string]string{}
	}

	e.dict = dict
}

// SetPrefix replaces the stored prefix. Values already collected are not
// re-filtered, and Set and Values do not consult the prefix.
func (e *environment) SetPrefix(prefix string) {
	e.prefix = prefix
}

// Values returns the key/value pairs stored in the environment.
func (e *environment) Values() map[string]string {
	return e.values
}
