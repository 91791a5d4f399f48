package config

import (
	"reflect"
	"testing"
)

// ------------------------------------------------------------------------

func TestFromMap(t *testing.T) {
	values := map[string]string{
		"COOKIEJAR_BACKEND":      "badger",
		"COOKIEJAR_BACKEND_PATH": "/tmp/jar",
		"UNRELATED":              "ignored",
	}

	dict := map[string]string{
		"BACKEND":      "Backend",
		"BACKEND_PATH": "BackendPath",
	}

	env := FromMap("COOKIEJAR_", values, dict)

	want := map[string]string{
		"Backend":     "badger",
		"BackendPath": "/tmp/jar",
	}

	if got := env.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("FromMap().Values() = %v, want %v", got, want)
	}
}

// ------------------------------------------------------------------------

func TestEnvironment_Set(t *testing.T) {
	env := FromMap("COOKIEJAR_", map[string]string{}, map[string]string{"BACKEND": "Backend"})

	env.Set("BACKEND", "mem")

	want := map[string]string{"Backend": "mem"}
	if got := env.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Values() after Set() = %v, want %v", got, want)
	}
}

// ------------------------------------------------------------------------

func TestEnvironment_SetDictionary_nilResetsToEmpty(t *testing.T) {
	env := FromMap("COOKIEJAR_", map[string]string{}, map[string]string{"BACKEND": "Backend"})

	env.SetDictionary(nil)
	env.Set("BACKEND", "mem")

	want := map[string]string{"BACKEND": "mem"}
	if got := env.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Values() after SetDictionary(nil) = %v, want %v", got, want)
	}
}
