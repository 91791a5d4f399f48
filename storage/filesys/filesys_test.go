package filesys

import (
	"path/filepath"
	"sort"
	"testing"
)

// ------------------------------------------------------------------------

func TestNewCookieStorage_blankPath(t *testing.T) {
	if _, err := NewCookieStorage("", true); err == nil {
		t.Error("NewCookieStorage(\"\", true) error = nil, want non-nil")
	}
}

// ------------------------------------------------------------------------

func TestStgCookie_SetGetRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.gob")

	s, err := NewCookieStorage(path, false)
	if err != nil {
		t.Fatalf("NewCookieStorage() error = %v", err)
	}

	if err := s.Set("example.com", []byte("blob-1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := s.Get("example.com")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if string(got) != "blob-1" {
		t.Errorf("Get() = %q, want %q", got, "blob-1")
	}

	if err := s.Remove("example.com"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	got, err = s.Get("example.com")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got != nil {
		t.Errorf("Get() after Remove() = %v, want nil", got)
	}
}

// ------------------------------------------------------------------------

func TestStgCookie_persistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.gob")

	s, err := NewCookieStorage(path, false)
	if err != nil {
		t.Fatalf("NewCookieStorage() error = %v", err)
	}

	if err := s.Set("a.example.com", []byte("1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := s.Set("b.example.com", []byte("2")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewCookieStorage(path, true)
	if err != nil {
		t.Fatalf("NewCookieStorage() reopen error = %v", err)
	}

	keys, err := reopened.Keys()
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}

	sort.Strings(keys)

	if len(keys) != 2 || keys[0] != "a.example.com" || keys[1] != "b.example.com" {
		t.Errorf("Keys() after reopen = %v, want [a.example.com b.example.com]", keys)
	}
}

// ------------------------------------------------------------------------

func TestStgCookie_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.gob")

	s, err := NewCookieStorage(path, false)
	if err != nil {
		t.Fatalf("NewCookieStorage() error = %v", err)
	}

	if err := s.Set("example.com", []byte("1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}

	if len(keys) != 0 {
		t.Errorf("Keys() after Clear() = %v, want none", keys)
	}
}

// ------------------------------------------------------------------------

func TestStgCookie_Close(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.gob")

	s, err := NewCookieStorage(path, false)
	if err != nil {
		t.Fatalf("NewCookieStorage() error = %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if err := s.Close(); err == nil {
		t.Error("Close() on already-closed storage: error = nil, want non-nil")
	}
}
