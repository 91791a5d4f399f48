package mem

import (
	"reflect"
	"sort"
	"sync"
	"testing"
)

// ------------------------------------------------------------------------

func TestNewCookieStorage(t *testing.T) {
	tests := []struct {
		name string
		want *stgCookie
	}{
		{
			name: "default",
			want: &stgCookie{
				lock:  &sync.Mutex{},
				blobs: map[string][]byte{},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewCookieStorage()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewCookieStorage() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ------------------------------------------------------------------------

func Test_stgCookie_Close(t *testing.T) {
	s := NewCookieStorage()

	if err := s.Close(); err != nil {
		t.Errorf("stgCookie.Close() error = %v, want nil", err)
	}

	if err := s.Close(); err == nil {
		t.Error("stgCookie.Close() on already-closed storage: error = nil, want non-nil")
	}
}

// ------------------------------------------------------------------------

func Test_stgCookie_Clear(t *testing.T) {
	s := NewCookieStorage()

	if err := s.Set("example.com", []byte("blob")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Errorf("stgCookie.Clear() error = %v, want nil", err)
	}

	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}

	if len(keys) != 0 {
		t.Errorf("stgCookie.Clear() left keys = %v, want none", keys)
	}
}

// ------------------------------------------------------------------------

func Test_stgCookie_SetGetRemove(t *testing.T) {
	s := NewCookieStorage()

	if err := s.Set("example.com", []byte("blob-1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := s.Set("", []byte("blob")); err == nil {
		t.Error("Set() with blank key: error = nil, want non-nil")
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

func Test_stgCookie_Keys(t *testing.T) {
	s := NewCookieStorage()

	if err := s.Set("a.example.com", []byte("1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := s.Set("b.example.com", []byte("2")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}

	sort.Strings(keys)

	want := []string{"a.example.com", "b.example.com"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Keys() = %v, want %v", keys, want)
	}
}
