package record

import (
	"reflect"
	"testing"
	"time"
)

// ------------------------------------------------------------------------

func TestRecord_Key(t *testing.T) {
	r := &Record{DomainValue: "example.com", PathValue: "/a", Name: "session"}

	want := "example.com;/a;session"
	if got := r.Key(); got != want {
		t.Errorf("Record.Key() = %q, want %q", got, want)
	}
}

// ------------------------------------------------------------------------

func TestEncodeDecode_roundTrip(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	records := []Record{
		{
			Name:        "a",
			Value:       "1",
			DomainTag:   DomainHostOnly,
			DomainValue: "www.example.com",
			PathTag:     PathDefault,
			PathValue:   "/",
			ExpiryTag:   ExpirySession,
			Secure:      true,
			HTTPOnly:    true,
			Creation:    now,
			LastAccess:  now,
			SeqNum:      1,
		},
		{
			Name:          "b",
			Value:         "2",
			DomainTag:     DomainSuffix,
			DomainValue:   "example.com",
			PathTag:       PathExact,
			PathValue:     "/app",
			ExpiryTag:     ExpiryAt,
			ExpiresAt:     now.Add(time.Hour),
			RawAttributes: map[string]string{"SameSite": "Lax"},
			SeqNum:        2,
		},
	}

	data, err := Encode(records)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if !reflect.DeepEqual(got, records) {
		t.Errorf("Decode(Encode(records)) = %+v, want %+v", got, records)
	}
}

// ------------------------------------------------------------------------

func TestDecode_empty(t *testing.T) {
	got, err := Decode(nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if len(got) != 0 {
		t.Errorf("Decode(nil) = %v, want empty", got)
	}
}
