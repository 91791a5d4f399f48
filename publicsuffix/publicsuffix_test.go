package publicsuffix

import "testing"

// ------------------------------------------------------------------------

func TestStatic(t *testing.T) {
	guard := Static([]string{"com", "co.uk"})

	tests := []struct {
		name   string
		domain string
		want   bool
	}{
		{name: "exact match", domain: "com", want: true},
		{name: "two-label suffix", domain: "co.uk", want: true},
		{name: "not in list", domain: "example.com", want: false},
		{name: "empty list membership", domain: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := guard(tt.domain); got != tt.want {
				t.Errorf("guard(%q) = %v, want %v", tt.domain, got, tt.want)
			}
		})
	}
}

// ------------------------------------------------------------------------

func TestFromNetPublicSuffix(t *testing.T) {
	guard := FromNetPublicSuffix()

	tests := []struct {
		name   string
		domain string
		want   bool
	}{
		{name: "com is a public suffix", domain: "com", want: true},
		{name: "example.com is not", domain: "example.com", want: false},
		{name: "co.uk is a public suffix", domain: "co.uk", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := guard(tt.domain); got != tt.want {
				t.Errorf("guard(%q) = %v, want %v", tt.domain, got, tt.want)
			}
		})
	}
}
