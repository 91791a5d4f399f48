package cookiejar

import "time"

// ------------------------------------------------------------------------

// RawCookie is a single Set-Cookie header already parsed into its name,
// value, and attributes by an external cookie-grammar parser (§1: that
// parser is an assumed collaborator, not part of this package). MaxAge and
// Expires are nil when the corresponding attribute was absent.
type RawCookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Secure   bool
	HttpOnly bool
	MaxAge   *int
	Expires  *time.Time

	// SameSite carries the raw SameSite attribute text (e.g. "Strict",
	// "Lax", ""), retained for round-trip only: matching never consults
	// it (§9 Open Question (i)).
	SameSite string
}

// ------------------------------------------------------------------------

// StoredCookie is the canonical in-jar record combining identity, scope,
// flags, and bookkeeping timestamps (§3).
type StoredCookie struct {
	Name  string
	Value string

	Domain DomainScope
	Path   PathScope
	Expiry ExpiryScope

	Secure   bool
	HTTPOnly bool

	// Raw is the original parsed cookie this entry was built from, kept
	// so exported records can reproduce attributes the canonical fields
	// don't capture.
	Raw RawCookie

	Creation   time.Time
	LastAccess time.Time

	// seqNum breaks ties between cookies with equal path length and equal
	// creation time, so Matches output is fully deterministic.
	seqNum uint64
}

// Key returns the (effective_domain_key, path, name) identity triple.
func (c *StoredCookie) Key() string {
	return c.Domain.Key() + ";" + c.Path.Value + ";" + c.Name
}
