package cookiejar

import "errors"

// ------------------------------------------------------------------------

// Sentinel errors surfaced by insertion. All of them, except ErrParse, are
// produced entirely within this package; ErrParse wraps a failure from the
// external cookie-grammar parser the jar is handed an already-parsed cookie
// from (see RawCookie).
var (
	// ErrUnsupportedURL is returned when the request URL has no host, or
	// the host cannot be canonicalized.
	ErrUnsupportedURL = errors.New("cookiejar: url has no usable host")

	// ErrDomainMismatch is returned when a cookie's Domain attribute does
	// not domain-match the request host it was observed on.
	ErrDomainMismatch = errors.New("cookiejar: domain attribute does not domain-match request host")

	// ErrMalformedDomain is returned for a syntactically invalid Domain
	// attribute, e.g. "Domain=." or "Domain=..example.com".
	ErrMalformedDomain = errors.New("cookiejar: malformed domain attribute")

	// ErrPublicSuffix is returned when the Domain attribute names a
	// registered public suffix and the jar has a public-suffix guard
	// installed.
	ErrPublicSuffix = errors.New("cookiejar: domain attribute is a public suffix")

	// ErrEmptyName is returned when the cookie's name is empty.
	ErrEmptyName = errors.New("cookiejar: cookie name is empty")

	// ErrParse wraps a failure from the external cookie-grammar parser.
	ErrParse = errors.New("cookiejar: cookie parse failure")
)
