// Package publicsuffix holds the public-suffix guard capability consumed by
// the jar's domain-scope construction. The guard is injected, never global:
// an absent guard means the jar never rejects a cookie for being registered
// at a public suffix (matching the behavior of a jar constructed with a nil
// PublicSuffixList in the net/http/cookiejar lineage this package descends
// from).
package publicsuffix

import "golang.org/x/net/publicsuffix"

// ------------------------------------------------------------------------

// Guard reports whether domain is a registered public suffix (e.g. "com",
// "co.uk") and should therefore never be accepted as a cookie's Domain
// attribute, except when the request host equals the suffix exactly.
type Guard func(domain string) bool

// ------------------------------------------------------------------------

// Static builds a Guard from an explicit, caller-supplied suffix list. A
// domain is reported as a public suffix only when it equals one of the
// entries exactly; its dot-separated parent domains are not checked, and no
// wildcard or exception rules are applied.
func Static(suffixes []string) Guard {
	set := make(map[string]struct{}, len(suffixes))
	for _, s := range suffixes {
		set[s] = struct{}{}
	}

	return func(domain string) bool {
		_, ok := set[domain]
		return ok
	}
}

// ------------------------------------------------------------------------

// FromNetPublicSuffix adapts golang.org/x/net/publicsuffix, the canonical
// Go implementation of the Mozilla public suffix list, as an injectable
// Guard. It is the guard production jars should install; Static exists
// mainly for tests that need a small, explicit list.
func FromNetPublicSuffix() Guard {
	return func(domain string) bool {
		suffix, icann := publicsuffix.PublicSuffix(domain)

		return icann && suffix == domain
	}
}
