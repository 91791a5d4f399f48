package cookiejar

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"

	"github.com/navcookie/cookiejar/parser"
)

// ------------------------------------------------------------------------

// requestScope is the output of URL scope extraction (§4.1): the pieces of
// a request URL the rest of the jar needs and nothing else.
type requestScope struct {
	Host        string
	RequestPath string
	DefaultPath string
	Secure      bool
}

// whatwgParser normalizes request URLs before they're handed to net/url,
// so percent-encoding and IDNA edge cases resolve the way a browser's URL
// parser resolves them rather than the way net/url happens to.
var whatwgParser = parser.NewWHATWGParser()

// ------------------------------------------------------------------------

// extractRequestScope derives (request_host, default_path, is_secure) from
// a parsed request URL per §4.1. It fails with ErrUnsupportedURL when the
// URL has no host.
func extractRequestScope(u *url.URL) (requestScope, error) {
	if u == nil {
		return requestScope{}, ErrUnsupportedURL
	}

	nu := normalizeURL(u)

	if nu.Host == "" {
		return requestScope{}, ErrUnsupportedURL
	}

	host, err := canonicalHost(nu.Host)
	if err != nil {
		return requestScope{}, fmt.Errorf("%w: %v", ErrUnsupportedURL, err)
	}

	reqPath := nu.Path
	if reqPath == "" {
		reqPath = "/"
	}

	return requestScope{
		Host:        host,
		RequestPath: reqPath,
		DefaultPath: defaultPath(nu.Path),
		Secure:      isSecureContext(nu.Scheme, host),
	}, nil
}

// normalizeURL re-parses u through the WHATWG URL parser. Parsing is a
// normalization aid, not a hard dependency: if the WHATWG parser rejects a
// URL that net/url already accepted, u is returned unchanged so extraction
// can still proceed on whatever net/url itself managed to parse.
func normalizeURL(u *url.URL) *url.URL {
	renormalized, err := whatwgParser.Parse(u.String())
	if err != nil {
		return u
	}

	return renormalized
}

// ------------------------------------------------------------------------

// isSecureContext implements §4.1's is_secure: true for https, or for the
// loopback relaxation browsers have shipped since 2021 (localhost and its
// subdomains, 127.0.0.0/8, ::1).
func isSecureContext(scheme, host string) bool {
	if scheme == "https" {
		return true
	}

	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}

	if host == "::1" {
		return true
	}

	if ip := net.ParseIP(host); ip != nil {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4[0] == 127
		}
	}

	return false
}

// ------------------------------------------------------------------------

// canonicalHost strips a port if present, trims a trailing "root label"
// dot, and IDNA-canonicalizes the result to lowercase ASCII. An IP literal
// is returned verbatim.
func canonicalHost(host string) (string, error) {
	if hasPort(host) {
		h, _, err := net.SplitHostPort(host)
		if err != nil {
			return "", err
		}

		host = h
	}

	host = strings.TrimSuffix(host, ".")

	if net.ParseIP(host) != nil {
		return host, nil
	}

	ascii, err := idna.ToASCII(host)
	if err != nil {
		return "", err
	}

	return strings.ToLower(ascii), nil
}

// canonicalDomainAttr IDNA-canonicalizes a cookie Domain attribute value to
// lowercase ASCII, rejecting a trailing dot rather than stripping it (RFC
// 6265 §5.1.2/§5.1.3 treat "example.com." as malformed, unlike a request
// host, where a trailing dot is just the DNS root label).
func canonicalDomainAttr(d string) (string, error) {
	ascii, err := idna.ToASCII(d)
	if err != nil {
		return "", err
	}

	lower := strings.ToLower(ascii)
	if lower[len(lower)-1] == '.' {
		return "", ErrMalformedDomain
	}

	return lower, nil
}

// hasPort reports whether host contains a port number. host may be a host
// name, an IPv4, or an IPv6 address.
func hasPort(host string) bool {
	colons := strings.Count(host, ":")
	if colons == 0 {
		return false
	}

	if colons == 1 {
		return true
	}

	return len(host) > 0 && host[0] == '[' && strings.Contains(host, "]:")
}

// isIP reports whether host is an IP address.
func isIP(host string) bool {
	return net.ParseIP(host) != nil
}
