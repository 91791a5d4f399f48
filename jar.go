// Package cookiejar implements an RFC 6265 cookie store: URL scope
// extraction, domain/path/expiry matching, and pluggable persistence,
// independent of any particular HTTP transport.
package cookiejar

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/navcookie/cookiejar/jarlog"
	"github.com/navcookie/cookiejar/publicsuffix"
	"github.com/navcookie/cookiejar/record"
	"github.com/navcookie/cookiejar/storage"
)

// ------------------------------------------------------------------------

// Options configures a Jar at construction time.
type Options struct {
	// Guard, if non-nil, rejects Domain attributes naming a registered
	// public suffix (§5.3).
	Guard publicsuffix.Guard
	// Logger, if non-nil, receives debug-level insert/match/sweep events.
	Logger jarlog.Logger
	// LogSecureValues, when false (the default), elides a secure cookie's
	// Value from the events handed to Logger.
	LogSecureValues bool
}

// ------------------------------------------------------------------------

// Jar stores cookies in memory, grouped by effective domain key, and
// implements RFC 6265 insertion and retrieval matching over them.
type Jar struct {
	mu      sync.Mutex
	cookies map[string][]*StoredCookie
	guard   publicsuffix.Guard
	logger  jarlog.Logger
	logSec  bool
	nextSeq uint64
}

// ------------------------------------------------------------------------

// NewJar returns a pointer to a newly created, empty Jar.
func NewJar(opts Options) *Jar {
	return &Jar{
		cookies: map[string][]*StoredCookie{},
		guard:   opts.Guard,
		logger:  opts.Logger,
		logSec:  opts.LogSecureValues,
	}
}

// ------------------------------------------------------------------------

// candidateDomainKeys lists host and every dot-separated ancestor domain of
// host, the set of effective domain keys a cookie visible to host could be
// stored under (§4.4).
func candidateDomainKeys(host string) []string {
	keys := []string{host}

	h := host
	for {
		i := strings.IndexByte(h, '.')
		if i < 0 {
			break
		}

		h = h[i+1:]
		if h == "" {
			break
		}

		keys = append(keys, h)
	}

	return keys
}

// ------------------------------------------------------------------------

// InsertRaw stores raw as observed on a response to u, using the current
// time.
func (j *Jar) InsertRaw(raw RawCookie, u *url.URL) (StoreAction, error) {
	return j.InsertRawAt(raw, u, time.Now())
}

// InsertRawAt implements §4.3's insertion algorithm: build the cookie's
// scopes relative to u, resolve its identity against any existing entry,
// and apply the correct StoreAction.
func (j *Jar) InsertRawAt(raw RawCookie, u *url.URL, now time.Time) (StoreAction, error) {
	if raw.Name == "" {
		return ExpiredNoExisting, ErrEmptyName
	}

	scope, err := extractRequestScope(u)
	if err != nil {
		return ExpiredNoExisting, err
	}

	domain, err := BuildDomainScope(raw.Domain, scope.Host, j.guard)
	if err != nil {
		return ExpiredNoExisting, err
	}

	path := BuildPathScope(raw.Path, scope.DefaultPath)
	expiry := BuildExpiryScope(raw.MaxAge, raw.Expires, now)

	key := domain.Key()

	j.mu.Lock()
	defer j.mu.Unlock()

	entries := j.cookies[key]

	idx := -1
	for i, c := range entries {
		if c.Path.Value == path.Value && c.Name == raw.Name {
			idx = i
			break
		}
	}

	var action StoreAction

	switch {
	case expiry.Kind == ExpiryExpired && idx >= 0:
		j.cookies[key] = append(entries[:idx], entries[idx+1:]...)
		action = ExpiredExisting
	case expiry.Kind == ExpiryExpired:
		action = ExpiredNoExisting
	case idx >= 0:
		existing := entries[idx]
		entries[idx] = &StoredCookie{
			Name:       raw.Name,
			Value:      raw.Value,
			Domain:     domain,
			Path:       path,
			Expiry:     expiry,
			Secure:     raw.Secure,
			HTTPOnly:   raw.HttpOnly,
			Raw:        raw,
			Creation:   existing.Creation,
			LastAccess: now,
			seqNum:     existing.seqNum,
		}
		action = UpdatedExisting
	default:
		j.nextSeq++
		entries = append(entries, &StoredCookie{
			Name:       raw.Name,
			Value:      raw.Value,
			Domain:     domain,
			Path:       path,
			Expiry:     expiry,
			Secure:     raw.Secure,
			HTTPOnly:   raw.HttpOnly,
			Raw:        raw,
			Creation:   now,
			LastAccess: now,
			seqNum:     j.nextSeq,
		})
		j.cookies[key] = entries
		action = Inserted
	}

	j.logEvent("insert", key, map[string]string{
		"name":   raw.Name,
		"action": action.String(),
	}, raw.Secure)

	return action, nil
}

// ------------------------------------------------------------------------

// Matches returns every stored cookie that should accompany a request to
// u, using the current time, ordered per §5.4: longest cookie-path first,
// then earliest creation time, then insertion order. Every returned cookie
// has its LastAccess set to the reference time as a side effect. SameSite
// is not consulted when matching.
func (j *Jar) Matches(u *url.URL) ([]*StoredCookie, error) {
	return j.MatchesAt(u, time.Now())
}

// MatchesAt is Matches with an explicit reference time.
func (j *Jar) MatchesAt(u *url.URL, now time.Time) ([]*StoredCookie, error) {
	scope, err := extractRequestScope(u)
	if err != nil {
		return nil, err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	var out []*StoredCookie

	for _, key := range candidateDomainKeys(scope.Host) {
		for _, c := range j.cookies[key] {
			if !c.Domain.DomainMatch(scope.Host) {
				continue
			}

			if !c.Path.PathMatch(scope.RequestPath) {
				continue
			}

			if c.Expiry.Expired(now) {
				continue
			}

			if c.Secure && !scope.Secure {
				continue
			}

			c.LastAccess = now
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, k int) bool {
		if len(out[i].Path.Value) != len(out[k].Path.Value) {
			return len(out[i].Path.Value) > len(out[k].Path.Value)
		}

		if !out[i].Creation.Equal(out[k].Creation) {
			return out[i].Creation.Before(out[k].Creation)
		}

		return out[i].seqNum < out[k].seqNum
	})

	j.logEvent("matches", scope.Host, map[string]string{"count": strconv.Itoa(len(out))}, false)

	return out, nil
}

// ------------------------------------------------------------------------

// Remove deletes the stored cookie identified by (domainKey, path, name),
// reporting whether an entry was found.
func (j *Jar) Remove(domainKey, path, name string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries := j.cookies[domainKey]

	for i, c := range entries {
		if c.Path.Value == path && c.Name == name {
			j.cookies[domainKey] = append(entries[:i], entries[i+1:]...)

			return true
		}
	}

	return false
}

// Clear removes every stored cookie.
func (j *Jar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.cookies = map[string][]*StoredCookie{}
}

// ClearSession removes every stored cookie with no explicit expiration
// (§4.5: "non-persistent" cookies, cleared at the end of a session).
func (j *Jar) ClearSession() int {
	j.mu.Lock()
	defer j.mu.Unlock()

	removed := 0

	for key, entries := range j.cookies {
		kept := entries[:0]

		for _, c := range entries {
			if c.Expiry.Kind == ExpirySession {
				removed++

				continue
			}

			kept = append(kept, c)
		}

		if len(kept) == 0 {
			delete(j.cookies, key)
		} else {
			j.cookies[key] = kept
		}
	}

	return removed
}

// SweepExpired removes every stored cookie expired as of now, reporting
// how many were removed.
func (j *Jar) SweepExpired(now time.Time) int {
	j.mu.Lock()
	defer j.mu.Unlock()

	removed := 0

	for key, entries := range j.cookies {
		kept := entries[:0]

		for _, c := range entries {
			if c.Expiry.Expired(now) {
				removed++

				continue
			}

			kept = append(kept, c)
		}

		if len(kept) == 0 {
			delete(j.cookies, key)
		} else {
			j.cookies[key] = kept
		}
	}

	j.logEvent("sweep", "", map[string]string{"removed": strconv.Itoa(removed)}, false)

	return removed
}

// ------------------------------------------------------------------------

// Get implements §6's direct lookup: the stored cookie identified by the
// full (domainKey, path, name) identity triple, and whether one was found.
func (j *Jar) Get(domainKey, path, name string) (*StoredCookie, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, c := range j.cookies[domainKey] {
		if c.Path.Value == path && c.Name == name {
			return c, true
		}
	}

	return nil, false
}

// GetAll returns a copy of every cookie stored under domainKey, regardless
// of expiry.
func (j *Jar) GetAll(domainKey string) []*StoredCookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries := j.cookies[domainKey]
	out := make([]*StoredCookie, len(entries))
	copy(out, entries)

	return out
}

// IterAny calls fn for every stored cookie regardless of expiry, stopping
// early if fn returns false.
func (j *Jar) IterAny(fn func(*StoredCookie) bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, entries := range j.cookies {
		for _, c := range entries {
			if !fn(c) {
				return
			}
		}
	}
}

// IterUnexpired calls fn for every stored cookie not expired as of now,
// stopping early if fn returns false.
func (j *Jar) IterUnexpired(now time.Time, fn func(*StoredCookie) bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, entries := range j.cookies {
		for _, c := range entries {
			if c.Expiry.Expired(now) {
				continue
			}

			if !fn(c) {
				return
			}
		}
	}
}

// ------------------------------------------------------------------------

// Save serializes every cookie not expired as of now into cs (§6).
func (j *Jar) Save(cs storage.CookieStorage, now time.Time) error {
	j.mu.Lock()

	var records []record.Record

	for _, entries := range j.cookies {
		for _, c := range entries {
			if c.Expiry.Expired(now) {
				continue
			}

			records = append(records, toRecord(c))
		}
	}

	j.mu.Unlock()

	return storage.SaveRecords(cs, records)
}

// Load replaces the Jar's contents with records read back from cs. mode
// controls whether already-expired records are retained (useful for
// round-tripping test fixtures) or dropped.
func (j *Jar) Load(cs storage.CookieStorage, mode record.Mode, now time.Time) error {
	records, err := storage.LoadRecords(cs)
	if err != nil {
		return err
	}

	cookies := map[string][]*StoredCookie{}

	var maxSeq uint64

	for _, r := range records {
		if mode == record.ModeUnexpiredOnly {
			expiry := expiryFromRecord(r)
			if expiry.Expired(now) {
				continue
			}
		}

		c, err := fromRecord(r)
		if err != nil {
			return err
		}

		cookies[r.DomainValue] = append(cookies[r.DomainValue], c)

		if c.seqNum > maxSeq {
			maxSeq = c.seqNum
		}
	}

	j.mu.Lock()
	j.cookies = cookies
	j.nextSeq = maxSeq
	j.mu.Unlock()

	return nil
}

// ------------------------------------------------------------------------

func toRecord(c *StoredCookie) record.Record {
	r := record.Record{
		Name:        c.Name,
		Value:       c.Value,
		DomainTag:   domainTag(c.Domain.Kind),
		DomainValue: c.Domain.Value,
		PathTag:     pathTag(c.Path.Kind),
		PathValue:   c.Path.Value,
		ExpiryTag:   expiryTag(c.Expiry.Kind),
		ExpiresAt:   c.Expiry.At,
		Secure:      c.Secure,
		HTTPOnly:    c.HTTPOnly,
		Creation:    c.Creation,
		LastAccess:  c.LastAccess,
		SeqNum:      c.seqNum,
	}

	if c.Raw.SameSite != "" {
		r.RawAttributes = map[string]string{"SameSite": c.Raw.SameSite}
	}

	return r
}

func fromRecord(r record.Record) (*StoredCookie, error) {
	domainKind := DomainHostOnly
	if r.DomainTag == record.DomainSuffix {
		domainKind = DomainSuffix
	}

	pathKind := PathDefault
	if r.PathTag == record.PathExact {
		pathKind = PathExact
	}

	sameSite := ""
	if r.RawAttributes != nil {
		sameSite = r.RawAttributes["SameSite"]
	}

	return &StoredCookie{
		Name:  r.Name,
		Value: r.Value,
		Domain: DomainScope{
			Kind:  domainKind,
			Value: r.DomainValue,
		},
		Path: PathScope{
			Kind:  pathKind,
			Value: r.PathValue,
		},
		Expiry:   expiryFromRecord(r),
		Secure:   r.Secure,
		HTTPOnly: r.HTTPOnly,
		Raw: RawCookie{
			Name:     r.Name,
			Value:    r.Value,
			Secure:   r.Secure,
			HttpOnly: r.HTTPOnly,
			SameSite: sameSite,
		},
		Creation:   r.Creation,
		LastAccess: r.LastAccess,
		seqNum:     r.SeqNum,
	}, nil
}

func expiryFromRecord(r record.Record) ExpiryScope {
	if r.ExpiryTag == record.ExpirySession {
		return ExpiryScope{Kind: ExpirySession}
	}

	return ExpiryScope{Kind: ExpiryAt, At: r.ExpiresAt}
}

func domainTag(k DomainKind) string {
	if k == DomainSuffix {
		return record.DomainSuffix
	}

	return record.DomainHostOnly
}

func pathTag(k PathKind) string {
	if k == PathExact {
		return record.PathExact
	}

	return record.PathDefault
}

func expiryTag(k ExpiryKind) string {
	if k == ExpirySession {
		return record.ExpirySession
	}

	return record.ExpiryAt
}

// ------------------------------------------------------------------------

func (j *Jar) logEvent(eventType, domain string, values map[string]string, secure bool) {
	if j.logger == nil {
		return
	}

	if secure && !j.logSec {
		values = redactSecure(values)
	}

	j.logger.Log(jarlog.DebugLevel, jarlog.NewEvent(eventType, domain, values))
}

func redactSecure(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))

	for k, v := range values {
		if k == "value" {
			out[k] = "[redacted]"

			continue
		}

		out[k] = v
	}

	return out
}

