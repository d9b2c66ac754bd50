package pagecraft

import (
	"fmt"
	"strconv"
	"strings"
)

// Identifier is an opaque record identifier. Concrete variants are
// StringID, NumericID, and OpaqueID; EqualIDs compares them.
type Identifier interface {
	String() string
}

// StringID is an identifier held as a plain string.
type StringID string

func (id StringID) String() string { return string(id) }

// NumericID is an identifier held as an integer, e.g. a SQLite rowid.
type NumericID int64

func (id NumericID) String() string { return strconv.FormatInt(int64(id), 10) }

// OpaqueID wraps a structured identifier (e.g. a document id) whose
// concrete type is owned by the record store.
type OpaqueID struct {
	Raw any
}

func (id OpaqueID) String() string { return fmt.Sprint(id.Raw) }

// EqualIDs reports whether two identifiers refer to the same record.
// Same-variant operands compare natively; mixed variants fall back to
// comparing string representations. A nil side never matches a non-nil side.
func EqualIDs(a, b Identifier) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case StringID:
		if bv, ok := b.(StringID); ok {
			return av == bv
		}
	case NumericID:
		if bv, ok := b.(NumericID); ok {
			return av == bv
		}
	case OpaqueID:
		if bv, ok := b.(OpaqueID); ok {
			return av.String() == bv.String()
		}
	}
	return a.String() == b.String()
}

// ExistingRecord is one row returned by a RecordFinder: the record's
// identifier and its current url slug.
type ExistingRecord struct {
	ID  Identifier
	URL string
}

// RecordFinder is the store capability UniqueURL reads from. It returns
// every record whose url field contains pattern as a substring.
type RecordFinder interface {
	FindByURLContains(pattern string) ([]ExistingRecord, error)
}

// SlugCandidate is a proposed url slug for a record being created or edited.
// ExcludeID identifies the record itself on edit, so it does not conflict
// with its own stored slug. Separator joins the base slug and the
// disambiguating counter (default "-").
type SlugCandidate struct {
	URL       string
	ExcludeID Identifier
	Separator string
}

// UniqueURL resolves candidate against lookup and returns a slug that is
// unique among the records lookup knows about right now.
//
// The candidate url is lowercased, then every stored url containing it is
// fetched. Urls belonging to other records form the conflict set; if the
// set is empty the candidate is returned as is, otherwise a counter is
// appended (url-1, url-2, ...) until a value not in the set is found.
// The membership test is exact, so a broader substring match (e.g. "home2"
// for candidate "home") can force an unneeded suffix but never a collision.
//
// An empty url or nil lookup returns ("", nil): nothing to do, not an
// error. Lookup failures propagate unmodified. UniqueURL only reads;
// persisting the result is the caller's job, and two concurrent callers
// racing on the same base slug can still collide at write time unless the
// store enforces uniqueness itself.
func UniqueURL(candidate SlugCandidate, lookup RecordFinder) (string, error) {
	if candidate.URL == "" || lookup == nil {
		return "", nil
	}
	sep := candidate.Separator
	if sep == "" {
		sep = "-"
	}
	url := strings.ToLower(candidate.URL)

	records, err := lookup.FindByURLContains(url)
	if err != nil {
		return "", err
	}

	conflicts := make(map[string]struct{}, len(records))
	for _, r := range records {
		if EqualIDs(r.ID, candidate.ExcludeID) {
			continue
		}
		conflicts[r.URL] = struct{}{}
	}
	if len(conflicts) == 0 {
		return url, nil
	}

	// The conflict set is finite, so the counter search terminates.
	for counter := 1; ; counter++ {
		next := url + sep + strconv.Itoa(counter)
		if _, taken := conflicts[next]; !taken {
			return next, nil
		}
	}
}

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
