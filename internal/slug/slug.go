// Package slug derives URL-safe identifiers from human text and record ids.
package slug

import (
	"strings"
	"unicode"
)

// MaxShortIDLen caps the length of the id suffix appended to slugs.
const MaxShortIDLen = 8

// Slugify converts human text to a lowercase hyphenated slug.
// "&" becomes "and", runs of non-alphanumeric characters collapse to a
// single hyphen, and leading/trailing hyphens are trimmed.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "&", " and ")

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// ShortID derives a compact stable identifier from a record id: the first
// hyphen-delimited segment, filtered to lowercase alphanumerics and capped
// at MaxShortIDLen characters. Falls back to filtering the whole id when
// the first segment carries no alphanumerics.
func ShortID(id string) string {
	segment, _, _ := strings.Cut(strings.TrimSpace(id), "-")
	if short := filterAlnum(segment); short != "" {
		return short
	}
	return filterAlnum(id)
}

func filterAlnum(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() >= MaxShortIDLen {
				break
			}
		}
	}
	return b.String()
}

// Compose joins a title slug with a short id suffix so that same-titled
// records still get distinct slugs. An empty title slug yields the short
// id alone; a path segment is never empty as long as the id carries at
// least one alphanumeric character.
func Compose(titleSlug, shortID string) string {
	if titleSlug == "" {
		return shortID
	}
	if shortID == "" {
		return titleSlug
	}
	return titleSlug + "-" + shortID
}

// ForRecord is the common derivation used across grants and jobs:
// Compose(Slugify(title), ShortID(id)).
func ForRecord(title, id string) string {
	return Compose(Slugify(title), ShortID(id))
}
