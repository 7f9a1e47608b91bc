package location

import (
	"strings"

	"grantdir/internal/slug"
)

// Keyword sets are compared in slug-normalized form, so "State-Wide",
// "state wide", and "Statewide" all land on the same entries.
var federalKeywords = map[string]bool{
	"federal":                  true,
	"nationwide":               true,
	"national":                 true,
	"united-states":            true,
	"united-states-of-america": true,
	"us":                       true,
	"usa":                      true,
	"all-states":               true,
	"multi-state":              true,
	"multiple-states":          true,
}

var statewideKeywords = map[string]bool{
	"statewide":         true,
	"state-wide":        true,
	"entire-state":      true,
	"multiple-counties": true,
	"all-counties":      true,
	"multiple-cities":   true,
	"various":           true,
	"n-a":               true,
	"na":                true,
	"none":              true,
}

// Classify resolves raw state/city text to a jurisdiction. It is total:
// malformed input degrades to a broader jurisdiction (city, then state,
// then federal) instead of failing.
func Classify(state, city string) Location {
	stateSlug := slug.Slugify(state)
	if stateSlug == "" || federalKeywords[stateSlug] {
		return Federal()
	}

	code := resolveStateCode(state)

	citySlug := slug.Slugify(city)
	if citySlug == "" || statewideKeywords[citySlug] {
		return StateLevel(code)
	}
	return Local(code, citySlug)
}

// resolveStateCode maps raw state text to a two-letter code. Unknown
// values fall back to the first two characters uppercased rather than
// failing; upstream feeds carry enough junk that rejecting them would
// drop real grants. Blank or unsluggable text never reaches here:
// Classify already routed it to federal.
func resolveStateCode(raw string) string {
	if info, ok := LookupState(raw); ok {
		return info.Code
	}
	runes := []rune(strings.ToUpper(strings.TrimSpace(raw)))
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes)
}
