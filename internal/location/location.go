// Package location classifies raw grant records into jurisdictions and
// derives the one canonical URL path per record.
package location

import "grantdir/internal/models"

// Kind is the jurisdiction level of a funding opportunity.
type Kind string

const (
	KindFederal Kind = "federal"
	KindState   Kind = "state"
	KindLocal   Kind = "local"
	KindPrivate Kind = "private"
)

// Location is a tagged jurisdiction value. StateCode is set for state
// and local jurisdictions, CitySlug only for local ones.
type Location struct {
	Kind      Kind
	StateCode string
	CitySlug  string
}

// Federal returns the federal jurisdiction.
func Federal() Location {
	return Location{Kind: KindFederal}
}

// StateLevel returns a statewide jurisdiction.
func StateLevel(code string) Location {
	return Location{Kind: KindState, StateCode: code}
}

// Local returns a city-level jurisdiction.
func Local(code, citySlug string) Location {
	return Location{Kind: KindLocal, StateCode: code, CitySlug: citySlug}
}

// Private returns the private-funder jurisdiction.
func Private() Location {
	return Location{Kind: KindPrivate}
}

// ForGrant resolves the jurisdiction of a grant record. Privately funded
// grants classify as Private regardless of their state/city text;
// everything else goes through Classify.
func ForGrant(g *models.Grant) Location {
	if g.FundingType == models.FundingPrivate {
		return Private()
	}
	return Classify(g.State, g.City)
}
