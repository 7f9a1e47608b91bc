package location

import (
	"grantdir/internal/models"
	"grantdir/internal/slug"
)

// CanonicalPath builds the single authoritative URL path for a record.
// The slug carries a short id suffix so same-titled records stay
// distinct; an empty title still yields a non-empty final segment.
// Deterministic for a given (location, title, id) triple, which is what
// lets pages compare it against the request path and 301 on mismatch.
func CanonicalPath(loc Location, title, id string) string {
	s := slug.ForRecord(title, id)
	switch loc.Kind {
	case KindState:
		return "/grants/state/" + loc.StateCode + "/" + s
	case KindLocal:
		return "/grants/local/" + loc.StateCode + "/" + loc.CitySlug + "/" + s
	case KindPrivate:
		return "/grants/private/" + s
	default:
		return "/grants/federal/" + s
	}
}

// GrantPath is the canonical path of a grant record.
func GrantPath(g *models.Grant) string {
	return CanonicalPath(ForGrant(g), g.Title, g.UID)
}

// JobPath is the canonical path of a job listing. Jobs live under a flat
// prefix; jurisdiction only affects grants.
func JobPath(j *models.JobListing) string {
	return "/jobs/" + slug.ForRecord(j.Title, j.UID)
}
