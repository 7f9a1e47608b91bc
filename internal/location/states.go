package location

import (
	"strings"

	"grantdir/internal/slug"
)

// StateInfo is one entry of the static state table.
type StateInfo struct {
	Code    string
	Name    string
	Aliases []string
}

// stateTable covers the 50 states, DC, and the populated territories.
// Aliases carry the spellings seen in upstream grant feeds.
var stateTable = []StateInfo{
	{Code: "AL", Name: "Alabama"},
	{Code: "AK", Name: "Alaska"},
	{Code: "AZ", Name: "Arizona"},
	{Code: "AR", Name: "Arkansas"},
	{Code: "CA", Name: "California", Aliases: []string{"Calif", "Calif."}},
	{Code: "CO", Name: "Colorado", Aliases: []string{"Colo", "Colo."}},
	{Code: "CT", Name: "Connecticut", Aliases: []string{"Conn", "Conn."}},
	{Code: "DE", Name: "Delaware"},
	{Code: "FL", Name: "Florida", Aliases: []string{"Fla", "Fla."}},
	{Code: "GA", Name: "Georgia"},
	{Code: "HI", Name: "Hawaii", Aliases: []string{"Hawai'i"}},
	{Code: "ID", Name: "Idaho"},
	{Code: "IL", Name: "Illinois", Aliases: []string{"Ill", "Ill."}},
	{Code: "IN", Name: "Indiana", Aliases: []string{"Ind", "Ind."}},
	{Code: "IA", Name: "Iowa"},
	{Code: "KS", Name: "Kansas", Aliases: []string{"Kan", "Kan."}},
	{Code: "KY", Name: "Kentucky"},
	{Code: "LA", Name: "Louisiana"},
	{Code: "ME", Name: "Maine"},
	{Code: "MD", Name: "Maryland"},
	{Code: "MA", Name: "Massachusetts", Aliases: []string{"Mass", "Mass."}},
	{Code: "MI", Name: "Michigan", Aliases: []string{"Mich", "Mich."}},
	{Code: "MN", Name: "Minnesota", Aliases: []string{"Minn", "Minn."}},
	{Code: "MS", Name: "Mississippi", Aliases: []string{"Miss", "Miss."}},
	{Code: "MO", Name: "Missouri"},
	{Code: "MT", Name: "Montana", Aliases: []string{"Mont", "Mont."}},
	{Code: "NE", Name: "Nebraska", Aliases: []string{"Neb", "Nebr"}},
	{Code: "NV", Name: "Nevada", Aliases: []string{"Nev", "Nev."}},
	{Code: "NH", Name: "New Hampshire"},
	{Code: "NJ", Name: "New Jersey"},
	{Code: "NM", Name: "New Mexico"},
	{Code: "NY", Name: "New York", Aliases: []string{"NY State", "New York State"}},
	{Code: "NC", Name: "North Carolina"},
	{Code: "ND", Name: "North Dakota"},
	{Code: "OH", Name: "Ohio"},
	{Code: "OK", Name: "Oklahoma", Aliases: []string{"Okla", "Okla."}},
	{Code: "OR", Name: "Oregon", Aliases: []string{"Ore", "Ore."}},
	{Code: "PA", Name: "Pennsylvania", Aliases: []string{"Penn", "Penna"}},
	{Code: "RI", Name: "Rhode Island"},
	{Code: "SC", Name: "South Carolina"},
	{Code: "SD", Name: "South Dakota"},
	{Code: "TN", Name: "Tennessee", Aliases: []string{"Tenn", "Tenn."}},
	{Code: "TX", Name: "Texas", Aliases: []string{"Tex", "Tex."}},
	{Code: "UT", Name: "Utah"},
	{Code: "VT", Name: "Vermont"},
	{Code: "VA", Name: "Virginia"},
	{Code: "WA", Name: "Washington", Aliases: []string{"Washington State", "Wash", "Wash."}},
	{Code: "WV", Name: "West Virginia", Aliases: []string{"W. Virginia", "W Va"}},
	{Code: "WI", Name: "Wisconsin", Aliases: []string{"Wis", "Wisc"}},
	{Code: "WY", Name: "Wyoming", Aliases: []string{"Wyo", "Wyo."}},
	{Code: "DC", Name: "District of Columbia", Aliases: []string{"Washington DC", "Washington, DC", "Washington D.C.", "D.C."}},
	{Code: "PR", Name: "Puerto Rico"},
	{Code: "GU", Name: "Guam"},
	{Code: "VI", Name: "U.S. Virgin Islands", Aliases: []string{"US Virgin Islands", "Virgin Islands"}},
	{Code: "AS", Name: "American Samoa"},
	{Code: "MP", Name: "Northern Mariana Islands"},
}

var (
	statesByCode = make(map[string]StateInfo, len(stateTable))
	statesByName = make(map[string]StateInfo, len(stateTable))
	statesBySlug = make(map[string]StateInfo)
)

func init() {
	for _, info := range stateTable {
		statesByCode[info.Code] = info
		statesByName[strings.ToLower(info.Name)] = info
		statesBySlug[slug.Slugify(info.Name)] = info
		for _, alias := range info.Aliases {
			statesByName[strings.ToLower(alias)] = info
			statesBySlug[slug.Slugify(alias)] = info
		}
	}
}

// LookupState resolves raw state text to its table entry. Matching order:
// two-letter code, full name, alias, then normalized-slug comparison.
// All matches are case- and punctuation-insensitive.
func LookupState(raw string) (StateInfo, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return StateInfo{}, false
	}
	if info, ok := statesByCode[strings.ToUpper(trimmed)]; ok {
		return info, true
	}
	if info, ok := statesByName[strings.ToLower(trimmed)]; ok {
		return info, true
	}
	if info, ok := statesBySlug[slug.Slugify(trimmed)]; ok {
		return info, true
	}
	return StateInfo{}, false
}

// States returns the full table in stable order for navigation and sitemaps.
func States() []StateInfo {
	out := make([]StateInfo, len(stateTable))
	copy(out, stateTable)
	return out
}
