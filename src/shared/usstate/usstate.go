// Package usstate maps US postal state codes to full state names and
// extracts a state from free-form address text.
package usstate

import (
	"regexp"
	"sort"
	"strings"
)

var byCode = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut",
	"DE": "Delaware", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan",
	"MN": "Minnesota", "MS": "Mississippi", "MO": "Missouri",
	"MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NY": "New York", "NC": "North Carolina", "ND": "North Dakota",
	"OH": "Ohio", "OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania",
	"RI": "Rhode Island", "SC": "South Carolina", "SD": "South Dakota",
	"TN": "Tennessee", "TX": "Texas", "UT": "Utah", "VT": "Vermont",
	"VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming",
	"DC": "District of Columbia",
}

var codeRe = regexp.MustCompile(`\b(` + strings.Join(Codes(), "|") + `)\b`)

// Codes returns all known two-letter codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Normalize maps a bare two-letter code (any case, surrounding
// whitespace allowed) to its full state name. Returns "" for anything
// not in the table.
func Normalize(code string) string {
	return byCode[strings.ToUpper(strings.TrimSpace(code))]
}

// ResolveFromAddress scans free-form address text for the first
// standalone two-letter state code and returns the full state name.
// Matching is case-insensitive and word-boundary delimited, so a code
// embedded in a longer word ("MCALLEN") does not match. Returns ""
// when no code is found.
func ResolveFromAddress(address string) string {
	if address == "" {
		return ""
	}
	m := codeRe.FindString(strings.ToUpper(address))
	if m == "" {
		return ""
	}
	return byCode[m]
}
