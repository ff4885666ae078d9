package lookup

import (
	"strings"
	"time"
)

// portalDateLayouts covers the date formats the boards render. Portals are
// not consistent across pages, so every layout is tried in order.
var portalDateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006-01-02",
	"January 2, 2006",
}

// ParseDate parses a portal-rendered date. Returns the zero time when the
// text matches no known layout; callers treat zero as "no date evidence"
// rather than an error.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range portalDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
