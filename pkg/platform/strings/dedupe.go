// Package strings has small string-slice helpers shared by the portal
// parsers.
package strings

import "strings"

// DedupeAndTrim trims whitespace, drops empties, and removes duplicates
// while preserving first-seen order. Returns nil when nothing survives, so
// the result can back an omitempty JSON field directly.
//
// Portal pages repeat specialty and classification entries more often than
// one would hope; record fields built from them go through here.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	var result []string
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
