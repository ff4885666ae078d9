// Package match decides whether lookup candidates plausibly correspond to
// a provider's claimed identity. Absence of a match is a valid outcome,
// never an error.
package match

import (
	"math"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"licensure/internal/verify/models"
	id "licensure/pkg/domain"
)

// Threshold is the fixed acceptance score for fuzzy name matches. Chosen
// so that dropped suffixes and small spelling drift pass while unrelated
// businesses stay well below it.
const Threshold = 0.75

// Claim is the provider identity a lookup is verified against.
type Claim struct {
	Name          string
	LicenseNumber string
	Trade         id.Trade
}

// Best returns the candidate that fits the claim, or nil when none
// plausibly does.
//
// A claimed license number is authoritative: when present, only an exact
// number match counts and names are never consulted. Without a number,
// candidates are scored by name similarity against Threshold; score ties
// prefer an exact trade-specialty match, then the latest expiration date.
func Best(candidates []models.LicenseRecord, claim Claim) *models.LicenseRecord {
	found := make([]models.LicenseRecord, 0, len(candidates))
	for _, c := range candidates {
		if c.Found() {
			found = append(found, c)
		}
	}
	if len(found) == 0 {
		return nil
	}

	if num := CanonicalNumber(claim.LicenseNumber); num != "" {
		for i := range found {
			if CanonicalNumber(found[i].LicenseNumber) == num {
				return &found[i]
			}
		}
		return nil
	}

	best := -1
	bestScore := 0.0
	for i := range found {
		score := Similarity(claim.Name, found[i].HolderName)
		if score < Threshold {
			continue
		}
		switch {
		case best < 0 || score > bestScore:
			best, bestScore = i, score
		case score == bestScore && preferred(found[i], found[best], claim.Trade):
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	return &found[best]
}

// Similarity scores two names in [0, 1]. Both are normalized first, then
// scored as the better of token overlap and whole-string edit distance, so
// reordered words and small misspellings both stay above Threshold.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}
	overlap := tokenOverlap(strings.Fields(na), strings.Fields(nb))
	edit := editSimilarity(na, nb)
	return math.Max(overlap, edit)
}

// legalSuffixes are dropped before comparison; "Smith Painting LLC" and
// "Smith Painting" name the same business.
var legalSuffixes = map[string]struct{}{
	"llc":          {},
	"llp":          {},
	"inc":          {},
	"incorporated": {},
	"co":           {},
	"company":      {},
	"corp":         {},
	"corporation":  {},
	"ltd":          {},
	"limited":      {},
	"pc":           {},
}

// Normalize lowercases, expands ampersands, strips punctuation, drops
// legal-entity suffixes, and sorts tokens so word order cannot move the
// score.
func Normalize(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r == '&':
			sb.WriteString(" and ")
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		default:
			sb.WriteRune(' ')
		}
	}

	tokens := strings.Fields(sb.String())
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, legal := legalSuffixes[tok]; !legal {
			kept = append(kept, tok)
		}
	}
	// A name made up entirely of suffix words still has to compare as
	// itself.
	if len(kept) == 0 {
		kept = tokens
	}
	slices.Sort(kept)
	return strings.Join(kept, " ")
}

// CanonicalNumber strips formatting from a license number: uppercase,
// alphanumerics only, and the leading L some boards prefix dropped when
// the rest is numeric, so "L.83060" and "83060" compare equal.
func CanonicalNumber(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	out := sb.String()
	if len(out) > 1 && out[0] == 'L' && allDigits(out[1:]) {
		return out[1:]
	}
	return out
}

// preferred breaks score ties: an exact trade-specialty match beats one
// without, then the later expiration date wins.
func preferred(a, b models.LicenseRecord, trade id.Trade) bool {
	at, bt := hasSpecialty(a, trade), hasSpecialty(b, trade)
	if at != bt {
		return at
	}
	return a.ExpirationDate.After(b.ExpirationDate)
}

func hasSpecialty(rec models.LicenseRecord, trade id.Trade) bool {
	for _, s := range rec.Specialties {
		if strings.EqualFold(strings.TrimSpace(s), string(trade)) {
			return true
		}
	}
	return false
}

func tokenOverlap(a, b []string) float64 {
	if len(a)+len(b) == 0 {
		return 0
	}
	used := make([]bool, len(b))
	matches := 0
	for _, at := range a {
		for j, bt := range b {
			if !used[j] && at == bt {
				used[j] = true
				matches++
				break
			}
		}
	}
	return float64(2*matches) / float64(len(a)+len(b))
}

func editSimilarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
