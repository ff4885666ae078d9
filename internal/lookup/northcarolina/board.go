// Package northcarolina adapts the North Carolina Licensing Board for
// General Contractors (NCLBGC) public portal.
//
// The portal needs two round trips per lookup. The public search POST
// returns rows whose onclick handlers carry an encrypted account key; the
// detail page is then fetched by that key. A third, best-effort GET pulls
// public disciplinary matters for the same key.
package northcarolina

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"licensure/internal/lookup"
	id "licensure/pkg/domain"
)

const defaultBaseURL = "https://portal.nclbgc.org/Public"

// keyPattern extracts the encrypted account key from the search results
// markup: ShowAccountDetails('<key>').
var keyPattern = regexp.MustCompile(`ShowAccountDetails\(\s*'([^']+)'`)

// Board is the North Carolina NCLBGC adapter.
type Board struct {
	client  *lookup.Client
	baseURL string
}

// Option configures the board.
type Option func(*Board)

// WithBaseURL points the adapter at a different portal root. Used by tests
// and the mock board.
func WithBaseURL(u string) Option {
	return func(b *Board) { b.baseURL = u }
}

// New builds the North Carolina adapter on the shared portal client.
func New(client *lookup.Client, opts ...Option) *Board {
	b := &Board{client: client, baseURL: defaultBaseURL}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Region implements lookup.Board.
func (b *Board) Region() id.Region { return id.RegionNorthCarolina }

// Trades implements lookup.Board. NCLBGC licenses general contractors;
// of the trades the engine tracks, only roofing falls under it.
func (b *Board) Trades() []id.Trade {
	return []id.Trade{id.TradeRoofer}
}

// Lookup resolves a license number to its detail page via the encrypted
// key. A search page without any key is the portal's no-such-license
// response.
func (b *Board) Lookup(ctx context.Context, licenseNumber string) (*lookup.Result, error) {
	// Licenses are often written "L.12345"; the portal wants bare digits.
	num := strings.TrimLeft(licenseNumber, "Ll.")

	body, err := b.client.PostForm(ctx, "nc-nclbgc search", b.baseURL+"/_Search/", searchForm("AccountNumber", num))
	if err != nil {
		return nil, err
	}

	m := keyPattern.FindStringSubmatch(body)
	if m == nil {
		return &lookup.Result{
			Records: notFoundRecords(licenseNumber),
			Raw:     b.client.Snapshot(body),
		}, nil
	}
	key := m[1]

	// The key arrives already URL-encoded in the page JS. Concatenate it
	// raw so it is not encoded a second time.
	detail, err := b.client.Get(ctx, "nc-nclbgc detail", b.baseURL+"/_ShowAccountDetails/?key="+key+"&Source=Search")
	if err != nil {
		return nil, err
	}

	records, err := parseDetail(detail, licenseNumber)
	if err != nil {
		return nil, err
	}

	if violations := b.fetchMatters(ctx, key); violations != "" && len(records) > 0 {
		records[0].Violations = violations
	}

	return &lookup.Result{Records: records, Raw: b.client.Snapshot(detail)}, nil
}

// SearchByName fetches candidate summary rows for a company name.
func (b *Board) SearchByName(ctx context.Context, name string) (*lookup.Result, error) {
	body, err := b.client.PostForm(ctx, "nc-nclbgc name search", b.baseURL+"/_Search/", searchForm("CompanyName", name))
	if err != nil {
		return nil, err
	}

	records, err := parseSearch(body)
	if err != nil {
		return nil, err
	}
	return &lookup.Result{Records: records, Raw: b.client.Snapshot(body)}, nil
}

// fetchMatters pulls the public disciplinary matters fragment. Best
// effort: matters failing never fails the lookup.
func (b *Board) fetchMatters(ctx context.Context, key string) string {
	body, err := b.client.Get(ctx, "nc-nclbgc matters", b.baseURL+"/_ShowNCLBGCPublicMatters/?key="+key)
	if err != nil {
		return ""
	}
	return mattersText(body)
}

// searchForm builds the full search form the portal expects. Every field
// must be posted even when empty; soundex stays off so number and name
// matches are exact.
func searchForm(field, value string) url.Values {
	form := url.Values{
		"AccountNumber":                {""},
		"ClassificationDefinitionIdnt": {""},
		"QualifierAccountNumber":       {""},
		"CompanyName":                  {""},
		"FirstName":                    {""},
		"LastName":                     {""},
		"PhoneNumber":                  {""},
		"useSoundex":                   {"false"},
		"streetAddress":                {""},
		"PostalCode":                   {""},
		"City":                         {""},
		"StateCode":                    {""},
	}
	form.Set(field, value)
	return form
}
