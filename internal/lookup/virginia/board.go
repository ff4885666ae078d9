// Package virginia adapts the Virginia DPOR license lookup portal.
//
// Endpoints:
//   - Detail: POST {base}/LicenseDetail with form fields license-number and
//     phone-number (honeypot, always empty)
//   - Search: POST {base}/Search with form fields search-text and
//     phone-number (honeypot, always empty)
//
// Both return full HTML pages.
package virginia

import (
	"context"
	"net/url"

	"licensure/internal/lookup"
	id "licensure/pkg/domain"
)

const defaultBaseURL = "https://dporweb.dpor.virginia.gov/LicenseLookup"

// Board is the Virginia DPOR adapter.
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

// New builds the Virginia adapter on the shared portal client.
func New(client *lookup.Client, opts ...Option) *Board {
	b := &Board{client: client, baseURL: defaultBaseURL}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Region implements lookup.Board.
func (b *Board) Region() id.Region { return id.RegionVirginia }

// Trades implements lookup.Board. DPOR's Board for Contractors licenses
// both trades the engine tracks.
func (b *Board) Trades() []id.Trade {
	return []id.Trade{id.TradePainter, id.TradeRoofer}
}

// Lookup fetches the license detail page for a number.
func (b *Board) Lookup(ctx context.Context, licenseNumber string) (*lookup.Result, error) {
	form := url.Values{
		"license-number": {licenseNumber},
		"phone-number":   {""},
	}
	body, err := b.client.PostForm(ctx, "va-dpor detail", b.baseURL+"/LicenseDetail", form)
	if err != nil {
		return nil, err
	}

	records, err := parseDetail(body, licenseNumber)
	if err != nil {
		return nil, err
	}
	return &lookup.Result{Records: records, Raw: b.client.Snapshot(body)}, nil
}

// SearchByName fetches candidate summary rows for a name or business name.
func (b *Board) SearchByName(ctx context.Context, name string) (*lookup.Result, error) {
	form := url.Values{
		"search-text":  {name},
		"phone-number": {""},
	}
	body, err := b.client.PostForm(ctx, "va-dpor search", b.baseURL+"/Search", form)
	if err != nil {
		return nil, err
	}

	records, err := parseSearch(body)
	if err != nil {
		return nil, err
	}
	return &lookup.Result{Records: records, Raw: b.client.Snapshot(body)}, nil
}
