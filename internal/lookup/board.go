// Package lookup talks to state licensing portals. Board adapters own the
// per-portal form schemas and parsers; the registry routes a provider's
// region and trade to the right adapter before any network I/O happens.
package lookup

import (
	"context"
	"fmt"
	"slices"

	"licensure/internal/verify/models"
	id "licensure/pkg/domain"
	dErrors "licensure/pkg/domain-errors"
)

// Result is one board lookup: parsed candidates in portal order plus the
// truncated raw body for the audit trail.
type Result struct {
	Records []models.LicenseRecord
	Raw     string
}

// Board adapts one licensing portal.
type Board interface {
	// Region is the jurisdiction this board covers.
	Region() id.Region

	// Trades lists the trades this board licenses.
	Trades() []id.Trade

	// Lookup fetches candidates for a license number. Zero portal results
	// come back as a single not-found record, not an error.
	Lookup(ctx context.Context, licenseNumber string) (*Result, error)

	// SearchByName fetches candidate summary rows for a business name.
	SearchByName(ctx context.Context, name string) (*Result, error)
}

// Registry routes (region, trade) pairs to board adapters. Adding a board
// is one adapter package plus one entry here; nothing in the engine
// branches on region names.
type Registry struct {
	boards map[id.Region]Board
}

// NewRegistry indexes boards by region. Duplicate regions are a wiring bug.
func NewRegistry(boards ...Board) (*Registry, error) {
	byRegion := make(map[id.Region]Board, len(boards))
	for _, b := range boards {
		if _, dup := byRegion[b.Region()]; dup {
			return nil, fmt.Errorf("duplicate board for region %s", b.Region())
		}
		byRegion[b.Region()] = b
	}
	return &Registry{boards: byRegion}, nil
}

// Board returns the adapter for a region, validating that it licenses the
// given trade. Fails before any network I/O.
func (r *Registry) Board(region id.Region, trade id.Trade) (Board, error) {
	b, ok := r.boards[region]
	if !ok {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("no licensing board registered for region %s", region))
	}
	if !slices.Contains(b.Trades(), trade) {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("board %s does not license trade %s", region, trade))
	}
	return b, nil
}

// ByRegion returns the adapter for a region without trade validation.
// On-demand lookups arrive with a bare region and number; only provider
// verification knows a trade to validate.
func (r *Registry) ByRegion(region id.Region) (Board, error) {
	b, ok := r.boards[region]
	if !ok {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("no licensing board registered for region %s", region))
	}
	return b, nil
}

// Regions lists registered regions in stable order.
func (r *Registry) Regions() []id.Region {
	regions := make([]id.Region, 0, len(r.boards))
	for region := range r.boards {
		regions = append(regions, region)
	}
	slices.Sort(regions)
	return regions
}
