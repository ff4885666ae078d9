package lookup

//go:generate mockgen -source=board.go -destination=mocks/mocks.go -package=mocks Board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "licensure/pkg/domain"
	dErrors "licensure/pkg/domain-errors"
)

type stubBoard struct {
	region id.Region
	trades []id.Trade
}

func (s *stubBoard) Region() id.Region  { return s.region }
func (s *stubBoard) Trades() []id.Trade { return s.trades }

func (s *stubBoard) Lookup(context.Context, string) (*Result, error) {
	return &Result{}, nil
}

func (s *stubBoard) SearchByName(context.Context, string) (*Result, error) {
	return &Result{}, nil
}

func TestRegistryRoutes(t *testing.T) {
	va := &stubBoard{region: id.RegionVirginia, trades: []id.Trade{id.TradePainter, id.TradeRoofer}}
	nc := &stubBoard{region: id.RegionNorthCarolina, trades: []id.Trade{id.TradeRoofer}}

	reg, err := NewRegistry(va, nc)
	require.NoError(t, err)

	got, err := reg.Board(id.RegionVirginia, id.TradeRoofer)
	require.NoError(t, err)
	assert.Same(t, Board(va), got)

	got, err = reg.Board(id.RegionNorthCarolina, id.TradeRoofer)
	require.NoError(t, err)
	assert.Same(t, Board(nc), got)
}

func TestRegistryUnknownRegion(t *testing.T) {
	reg, err := NewRegistry(&stubBoard{region: id.RegionVirginia, trades: []id.Trade{id.TradeRoofer}})
	require.NoError(t, err)

	_, err = reg.Board(id.RegionNorthCarolina, id.TradeRoofer)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestRegistryByRegion(t *testing.T) {
	va := &stubBoard{region: id.RegionVirginia, trades: []id.Trade{id.TradeRoofer}}
	reg, err := NewRegistry(va)
	require.NoError(t, err)

	got, err := reg.ByRegion(id.RegionVirginia)
	require.NoError(t, err)
	assert.Same(t, Board(va), got)

	_, err = reg.ByRegion(id.RegionNorthCarolina)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestRegistryUnlicensedTrade(t *testing.T) {
	reg, err := NewRegistry(&stubBoard{region: id.RegionNorthCarolina, trades: []id.Trade{id.TradeRoofer}})
	require.NoError(t, err)

	_, err = reg.Board(id.RegionNorthCarolina, id.TradePainter)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestRegistryRejectsDuplicateRegion(t *testing.T) {
	_, err := NewRegistry(
		&stubBoard{region: id.RegionVirginia, trades: []id.Trade{id.TradeRoofer}},
		&stubBoard{region: id.RegionVirginia, trades: []id.Trade{id.TradePainter}},
	)
	require.Error(t, err)
}

func TestRegistryRegionsSorted(t *testing.T) {
	reg, err := NewRegistry(
		&stubBoard{region: id.RegionVirginia, trades: []id.Trade{id.TradeRoofer}},
		&stubBoard{region: id.RegionNorthCarolina, trades: []id.Trade{id.TradeRoofer}},
	)
	require.NoError(t, err)
	assert.Equal(t, []id.Region{id.RegionNorthCarolina, id.RegionVirginia}, reg.Regions())
}
