package domain

import (
	"fmt"
	"strings"
)

// Trade is a licensed service category.
// This is a domain primitive that enforces validity at parse time.
type Trade string

// Known trades.
const (
	TradePainter Trade = "painter"
	TradeRoofer  Trade = "roofer"
)

var knownTrades = map[Trade]struct{}{
	TradePainter: {},
	TradeRoofer:  {},
}

// ParseTrade validates and returns a Trade. Input is case-insensitive.
func ParseTrade(s string) (Trade, error) {
	t := Trade(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := knownTrades[t]; !ok {
		return "", fmt.Errorf("unknown trade: %s", s)
	}
	return t, nil
}

func (t Trade) String() string { return string(t) }

// IsNil reports whether the trade is empty.
func (t Trade) IsNil() bool { return t == "" }

// KnownTrades returns every supported trade.
func KnownTrades() []Trade {
	return []Trade{TradePainter, TradeRoofer}
}

// Region is the licensing jurisdiction that owns a board, as a two-letter
// postal code.
type Region string

// Supported regions.
const (
	RegionVirginia      Region = "VA"
	RegionNorthCarolina Region = "NC"
)

var knownRegions = map[Region]struct{}{
	RegionVirginia:      {},
	RegionNorthCarolina: {},
}

// ParseRegion validates and returns a Region. Input is case-insensitive.
func ParseRegion(s string) (Region, error) {
	r := Region(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := knownRegions[r]; !ok {
		return "", fmt.Errorf("unknown region: %s", s)
	}
	return r, nil
}

func (r Region) String() string { return string(r) }

// IsNil reports whether the region is empty.
func (r Region) IsNil() bool { return r == "" }

// KnownRegions returns every supported region.
func KnownRegions() []Region {
	return []Region{RegionVirginia, RegionNorthCarolina}
}
