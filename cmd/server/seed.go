package main

import (
	"context"
	"log/slog"
	"time"

	"licensure/internal/verify/models"
	id "licensure/pkg/domain"
)

// seedDevData loads a handful of providers covering each verification path,
// plus credential records in every state the checker distinguishes. The
// license numbers are real board entries, so the fixtures also work against
// the live portals. Each provider is logged with its generated id so it can
// be fed straight into the verify endpoint.
func seedDevData(ctx context.Context, providers providerStore, credentials credentialStore, log *slog.Logger) (int, error) {
	now := time.Now().UTC()
	current := now.AddDate(1, 0, 0)
	expiring := now.AddDate(0, 0, 20)
	lapsed := now.AddDate(0, -2, 0)

	seeds := []struct {
		name      string
		trade     id.Trade
		region    id.Region
		license   string
		active    bool
		insurance *models.InsuranceRecord
		bond      *models.BondRecord
	}{
		{
			name:    "Blue Ridge Painting LLC",
			trade:   id.TradePainter,
			region:  id.RegionVirginia,
			license: "2705081693",
			active:  true,
			insurance: &models.InsuranceRecord{
				Carrier:        "Erie Insurance",
				PolicyNumber:   "GL-4410023",
				CoverageAmount: 1_000_000,
				ExpirationDate: current,
			},
			bond: &models.BondRecord{
				Surety:         "Western Surety Company",
				BondNumber:     "B-558201",
				BondAmount:     50_000,
				ExpirationDate: expiring,
			},
		},
		{
			name:    "Tidewater Roofing Co",
			trade:   id.TradeRoofer,
			region:  id.RegionVirginia,
			license: "2705014734",
			active:  true,
			insurance: &models.InsuranceRecord{
				Carrier:        "Nationwide Mutual",
				PolicyNumber:   "CPP-88172",
				CoverageAmount: 2_000_000,
				ExpirationDate: lapsed,
			},
		},
		{
			name:    "James River Decorating",
			trade:   id.TradePainter,
			region:  id.RegionVirginia,
			license: "2701013163",
			active:  true,
		},
		{
			name:    "Cape Fear Roofing & Sheet Metal",
			trade:   id.TradeRoofer,
			region:  id.RegionNorthCarolina,
			license: "83060",
			active:  true,
			bond: &models.BondRecord{
				Surety:         "Travelers Casualty",
				BondNumber:     "106384455",
				BondAmount:     75_000,
				ExpirationDate: current,
			},
		},
		{
			// No board has this number; exercises the not-found path.
			name:    "Phantom Contracting",
			trade:   id.TradePainter,
			region:  id.RegionVirginia,
			license: "2705999999",
			active:  true,
		},
		{
			// Inactive: skipped by batch sweeps, still reachable by id.
			name:    "Dormant Painters Inc",
			trade:   id.TradePainter,
			region:  id.RegionVirginia,
			license: "2705081111",
			active:  false,
		},
	}

	for _, seed := range seeds {
		p := &models.Provider{
			ID:            id.NewProviderID(),
			Name:          seed.name,
			Trade:         seed.trade,
			Region:        seed.region,
			LicenseNumber: seed.license,
			Active:        seed.active,
			Status:        models.StatusUnverified,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := providers.Create(ctx, p); err != nil {
			return 0, err
		}
		log.InfoContext(ctx, "seeded provider",
			"provider_id", p.ID,
			"name", p.Name,
			"region", p.Region,
			"license", p.LicenseNumber,
		)

		if seed.insurance != nil {
			seed.insurance.ProviderID = p.ID
			seed.insurance.CreatedAt = now
			seed.insurance.UpdatedAt = now
			if err := credentials.UpsertInsurance(ctx, seed.insurance); err != nil {
				return 0, err
			}
		}
		if seed.bond != nil {
			seed.bond.ProviderID = p.ID
			seed.bond.CreatedAt = now
			seed.bond.UpdatedAt = now
			if err := credentials.UpsertBond(ctx, seed.bond); err != nil {
				return 0, err
			}
		}
	}
	return len(seeds), nil
}
