package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"licensure/internal/lookup"
	"licensure/internal/lookup/cache"
	id "licensure/pkg/domain"
	dErrors "licensure/pkg/domain-errors"
)

// Lookup fetches board candidates for a bare region and license number,
// with no provider involved. A single portal round trip, served from the
// short-TTL cache when one is configured. Verification runs never come
// through here; their attempt entries must reflect the portal as it is
// now.
func (s *Service) Lookup(ctx context.Context, region id.Region, licenseNumber string) (*lookup.Result, error) {
	ctx, span := tracer.Start(ctx, "lookup.ondemand",
		trace.WithAttributes(attribute.String("board.region", string(region))))
	defer span.End()

	board, err := s.boards.ByRegion(region)
	if err != nil {
		return nil, err
	}

	key := cache.Key(region, licenseNumber)
	if s.lookupCache != nil {
		if cached, err := s.lookupCache.Get(ctx, key); err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return cached, nil
		}
	}

	result, err := board.Lookup(ctx, licenseNumber)
	if err != nil {
		span.RecordError(err)
		return nil, translateLookupErr(err)
	}

	if s.lookupCache != nil {
		if err := s.lookupCache.Set(ctx, key, result, s.lookupTTL); err != nil {
			s.log(ctx, "lookup cache write failed", "key", key, "error", err)
		}
	}
	return result, nil
}

// translateLookupErr maps portal failures onto coded errors for the HTTP
// surface.
func translateLookupErr(err error) error {
	if lookup.IsTimeout(err) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "licensing portal timed out")
	}
	if lookup.IsTransient(err) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "licensing portal unavailable")
	}
	var pe *lookup.ParseError
	if errors.As(err, &pe) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "licensing portal response not understood")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "lookup failed")
}
