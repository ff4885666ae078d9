package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"licensure/internal/lookup"
	"licensure/internal/lookup/cache"
	"licensure/internal/verify/models"
	id "licensure/pkg/domain"
	dErrors "licensure/pkg/domain-errors"
	"licensure/pkg/platform/sentinel"
)

// failingCache misses every read and fails every write.
type failingCache struct{}

func (failingCache) Get(context.Context, string) (*lookup.Result, error) {
	return nil, sentinel.ErrCacheMiss
}

func (failingCache) Set(context.Context, string, *lookup.Result, time.Duration) error {
	return assert.AnError
}

func (s *ServiceSuite) TestLookup() {
	ctx := context.Background()
	result := &lookup.Result{
		Records: []models.LicenseRecord{{
			HolderName:    "Blue Ridge Painting",
			LicenseNumber: "2705081693",
			Status:        models.LicenseActive,
		}},
		Raw: "<table>detail</table>",
	}

	s.Run("fetches candidates from the board", func() {
		s.mockBoards.EXPECT().ByRegion(id.RegionVirginia).Return(s.mockBoard, nil)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").Return(result, nil)

		got, err := s.service.Lookup(ctx, id.RegionVirginia, "2705081693")
		s.Require().NoError(err)
		s.Equal(result, got)
	})

	s.Run("serves repeat lookups from the cache", func() {
		svc, err := New(
			s.mockProviders, s.mockAttempts, s.mockCredentials, s.mockBoards,
			WithLookupCache(cache.NewMemory(), time.Minute),
		)
		s.Require().NoError(err)

		s.mockBoards.EXPECT().ByRegion(id.RegionVirginia).Return(s.mockBoard, nil).Times(2)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").Return(result, nil).Times(1)

		first, err := svc.Lookup(ctx, id.RegionVirginia, "2705081693")
		s.Require().NoError(err)
		second, err := svc.Lookup(ctx, id.RegionVirginia, "2705081693")
		s.Require().NoError(err)
		s.Equal(first.Records, second.Records)
		s.Equal(first.Raw, second.Raw)
	})

	s.Run("cache write failure does not fail the lookup", func() {
		svc, err := New(
			s.mockProviders, s.mockAttempts, s.mockCredentials, s.mockBoards,
			WithLookupCache(failingCache{}, time.Minute),
		)
		s.Require().NoError(err)

		s.mockBoards.EXPECT().ByRegion(id.RegionVirginia).Return(s.mockBoard, nil)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").Return(result, nil)

		got, err := svc.Lookup(ctx, id.RegionVirginia, "2705081693")
		s.Require().NoError(err)
		s.Equal(result, got)
	})

	s.Run("unregistered region returns validation error", func() {
		s.mockBoards.EXPECT().ByRegion(id.Region("TX")).
			Return(nil, dErrors.New(dErrors.CodeValidation, "no licensing board registered for region TX"))

		_, err := s.service.Lookup(ctx, id.Region("TX"), "12345")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("portal timeout maps to timeout", func() {
		s.mockBoards.EXPECT().ByRegion(id.RegionVirginia).Return(s.mockBoard, nil)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").
			Return(nil, &lookup.TransportError{Op: "board detail", Err: context.DeadlineExceeded})

		_, err := s.service.Lookup(ctx, id.RegionVirginia, "2705081693")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	})

	s.Run("portal outage maps to unavailable", func() {
		s.mockBoards.EXPECT().ByRegion(id.RegionVirginia).Return(s.mockBoard, nil)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").
			Return(nil, &lookup.UpstreamError{Op: "board detail", StatusCode: 503, Status: "503 Service Unavailable"})

		_, err := s.service.Lookup(ctx, id.RegionVirginia, "2705081693")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	s.Run("unreadable markup maps to internal", func() {
		s.mockBoards.EXPECT().ByRegion(id.RegionVirginia).Return(s.mockBoard, nil)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").
			Return(nil, &lookup.ParseError{Reason: "results table not found"})

		_, err := s.service.Lookup(ctx, id.RegionVirginia, "2705081693")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
