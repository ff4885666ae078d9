package service

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"licensure/internal/lookup"
	"licensure/internal/verify/events"
	"licensure/internal/verify/models"
	id "licensure/pkg/domain"
	dErrors "licensure/pkg/domain-errors"
	"licensure/pkg/requestcontext"
)

func (s *ServiceSuite) TestVerifyLicenseByNumber() {
	asOf := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), asOf)

	s.Run("active license verifies and updates the provider", func() {
		p := testProvider()
		record := models.LicenseRecord{
			HolderName:     "Blue Ridge Painting LLC",
			LicenseNumber:  "2705081693",
			Class:          "C",
			Status:         models.LicenseActive,
			ExpirationDate: time.Date(2027, time.June, 30, 0, 0, 0, 0, time.UTC),
		}
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.expectBoard(p)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").
			Return(&lookup.Result{Records: []models.LicenseRecord{record}, Raw: "<table>active</table>"}, nil)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockProviders.EXPECT().UpdateVerification(gomock.Any(), p).Return(nil)

		var published events.AttemptEvent
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Do(
			func(_ context.Context, e events.AttemptEvent) { published = e })

		attempt, err := s.service.VerifyLicense(requestcontext.WithRequestID(ctx, "req-123"), p.ID)

		s.Require().NoError(err)
		s.False(attempt.ID.IsNil())
		s.Equal(p.ID, attempt.ProviderID)
		s.Equal("req-123", attempt.RequestID)
		s.Equal(models.CredentialLicense, attempt.CredentialType)
		s.Equal(models.OutcomeVerified, attempt.Outcome)
		s.Equal("2705081693", attempt.MatchedLicense)
		s.Empty(attempt.FailureDetail)
		s.Zero(attempt.RetryCount)
		s.Equal("<table>active</table>", attempt.RawSnapshot)

		s.Equal(models.StatusVerified, p.Status)
		s.Require().NotNil(p.LastVerifiedAt)
		s.True(p.LastVerifiedAt.Equal(attempt.CreatedAt))

		s.Equal(attempt.ID.String(), published.AttemptID)
		s.Equal(p.ID.String(), published.ProviderID)
		s.Equal("req-123", published.RequestID)
		s.Equal("verified", published.Outcome)
		s.Equal("2705081693", published.MatchedLicense)
	})

	s.Run("lapsed expiration date reports expired", func() {
		p := testProvider()
		record := models.LicenseRecord{
			HolderName:     "Blue Ridge Painting LLC",
			LicenseNumber:  "2705081693",
			Status:         models.LicenseActive,
			ExpirationDate: time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC),
		}
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.expectBoard(p)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").
			Return(&lookup.Result{Records: []models.LicenseRecord{record}}, nil)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockProviders.EXPECT().UpdateVerification(gomock.Any(), p).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		attempt, err := s.service.VerifyLicense(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.OutcomeExpired, attempt.Outcome)
		s.Equal("license 2705081693 expired 2026-01-31", attempt.FailureDetail)
		s.Equal(models.StatusExpired, p.Status)
	})

	s.Run("board-declared expiration without a date reports expired", func() {
		p := testProvider()
		record := models.LicenseRecord{
			HolderName:    "Blue Ridge Painting LLC",
			LicenseNumber: "2705081693",
			Status:        models.LicenseExpired,
		}
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.expectBoard(p)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").
			Return(&lookup.Result{Records: []models.LicenseRecord{record}}, nil)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockProviders.EXPECT().UpdateVerification(gomock.Any(), p).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		attempt, err := s.service.VerifyLicense(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.OutcomeExpired, attempt.Outcome)
		s.Equal("license 2705081693 reported expired by the board", attempt.FailureDetail)
	})

	s.Run("revoked license reports mismatch even when also lapsed", func() {
		p := testProvider()
		record := models.LicenseRecord{
			HolderName:     "Blue Ridge Painting LLC",
			LicenseNumber:  "2705081693",
			Status:         models.LicenseRevoked,
			ExpirationDate: time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		}
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.expectBoard(p)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").
			Return(&lookup.Result{Records: []models.LicenseRecord{record}}, nil)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockProviders.EXPECT().UpdateVerification(gomock.Any(), p).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		attempt, err := s.service.VerifyLicense(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.OutcomeMismatch, attempt.Outcome)
		s.Equal("license 2705081693 is revoked or invalid", attempt.FailureDetail)
		s.Equal(models.StatusMismatch, p.Status)
	})

	s.Run("number not on file reports not found", func() {
		p := testProvider()
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.expectBoard(p)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").
			Return(&lookup.Result{
				Records: []models.LicenseRecord{{Status: models.LicenseNotFound}},
				Raw:     "<p>No records found</p>",
			}, nil)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockProviders.EXPECT().UpdateVerification(gomock.Any(), p).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		attempt, err := s.service.VerifyLicense(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.OutcomeNotFound, attempt.Outcome)
		s.Equal("license 2705081693 not on file with the board", attempt.FailureDetail)
		s.Empty(attempt.MatchedLicense)
		s.Equal("<p>No records found</p>", attempt.RawSnapshot)
		s.Equal(models.StatusNotFound, p.Status)
	})

	s.Run("candidate with a different number never matches", func() {
		p := testProvider()
		record := models.LicenseRecord{
			HolderName:    "Blue Ridge Painting LLC",
			LicenseNumber: "2705999999",
			Status:        models.LicenseActive,
		}
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.expectBoard(p)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").
			Return(&lookup.Result{Records: []models.LicenseRecord{record}}, nil)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockProviders.EXPECT().UpdateVerification(gomock.Any(), p).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		attempt, err := s.service.VerifyLicense(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.OutcomeNotFound, attempt.Outcome)
	})
}

func (s *ServiceSuite) TestVerifyLicenseByName() {
	asOf := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), asOf)

	summary := func() *lookup.Result {
		// Search result rows carry holder and number but no standing.
		return &lookup.Result{
			Records: []models.LicenseRecord{
				{HolderName: "Blue Ridge Painting", LicenseNumber: "2705081693"},
				{HolderName: "Tidewater Roofing Co", LicenseNumber: "2705999999"},
			},
			Raw: "<table>search</table>",
		}
	}

	s.Run("name match refetches the detail page before classifying", func() {
		p := testProvider()
		p.LicenseNumber = ""
		detail := models.LicenseRecord{
			HolderName:     "Blue Ridge Painting",
			LicenseNumber:  "2705081693",
			Status:         models.LicenseActive,
			ExpirationDate: time.Date(2027, time.June, 30, 0, 0, 0, 0, time.UTC),
		}
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.expectBoard(p)
		s.mockBoard.EXPECT().SearchByName(gomock.Any(), "Blue Ridge Painting LLC").Return(summary(), nil)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").
			Return(&lookup.Result{Records: []models.LicenseRecord{detail}, Raw: "<table>detail</table>"}, nil)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockProviders.EXPECT().UpdateVerification(gomock.Any(), p).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		attempt, err := s.service.VerifyLicense(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.OutcomeVerified, attempt.Outcome)
		s.Equal("2705081693", attempt.MatchedLicense)
		s.Equal("<table>detail</table>", attempt.RawSnapshot)
	})

	s.Run("summary row vanishing on refetch reports not found", func() {
		p := testProvider()
		p.LicenseNumber = ""
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.expectBoard(p)
		s.mockBoard.EXPECT().SearchByName(gomock.Any(), "Blue Ridge Painting LLC").Return(summary(), nil)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").
			Return(&lookup.Result{Records: []models.LicenseRecord{{Status: models.LicenseNotFound}}}, nil)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockProviders.EXPECT().UpdateVerification(gomock.Any(), p).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		attempt, err := s.service.VerifyLicense(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.OutcomeNotFound, attempt.Outcome)
		s.Equal("license 2705081693 not on file with the board", attempt.FailureDetail)
	})

	s.Run("no candidate above the bar reports not found", func() {
		p := testProvider()
		p.LicenseNumber = ""
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.expectBoard(p)
		s.mockBoard.EXPECT().SearchByName(gomock.Any(), "Blue Ridge Painting LLC").
			Return(&lookup.Result{
				Records: []models.LicenseRecord{
					{HolderName: "Tidewater Roofing Co", LicenseNumber: "2705999999"},
				},
			}, nil)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockProviders.EXPECT().UpdateVerification(gomock.Any(), p).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		attempt, err := s.service.VerifyLicense(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.OutcomeNotFound, attempt.Outcome)
		s.Equal(`no candidate matched "Blue Ridge Painting LLC"`, attempt.FailureDetail)
	})
}

func (s *ServiceSuite) TestVerifyLicenseRepeatRuns() {
	asOf := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), asOf)

	p := testProvider()
	record := models.LicenseRecord{
		HolderName:     "Blue Ridge Painting LLC",
		LicenseNumber:  "2705081693",
		Status:         models.LicenseActive,
		ExpirationDate: time.Date(2027, time.June, 30, 0, 0, 0, 0, time.UTC),
	}
	s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil).Times(2)
	s.mockBoards.EXPECT().Board(p.Region, p.Trade).Return(s.mockBoard, nil).Times(2)
	s.mockBoard.EXPECT().Region().Return(p.Region).AnyTimes()
	s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").
		Return(&lookup.Result{Records: []models.LicenseRecord{record}}, nil).Times(2)

	var logged []*models.VerificationAttempt
	s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, a *models.VerificationAttempt) { logged = append(logged, a) }).
		Return(nil).Times(2)
	s.mockProviders.EXPECT().UpdateVerification(gomock.Any(), p).Return(nil).Times(2)
	s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(2)

	first, err := s.service.VerifyLicense(ctx, p.ID)
	s.Require().NoError(err)
	second, err := s.service.VerifyLicense(ctx, p.ID)
	s.Require().NoError(err)

	// Each run appends its own entry; the provider's standing converges.
	s.Require().Len(logged, 2)
	s.NotEqual(first.ID, second.ID)
	s.Equal(first.Outcome, second.Outcome)
	s.Equal(models.OutcomeVerified, second.Outcome)
	s.Equal(models.StatusVerified, p.Status)
}

func (s *ServiceSuite) TestVerifyLicenseRetries() {
	ctx := context.Background()

	s.Run("transient failure retries until success", func() {
		p := testProvider()
		transient := &lookup.TransportError{Op: "board search", Err: errors.New("connection reset")}
		record := models.LicenseRecord{
			HolderName:     "Blue Ridge Painting LLC",
			LicenseNumber:  "2705081693",
			Status:         models.LicenseActive,
			ExpirationDate: time.Now().UTC().AddDate(1, 0, 0),
		}
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.expectBoard(p)
		gomock.InOrder(
			s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").Return(nil, transient),
			s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").
				Return(&lookup.Result{Records: []models.LicenseRecord{record}}, nil),
		)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockProviders.EXPECT().UpdateVerification(gomock.Any(), p).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		attempt, err := s.service.VerifyLicense(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.OutcomeVerified, attempt.Outcome)
		s.Equal(1, attempt.RetryCount)
	})

	s.Run("persistent timeout consumes the whole schedule", func() {
		p := testProvider()
		p.Status = models.StatusVerified
		verifiedAt := time.Now().UTC().Add(-24 * time.Hour)
		p.LastVerifiedAt = &verifiedAt

		timeout := &lookup.TransportError{Op: "board search", Err: context.DeadlineExceeded}
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.expectBoard(p)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").Return(nil, timeout).Times(3)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		attempt, err := s.service.VerifyLicense(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.OutcomeLookupError, attempt.Outcome)
		s.Equal(2, attempt.RetryCount)
		s.Contains(attempt.FailureDetail, "lookup failed after 3 attempts")

		// The last known standing survives a lookup error.
		s.Equal(models.StatusVerified, p.Status)
		s.True(p.LastVerifiedAt.Equal(verifiedAt))
	})

	s.Run("parse failure never retries", func() {
		p := testProvider()
		parseErr := &lookup.ParseError{Reason: "results table not found"}
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.expectBoard(p)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").Return(nil, parseErr).Times(1)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		attempt, err := s.service.VerifyLicense(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.OutcomeLookupError, attempt.Outcome)
		s.Zero(attempt.RetryCount)
		s.Contains(attempt.FailureDetail, "results table not found")
	})

	s.Run("client mistakes fail fast", func() {
		p := testProvider()
		upstream := &lookup.UpstreamError{Op: "board search", StatusCode: 404, Status: "404 Not Found"}
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.expectBoard(p)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").Return(nil, upstream).Times(1)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		attempt, err := s.service.VerifyLicense(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.OutcomeLookupError, attempt.Outcome)
		s.Zero(attempt.RetryCount)
	})

	s.Run("sleeps follow the backoff schedule", func() {
		var delays []time.Duration
		s.service.sleep = func(_ context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		}
		p := testProvider()
		transient := &lookup.TransportError{Op: "board search", Err: errors.New("connection reset")}
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.expectBoard(p)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").Return(nil, transient).Times(3)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		_, err := s.service.VerifyLicense(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal([]time.Duration{time.Second, 2 * time.Second}, delays)
	})

	s.Run("cancellation interrupts the run without logging", func() {
		runCtx, cancel := context.WithCancel(ctx)
		s.service.sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }

		p := testProvider()
		transient := &lookup.TransportError{Op: "board search", Err: errors.New("connection reset")}
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.expectBoard(p)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").DoAndReturn(
			func(context.Context, string) (*lookup.Result, error) {
				cancel()
				return nil, transient
			})

		_, err := s.service.VerifyLicense(runCtx, p.ID)

		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}

func (s *ServiceSuite) TestVerifyLicenseGuards() {
	ctx := context.Background()

	s.Run("unknown provider returns not found", func() {
		providerID := id.NewProviderID()
		s.mockProviders.EXPECT().FindByID(gomock.Any(), providerID).Return(nil, notFoundErr(providerID))

		_, err := s.service.VerifyLicense(ctx, providerID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("provider store failure returns internal", func() {
		providerID := id.NewProviderID()
		s.mockProviders.EXPECT().FindByID(gomock.Any(), providerID).Return(nil, assert.AnError)

		_, err := s.service.VerifyLicense(ctx, providerID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("unregistered region fails before any portal call", func() {
		p := testProvider()
		p.Region = id.Region("TX")
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.mockBoards.EXPECT().Board(p.Region, p.Trade).
			Return(nil, dErrors.New(dErrors.CodeValidation, "no licensing board registered for region TX"))

		_, err := s.service.VerifyLicense(ctx, p.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("append failure surfaces internal", func() {
		p := testProvider()
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.expectBoard(p)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").
			Return(&lookup.Result{Records: []models.LicenseRecord{{Status: models.LicenseNotFound}}}, nil)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(assert.AnError)

		_, err := s.service.VerifyLicense(ctx, p.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("provider update failure surfaces internal", func() {
		p := testProvider()
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.expectBoard(p)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").
			Return(&lookup.Result{Records: []models.LicenseRecord{{Status: models.LicenseNotFound}}}, nil)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockProviders.EXPECT().UpdateVerification(gomock.Any(), p).Return(assert.AnError)

		_, err := s.service.VerifyLicense(ctx, p.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
