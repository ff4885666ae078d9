package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"licensure/internal/lookup"
	"licensure/internal/verify/models"
	id "licensure/pkg/domain"
	dErrors "licensure/pkg/domain-errors"
	"licensure/pkg/platform/sentinel"
	"licensure/pkg/requestcontext"
)

func (s *ServiceSuite) TestCheckInsurance() {
	asOf := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), asOf)

	policy := func(expiration time.Time) *models.InsuranceRecord {
		return &models.InsuranceRecord{
			Carrier:        "Erie Insurance",
			PolicyNumber:   "GL-4410023",
			CoverageAmount: 1_000_000,
			ExpirationDate: expiration,
		}
	}

	s.Run("current policy verifies", func() {
		p := testProvider()
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.mockCredentials.EXPECT().FindInsurance(gomock.Any(), p.ID).
			Return(policy(time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)), nil)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		attempt, err := s.service.CheckInsurance(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.CredentialInsurance, attempt.CredentialType)
		s.Equal(models.OutcomeVerified, attempt.Outcome)
		s.Empty(attempt.FailureDetail)

		// Insurance outcomes never touch the provider's license standing.
		s.Equal(models.StatusUnverified, p.Status)
		s.Nil(p.LastVerifiedAt)
	})

	s.Run("policy inside the expiry window verifies with a warning", func() {
		p := testProvider()
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.mockCredentials.EXPECT().FindInsurance(gomock.Any(), p.ID).
			Return(policy(time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)), nil)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		attempt, err := s.service.CheckInsurance(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.OutcomeVerified, attempt.Outcome)
		s.Equal("policy GL-4410023 expires soon, on 2026-03-12", attempt.FailureDetail)
	})

	s.Run("lapsed policy reports expired", func() {
		p := testProvider()
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.mockCredentials.EXPECT().FindInsurance(gomock.Any(), p.ID).
			Return(policy(time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)), nil)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		attempt, err := s.service.CheckInsurance(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.OutcomeExpired, attempt.Outcome)
		s.Equal("policy GL-4410023 expired 2026-01-15", attempt.FailureDetail)
		s.Equal(models.StatusUnverified, p.Status)
	})

	s.Run("missing policy reports not found", func() {
		p := testProvider()
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.mockCredentials.EXPECT().FindInsurance(gomock.Any(), p.ID).
			Return(nil, fmt.Errorf("insurance for %s: %w", p.ID, sentinel.ErrNotFound))
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		attempt, err := s.service.CheckInsurance(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.OutcomeNotFound, attempt.Outcome)
		s.Equal("no insurance policy on file", attempt.FailureDetail)
	})

	s.Run("credential store failure returns internal", func() {
		p := testProvider()
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.mockCredentials.EXPECT().FindInsurance(gomock.Any(), p.ID).Return(nil, assert.AnError)

		_, err := s.service.CheckInsurance(ctx, p.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("unknown provider returns not found", func() {
		providerID := id.NewProviderID()
		s.mockProviders.EXPECT().FindByID(gomock.Any(), providerID).Return(nil, notFoundErr(providerID))

		_, err := s.service.CheckInsurance(ctx, providerID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestCheckBond() {
	asOf := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), asOf)

	s.Run("current bond verifies", func() {
		p := testProvider()
		bond := &models.BondRecord{
			Surety:         "Western Surety",
			BondNumber:     "B-558201",
			BondAmount:     50_000,
			ExpirationDate: time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
		}
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.mockCredentials.EXPECT().FindBond(gomock.Any(), p.ID).Return(bond, nil)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		attempt, err := s.service.CheckBond(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.CredentialBond, attempt.CredentialType)
		s.Equal(models.OutcomeVerified, attempt.Outcome)
	})

	s.Run("lapsed bond reports expired", func() {
		p := testProvider()
		bond := &models.BondRecord{
			Surety:         "Western Surety",
			BondNumber:     "B-558201",
			ExpirationDate: time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC),
		}
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.mockCredentials.EXPECT().FindBond(gomock.Any(), p.ID).Return(bond, nil)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		attempt, err := s.service.CheckBond(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.OutcomeExpired, attempt.Outcome)
		s.Equal("bond B-558201 expired 2025-11-30", attempt.FailureDetail)
	})

	s.Run("missing bond reports not found", func() {
		p := testProvider()
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
		s.mockCredentials.EXPECT().FindBond(gomock.Any(), p.ID).
			Return(nil, fmt.Errorf("bond for %s: %w", p.ID, sentinel.ErrNotFound))
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		attempt, err := s.service.CheckBond(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.OutcomeNotFound, attempt.Outcome)
		s.Equal("no surety bond on file", attempt.FailureDetail)
	})
}

func (s *ServiceSuite) TestVerifyProvider() {
	asOf := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), asOf)

	s.Run("full check logs one attempt per credential", func() {
		p := testProvider()
		record := models.LicenseRecord{
			HolderName:     "Blue Ridge Painting LLC",
			LicenseNumber:  "2705081693",
			Status:         models.LicenseActive,
			ExpirationDate: time.Date(2027, time.June, 30, 0, 0, 0, 0, time.UTC),
		}
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil).Times(4)
		s.expectBoard(p)
		s.mockBoard.EXPECT().Lookup(gomock.Any(), "2705081693").
			Return(&lookup.Result{Records: []models.LicenseRecord{record}}, nil)
		s.mockCredentials.EXPECT().FindInsurance(gomock.Any(), p.ID).
			Return(&models.InsuranceRecord{
				PolicyNumber:   "GL-4410023",
				ExpirationDate: time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
			}, nil)
		s.mockCredentials.EXPECT().FindBond(gomock.Any(), p.ID).
			Return(&models.BondRecord{
				BondNumber:     "B-558201",
				ExpirationDate: time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
			}, nil)
		s.mockAttempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil).Times(3)
		s.mockProviders.EXPECT().UpdateVerification(gomock.Any(), p).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(3)

		report, err := s.service.VerifyProvider(ctx, p.ID)

		s.Require().NoError(err)
		s.Equal(models.OutcomeVerified, report.License.Outcome)
		s.Equal(models.OutcomeVerified, report.Insurance.Outcome)
		s.Equal(models.OutcomeExpired, report.Bond.Outcome)
		s.Equal("bond B-558201 expired 2026-01-10", report.Bond.FailureDetail)
		s.Equal(models.StatusVerified, report.Provider.Status)
		s.NotEqual(report.License.ID, report.Insurance.ID)
		s.NotEqual(report.Insurance.ID, report.Bond.ID)
	})

	s.Run("license failure stops the run before credential checks", func() {
		p := testProvider()
		p.Region = id.Region("TX")
		s.mockProviders.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil).Times(1)
		s.mockBoards.EXPECT().Board(p.Region, p.Trade).
			Return(nil, dErrors.New(dErrors.CodeValidation, "no licensing board registered for region TX"))

		_, err := s.service.VerifyProvider(ctx, p.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}
