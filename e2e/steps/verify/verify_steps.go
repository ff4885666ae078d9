package verify

import (
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext is the slice of the e2e context these steps need.
type TestContext interface {
	GET(path string) error
	POST(path string) error
	Field(path string) (any, error)
	ProviderID() string
}

// RegisterSteps registers verification and attempt log step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &verifySteps{tc: tc}

	ctx.Step(`^I verify the configured provider$`, steps.verifyProvider)
	ctx.Step(`^the license outcome should be "([^"]*)"$`, steps.licenseOutcomeIs)
	ctx.Step(`^the provider status should be "([^"]*)"$`, steps.providerStatusIs)
	ctx.Step(`^I list the provider's attempts$`, steps.listProviderAttempts)
	ctx.Step(`^I list recent attempts$`, steps.listRecentAttempts)
	ctx.Step(`^the attempt list should not be empty$`, steps.attemptListNotEmpty)
}

type verifySteps struct {
	tc TestContext
}

func (s *verifySteps) verifyProvider() error {
	return s.tc.POST("/api/providers/" + s.tc.ProviderID() + "/verify")
}

func (s *verifySteps) licenseOutcomeIs(want string) error {
	got, err := s.tc.Field("license.outcome")
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected license outcome %q, got %v", want, got)
	}
	return nil
}

func (s *verifySteps) providerStatusIs(want string) error {
	got, err := s.tc.Field("provider.status")
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected provider status %q, got %v", want, got)
	}
	return nil
}

func (s *verifySteps) listProviderAttempts() error {
	return s.tc.GET("/api/providers/" + s.tc.ProviderID() + "/attempts")
}

func (s *verifySteps) listRecentAttempts() error {
	return s.tc.GET("/api/attempts/recent")
}

func (s *verifySteps) attemptListNotEmpty() error {
	attempts, err := s.tc.Field("attempts")
	if err != nil {
		return err
	}
	list, ok := attempts.([]any)
	if !ok {
		return fmt.Errorf("expected an attempts array, got %T", attempts)
	}
	if len(list) == 0 {
		return fmt.Errorf("expected at least one attempt")
	}
	return nil
}
