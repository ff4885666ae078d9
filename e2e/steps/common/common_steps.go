package common

import (
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext is the slice of the e2e context these steps need.
type TestContext interface {
	Status() int
	Field(path string) (any, error)
}

// RegisterSteps registers assertions shared by every feature.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^the response status should be (\d+)$`, steps.responseStatusIs)
	ctx.Step(`^the error code should be "([^"]*)"$`, steps.errorCodeIs)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) responseStatusIs(want int) error {
	if got := s.tc.Status(); got != want {
		return fmt.Errorf("expected status %d, got %d", want, got)
	}
	return nil
}

func (s *commonSteps) errorCodeIs(want string) error {
	got, err := s.tc.Field("error")
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected error code %q, got %v", want, got)
	}
	return nil
}
