package lookup

import (
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext is the slice of the e2e context these steps need.
type TestContext interface {
	GET(path string) error
	Field(path string) (any, error)
}

// RegisterSteps registers the on-demand lookup step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &lookupSteps{tc: tc}

	ctx.Step(`^I look up license "([^"]*)" in region "([^"]*)"$`, steps.lookupLicense)
	ctx.Step(`^the first record should have status "([^"]*)"$`, steps.firstRecordStatusIs)
	ctx.Step(`^the first record holder should contain "([^"]*)"$`, steps.firstRecordHolderContains)
}

type lookupSteps struct {
	tc TestContext
}

func (s *lookupSteps) lookupLicense(number, region string) error {
	return s.tc.GET(fmt.Sprintf("/api/license/lookup/%s/%s", region, number))
}

func (s *lookupSteps) firstRecordStatusIs(want string) error {
	got, err := s.tc.Field("records.0.status")
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected record status %q, got %v", want, got)
	}
	return nil
}

func (s *lookupSteps) firstRecordHolderContains(fragment string) error {
	got, err := s.tc.Field("records.0.holder_name")
	if err != nil {
		return err
	}
	holder, ok := got.(string)
	if !ok || !strings.Contains(holder, fragment) {
		return fmt.Errorf("expected holder containing %q, got %v", fragment, got)
	}
	return nil
}
