package e2e

import (
	"github.com/cucumber/godog"

	"licensure/e2e/steps/common"
	"licensure/e2e/steps/lookup"
	"licensure/e2e/steps/verify"
)

// RegisterSteps registers all step definitions from the modular packages.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Generic response assertions shared by every feature
	common.RegisterSteps(ctx, tc)

	// On-demand lookup steps
	lookup.RegisterSteps(ctx, tc)

	// Verification and attempt log steps
	verify.RegisterSteps(ctx, tc)
}
