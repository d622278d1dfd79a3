//go:build integration

package integration

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jwebster45206/ascent-engine/integration/runner"
)

var caseFlag = flag.String("case", "", "Name of test case to run (from integration/cases/)")
var errFlag = flag.String("err", "continue", "Error handling mode: 'continue' (run all steps) or 'exit' (stop on first failure)")
var runsFlag = flag.Int("runs", 1, "Number of times to run each test suite (useful for testing non-deterministic behavior)")

func apiBaseURL() string {
	if v := os.Getenv("API_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:3000"
}

// TestIntegrationSuites plays every case against a running API. The API
// holds a single game, so suites run one after another.
func TestIntegrationSuites(t *testing.T) {
	fmt.Printf("Running Ascent Engine Integration Tests\n")
	fmt.Printf("   API Base URL: %s\n", apiBaseURL())

	testRunner := runner.NewRunner(apiBaseURL())
	testRunner.ErrorHandlingMode = runner.ErrorHandlingMode(*errFlag)
	testRunner.Logger = func(format string, args ...any) {
		fmt.Printf(format+"\n", args...)
	}

	testFiles, err := runner.DiscoverTestFiles("cases")
	if err != nil {
		t.Fatalf("Failed to discover test files: %v", err)
	}
	if len(testFiles) == 0 {
		t.Fatal("No test files found in cases directory")
	}

	ran := 0
	for _, file := range testFiles {
		name := strings.TrimSuffix(filepath.Base(file), ".json")
		if *caseFlag != "" && *caseFlag != name {
			continue
		}
		suite, err := runner.LoadTestSuite(file)
		if err != nil {
			t.Errorf("Failed to load test suite %s: %v", file, err)
			continue
		}

		for run := 1; run <= *runsFlag; run++ {
			ran++
			t.Run(fmt.Sprintf("%s/run_%d", suite.Name, run), func(t *testing.T) {
				result := testRunner.Run(suite, file)
				if result.Error != nil {
					t.Fatalf("Suite failed: %v", result.Error)
				}
				for _, res := range result.Results {
					if !res.Success {
						t.Errorf("%s: %v", res.StepName, res.Error)
					}
				}
			})
		}
	}
	if ran == 0 {
		t.Fatalf("No test case matched %q", *caseFlag)
	}
}
