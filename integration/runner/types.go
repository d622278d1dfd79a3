package runner

import (
	"time"

	"github.com/google/uuid"
)

// Special action values that trigger non-generate requests
const (
	RestartAction = "RESTART_GAME"
)

// TestSuite defines one scripted playthrough
type TestSuite struct {
	Name                 string     `json:"name"`
	WorldSetting         string     `json:"world_setting"`
	CharacterDescription string     `json:"character_description"`
	Steps                []TestStep `json:"steps"`
}

// TestStep is one player action and what must hold after it
// Use action: "RESTART_GAME" to delete the game and initialize it again
type TestStep struct {
	Name         string       `json:"name,omitempty"`
	Action       string       `json:"action"`
	Expectations Expectations `json:"expect"`
}

// Expectations defines what to check after a step executes. The game
// invariants are always checked; these are extra.
type Expectations struct {
	SceneCount   *int     `json:"scene_count,omitempty"`
	MinHealth    *int     `json:"min_health,omitempty"`
	IsOver       *bool    `json:"is_over,omitempty"`
	Equipment    []string `json:"equipment,omitempty"` // names that must be held
	OutcomeRegex string   `json:"outcome_regex,omitempty"`
	// Accept a game-over rejection instead of a processed action
	AllowGameOver bool `json:"allow_game_over,omitempty"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	TestName string
	StepName string
	Success  bool
	Error    error
	Duration time.Duration
	Outcome  string
	IsReset  bool // restarts do not count toward pass/fail metrics
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Suite    TestSuite
	CaseFile string
	Results  []TestResult
	Error    error
	Duration time.Duration
	GameID   uuid.UUID
}

// Passed reports whether every counted step succeeded.
func (r TestRunResult) Passed() bool {
	if r.Error != nil {
		return false
	}
	for _, res := range r.Results {
		if !res.Success {
			return false
		}
	}
	return true
}
