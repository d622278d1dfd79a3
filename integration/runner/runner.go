package runner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/jwebster45206/ascent-engine/pkg/world"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// errGameOver is returned by act when the API rejects an action because
// the game has ended.
var errGameOver = errors.New("game has ended")

// Runner plays scripted games against a running ascent-engine API
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Logger            func(format string, args ...any)
	ErrorHandlingMode ErrorHandlingMode
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 5 * time.Minute},
		Logger:            func(string, ...any) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}
	if suite.WorldSetting == "" || suite.CharacterDescription == "" {
		return TestSuite{}, fmt.Errorf("test file %s needs world_setting and character_description", filename)
	}
	return suite, nil
}

// DiscoverTestFiles lists the case files in dir in name order.
func DiscoverTestFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Run plays one suite from a fresh game. The game is deleted first.
func (r *Runner) Run(suite TestSuite, caseFile string) TestRunResult {
	start := time.Now()
	result := TestRunResult{Suite: suite, CaseFile: caseFile}

	gs, err := r.restart(suite)
	if err != nil {
		result.Error = fmt.Errorf("failed to start game: %w", err)
		result.Duration = time.Since(start)
		return result
	}
	result.GameID = gs.ID
	r.Logger("  %s: started %s in %s", suite.Name, gs.Player.Name, locationOf(gs))

	prev := gs
	for i, step := range suite.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}
		res, next := r.runStep(suite, step, name, prev)
		result.Results = append(result.Results, res)
		if next != nil {
			prev = next
		}
		if !res.Success {
			r.Logger("  FAIL %s: %v", name, res.Error)
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
		} else {
			r.Logger("  ok   %s (%s)", name, res.Duration.Round(time.Millisecond))
		}
	}

	result.Duration = time.Since(start)
	return result
}

func (r *Runner) runStep(suite TestSuite, step TestStep, name string, prev *world.GameState) (TestResult, *world.GameState) {
	start := time.Now()
	res := TestResult{TestName: suite.Name, StepName: name}

	if step.Action == RestartAction {
		res.IsReset = true
		gs, err := r.restart(suite)
		res.Duration = time.Since(start)
		res.Error = err
		res.Success = err == nil
		return res, gs
	}

	outcome, err := r.act(step.Action)
	res.Outcome = outcome
	if errors.Is(err, errGameOver) && step.Expectations.AllowGameOver && prev.GameOver {
		res.Duration = time.Since(start)
		res.Success = true
		return res, prev
	}
	if err != nil {
		res.Duration = time.Since(start)
		res.Error = err
		return res, nil
	}

	gs, err := r.state()
	res.Duration = time.Since(start)
	if err != nil {
		res.Error = err
		return res, nil
	}
	if err := CheckTurn(prev, gs); err != nil {
		res.Error = err
		return res, gs
	}
	if err := checkExpectations(step.Expectations, gs, outcome); err != nil {
		res.Error = err
		return res, gs
	}
	res.Success = true
	return res, gs
}

// CheckTurn verifies what must hold between two committed states one turn
// apart, on top of each state's own invariants.
func CheckTurn(prev, next *world.GameState) error {
	if err := next.Validate(); err != nil {
		return fmt.Errorf("invariants violated: %w", err)
	}
	if len(next.Scenes) != len(prev.Scenes)+1 {
		return fmt.Errorf("expected %d scenes after the turn, got %d", len(prev.Scenes)+1, len(next.Scenes))
	}
	if next.Player.Tier < prev.Player.Tier || next.Player.Tier > prev.Player.Tier+1 {
		return fmt.Errorf("tier moved from %d to %d", prev.Player.Tier, next.Player.Tier)
	}
	if next.Player.Luck != prev.Player.Luck {
		return fmt.Errorf("luck changed from %.3f to %.3f", prev.Player.Luck, next.Player.Luck)
	}
	return nil
}

func checkExpectations(exp Expectations, gs *world.GameState, outcome string) error {
	var errs []error
	if exp.SceneCount != nil && len(gs.Scenes) != *exp.SceneCount {
		errs = append(errs, fmt.Errorf("expected %d scenes, got %d", *exp.SceneCount, len(gs.Scenes)))
	}
	if exp.MinHealth != nil && gs.Player.Health < *exp.MinHealth {
		errs = append(errs, fmt.Errorf("expected health >= %d, got %d", *exp.MinHealth, gs.Player.Health))
	}
	if exp.IsOver != nil && gs.GameOver != *exp.IsOver {
		errs = append(errs, fmt.Errorf("expected gameOver %t, got %t", *exp.IsOver, gs.GameOver))
	}
	held := make([]string, 0, len(gs.Equipment))
	for _, item := range gs.Equipment {
		held = append(held, strings.ToLower(item.Name))
	}
	for _, name := range exp.Equipment {
		if !slices.Contains(held, strings.ToLower(name)) {
			errs = append(errs, fmt.Errorf("expected %q in equipment, have %v", name, held))
		}
	}
	if exp.OutcomeRegex != "" {
		re, err := regexp.Compile(exp.OutcomeRegex)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid outcome_regex: %w", err))
		} else if !re.MatchString(outcome) {
			errs = append(errs, fmt.Errorf("outcome %q does not match %s", outcome, exp.OutcomeRegex))
		}
	}
	return errors.Join(errs...)
}

func (r *Runner) restart(suite TestSuite) (*world.GameState, error) {
	if _, err := r.do(http.MethodDelete, "/api/state", nil, nil); err != nil {
		return nil, fmt.Errorf("failed to delete game: %w", err)
	}
	body := map[string]string{
		"worldSetting":         suite.WorldSetting,
		"characterDescription": suite.CharacterDescription,
	}
	if _, err := r.do(http.MethodPost, "/api/init", body, nil); err != nil {
		return nil, fmt.Errorf("failed to initialize game: %w", err)
	}
	gs, err := r.state()
	if err != nil {
		return nil, err
	}
	if err := gs.Validate(); err != nil {
		return nil, fmt.Errorf("opening state invalid: %w", err)
	}
	return gs, nil
}

func (r *Runner) act(action string) (string, error) {
	var resp struct {
		Outcome string `json:"outcome"`
	}
	status, err := r.do(http.MethodPost, "/api/generate", map[string]string{"input": action}, &resp)
	if status == http.StatusBadRequest && err != nil && strings.Contains(err.Error(), "Game has ended") {
		return "", errGameOver
	}
	return resp.Outcome, err
}

// state fetches the full document so invariants can see hidden creatures.
func (r *Runner) state() (*world.GameState, error) {
	var gs world.GameState
	if _, err := r.do(http.MethodGet, "/api/state", nil, &gs); err != nil {
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}
	return &gs, nil
}

func (r *Runner) do(method, path string, in, out any) (int, error) {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, r.BaseURL+path, reqBody)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func locationOf(gs *world.GameState) string {
	if s := gs.CurrentScene(); s != nil {
		return s.Location
	}
	return "nowhere"
}
