package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/poke-arena/internal/arena"
	"github.com/jwebster45206/poke-arena/internal/handlers"
	"github.com/jwebster45206/poke-arena/pkg/state"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner executes live test suites against a running poke-arena API.
type Runner struct {
	BaseURL           string
	APIKey            string // sent as the caller key when set
	Client            *http.Client
	Logger            func(format string, args ...interface{})
	ErrorHandlingMode ErrorHandlingMode
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 90 * time.Second},
		Logger:            func(string, ...interface{}) {},
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

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence.
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)
		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}
		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// RunSuite executes a complete test suite on a fresh session.
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	sessionID, err := r.createSession(ctx)
	if err != nil {
		result.Error = fmt.Errorf("failed to create session: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}
	result.Session = sessionID

	// exported holds the last exported match profile for champion_from_match battles
	var exported string

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult := r.runStep(ctx, sessionID, step, &exported)
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}

		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

// runStep executes a step, retrying once when the model upstream fails.
func (r *Runner) runStep(ctx context.Context, sessionID uuid.UUID, step TestStep, exported *string) TestResult {
	var result TestResult
	for attempt := 1; attempt <= 2; attempt++ {
		result = r.executeStep(ctx, sessionID, step, exported)
		if result.Success || result.StatusCode != http.StatusBadGateway || expectsStatus(step, http.StatusBadGateway) {
			return result
		}
		if attempt == 1 {
			r.Logger("    Upstream failure, retrying step: %s", step.Name)
		}
	}
	return result
}

func expectsStatus(step TestStep, status int) bool {
	return step.Expectations.StatusCode != nil && *step.Expectations.StatusCode == status
}

func (r *Runner) executeStep(ctx context.Context, sessionID uuid.UUID, step TestStep, exported *string) TestResult {
	start := time.Now()
	result := TestResult{StepName: step.Name}

	outcome, err := r.perform(ctx, sessionID, step, exported)
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = err
		return result
	}
	result.StatusCode = outcome.StatusCode
	result.ResponseText = outcome.ResponseText
	result.IsReset = step.Action == ActionReset

	if err := CheckExpectations(step.Expectations, outcome); err != nil {
		result.Error = fmt.Errorf("expectation failed: %w", err)
		return result
	}

	result.Success = true
	return result
}

// perform issues the API call for step and gathers its outcome.
func (r *Runner) perform(ctx context.Context, sessionID uuid.UUID, step TestStep, exported *string) (Outcome, error) {
	sessionPath := "/v1/sessions/" + sessionID.String()

	switch step.Action {
	case ActionGenerate:
		var resp handlers.GenerateResponse
		out, err := r.call(ctx, http.MethodPost, sessionPath+"/generate",
			handlers.GenerateRequest{Count: step.Count, Theme: step.Theme}, &resp)
		if err != nil {
			return out, err
		}
		out.CollectionSize = len(resp.Collection)
		if out.StatusCode == http.StatusOK {
			out.ResponseText = strings.Join(resp.Collection.Names(), ", ")
		}
		return out, nil

	case ActionMatch:
		var resp arena.MatchResult
		out, err := r.call(ctx, http.MethodPost, sessionPath+"/match",
			handlers.MatchRequest{Description: step.Description}, &resp)
		if err != nil {
			return out, err
		}
		if resp.Match != nil {
			out.MatchFound = true
			out.ResponseText = resp.Match.Nom
		} else if resp.Warning != "" {
			out.ResponseText = resp.Warning
		}
		return out, nil

	case ActionExport:
		var text string
		out, err := r.call(ctx, http.MethodGet, sessionPath+"/match/export", nil, &text)
		if err != nil {
			return out, err
		}
		if out.StatusCode == http.StatusOK {
			*exported = text
			out.ResponseText = text
		}
		return out, nil

	case ActionBattle:
		champion := step.Champion
		if step.ChampionFromMatch {
			if *exported == "" {
				return Outcome{}, fmt.Errorf("champion_from_match requires a prior export step")
			}
			champion = *exported
		}
		var resp handlers.BattleResponse
		out, err := r.call(ctx, http.MethodPost, "/v1/battles", handlers.BattleRequest{
			Champion:    champion,
			Opponent:    step.Opponent,
			Environment: step.Environment,
		}, &resp)
		if err != nil {
			return out, err
		}
		if out.StatusCode == http.StatusOK {
			out.ResponseText = resp.Narrative
			out.Winner = resp.Winner
		}
		return out, nil

	case ActionReset:
		var sess state.Session
		out, err := r.call(ctx, http.MethodDelete, sessionPath, nil, &sess)
		if err != nil {
			return out, err
		}
		out.CollectionSize = len(sess.Collection)
		*exported = ""
		return out, nil
	}

	return Outcome{}, fmt.Errorf("unknown action %q", step.Action)
}

// call sends a JSON request and decodes a 2xx body into out. Non-2xx bodies
// are kept as the response text so error steps can be asserted on.
func (r *Runner) call(ctx context.Context, method, path string, body, out any) (Outcome, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Outcome{}, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.BaseURL+path, reader)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.APIKey != "" {
		req.Header.Set(handlers.APIKeyHeader, r.APIKey)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to execute %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to read response body: %w", err)
	}

	outcome := Outcome{StatusCode: resp.StatusCode}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome.ResponseText = string(raw)
		return outcome, nil
	}

	if s, ok := out.(*string); ok {
		*s = string(raw)
		return outcome, nil
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return outcome, fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
		}
	}
	return outcome, nil
}

func (r *Runner) createSession(ctx context.Context) (uuid.UUID, error) {
	var sess state.Session
	out, err := r.call(ctx, http.MethodPost, "/v1/sessions", nil, &sess)
	if err != nil {
		return uuid.Nil, err
	}
	if out.StatusCode != http.StatusCreated {
		return uuid.Nil, fmt.Errorf("create session returned %d: %s", out.StatusCode, out.ResponseText)
	}
	return sess.ID, nil
}

// CheckExpectations validates exp against what a step observed.
func CheckExpectations(exp Expectations, out Outcome) error {
	if exp.StatusCode != nil {
		if out.StatusCode != *exp.StatusCode {
			return fmt.Errorf("expected status %d, got %d: %s", *exp.StatusCode, out.StatusCode, out.ResponseText)
		}
	} else if out.StatusCode < 200 || out.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d: %s", out.StatusCode, out.ResponseText)
	}

	if exp.CollectionSize != nil && out.CollectionSize != *exp.CollectionSize {
		return fmt.Errorf("expected %d creatures, got %d", *exp.CollectionSize, out.CollectionSize)
	}
	if exp.MinCollectionSize != nil && out.CollectionSize < *exp.MinCollectionSize {
		return fmt.Errorf("expected at least %d creatures, got %d", *exp.MinCollectionSize, out.CollectionSize)
	}

	if exp.MatchFound != nil && out.MatchFound != *exp.MatchFound {
		return fmt.Errorf("expected match_found %t, got %t (%s)", *exp.MatchFound, out.MatchFound, out.ResponseText)
	}

	if exp.WinnerRequired && out.Winner == "" {
		return fmt.Errorf("expected a winner line in the narrative")
	}
	if len(exp.WinnerIn) > 0 {
		found := false
		for _, name := range exp.WinnerIn {
			if strings.EqualFold(strings.TrimSpace(name), out.Winner) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("expected winner in %v, got '%s'", exp.WinnerIn, out.Winner)
		}
	}

	if len(exp.ResponseContains) > 0 {
		lowerResponse := strings.ToLower(out.ResponseText)
		for _, expectedText := range exp.ResponseContains {
			if !strings.Contains(lowerResponse, strings.ToLower(expectedText)) {
				return fmt.Errorf("expected response to contain '%s', but it didn't", expectedText)
			}
		}
	}

	if len(exp.ResponseNotContains) > 0 {
		lowerResponse := strings.ToLower(out.ResponseText)
		for _, unexpectedText := range exp.ResponseNotContains {
			if strings.Contains(lowerResponse, strings.ToLower(unexpectedText)) {
				return fmt.Errorf("expected response to NOT contain '%s', but it did", unexpectedText)
			}
		}
	}

	if exp.ResponseRegex != "" {
		matched, err := regexp.MatchString(exp.ResponseRegex, out.ResponseText)
		if err != nil {
			return fmt.Errorf("invalid regex pattern: %w", err)
		}
		if !matched {
			return fmt.Errorf("response didn't match regex pattern: %s", exp.ResponseRegex)
		}
	}

	if exp.ResponseMinLength != nil && len(out.ResponseText) < *exp.ResponseMinLength {
		return fmt.Errorf("expected response length >= %d, got %d", *exp.ResponseMinLength, len(out.ResponseText))
	}
	if exp.ResponseMaxLength != nil && len(out.ResponseText) > *exp.ResponseMaxLength {
		return fmt.Errorf("expected response length <= %d, got %d", *exp.ResponseMaxLength, len(out.ResponseText))
	}

	return nil
}
