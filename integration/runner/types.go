package runner

import (
	"time"

	"github.com/google/uuid"
)

// StepAction names the API call a test step performs.
type StepAction string

const (
	ActionGenerate StepAction = "generate"
	ActionMatch    StepAction = "match"
	ActionExport   StepAction = "export"
	ActionBattle   StepAction = "battle"
	ActionReset    StepAction = "reset"
)

// TestSuite is a named sequence of steps run against one session.
// A suite that lists Cases is a sequence of other suite files instead.
type TestSuite struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Cases       []string   `json:"cases,omitempty"`
	Steps       []TestStep `json:"steps,omitempty"`
}

// IsSequence reports whether the suite only references other case files.
func (s TestSuite) IsSequence() bool {
	return len(s.Cases) > 0
}

// TestStep is a single API call plus the expectations checked on its outcome.
type TestStep struct {
	Name   string     `json:"name"`
	Action StepAction `json:"action"`

	// generate
	Count *int   `json:"count,omitempty"`
	Theme string `json:"theme,omitempty"`

	// match
	Description string `json:"description,omitempty"`

	// battle
	Champion          string `json:"champion,omitempty"`
	Opponent          string `json:"opponent,omitempty"`
	Environment       string `json:"environment,omitempty"`
	ChampionFromMatch bool   `json:"champion_from_match,omitempty"` // use the last exported match as champion

	Expectations Expectations `json:"expectations"`
}

// Expectations are checked against a step outcome. Unset fields are ignored.
type Expectations struct {
	StatusCode          *int     `json:"status_code,omitempty"`
	CollectionSize      *int     `json:"collection_size,omitempty"`
	MinCollectionSize   *int     `json:"min_collection_size,omitempty"`
	MatchFound          *bool    `json:"match_found,omitempty"`
	WinnerRequired      bool     `json:"winner_required,omitempty"`
	WinnerIn            []string `json:"winner_in,omitempty"`
	ResponseContains    []string `json:"response_contains,omitempty"`
	ResponseNotContains []string `json:"response_not_contains,omitempty"`
	ResponseRegex       string   `json:"response_regex,omitempty"`
	ResponseMinLength   *int     `json:"response_min_length,omitempty"`
	ResponseMaxLength   *int     `json:"response_max_length,omitempty"`
}

// Outcome is what a step observed from the API.
type Outcome struct {
	StatusCode     int
	ResponseText   string
	CollectionSize int
	MatchFound     bool
	Winner         string
}

type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

type TestResult struct {
	StepName     string
	Success      bool
	IsReset      bool
	StatusCode   int
	ResponseText string
	Error        error
	Duration     time.Duration
}

type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Error    error
	Duration time.Duration
	Session  uuid.UUID // ID of the session used for this run
}
