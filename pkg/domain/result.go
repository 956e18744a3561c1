package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NoErrors is the GitHubErrors value of a team whose repository was evaluated
// without problems.
const NoErrors = "no errors"

// TestResult is the outcome of a single benchmark test case.
type TestResult struct {
	Nr     int    `json:"nr"`
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

// BenchmarkResult holds the outcome of one game benchmark. Overall is either the
// two-line summary printed by the benchmark ("Tests: 10/12 valid\nMark:  8/10 points")
// or, when the benchmark could not produce one, the failure message.
type BenchmarkResult struct {
	Overall string       `json:"overall"`
	Tests   []TestResult `json:"tests,omitempty"`
}

// Checkout describes the commit that was evaluated for a team.
type Checkout struct {
	// Commit is the abbreviated hash of the evaluated commit.
	Commit string `json:"commit"`
	// Date is the commit's author date.
	Date time.Time `json:"date"`
	// CommitsAfter is the number of commits made after the deadline.
	CommitsAfter int `json:"commitsAfter"`
}

// TeamResult collects everything evaluated for one team.
type TeamResult struct {
	Team Team

	// Contributors is the formatted commit count per author. Nil when the
	// repository could not be evaluated.
	Contributors *string
	// GitHubErrors is NoErrors or a description of what went wrong with the repository.
	GitHubErrors string
	// CompletedIssues is the formatted Done-issue count per assignee, or the Jira
	// error message. Nil when the team has no Jira board.
	CompletedIssues *string
	// Benchmarks maps the game name to its result. Games that were not run are absent.
	Benchmarks map[string]BenchmarkResult
	// Checkout is the evaluated commit; nil when nothing was checked out.
	Checkout *Checkout
}

// RunID uniquely identifies an evaluation run.
type RunID uuid.UUID

// String returns the canonical UUID representation.
func (id RunID) String() string { return uuid.UUID(id).String() }

// ParseRunID parses the canonical UUID representation of a run ID.
func ParseRunID(s string) (RunID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return RunID{}, fmt.Errorf("invalid run id %q: %w", s, err)
	}

	return RunID(id), nil
}

// Variant names the kind of evaluation a run performed.
type Variant string

const (
	// VariantGitHub evaluates repositories, Jira boards and benchmarks.
	VariantGitHub Variant = "github"
	// VariantTeamwork evaluates repositories and Jira boards only.
	VariantTeamwork Variant = "teamwork"
)

// Run groups the results of one invocation of the tool.
type Run struct {
	ID             RunID
	Variant        Variant
	SpreadsheetURL string
	Deadline       time.Time
	StartedAt      time.Time
	FinishedAt     time.Time
	Results        []TeamResult
}

// NewRun creates a run with a fresh ID.
func NewRun(variant Variant, spreadsheetURL string, deadline time.Time) *Run {
	return &Run{
		ID:             RunID(uuid.New()),
		Variant:        variant,
		SpreadsheetURL: spreadsheetURL,
		Deadline:       deadline,
		StartedAt:      time.Now(),
	}
}
