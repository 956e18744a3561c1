package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TeamID identifies a team within one evaluation run. It is generated when the
// spreadsheet is read and names the team's scratch directory.
type TeamID uuid.UUID

// String returns the canonical UUID representation.
func (id TeamID) String() string { return uuid.UUID(id).String() }

// NewTeamID returns a random TeamID.
func NewTeamID() TeamID { return TeamID(uuid.New()) }

// Team is one row of the course spreadsheet.
type Team struct {
	// ID is generated per run; it is not part of the spreadsheet.
	ID TeamID
	// Nr is the team number as written in the spreadsheet.
	Nr string
	// Name is the team name; empty when the cell was empty.
	Name string
	// Repository is the GitHub repository URL; empty when absent.
	Repository string
	// JiraBoard is the Jira site URL; empty when absent.
	JiraBoard string
}

// Contribution pairs a person with a count, e.g. commits or completed issues.
type Contribution struct {
	Name  string
	Count int
}

// FormatCounts renders contributions the way they appear in the reports:
// "alice (3), bob (1)".
func FormatCounts(cs []Contribution) string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, fmt.Sprintf("%s (%d)", c.Name, c.Count))
	}

	return strings.Join(parts, ", ")
}

// Without returns the contributions whose name is not in names, keeping order.
func Without(cs []Contribution, names ...string) []Contribution {
	skip := make(map[string]struct{}, len(names))
	for _, n := range names {
		skip[n] = struct{}{}
	}

	out := make([]Contribution, 0, len(cs))
	for _, c := range cs {
		if _, ok := skip[c.Name]; ok {
			continue
		}
		out = append(out, c)
	}

	return out
}
