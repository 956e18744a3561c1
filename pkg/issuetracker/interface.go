// Package issuetracker defines the interface used to collect completed work
// items per person from a team's issue tracker.
package issuetracker

import (
	"context"

	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
)

// Client is the abstraction for issue trackers. Implementations count the
// completed issues of a board per assignee.
//
// Errors returned by implementations carry a message that is shown as-is in
// the evaluation report, so it must be readable without the wrapped cause.
//
//go:generate mockgen -package mockissuetracker -source=interface.go -destination=mock/mockissuetracker.go *
type Client interface {
	// CompletedIssues returns the number of done issues per assignee of the
	// board at boardURL, in order of first appearance (newest issues first).
	// Unassigned issues are not counted.
	CompletedIssues(ctx context.Context, boardURL string) ([]domain.Contribution, error)
}
