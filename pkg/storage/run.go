package storage

import (
	"context"

	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
)

// RunStorage persists evaluation runs and the per-team results they produced,
// so reports of earlier runs can be listed and re-exported.
type RunStorage interface {
	// StoreRun inserts the run header (everything but its results). Storing a
	// run that already exists updates its FinishedAt.
	StoreRun(ctx context.Context, run domain.Run) error
	// StoreTeamResults inserts results of the given run. The order of results is
	// preserved: a result's position is its index in the run plus offset.
	StoreTeamResults(ctx context.Context, runID domain.RunID, offset int, results ...domain.TeamResult) error
	// Runs returns the most recent runs, newest first, without their results.
	Runs(ctx context.Context, limit uint) ([]domain.Run, error)
	// RunByID returns the run including its results in spreadsheet order.
	// Returns nil when no run with the given ID exists.
	RunByID(ctx context.Context, ID domain.RunID) (*domain.Run, error)
}
