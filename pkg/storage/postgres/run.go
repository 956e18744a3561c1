package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
)

const (
	runsTable        = "runs"
	teamResultsTable = "team_results"
)

// StoreRun inserts the run header or, when the run already exists, updates its finished_at.
func (p *PgSQL) StoreRun(ctx context.Context, run domain.Run) error {
	var row PgRun
	row.FromDomain(run)

	if _, err := p.Builder.Insert(runsTable).
		Rows(row).
		OnConflict(goqu.DoUpdate("id", goqu.Record{
			"finished_at": goqu.L("EXCLUDED.finished_at"),
		})).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not store run into pg: %w", err)
	}

	return nil
}

// StoreTeamResults inserts results at positions offset, offset+1, ...
func (p *PgSQL) StoreTeamResults(ctx context.Context,
	runID domain.RunID,
	offset int,
	results ...domain.TeamResult) error {
	if len(results) == 0 {
		return nil
	}

	rows := make([]PgTeamResult, len(results))
	for i := range results {
		if err := rows[i].FromDomain(runID, offset+i, results[i]); err != nil {
			return err
		}
	}

	if _, err := p.Builder.Insert(teamResultsTable).Rows(rows).Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not store team results into pg: %w", err)
	}

	return nil
}

// Runs returns the latest runs ordered by started_at DESC, id DESC.
func (p *PgSQL) Runs(ctx context.Context, limit uint) ([]domain.Run, error) {
	ds := p.Builder.From(runsTable).
		Order(goqu.I("started_at").Desc(), goqu.I("id").Desc())
	if limit > 0 {
		ds = ds.Limit(limit)
	}

	var rows []PgRun
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch runs from pg: %w", err)
	}

	out := make([]domain.Run, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}

	return out, nil
}

// RunByID returns a run with its results ordered by position, or nil when not found.
func (p *PgSQL) RunByID(ctx context.Context, id domain.RunID) (*domain.Run, error) {
	var row PgRun
	found, err := p.Builder.From(runsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch run from pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	var rows []PgTeamResult
	if err := p.Builder.From(teamResultsTable).
		Where(goqu.I("run_id").Eq(uuid.UUID(id))).
		Order(goqu.I("position").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch team results from pg: %w", err)
	}

	results, err := pgTeamResultsToDomain(rows)
	if err != nil {
		return nil, err
	}

	run := row.ToDomain()
	run.Results = results

	return run, nil
}
