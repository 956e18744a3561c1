package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
)

type PgRun struct {
	ID             uuid.UUID    `db:"id"`
	Variant        string       `db:"variant"`
	SpreadsheetURL string       `db:"spreadsheet_url"`
	Deadline       time.Time    `db:"deadline"`
	StartedAt      time.Time    `db:"started_at"`
	FinishedAt     sql.NullTime `db:"finished_at"`
	CreatedAt      time.Time    `db:"created_at" goqu:"skipinsert"`
}

func (p *PgRun) ToDomain() *domain.Run {
	return &domain.Run{
		ID:             domain.RunID(p.ID),
		Variant:        domain.Variant(p.Variant),
		SpreadsheetURL: p.SpreadsheetURL,
		Deadline:       p.Deadline,
		StartedAt:      p.StartedAt,
		FinishedAt:     p.FinishedAt.Time,
	}
}

func (p *PgRun) FromDomain(run domain.Run) {
	*p = PgRun{
		ID:             uuid.UUID(run.ID),
		Variant:        string(run.Variant),
		SpreadsheetURL: run.SpreadsheetURL,
		Deadline:       run.Deadline,
		StartedAt:      run.StartedAt,
		FinishedAt: sql.NullTime{
			Time:  run.FinishedAt,
			Valid: !run.FinishedAt.IsZero(),
		},
	}
}

type PgTeamResult struct {
	TeamID   uuid.UUID `db:"team_id"`
	RunID    uuid.UUID `db:"run_id"`
	Position int       `db:"position"`

	TeamNr     string `db:"team_nr"`
	TeamName   string `db:"team_name"`
	Repository string `db:"repository"`
	JiraBoard  string `db:"jira_board"`

	Contributors    sql.NullString  `db:"contributors"`
	GitHubErrors    string          `db:"github_errors"`
	CompletedIssues sql.NullString  `db:"completed_issues"`
	Benchmarks      json.RawMessage `db:"benchmarks"`
	Checkout        json.RawMessage `db:"checkout"`

	CreatedAt time.Time `db:"created_at" goqu:"skipinsert"`
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}

	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}

	return &s.String
}

func (p *PgTeamResult) ToDomain() (*domain.TeamResult, error) {
	var benchmarks map[string]domain.BenchmarkResult
	if len(p.Benchmarks) > 0 {
		if err := json.Unmarshal(p.Benchmarks, &benchmarks); err != nil {
			return nil, fmt.Errorf("could not unmarshal benchmarks: %w", err)
		}
	}

	var checkout *domain.Checkout
	if len(p.Checkout) > 0 && string(p.Checkout) != "null" {
		checkout = &domain.Checkout{}
		if err := json.Unmarshal(p.Checkout, checkout); err != nil {
			return nil, fmt.Errorf("could not unmarshal checkout: %w", err)
		}
	}

	return &domain.TeamResult{
		Team: domain.Team{
			ID:         domain.TeamID(p.TeamID),
			Nr:         p.TeamNr,
			Name:       p.TeamName,
			Repository: p.Repository,
			JiraBoard:  p.JiraBoard,
		},
		Contributors:    stringPtr(p.Contributors),
		GitHubErrors:    p.GitHubErrors,
		CompletedIssues: stringPtr(p.CompletedIssues),
		Benchmarks:      benchmarks,
		Checkout:        checkout,
	}, nil
}

func (p *PgTeamResult) FromDomain(runID domain.RunID, position int, res domain.TeamResult) error {
	benchmarks, err := json.Marshal(res.Benchmarks)
	if err != nil {
		return fmt.Errorf("could not marshal benchmarks: %w", err)
	}
	checkout, err := json.Marshal(res.Checkout)
	if err != nil {
		return fmt.Errorf("could not marshal checkout: %w", err)
	}

	*p = PgTeamResult{
		TeamID:          uuid.UUID(res.Team.ID),
		RunID:           uuid.UUID(runID),
		Position:        position,
		TeamNr:          res.Team.Nr,
		TeamName:        res.Team.Name,
		Repository:      res.Team.Repository,
		JiraBoard:       res.Team.JiraBoard,
		Contributors:    nullString(res.Contributors),
		GitHubErrors:    res.GitHubErrors,
		CompletedIssues: nullString(res.CompletedIssues),
		Benchmarks:      benchmarks,
		Checkout:        checkout,
	}

	return nil
}

func pgTeamResultsToDomain(rows []PgTeamResult) ([]domain.TeamResult, error) {
	out := make([]domain.TeamResult, 0, len(rows))
	for _, row := range rows {
		d, err := row.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
