// Package report turns team results into the CSV tables published after a run.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
)

const (
	// MainFile is the file name of the main results table.
	MainFile = "evaluation_results.csv"

	// NotRun is the benchmark cell of a game that was not run for a team.
	NotRun = "-"

	separator = ';'
)

// OverviewFile returns the file name of a game's test overview table.
func OverviewFile(game string) string {
	return game + "_test_overview.csv"
}

// Table is a header plus rows of equal width.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the table has neither columns nor rows.
func (t Table) Empty() bool {
	return len(t.Columns) == 0 && len(t.Rows) == 0
}

func optional(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// MainTable renders one row per team, in result order, with a benchmark
// column per game.
func MainTable(results []domain.TeamResult, games []string) Table {
	if len(results) == 0 {
		return Table{}
	}

	t := Table{Columns: []string{
		"team_id",
		"team_name",
		"repository",
		"contributors",
		"github_errors",
		"jira_board",
		"completed_jira_issues",
	}}
	for _, game := range games {
		t.Columns = append(t.Columns, game+"_benchmark")
	}

	for _, res := range results {
		row := []string{
			res.Team.Nr,
			res.Team.Name,
			res.Team.Repository,
			optional(res.Contributors),
			res.GitHubErrors,
			res.Team.JiraBoard,
			optional(res.CompletedIssues),
		}
		for _, game := range games {
			cell := NotRun
			if b, ok := res.Benchmarks[game]; ok {
				cell = b.Overall
			}
			row = append(row, cell)
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}

// TestOverview renders the individual test outcomes of one game. Only teams
// with at least one parsed test get a row. Test columns ("<nr>: <name>") appear
// in the order they were first seen; cells are 1 (passed), 0 (failed) or empty
// when a team's run did not report the test.
func TestOverview(results []domain.TeamResult, game string) Table {
	type row struct {
		team  domain.Team
		cells map[string]string
	}

	var (
		columns []string
		seen    = map[string]struct{}{}
		rows    []row
	)
	for _, res := range results {
		b, ok := res.Benchmarks[game]
		if !ok || len(b.Tests) == 0 {
			continue
		}

		r := row{team: res.Team, cells: make(map[string]string, len(b.Tests))}
		for _, test := range b.Tests {
			col := fmt.Sprintf("%d: %s", test.Nr, test.Name)
			if _, ok := seen[col]; !ok {
				seen[col] = struct{}{}
				columns = append(columns, col)
			}
			r.cells[col] = "0"
			if test.Passed {
				r.cells[col] = "1"
			}
		}
		rows = append(rows, r)
	}
	if len(rows) == 0 {
		return Table{}
	}

	t := Table{Columns: append([]string{"team_id", "team_name"}, columns...)}
	for _, r := range rows {
		line := []string{r.team.Nr, r.team.Name}
		for _, col := range columns {
			line = append(line, r.cells[col])
		}
		t.Rows = append(t.Rows, line)
	}

	return t
}

// Write stores the table as ';' separated CSV at dir/name and returns the path.
// An empty table is written as a single newline.
func Write(dir, name string, t Table) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create report dir: %w", err)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not create %s: %w", name, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if t.Empty() {
		if _, err := f.WriteString("\n"); err != nil {
			return "", fmt.Errorf("could not write %s: %w", name, err)
		}
	} else {
		w := csv.NewWriter(f)
		w.Comma = separator
		if err := w.Write(t.Columns); err != nil {
			return "", fmt.Errorf("could not write %s header: %w", name, err)
		}
		if err := w.WriteAll(t.Rows); err != nil {
			return "", fmt.Errorf("could not write %s rows: %w", name, err)
		}
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("could not close %s: %w", name, err)
	}

	return path, nil
}

// File is a table and the name it is written under.
type File struct {
	Name  string
	Table Table
}

// Build returns the main table followed by the test overview of every overview game.
func Build(results []domain.TeamResult, games, overviewGames []string) []File {
	files := []File{{Name: MainFile, Table: MainTable(results, games)}}
	for _, game := range overviewGames {
		files = append(files, File{Name: OverviewFile(game), Table: TestOverview(results, game)})
	}

	return files
}

// WriteAll writes every file into dir and returns the written paths in order.
func WriteAll(dir string, files []File) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		path, err := Write(dir, file.Name, file.Table)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}
