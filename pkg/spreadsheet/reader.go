// Package spreadsheet reads the course's team list from a Google sheet. The
// sheet is downloaded through its CSV export; its first row is a title row and
// the second row holds the column names.
package spreadsheet

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
	"github.com/samhab/hslu-devops-evaluation/pkg/logger"
	"github.com/samhab/hslu-devops-evaluation/pkg/serrors"
	"go.uber.org/zap"
)

// Column names as they appear in the header row of the team sheet.
const (
	ColumnTeamNr   = "Team Nr"
	ColumnTeamName = "Team Name"
	ColumnRepo     = "GitHub Repo URL"
	ColumnJira     = "Jira Board URL"
)

// headerRow is the zero-based index of the header row; rows above it are ignored.
const headerRow = 1

// Source provides the list of teams to evaluate.
//
//go:generate mockgen -package mockspreadsheet -source=reader.go -destination=mock/mockspreadsheet.go *
type Source interface {
	Teams(ctx context.Context, sheetURL string) ([]domain.Team, error)
}

// Reader downloads and parses the team sheet. It is safe for concurrent use.
type Reader struct {
	httpClient *http.Client
}

// Ensure Reader conforms to the Source interface at compile time.
var _ Source = (*Reader)(nil)

// New constructs a Reader using the given HTTP client.
func New(httpClient *http.Client) *Reader {
	return &Reader{httpClient: httpClient}
}

// Teams downloads the CSV export of sheetURL and returns one team per row
// that has a team number.
func (r *Reader) Teams(ctx context.Context, sheetURL string) ([]domain.Team, error) {
	exportURL := ExportURL(sheetURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid spreadsheet url")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not download spreadsheet")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return nil, serrors.With(serrors.ErrUnavailable,
			"could not download spreadsheet: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	teams, err := Parse(resp.Body)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "read team spreadsheet", zap.Int("teams", len(teams)))

	return teams, nil
}

// Parse reads the CSV export of the team sheet.
func Parse(r io.Reader) ([]domain.Team, error) {
	cr := csv.NewReader(r)
	// the title row has fewer cells than the table below it
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not parse spreadsheet")
	}
	if len(records) <= headerRow {
		return nil, serrors.With(serrors.ErrBadRequest, "spreadsheet has no header row")
	}

	idx, err := columnIndex(records[headerRow])
	if err != nil {
		return nil, err
	}

	cell := func(row []string, column string) string {
		i := idx[column]
		if i >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[i])
	}

	var teams []domain.Team
	for _, row := range records[headerRow+1:] {
		nr := cell(row, ColumnTeamNr)
		if nr == "" {
			continue
		}

		team := domain.Team{
			ID:   domain.NewTeamID(),
			Nr:   nr,
			Name: cell(row, ColumnTeamName),
		}
		if repo := cell(row, ColumnRepo); repo != "" {
			team.Repository = StripRepoURL(repo)
		}
		if board := cell(row, ColumnJira); board != "" {
			team.JiraBoard = StripJiraURL(board)
		}
		teams = append(teams, team)
	}

	return teams, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var missing []error
	for _, required := range []string{ColumnTeamNr, ColumnTeamName, ColumnRepo, ColumnJira} {
		if _, ok := idx[required]; !ok {
			missing = append(missing, fmt.Errorf("missing column %q", required))
		}
	}
	if len(missing) > 0 {
		return nil, serrors.Wrap(serrors.ErrBadRequest, errors.Join(missing...), "unexpected spreadsheet header")
	}

	return idx, nil
}
