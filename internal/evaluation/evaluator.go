// Package evaluation evaluates every team of the course spreadsheet: its
// repository, its Jira board and (for the GitHub variant) its game benchmarks.
package evaluation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samhab/hslu-devops-evaluation/internal/config"
	"github.com/samhab/hslu-devops-evaluation/pkg/benchmark"
	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
	"github.com/samhab/hslu-devops-evaluation/pkg/gitrepo"
	"github.com/samhab/hslu-devops-evaluation/pkg/issuetracker"
	"github.com/samhab/hslu-devops-evaluation/pkg/logger"
	"github.com/samhab/hslu-devops-evaluation/pkg/serrors"
	"github.com/samhab/hslu-devops-evaluation/pkg/spreadsheet"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Texts of the github_errors column.
const (
	MsgNoRepository  = "No repository url in spreadsheet"
	MsgCloneFailed   = "Error when cloning repo: "
	MsgCheckoutFail  = "Error when checking out last commit before deadline: "
	MsgHistoryFailed = "Error when reading commit history: "
)

// Outcomes recorded per team.
const (
	OutcomeOK           = "ok"
	OutcomeNoRepository = "no_repository"
	OutcomeRepoFailed   = "repository_failed"
)

// Recorder receives statistics about evaluated teams.
type Recorder interface {
	TeamEvaluated(ctx context.Context, outcome string, took time.Duration)
	BenchmarkRun(ctx context.Context, game, outcome string)
}

// Options configure how teams are evaluated.
// These settings are typically derived from application configuration.
type Options struct {
	// Variant decides whether benchmarks are run.
	Variant domain.Variant
	// TempDir receives one clone per team and the master repository.
	TempDir string
	// Deadline selects the evaluated commit of every repository.
	Deadline time.Time
	// Workers is the number of teams evaluated concurrently.
	Workers int
	// MaxTeams limits the number of evaluated teams; 0 evaluates all.
	MaxTeams int
	// Lecturers are removed from the commit statistics.
	Lecturers []string
}

// NewOptions constructs an Options value from the provided application config.
// The deadline is parsed relative to now.
func NewOptions(cfg *config.Config, variant domain.Variant, now time.Time) (Options, error) {
	deadline, err := gitrepo.ParseDeadline(cfg.Deadline, now)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Variant:   variant,
		TempDir:   cfg.TempDir,
		Deadline:  deadline,
		Workers:   cfg.Evaluation.Workers,
		MaxTeams:  cfg.Evaluation.MaxTeams,
		Lecturers: cfg.Evaluation.Lecturers,
	}, nil
}

// Dependencies are the external systems an evaluator talks to. Benchmarks may
// be nil for the teamwork variant; Metrics may be nil.
type Dependencies struct {
	Teams      spreadsheet.Source
	Git        gitrepo.Client
	Issues     issuetracker.Client
	Benchmarks benchmark.Runner
	Metrics    Recorder
}

// evaluator is the concrete implementation of the Evaluator interface.
type evaluator struct {
	options Options
	deps    Dependencies
}

// New creates a new Evaluator backed by the given dependencies.
func New(deps Dependencies, options Options) Evaluator {
	if options.Workers < 1 {
		options.Workers = 1
	}

	return &evaluator{options: options, deps: deps}
}

func (e *evaluator) benchmarks() bool {
	return e.options.Variant == domain.VariantGitHub && e.deps.Benchmarks != nil
}

// Evaluate reads the teams of the spreadsheet and evaluates them with a bounded
// number of workers. Results keep the spreadsheet order.
func (e *evaluator) Evaluate(ctx context.Context, sheetURL string) (*domain.Run, error) {
	run := domain.NewRun(e.options.Variant, sheetURL, e.options.Deadline)
	ctx = logger.WithFields(ctx, zap.String("runID", run.ID.String()), zap.String("variant", string(run.Variant)))

	teams, err := e.deps.Teams.Teams(ctx, sheetURL)
	if err != nil {
		return nil, fmt.Errorf("could not read teams: %w", err)
	}
	if e.options.MaxTeams > 0 && len(teams) > e.options.MaxTeams {
		teams = teams[:e.options.MaxTeams]
	}
	logger.Info(ctx, "Evaluating teams",
		zap.Int("teams", len(teams)),
		zap.Time("deadline", e.options.Deadline),
		zap.Int("workers", e.options.Workers))

	if err := os.MkdirAll(e.options.TempDir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create temp dir: %w", err)
	}

	var masterDir string
	if e.benchmarks() {
		masterDir, err = e.deps.Benchmarks.Prepare(ctx, e.options.TempDir)
		if err != nil {
			return nil, fmt.Errorf("could not prepare benchmarks: %w", err)
		}
		defer func() {
			if err := os.RemoveAll(masterDir); err != nil {
				logger.Warn(ctx, "could not remove master repository", zap.Error(err))
			}
		}()
	}

	results := make([]domain.TeamResult, len(teams))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.options.Workers)
	for i, team := range teams {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err //nolint: wrapcheck
			}
			results[i] = e.EvaluateTeam(gctx, team, masterDir)

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluation interrupted: %w", err)
	}
	// teams still in progress report a cancellation as a row error
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluation interrupted: %w", err)
	}

	run.Results = results
	run.FinishedAt = time.Now()
	logger.Info(ctx, "Evaluation finished", zap.Duration("took", run.FinishedAt.Sub(run.StartedAt)))

	return run, nil
}

// EvaluateTeam evaluates one team. Problems never fail the evaluation; they are
// reported in the team's result instead.
func (e *evaluator) EvaluateTeam(ctx context.Context, team domain.Team, masterDir string) domain.TeamResult {
	ctx = logger.WithFields(ctx, zap.String("teamNr", team.Nr), zap.String("team", team.Name))
	start := time.Now()

	res := domain.TeamResult{Team: team, GitHubErrors: domain.NoErrors}
	outcome := OutcomeOK

	if team.Repository == "" {
		res.GitHubErrors = MsgNoRepository
		outcome = OutcomeNoRepository
	} else {
		logger.Info(ctx, "Check repository of team", zap.String("repository", team.Repository))

		dir := filepath.Join(e.options.TempDir, team.ID.String())
		if msg := e.evaluateRepository(ctx, dir, masterDir, &res); msg != "" {
			res.GitHubErrors = msg
			outcome = OutcomeRepoFailed
		}
		if err := os.RemoveAll(dir); err != nil {
			logger.Warn(ctx, "could not remove team repository", zap.Error(err))
		}
	}

	if team.JiraBoard != "" {
		var cell string
		issues, err := e.deps.Issues.CompletedIssues(ctx, team.JiraBoard)
		if err != nil {
			logger.Warn(ctx, "could not evaluate jira board",
				zap.String("board", team.JiraBoard),
				zap.String("kind", serrors.KindOf(err).Error()),
				zap.Error(err))
			cell = serrors.Message(err)
		} else {
			cell = domain.FormatCounts(issues)
		}
		res.CompletedIssues = &cell
	}

	if e.deps.Metrics != nil {
		e.deps.Metrics.TeamEvaluated(ctx, outcome, time.Since(start))
	}

	return res
}

// evaluateRepository clones the team repository into dir, checks out the last
// commit before the deadline and fills contributors and benchmarks of res.
// It returns the github_errors text on failure.
func (e *evaluator) evaluateRepository(ctx context.Context, dir, masterDir string, res *domain.TeamResult) string {
	if err := e.deps.Git.Clone(ctx, res.Team.Repository, dir); err != nil {
		logger.Warn(ctx, "could not clone repository", zap.String("kind", serrors.KindOf(err).Error()), zap.Error(err))

		return MsgCloneFailed + serrors.Message(err)
	}

	checkout, err := e.deps.Git.CheckoutBefore(ctx, dir, e.options.Deadline)
	if err != nil {
		logger.Warn(ctx, "could not checkout commit before deadline", zap.Error(err))

		return MsgCheckoutFail + serrors.Message(err)
	}
	res.Checkout = &checkout

	contributions, err := e.deps.Git.Contributions(ctx, dir)
	if err != nil {
		logger.Warn(ctx, "could not read commit history", zap.Error(err))

		return MsgHistoryFailed + serrors.Message(err)
	}
	contributors := domain.FormatCounts(domain.Without(contributions, e.options.Lecturers...))
	res.Contributors = &contributors

	if e.benchmarks() {
		res.Benchmarks = e.deps.Benchmarks.RunAll(ctx, dir, masterDir)
		if e.deps.Metrics != nil {
			for game, b := range res.Benchmarks {
				e.deps.Metrics.BenchmarkRun(ctx, game, benchmarkOutcome(b))
			}
		}
	}

	return ""
}

// benchmarkOutcome classifies a benchmark result for metrics.
func benchmarkOutcome(b domain.BenchmarkResult) string {
	switch {
	case strings.HasPrefix(b.Overall, "Tests:"):
		return "completed"
	case b.Overall == "Timeout":
		return "timeout"
	default:
		return "failed"
	}
}
