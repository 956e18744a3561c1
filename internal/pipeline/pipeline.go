// Package pipeline runs an evaluation end to end: evaluate the teams, write the
// CSV reports, then persist, publish and record metrics when those are enabled.
package pipeline

import (
	"context"
	"fmt"

	"github.com/samhab/hslu-devops-evaluation/internal/config"
	"github.com/samhab/hslu-devops-evaluation/internal/evaluation"
	"github.com/samhab/hslu-devops-evaluation/internal/report"
	"github.com/samhab/hslu-devops-evaluation/pkg/artifacts"
	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
	"github.com/samhab/hslu-devops-evaluation/pkg/logger"
	"github.com/samhab/hslu-devops-evaluation/pkg/serrors"
	"github.com/samhab/hslu-devops-evaluation/pkg/storage"
	"go.uber.org/zap"
)

// storeBatchSize is the number of team results inserted per statement.
const storeBatchSize = 50

// TextfileWriter dumps collected metrics to a file.
type TextfileWriter interface {
	WriteTextfile(path string) error
}

// Options configure the reports and the optional steps of a run.
type Options struct {
	// OutputDir receives the CSV reports.
	OutputDir string
	// Games are the benchmark columns of GitHub runs.
	Games []string
	// OverviewGames get a test overview report in GitHub runs.
	OverviewGames []string
	// BundleName names the published artifact bundle.
	BundleName string
	// MetricsTextfile is where metrics are written; empty disables it.
	MetricsTextfile string
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		OutputDir:       cfg.OutputDir,
		Games:           cfg.Benchmark.Games,
		OverviewGames:   cfg.Benchmark.OverviewGames,
		BundleName:      cfg.Artifacts.BundleName,
		MetricsTextfile: cfg.Metrics.Textfile,
	}
}

// Pipeline wires the evaluator to reports and the optional result sinks.
// Storage, Publisher and Metrics may be nil, which disables the step.
type Pipeline struct {
	Evaluator evaluation.Evaluator
	Storage   storage.Storage
	Publisher artifacts.Publisher
	Metrics   TextfileWriter

	options Options
}

// New creates a Pipeline.
func New(options Options, evaluator evaluation.Evaluator) *Pipeline {
	return &Pipeline{Evaluator: evaluator, options: options}
}

// Result describes what a run produced.
type Result struct {
	Run *domain.Run
	// Files are the written report paths.
	Files []string
	// Objects are the keys of the published report files.
	Objects []string
}

// Run evaluates the teams of the spreadsheet and handles the produced run. The
// first failing step ends the run.
func (p *Pipeline) Run(ctx context.Context, sheetURL string) (*Result, error) {
	run, err := p.Evaluator.Evaluate(ctx, sheetURL)
	if err != nil {
		return nil, fmt.Errorf("could not evaluate teams: %w", err)
	}
	ctx = logger.WithFields(ctx, zap.String("runID", run.ID.String()))

	res := &Result{Run: run}
	res.Files, err = p.WriteReports(run, p.options.OutputDir)
	if err != nil {
		return res, err
	}
	logger.Info(ctx, "Reports written", zap.Strings("files", res.Files))

	if p.Storage != nil {
		if err := p.persist(ctx, run); err != nil {
			return res, err
		}
		logger.Info(ctx, "Run stored", zap.Int("results", len(run.Results)))
	}

	if p.Publisher != nil {
		res.Objects, err = p.Publisher.Publish(ctx, run.ID, artifacts.Bundle{
			Name:  p.options.BundleName,
			Files: res.Files,
		})
		if err != nil {
			return res, fmt.Errorf("could not publish reports: %w", err)
		}
		logger.Info(ctx, "Reports published", zap.Strings("objects", res.Objects))
	}

	if p.Metrics != nil && p.options.MetricsTextfile != "" {
		if err := p.Metrics.WriteTextfile(p.options.MetricsTextfile); err != nil {
			return res, fmt.Errorf("could not write metrics: %w", err)
		}
	}

	return res, nil
}

// WriteReports writes the reports of run into dir. Only GitHub runs carry
// benchmark columns and test overviews.
func (p *Pipeline) WriteReports(run *domain.Run, dir string) ([]string, error) {
	var games, overviewGames []string
	if run.Variant == domain.VariantGitHub {
		games, overviewGames = p.options.Games, p.options.OverviewGames
	}

	paths, err := report.WriteAll(dir, report.Build(run.Results, games, overviewGames))
	if err != nil {
		return paths, fmt.Errorf("could not write reports: %w", err)
	}

	return paths, nil
}

// persist stores the run and its results in one transaction.
func (p *Pipeline) persist(ctx context.Context, run *domain.Run) error {
	if err := p.Storage.WithTx(ctx, func(tx storage.AllStorage) error {
		if err := tx.StoreRun(ctx, *run); err != nil {
			return fmt.Errorf("could not store run: %w", err)
		}

		for offset := 0; offset < len(run.Results); offset += storeBatchSize {
			end := min(offset+storeBatchSize, len(run.Results))
			if err := tx.StoreTeamResults(ctx, run.ID, offset, run.Results[offset:end]...); err != nil {
				return fmt.Errorf("could not store team results: %w", err)
			}
		}

		return nil
	}); err != nil {
		return fmt.Errorf("could not persist run: %w", err)
	}

	return nil
}

// Export rewrites the reports of a stored run into dir.
func (p *Pipeline) Export(ctx context.Context, runID domain.RunID, dir string) ([]string, error) {
	if p.Storage == nil {
		return nil, storage.ErrDisabled
	}

	run, err := p.Storage.RunByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("could not load run: %w", err)
	}
	if run == nil {
		return nil, serrors.With(serrors.ErrNotFound, "run %s not found", runID)
	}

	return p.WriteReports(run, dir)
}

// Runs lists the most recent stored runs.
func (p *Pipeline) Runs(ctx context.Context, limit uint) ([]domain.Run, error) {
	if p.Storage == nil {
		return nil, storage.ErrDisabled
	}

	runs, err := p.Storage.Runs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("could not list runs: %w", err)
	}

	return runs, nil
}
