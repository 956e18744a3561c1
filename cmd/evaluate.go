package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/samhab/hslu-devops-evaluation/internal/config"
	"github.com/samhab/hslu-devops-evaluation/internal/evaluation"
	"github.com/samhab/hslu-devops-evaluation/internal/pipeline"
	"github.com/samhab/hslu-devops-evaluation/pkg/artifacts/s3"
	"github.com/samhab/hslu-devops-evaluation/pkg/benchmark"
	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
	"github.com/samhab/hslu-devops-evaluation/pkg/gitrepo"
	"github.com/samhab/hslu-devops-evaluation/pkg/issuetracker/jira"
	"github.com/samhab/hslu-devops-evaluation/pkg/logger"
	"github.com/samhab/hslu-devops-evaluation/pkg/metrics"
	"github.com/samhab/hslu-devops-evaluation/pkg/spreadsheet"
	"github.com/samhab/hslu-devops-evaluation/pkg/transport"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func evaluateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluates team repositories, Jira boards and game benchmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluation(cfg, domain.VariantGitHub)
		},
	}
}

func teamworkCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "teamwork",
		Short: "Evaluates team repositories and Jira boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluation(cfg, domain.VariantTeamwork)
		},
	}
}

// runEvaluation wires the clients for variant and runs the pipeline until it
// finishes or SIGINT/SIGTERM cancels it.
func runEvaluation(cfg *config.Config, variant domain.Variant) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.Named(ctx, string(variant))

	if err := cfg.Validate(variant); err != nil {
		logger.Error(ctx, "invalid configuration", zap.Error(err))

		return err
	}

	options, err := evaluation.NewOptions(cfg, variant, time.Now())
	if err != nil {
		logger.Error(ctx, "invalid deadline", zap.Error(err))

		return err
	}

	m, err := metrics.New()
	if err != nil {
		logger.Error(ctx, "could not setup metrics", zap.Error(err))

		return err
	}
	defer func() {
		if err := m.Shutdown(context.Background()); err != nil {
			logger.Warn(ctx, "could not shutdown metrics", zap.Error(err))
		}
	}()

	httpClient := transport.NewClient(cfg.HTTP.Timeout, m)
	git := gitrepo.New(cfg.GitHub.Token)
	deps := evaluation.Dependencies{
		Teams:   spreadsheet.New(httpClient),
		Git:     git,
		Issues:  jira.New(httpClient, cfg.Jira.Email, cfg.Jira.APIToken, cfg.Jira.PageSize),
		Metrics: m,
	}
	if variant == domain.VariantGitHub {
		deps.Benchmarks = benchmark.New(git, benchmark.Options{
			RepoURL: cfg.Benchmark.RepoURL,
			Games:   cfg.Benchmark.Games,
			Python:  cfg.Benchmark.Python,
			Pip:     cfg.Benchmark.Pip,
			Timeout: cfg.Benchmark.Timeout,
		})
	}

	p := pipeline.New(pipeline.NewOptions(cfg), evaluation.New(deps, options))
	p.Metrics = m

	if cfg.Database.Enabled {
		strg, closeStrg := getPostgres(ctx, cfg)
		defer closeStrg()
		p.Storage = strg
	}

	if cfg.Artifacts.Endpoint != "" {
		store, err := s3.New(s3.Options{
			Endpoint:        cfg.Artifacts.Endpoint,
			Bucket:          cfg.Artifacts.Bucket,
			Region:          cfg.Artifacts.Region,
			AccessKeyID:     cfg.Artifacts.AccessKeyID,
			SecretAccessKey: cfg.Artifacts.SecretAccessKey,
			UseSSL:          cfg.Artifacts.UseSSL,
		})
		if err != nil {
			logger.Error(ctx, "could not create artifact store", zap.Error(err))

			return err
		}
		p.Publisher = store
	}

	res, err := p.Run(ctx, cfg.SpreadsheetURL)
	if err != nil {
		logger.Error(ctx, "evaluation failed", zap.Error(err))

		return fmt.Errorf("%s evaluation failed: %w", variant, err)
	}

	logger.Info(ctx, "Evaluation completed",
		zap.String("runID", res.Run.ID.String()),
		zap.Int("teams", len(res.Run.Results)),
		zap.Strings("files", res.Files))

	return nil
}
