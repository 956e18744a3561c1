package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/samhab/hslu-devops-evaluation/internal/config"
	"github.com/samhab/hslu-devops-evaluation/internal/pipeline"
	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
	"github.com/samhab/hslu-devops-evaluation/pkg/logger"
	"github.com/samhab/hslu-devops-evaluation/pkg/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// storedPipeline returns a pipeline that only serves stored runs.
func storedPipeline(ctx context.Context, cfg *config.Config) (*pipeline.Pipeline, func()) {
	if !cfg.Database.Enabled {
		logger.Fatal(ctx, "could not open result store", zap.Error(storage.ErrDisabled))
	}

	strg, closeStrg := getPostgres(ctx, cfg)
	p := pipeline.New(pipeline.NewOptions(cfg), nil)
	p.Storage = strg

	return p, closeStrg
}

// runsCommand lists the most recent stored runs.
func runsCommand(cfg *config.Config) *cobra.Command {
	var limit uint

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Lists stored evaluation runs",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			p, closeStrg := storedPipeline(ctx, cfg)
			defer closeStrg()

			runs, err := p.Runs(ctx, limit)
			if err != nil {
				logger.Fatal(ctx, "could not list runs", zap.Error(err))
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tVARIANT\tDEADLINE\tSTARTED\tFINISHED")
			for _, run := range runs {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					run.ID,
					run.Variant,
					run.Deadline.Format(time.RFC3339),
					run.StartedAt.Format(time.RFC3339),
					run.FinishedAt.Format(time.RFC3339))
			}
			_ = w.Flush()
		},
	}
	cmd.Flags().UintVarP(&limit, "limit", "n", 20, "Number of runs to list, 0 lists all")

	return cmd
}

// exportCommand rewrites the CSV reports of a stored run.
func exportCommand(cfg *config.Config) *cobra.Command {
	var (
		runID string
		dir   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Writes the reports of a stored run",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			id, err := domain.ParseRunID(runID)
			if err != nil {
				logger.Fatal(ctx, "invalid run", zap.Error(err))
			}

			p, closeStrg := storedPipeline(ctx, cfg)
			defer closeStrg()

			if dir == "" {
				dir = cfg.OutputDir
			}
			files, err := p.Export(ctx, id, dir)
			if err != nil {
				logger.Fatal(ctx, "could not export run", zap.Error(err))
			}
			logger.Info(ctx, "Reports written", zap.Strings("files", files))
		},
	}
	cmd.Flags().StringVar(&runID, "run", "", "ID of the stored run")
	cmd.Flags().StringVarP(&dir, "output", "o", "", "Output directory, defaults to OUTPUT_DIR")
	_ = cmd.MarkFlagRequired("run")

	return cmd
}
