// Package benchmark runs the course's game benchmarks against a team repository.
package benchmark

import (
	"context"

	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
)

//go:generate mockgen -package mockbenchmark -source=interface.go -destination=mock/mockbenchmark.go *
type Runner interface {
	// Prepare clones the master repository into tempDir and installs its requirements.
	// It returns the master repository directory.
	Prepare(ctx context.Context, tempDir string) (string, error)
	// RunAll replaces the benchmark files in repoDir with those of masterDir and runs
	// every configured game. Failing games carry their error text as Overall result.
	RunAll(ctx context.Context, repoDir, masterDir string) map[string]domain.BenchmarkResult
}
