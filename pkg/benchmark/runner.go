package benchmark

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
	"github.com/samhab/hslu-devops-evaluation/pkg/gitrepo"
	"github.com/samhab/hslu-devops-evaluation/pkg/logger"
	"github.com/samhab/hslu-devops-evaluation/pkg/serrors"
	"go.uber.org/zap"
)

const (
	// MasterDirName is the directory below the temp dir the master repository is cloned into.
	MasterDirName = "master_repo"

	benchmarkDir = "benchmark"

	msgTimeout   = "Timeout"
	msgFailed    = "Benchmark evaluation failed with message: "
	msgNoSummary = "No proper Benchmark output (missing 'Tests/Mark' section)"
)

// configFiles are copied from the master repository next to the benchmark files.
var configFiles = []string{"mypy.ini", ".pylintrc"}

// Options configure the benchmark runs.
type Options struct {
	// RepoURL is the master repository holding the reference benchmark files.
	RepoURL string
	// Games are run in this order.
	Games []string
	// Python is the interpreter command.
	Python string
	// Pip is the package installer command.
	Pip string
	// Timeout bounds a single game run.
	Timeout time.Duration
}

// Exec runs benchmarks as local processes.
type Exec struct {
	options Options
	git     gitrepo.Client
}

// Ensure Exec conforms to the Runner interface at compile time.
var _ Runner = (*Exec)(nil)

// New creates an Exec runner. The master repository is cloned with git.
func New(git gitrepo.Client, options Options) *Exec {
	if options.Python == "" {
		options.Python = "python"
	}
	if options.Pip == "" {
		options.Pip = "pip"
	}

	return &Exec{options: options, git: git}
}

// Prepare clones the master repository and installs its requirements.txt.
func (e *Exec) Prepare(ctx context.Context, tempDir string) (string, error) {
	dir := filepath.Join(tempDir, MasterDirName)
	if err := os.RemoveAll(dir); err != nil {
		return "", fmt.Errorf("could not clean master repository dir: %w", err)
	}

	logger.Info(ctx, "Cloning benchmark repository", zap.String("url", e.options.RepoURL), zap.String("dir", dir))
	if err := e.git.Clone(ctx, e.options.RepoURL, dir); err != nil {
		return "", fmt.Errorf("could not clone master repository: %w", err)
	}

	requirements := filepath.Join(dir, "requirements.txt")
	_, stderr, err := run(ctx, dir, nil, e.options.Pip, "install", "-r", requirements)
	if err != nil {
		return "", serrors.Wrap(serrors.ErrInternal, err, "could not install benchmark requirements: %s",
			strings.TrimSpace(stderr))
	}

	return dir, nil
}

// RunAll installs the master's benchmark files into repoDir and runs every game.
func (e *Exec) RunAll(ctx context.Context, repoDir, masterDir string) map[string]domain.BenchmarkResult {
	out := make(map[string]domain.BenchmarkResult, len(e.options.Games))

	if err := installBenchmarkFiles(repoDir, masterDir); err != nil {
		logger.Warn(ctx, "could not install benchmark files", zap.Error(err))
		for _, game := range e.options.Games {
			out[game] = domain.BenchmarkResult{Overall: err.Error()}
		}

		return out
	}

	for _, game := range e.options.Games {
		res, err := e.runGame(ctx, repoDir, game)
		if err != nil {
			logger.Warn(ctx, "benchmark failed", zap.String("game", game), zap.String("kind", serrors.KindOf(err).Error()))
			res = domain.BenchmarkResult{Overall: serrors.Message(err)}
		}
		out[game] = res
	}

	return out
}

// runGame runs benchmark/benchmark_<game>.py against the team's <game>.<Game> class.
func (e *Exec) runGame(ctx context.Context, repoDir, game string) (domain.BenchmarkResult, error) {
	ctx = logger.WithFields(ctx, zap.String("game", game))

	runCtx := ctx
	if e.options.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.options.Timeout)
		defer cancel()
	}

	script := filepath.Join(benchmarkDir, "benchmark_"+game+".py")
	env := append(os.Environ(), "PYTHONPATH="+repoDir)
	start := time.Now()
	stdout, stderr, err := run(runCtx, repoDir, env, e.options.Python, script, "python", game+"."+className(game))
	logger.Debug(ctx, "benchmark finished", zap.Duration("took", time.Since(start)), zap.Error(err))
	if logger.IsDebug(ctx) {
		logger.Debug(ctx, "benchmark output", zap.String("stdout", stdout), zap.String("stderr", stderr))
	}

	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return domain.BenchmarkResult{}, serrors.Wrap(serrors.ErrTimeout, err, msgTimeout)
		}

		return domain.BenchmarkResult{}, serrors.Wrap(serrors.ErrInternal, err, "%s", msgFailed+stderr)
	}

	res, ok := ParseOutput(stdout)
	if !ok {
		return domain.BenchmarkResult{}, serrors.With(serrors.ErrBadRequest, msgNoSummary)
	}

	return res, nil
}

// className returns the game's class name: the game name with an upper-case first letter.
func className(game string) string {
	if game == "" {
		return ""
	}

	return strings.ToUpper(game[:1]) + strings.ToLower(game[1:])
}

// installBenchmarkFiles replaces repoDir/benchmark with the master copy and
// copies the linter configuration files.
func installBenchmarkFiles(repoDir, masterDir string) error {
	dst := filepath.Join(repoDir, benchmarkDir)
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("could not remove benchmark files: %w", err)
	}
	if err := os.CopyFS(dst, os.DirFS(filepath.Join(masterDir, benchmarkDir))); err != nil {
		return fmt.Errorf("could not copy benchmark files: %w", err)
	}

	for _, name := range configFiles {
		b, err := os.ReadFile(filepath.Join(masterDir, name))
		if err != nil {
			return fmt.Errorf("could not read %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(repoDir, name), b, 0o644); err != nil { //nolint: gosec
			return fmt.Errorf("could not write %s: %w", name, err)
		}
	}

	return nil
}

// run executes a command in dir and returns its captured output. A nil env
// inherits the current environment.
func run(ctx context.Context, dir string, env []string, name string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// children of a killed process may keep the pipes open
	cmd.WaitDelay = time.Second

	err := cmd.Run()

	return stdout.String(), stderr.String(), err
}
