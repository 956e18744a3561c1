package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
	"github.com/samhab/hslu-devops-evaluation/pkg/serrors"
)

// Config represents the application configuration structure.
// Every field can be set from the YAML file or overridden by its env variable;
// the CI workflow only sets env variables.
type Config struct {
	// Environment specifies the current running environment (development, production)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default log level when set
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`

	// SpreadsheetURL is the Google Sheets URL of the team list (…/edit?gid=…)
	SpreadsheetURL string `env:"SPREADSHEET_URL" yaml:"spreadsheetUrl"`
	// TempDir is the scratch directory repositories are cloned into
	TempDir string `env:"TEMPDIR" yaml:"tempDir"`
	// Deadline is the submission deadline, e.g. "2024-12-20 23:59:59 CET". Empty means now.
	Deadline string `env:"DEADLINE" yaml:"deadline"`
	// OutputDir is the directory the CSV reports are written to
	OutputDir string `env:"OUTPUT_DIR" env-default:"." yaml:"outputDir"`

	Evaluation struct {
		// Workers is the number of teams evaluated concurrently
		Workers int `env:"EVALUATION_WORKERS" env-default:"1" yaml:"workers"`
		// MaxTeams limits the number of evaluated teams; 0 evaluates all of them
		MaxTeams int `env:"EVALUATION_MAX_TEAMS" env-default:"0" yaml:"maxTeams"`
		// Lecturers are excluded from the commit statistics
		Lecturers []string `env:"EVALUATION_LECTURERS" env-default:"Oliver Staubli,samhab" env-separator:"," yaml:"lecturers"` //nolint: lll
	} `yaml:"evaluation"`

	Benchmark struct {
		// RepoURL is the master repository holding the reference benchmark files
		RepoURL string `env:"BENCHMARK_REPO_URL" env-default:"https://github.com/ostaubli/devops_project" yaml:"repoUrl"` //nolint: lll
		// Games are benchmarked in this order
		Games []string `env:"BENCHMARK_GAMES" env-default:"hangman,battleship,uno,dog" env-separator:"," yaml:"games"`
		// OverviewGames get a per-test overview report
		OverviewGames []string `env:"BENCHMARK_OVERVIEW_GAMES" env-default:"uno,dog" env-separator:"," yaml:"overviewGames"`
		// Python is the interpreter used to run the benchmarks
		Python string `env:"BENCHMARK_PYTHON" env-default:"python" yaml:"python"`
		// Pip is used to install the master repository's requirements
		Pip string `env:"BENCHMARK_PIP" env-default:"pip" yaml:"pip"`
		// Timeout bounds a single game benchmark
		Timeout time.Duration `env:"BENCHMARK_TIMEOUT" env-default:"120s" yaml:"timeout"`
	} `yaml:"benchmark"`

	GitHub struct {
		// Token authenticates clones of private repositories; public ones need none
		Token string `env:"GITHUB_TOKEN" yaml:"token"`
	} `yaml:"github"`

	Jira struct {
		// Email is the Atlassian account used for basic auth
		Email string `env:"JIRA_EMAIL" yaml:"email"`
		// APIToken is the Atlassian API token used for basic auth
		APIToken string `env:"JIRA_API_TOKEN" yaml:"apiToken"`
		// PageSize is the number of issues fetched per search request
		PageSize int `env:"JIRA_PAGE_SIZE" env-default:"100" yaml:"pageSize"`
	} `yaml:"jira"`

	HTTP struct {
		// Timeout bounds every outgoing HTTP request (spreadsheet, Jira)
		Timeout time.Duration `env:"HTTP_TIMEOUT" env-default:"30s" yaml:"timeout"`
	} `yaml:"http"`

	// Database contains the optional result history store
	Database struct {
		// Enabled turns persistence of runs on
		Enabled bool `env:"DATABASE_ENABLED" env-default:"false" yaml:"enabled"`
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"evaluation" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"evaluation" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"evaluation" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"4" yaml:"maxOpenConnections"`
		// MaxIdleConnections is the number of connections kept open while idle
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"1" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"1m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// Artifacts configures the S3 compatible store the report bundle is published to
	Artifacts struct {
		// BundleName names the published bundle
		BundleName string `env:"ARTIFACTS_BUNDLE_NAME" env-default:"evaluation-results" yaml:"bundleName"`
		// Endpoint of the object store; publishing is disabled when empty
		Endpoint string `env:"ARTIFACTS_ENDPOINT" yaml:"endpoint"`
		// Bucket receives the bundle
		Bucket string `env:"ARTIFACTS_BUCKET" env-default:"evaluations" yaml:"bucket"`
		// Region of the bucket
		Region string `env:"ARTIFACTS_REGION" yaml:"region"`
		// AccessKeyID for the object store
		AccessKeyID string `env:"ARTIFACTS_ACCESS_KEY_ID" yaml:"accessKeyId"`
		// SecretAccessKey for the object store
		SecretAccessKey string `env:"ARTIFACTS_SECRET_ACCESS_KEY" yaml:"secretAccessKey"`
		// UseSSL forces TLS even when the endpoint has no https scheme
		UseSSL bool `env:"ARTIFACTS_USE_SSL" env-default:"false" yaml:"useSSL"`
	} `yaml:"artifacts"`

	Metrics struct {
		// Textfile is where the run's metrics are written in Prometheus text format; empty disables it
		Textfile string `env:"METRICS_TEXTFILE" yaml:"textfile"`
	} `yaml:"metrics"`
}

// Load receives the path for yaml config file and returns a filled Config struct.
// A missing file is not an error: the configuration then comes from env variables
// and defaults only, which is how the tool runs in CI.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read env config: %w", err)
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the settings a run of the given variant cannot do without.
func (c *Config) Validate(variant domain.Variant) error {
	if c.SpreadsheetURL == "" {
		return serrors.With(serrors.ErrMissingConfig, "No Spreadsheet URL provided")
	}
	if c.TempDir == "" {
		return serrors.With(serrors.ErrMissingConfig, "No temporary directory provided")
	}
	if c.Evaluation.Workers < 1 {
		return serrors.With(serrors.ErrBadRequest, "evaluation workers must be at least 1")
	}
	if variant == domain.VariantGitHub && c.Benchmark.Timeout <= 0 {
		return serrors.With(serrors.ErrBadRequest, "benchmark timeout must be positive")
	}

	return nil
}
