// Package artifacts publishes the report files of a run as a named bundle.
package artifacts

import (
	"context"

	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
)

// Bundle is a named set of files published together.
type Bundle struct {
	// Name groups the files, e.g. "evaluation-results".
	Name string
	// Files are local paths; only their base names are kept.
	Files []string
}

//go:generate mockgen -package mockartifacts -source=interface.go -destination=mock/mockartifacts.go *
type Publisher interface {
	// Publish uploads every file of the bundle below <bundle name>/<run id>/ and
	// returns the keys of the uploaded objects.
	Publish(ctx context.Context, runID domain.RunID, bundle Bundle) ([]string, error)
}
