// Package gitrepo clones team repositories and extracts what the evaluation
// needs from their history: the last commit before the deadline and the
// number of commits per author.
package gitrepo

import (
	"context"
	"time"

	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
)

// Client is the abstraction over git used by the evaluation.
//
//go:generate mockgen -package mockgitrepo -source=interface.go -destination=mock/mockgitrepo.go *
type Client interface {
	// Clone clones the repository at URL into dir. dir is created when it does
	// not exist and must be empty otherwise.
	Clone(ctx context.Context, URL, dir string) error
	// CheckoutBefore checks out the newest commit reachable from HEAD that was
	// committed at or before deadline.
	CheckoutBefore(ctx context.Context, dir string, deadline time.Time) (domain.Checkout, error)
	// Contributions counts the commits reachable from HEAD per author name,
	// ordered by count (descending) and name.
	Contributions(ctx context.Context, dir string) ([]domain.Contribution, error)
}
