package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
	"github.com/samhab/hslu-devops-evaluation/pkg/logger"
	"github.com/samhab/hslu-devops-evaluation/pkg/serrors"
	"go.uber.org/zap"
)

// shortHashLen matches git's default abbreviation for small repositories.
const shortHashLen = 7

// Git implements Client with go-git; no git binary is required.
type Git struct {
	auth transport.AuthMethod
}

// Ensure Git conforms to the Client interface at compile time.
var _ Client = (*Git)(nil)

// New constructs a Git client. A non-empty token is sent as HTTP basic auth
// (GitHub's x-access-token scheme) so private team repositories can be cloned.
func New(token string) *Git {
	g := &Git{}
	if token != "" {
		g.auth = &http.BasicAuth{
			Username: "x-access-token",
			Password: token,
		}
	}

	return g
}

// Clone clones URL into dir.
func (g *Git) Clone(ctx context.Context, URL, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create clone directory: %w", err)
	}

	logger.Debug(ctx, "cloning repository", zap.String("url", URL), zap.String("dir", dir))
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:  URL,
		Auth: g.auth,
	})
	if err != nil {
		if errors.Is(err, transport.ErrAuthenticationRequired) || errors.Is(err, transport.ErrRepositoryNotFound) {
			return serrors.Wrap(serrors.ErrNotFound, err, "repository %s not found or not public", URL)
		}

		return serrors.Wrap(serrors.ErrUnavailable, err, "could not clone %s", URL)
	}

	return nil
}

// CheckoutBefore checks out the last commit made at or before deadline, the way
// `git log --before=<deadline> -1` selects it, and reports how many commits
// were made after the deadline.
func (g *Git) CheckoutBefore(ctx context.Context, dir string, deadline time.Time) (domain.Checkout, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return domain.Checkout{}, fmt.Errorf("could not open repository: %w", err)
	}

	iter, err := headLog(repo)
	if err != nil {
		return domain.Checkout{}, err
	}

	var (
		last  *object.Commit
		after int
	)
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.Committer.When.After(deadline) {
			after++

			return nil
		}
		if last == nil || c.Committer.When.After(last.Committer.When) {
			last = c
		}

		return nil
	})
	if err != nil {
		return domain.Checkout{}, fmt.Errorf("could not walk history: %w", err)
	}
	if last == nil {
		return domain.Checkout{}, serrors.With(serrors.ErrNotFound,
			"no commit before %s", deadline.Format(time.RFC3339))
	}

	wt, err := repo.Worktree()
	if err != nil {
		return domain.Checkout{}, fmt.Errorf("could not get worktree: %w", err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Hash: last.Hash, Force: true}); err != nil {
		return domain.Checkout{}, fmt.Errorf("could not checkout %s: %w", last.Hash, err)
	}

	co := domain.Checkout{
		Commit:       last.Hash.String()[:shortHashLen],
		Date:         last.Author.When,
		CommitsAfter: after,
	}
	logger.Info(ctx, fmt.Sprintf("Checkout commit '%s' of %s (%d commits behind HEAD)",
		co.Commit, co.Date.Format("Mon Jan 2 15:04:05 2006 -0700"), co.CommitsAfter))

	return co, nil
}

// Contributions counts commits reachable from HEAD per author name.
func (g *Git) Contributions(ctx context.Context, dir string) ([]domain.Contribution, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("could not open repository: %w", err)
	}

	iter, err := headLog(repo)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		counts[c.Author.Name]++

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not walk history: %w", err)
	}

	out := make([]domain.Contribution, 0, len(counts))
	for name, n := range counts {
		out = append(out, domain.Contribution{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return out[i].Name < out[j].Name
	})

	return out, nil
}

func headLog(repo *git.Repository) (object.CommitIter, error) {
	head, err := repo.Head()
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrNotFound, err, "repository has no commits")
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("could not read log: %w", err)
	}

	return iter, nil
}
