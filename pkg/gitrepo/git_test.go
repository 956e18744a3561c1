package gitrepo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
	"github.com/samhab/hslu-devops-evaluation/pkg/gitrepo"
	"github.com/samhab/hslu-devops-evaluation/pkg/serrors"
	"github.com/stretchr/testify/require"
)

type commit struct {
	author string
	when   time.Time
	file   string
}

var base = time.Date(2024, 12, 18, 12, 0, 0, 0, time.UTC)

// makeRepo creates a repository in a temp dir with one commit per entry.
func makeRepo(t *testing.T, commits []commit) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	for i, c := range commits {
		name := c.file
		if name == "" {
			name = "file.txt"
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(time.Duration(i).String()), 0o600))
		_, err = wt.Add(name)
		require.NoError(t, err)

		sig := &object.Signature{Name: c.author, Email: c.author + "@example.com", When: c.when}
		_, err = wt.Commit("commit", &git.CommitOptions{Author: sig, Committer: sig})
		require.NoError(t, err)
	}

	return dir
}

func TestGit_Contributions(t *testing.T) {
	dir := makeRepo(t, []commit{
		{author: "bob", when: base},
		{author: "alice", when: base.Add(time.Hour)},
		{author: "carol", when: base.Add(2 * time.Hour)},
		{author: "alice", when: base.Add(3 * time.Hour)},
		{author: "bob", when: base.Add(4 * time.Hour)},
		{author: "alice", when: base.Add(5 * time.Hour)},
	})

	got, err := gitrepo.New("").Contributions(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, []domain.Contribution{
		{Name: "alice", Count: 3},
		{Name: "bob", Count: 2},
		{Name: "carol", Count: 1},
	}, got)
}

func TestGit_CheckoutBefore(t *testing.T) {
	dir := makeRepo(t, []commit{
		{author: "alice", when: base, file: "a.txt"},
		{author: "bob", when: base.Add(time.Hour), file: "b.txt"},
		{author: "alice", when: base.Add(48 * time.Hour), file: "late.txt"},
		{author: "bob", when: base.Add(49 * time.Hour), file: "late.txt"},
	})
	ctx := context.Background()
	g := gitrepo.New("")

	co, err := g.CheckoutBefore(ctx, dir, base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, co.Commit, 7)
	require.True(t, co.Date.Equal(base.Add(time.Hour)))
	require.Equal(t, 2, co.CommitsAfter)

	// late work must not be in the worktree any more
	_, err = os.Stat(filepath.Join(dir, "late.txt"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)

	// statistics only consider history up to the checked out commit
	got, err := g.Contributions(ctx, dir)
	require.NoError(t, err)
	require.Equal(t, []domain.Contribution{{Name: "alice", Count: 1}, {Name: "bob", Count: 1}}, got)
}

func TestGit_CheckoutBefore_DeadlineOnCommit(t *testing.T) {
	dir := makeRepo(t, []commit{
		{author: "alice", when: base},
		{author: "bob", when: base.Add(time.Hour)},
	})

	co, err := gitrepo.New("").CheckoutBefore(context.Background(), dir, base.Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, 0, co.CommitsAfter)
}

func TestGit_CheckoutBefore_NothingBeforeDeadline(t *testing.T) {
	dir := makeRepo(t, []commit{{author: "alice", when: base}})

	_, err := gitrepo.New("").CheckoutBefore(context.Background(), dir, base.Add(-time.Hour))
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestGit_Clone(t *testing.T) {
	src := makeRepo(t, []commit{{author: "alice", when: base}, {author: "bob", when: base.Add(time.Minute)}})
	dst := filepath.Join(t.TempDir(), "team")

	g := gitrepo.New("")
	require.NoError(t, g.Clone(context.Background(), src, dst))

	got, err := g.Contributions(context.Background(), dst)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestGit_Clone_Missing(t *testing.T) {
	err := gitrepo.New("").Clone(context.Background(), filepath.Join(t.TempDir(), "nope"), t.TempDir())
	require.Error(t, err)
}
