package domain_test

import (
	"testing"
	"time"

	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
	"github.com/stretchr/testify/require"
)

func TestFormatCounts(t *testing.T) {
	require.Empty(t, domain.FormatCounts(nil))
	require.Equal(t, "alice (3)", domain.FormatCounts([]domain.Contribution{{Name: "alice", Count: 3}}))
	require.Equal(t, "alice (3), bob (1)", domain.FormatCounts([]domain.Contribution{
		{Name: "alice", Count: 3},
		{Name: "bob", Count: 1},
	}))
}

func TestWithout(t *testing.T) {
	cs := []domain.Contribution{
		{Name: "Oliver Staubli", Count: 12},
		{Name: "alice", Count: 3},
		{Name: "samhab", Count: 2},
		{Name: "bob", Count: 1},
	}

	got := domain.Without(cs, "Oliver Staubli", "samhab")
	require.Equal(t, []domain.Contribution{{Name: "alice", Count: 3}, {Name: "bob", Count: 1}}, got)
	require.Len(t, cs, 4, "input must not be modified")
	require.Equal(t, cs, domain.Without(cs))
}

func TestIDsAreUnique(t *testing.T) {
	require.NotEqual(t, domain.NewTeamID(), domain.NewTeamID())
	r1 := domain.NewRun(domain.VariantGitHub, "u", time.Time{})
	r2 := domain.NewRun(domain.VariantGitHub, "u", time.Time{})
	require.NotEqual(t, r1.ID, r2.ID)
	require.False(t, r1.StartedAt.IsZero())
}

func TestParseRunID(t *testing.T) {
	run := domain.NewRun(domain.VariantGitHub, "", time.Time{})

	id, err := domain.ParseRunID(run.ID.String())
	require.NoError(t, err)
	require.Equal(t, run.ID, id)

	_, err = domain.ParseRunID("latest")
	require.Error(t, err)
}
