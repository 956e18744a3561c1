package gitrepo_test

import (
	"testing"
	"time"

	"github.com/samhab/hslu-devops-evaluation/pkg/gitrepo"
	"github.com/samhab/hslu-devops-evaluation/pkg/serrors"
	"github.com/stretchr/testify/require"
)

func TestParseDeadline(t *testing.T) {
	now := time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   string
		want time.Time
	}{
		{name: "empty means now", in: "", want: now},
		{name: "CET abbreviation", in: "2024-12-20 23:59:59 CET", want: time.Date(2024, 12, 20, 22, 59, 59, 0, time.UTC)},
		{name: "CEST abbreviation", in: "2024-06-20 23:59:59 CEST", want: time.Date(2024, 6, 20, 21, 59, 59, 0, time.UTC)},
		{name: "lower case abbreviation", in: "2024-12-20 12:00 utc", want: time.Date(2024, 12, 20, 12, 0, 0, 0, time.UTC)},
		{name: "RFC3339", in: "2024-12-20T23:59:59+01:00", want: time.Date(2024, 12, 20, 22, 59, 59, 0, time.UTC)},
		{name: "numeric offset", in: "2024-12-20 23:59:59 +0100", want: time.Date(2024, 12, 20, 22, 59, 59, 0, time.UTC)},
		{name: "date only in zone", in: "2024-12-21 GMT", want: time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := gitrepo.ParseDeadline(tc.in, now)
			require.NoError(t, err)
			require.True(t, tc.want.Equal(got), "got %s, want %s", got, tc.want)
		})
	}
}

func TestParseDeadline_Errors(t *testing.T) {
	_, err := gitrepo.ParseDeadline("2024-12-20 23:59:59 XYZT", time.Now())
	require.ErrorIs(t, err, serrors.ErrBadRequest)
	require.Contains(t, err.Error(), "unknown time zone")

	_, err = gitrepo.ParseDeadline("next friday", time.Now())
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}
