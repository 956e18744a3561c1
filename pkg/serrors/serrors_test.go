package serrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/samhab/hslu-devops-evaluation/pkg/serrors"
	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrNotFound,
		serrors.ErrUnauthorized,
		serrors.ErrBadRequest,
		serrors.ErrMissingConfig,
		serrors.ErrInternal,
		serrors.ErrTimeout,
		serrors.ErrUnavailable,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("connection refused")

	e1 := serrors.With(serrors.ErrBadRequest, "team %d has no repository", 4)
	require.Equal(t, "team 4 has no repository", e1.Error())

	e2 := serrors.Wrap(serrors.ErrUnavailable, base, "could not reach jira")
	require.Equal(t, "could not reach jira: connection refused", e2.Error())

	e3 := serrors.KindOnly(serrors.ErrTimeout)
	require.Equal(t, "TIMEOUT", e3.Error())
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrNotFound, base, "reading")

	require.ErrorIs(t, e, serrors.ErrNotFound)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrUnauthorized)
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := &customError{"root cause"}
	e := serrors.Wrap(serrors.ErrNotFound, base, "reading")

	var k serrors.Kind
	require.ErrorAs(t, e, &k)
	require.Equal(t, serrors.ErrNotFound, k)

	var ce *customError
	require.ErrorAs(t, e, &ce)
	require.Equal(t, base, ce)
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", serrors.With(serrors.ErrTimeout, "Timeout"))
	require.Equal(t, serrors.ErrTimeout, serrors.KindOf(wrapped))
	require.Equal(t, serrors.ErrInternal, serrors.KindOf(errors.New("plain")))
}

func TestMessage(t *testing.T) {
	inner := serrors.Wrap(serrors.ErrUnauthorized, errors.New("401"), "JIRA authentication failed: bad token")
	require.Equal(t, "JIRA authentication failed: bad token", serrors.Message(fmt.Errorf("jira: %w", inner)))
	require.Equal(t, "plain", serrors.Message(errors.New("plain")))
	require.Empty(t, serrors.Message(nil))
}
