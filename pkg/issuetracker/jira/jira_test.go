package jira_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
	"github.com/samhab/hslu-devops-evaluation/pkg/issuetracker/jira"
	"github.com/samhab/hslu-devops-evaluation/pkg/serrors"
	"github.com/stretchr/testify/require"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

const board = "https://team1.atlassian.net/jira/software/projects/T1/boards/1"

func newTestClient(fn rtFunc) *jira.Client {
	return jira.New(&http.Client{Transport: fn}, "student@example.com", "secret", 2)
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestClient_CompletedIssues_success(t *testing.T) {
	var searches int
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "team1.atlassian.net", r.URL.Host)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "student@example.com", user)
		require.Equal(t, "secret", pass)

		switch r.URL.Path {
		case "/rest/api/3/myself":
			return respond(http.StatusOK, `{"displayName":"Student"}`), nil
		case "/rest/api/3/search/jql":
			searches++
			q := r.URL.Query()
			require.Equal(t, jira.DoneJQL, q.Get("jql"))
			require.Equal(t, "assignee", q.Get("fields"))
			require.Equal(t, "2", q.Get("maxResults"))

			if q.Get("nextPageToken") == "" {
				return respond(http.StatusOK, `{
					"issues":[
						{"key":"T1-4","fields":{"assignee":{"displayName":"Bob"}}},
						{"key":"T1-3","fields":{"assignee":null}}
					],
					"nextPageToken":"p2","isLast":false}`), nil
			}
			require.Equal(t, "p2", q.Get("nextPageToken"))

			return respond(http.StatusOK, `{
				"issues":[
					{"key":"T1-2","fields":{"assignee":{"displayName":"Alice"}}},
					{"key":"T1-1","fields":{"assignee":{"displayName":"Bob"}}}
				],
				"isLast":true}`), nil
		}
		t.Fatalf("unexpected path %s", r.URL.Path)

		return nil, nil
	})

	got, err := c.CompletedIssues(context.Background(), board)
	require.NoError(t, err)
	require.Equal(t, 2, searches)
	require.Equal(t, []domain.Contribution{{Name: "Bob", Count: 2}, {Name: "Alice", Count: 1}}, got)
	require.Equal(t, "Bob (2), Alice (1)", domain.FormatCounts(got))
}

func TestClient_CompletedIssues_contextPath(t *testing.T) {
	var paths []string
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "jira.example.com", r.URL.Host)
		paths = append(paths, r.URL.Path)
		if strings.HasSuffix(r.URL.Path, "/myself") {
			return respond(http.StatusOK, `{}`), nil
		}

		return respond(http.StatusOK, `{"issues":[],"isLast":true}`), nil
	})

	_, err := c.CompletedIssues(context.Background(), "https://jira.example.com/jira/")
	require.NoError(t, err)
	require.Equal(t, []string{"/jira/rest/api/3/myself", "/jira/rest/api/3/search/jql"}, paths)
}

func TestClient_CompletedIssues_noIssues(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		if r.URL.Path == "/rest/api/3/myself" {
			return respond(http.StatusOK, `{}`), nil
		}

		return respond(http.StatusOK, `{"issues":[],"isLast":true}`), nil
	})

	got, err := c.CompletedIssues(context.Background(), board)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestClient_CompletedIssues_missingCredentials(t *testing.T) {
	c := jira.New(&http.Client{Transport: rtFunc(func(*http.Request) (*http.Response, error) {
		t.Fatal("no request expected")

		return nil, nil
	})}, "", "", 0)

	_, err := c.CompletedIssues(context.Background(), board)
	require.ErrorIs(t, err, serrors.ErrMissingConfig)
	require.Equal(t, "Please provide env variables 'JIRA_EMAIL' and 'JIRA_API_TOKEN'", serrors.Message(err))
}

func TestClient_CompletedIssues_invalidBoard(t *testing.T) {
	c := newTestClient(func(*http.Request) (*http.Response, error) {
		t.Fatal("no request expected")

		return nil, nil
	})

	for _, u := range []string{"", "team1.atlassian.net/boards/1", "ftp://team1.atlassian.net"} {
		_, err := c.CompletedIssues(context.Background(), u)
		require.ErrorIs(t, err, serrors.ErrBadRequest, u)
		require.Equal(t, "Invalid JIRA board url", serrors.Message(err))
	}
}

func TestClient_CompletedIssues_authFailed(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "/rest/api/3/myself", r.URL.Path)

		return respond(http.StatusUnauthorized, `{"errorMessages":["Client must be authenticated to access this resource."]}`), nil
	})

	_, err := c.CompletedIssues(context.Background(), board)
	require.ErrorIs(t, err, serrors.ErrUnauthorized)
	require.Equal(t, "JIRA authentication failed: Client must be authenticated to access this resource.", serrors.Message(err))
}

func TestClient_CompletedIssues_queryFailed(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		if r.URL.Path == "/rest/api/3/myself" {
			return respond(http.StatusOK, `{}`), nil
		}

		return respond(http.StatusBadRequest, `{"errorMessages":["Field 'statusCategory' does not exist."]}`), nil
	})

	_, err := c.CompletedIssues(context.Background(), board)
	require.ErrorIs(t, err, serrors.ErrUnavailable)
	require.Equal(t, "Jira Query issue: Field 'statusCategory' does not exist.", serrors.Message(err))
}

func TestClient_CompletedIssues_transportError(t *testing.T) {
	c := newTestClient(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: no such host")
	})

	_, err := c.CompletedIssues(context.Background(), board)
	require.ErrorIs(t, err, serrors.ErrUnavailable)
	require.Contains(t, serrors.Message(err), "JIRA connection failed")
}

func TestClient_CompletedIssues_plainErrorBody(t *testing.T) {
	c := newTestClient(func(*http.Request) (*http.Response, error) {
		return respond(http.StatusForbidden, ""), nil
	})

	_, err := c.CompletedIssues(context.Background(), board)
	require.ErrorIs(t, err, serrors.ErrUnauthorized)
	require.Equal(t, "JIRA authentication failed: 403 Forbidden", serrors.Message(err))
}
