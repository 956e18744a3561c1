// Package jira provides an issuetracker.Client implementation backed by the
// Jira Cloud REST API (v3).
package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
	"github.com/samhab/hslu-devops-evaluation/pkg/issuetracker"
	"github.com/samhab/hslu-devops-evaluation/pkg/logger"
	"github.com/samhab/hslu-devops-evaluation/pkg/serrors"
	"go.uber.org/zap"
)

// DoneJQL selects every issue in a done status, newest first.
const DoneJQL = "statusCategory = Done ORDER BY created DESC"

const defaultPageSize = 50

// cloudDomain is the domain of Atlassian Cloud sites.
const cloudDomain = ".atlassian.net"

// Client talks to Jira Cloud sites using Atlassian basic auth (account email and
// API token). One Client serves any number of boards. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to Jira
	email      string       // email is the Atlassian account
	token      string       // token is the Atlassian API token
	pageSize   int          // pageSize is the maxResults of each search request
}

// Ensure Client conforms to the issuetracker.Client interface at compile time.
var _ issuetracker.Client = (*Client)(nil)

// New constructs a Client. A pageSize <= 0 uses Jira's default of 50.
func New(httpClient *http.Client, email, token string, pageSize int) *Client {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &Client{
		httpClient: httpClient,
		email:      email,
		token:      token,
		pageSize:   pageSize,
	}
}

// searchResponse is the subset of /rest/api/3/search/jql used here.
type searchResponse struct {
	Issues []struct {
		Key    string `json:"key"`
		Fields struct {
			Assignee *struct {
				DisplayName string `json:"displayName"`
			} `json:"assignee"`
		} `json:"fields"`
	} `json:"issues"`
	NextPageToken string `json:"nextPageToken"`
	IsLast        bool   `json:"isLast"`
}

// CompletedIssues verifies the credentials against the board's site and then
// pages through all done issues, counting them per assignee.
func (c *Client) CompletedIssues(ctx context.Context, boardURL string) ([]domain.Contribution, error) {
	if c.email == "" || c.token == "" {
		return nil, serrors.With(serrors.ErrMissingConfig,
			"Please provide env variables 'JIRA_EMAIL' and 'JIRA_API_TOKEN'")
	}

	base, err := siteURL(boardURL)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithFields(ctx, zap.String("jira", base.String()))

	// https://developer.atlassian.com/cloud/jira/platform/rest/v3/api-group-myself/
	status, body, err := c.get(ctx, base, "/rest/api/3/myself", nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return nil, serrors.With(serrors.ErrUnauthorized, "JIRA authentication failed: %s", errorText(status, body))
	}
	if status < 200 || status >= 300 {
		return nil, serrors.With(serrors.ErrUnavailable, "JIRA authentication failed: %s", errorText(status, body))
	}

	var (
		out   []domain.Contribution
		index = map[string]int{}
		token string
		pages int
	)
	for {
		// https://developer.atlassian.com/cloud/jira/platform/rest/v3/api-group-issue-search/
		q := url.Values{}
		q.Set("jql", DoneJQL)
		q.Set("fields", "assignee")
		q.Set("maxResults", strconv.Itoa(c.pageSize))
		if token != "" {
			q.Set("nextPageToken", token)
		}

		status, body, err := c.get(ctx, base, "/rest/api/3/search/jql", q)
		if err != nil {
			return nil, err
		}
		if status < 200 || status >= 300 {
			return nil, serrors.With(serrors.ErrUnavailable, "Jira Query issue: %s", errorText(status, body))
		}

		var page searchResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, serrors.Wrap(serrors.ErrInternal, err, "Jira Query issue: could not decode response")
		}
		pages++

		for _, issue := range page.Issues {
			if issue.Fields.Assignee == nil || issue.Fields.Assignee.DisplayName == "" {
				continue
			}
			name := issue.Fields.Assignee.DisplayName
			if i, ok := index[name]; ok {
				out[i].Count++

				continue
			}
			index[name] = len(out)
			out = append(out, domain.Contribution{Name: name, Count: 1})
		}

		if page.IsLast || page.NextPageToken == "" || len(page.Issues) == 0 {
			break
		}
		token = page.NextPageToken
	}
	logger.Debug(ctx, "counted completed issues", zap.Int("assignees", len(out)), zap.Int("pages", pages))

	return out, nil
}

// get performs an authenticated GET and returns the status code and body.
// Only transport failures are returned as errors.
func (c *Client) get(ctx context.Context, base *url.URL, path string, q url.Values) (int, []byte, error) {
	u := base.JoinPath(path)
	if q != nil {
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, nil, serrors.Wrap(serrors.ErrBadRequest, err, "Invalid JIRA board url")
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, serrors.With(serrors.ErrUnavailable, "JIRA connection failed: %s", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, serrors.With(serrors.ErrUnavailable, "JIRA connection failed: could not read response: %s", err)
	}

	return resp.StatusCode, b, nil
}

// siteURL validates a board URL and returns the base the REST paths are joined
// to. Atlassian Cloud sites live at the host root; other servers keep their
// path, which may carry a context path such as /jira.
func siteURL(boardURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(boardURL))
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "Invalid JIRA board url")
	}

	base := &url.URL{Scheme: u.Scheme, Host: u.Host}
	if !strings.HasSuffix(u.Hostname(), cloudDomain) {
		base.Path = strings.TrimRight(u.Path, "/")
	}

	return base, nil
}

// errorText extracts Jira's error messages from a response body, falling back
// to the raw body or the status text.
func errorText(status int, body []byte) string {
	var jerr struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
	}
	if json.Unmarshal(body, &jerr) == nil {
		msgs := append([]string{}, jerr.ErrorMessages...)
		for field, msg := range jerr.Errors {
			msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}

	return fmt.Sprintf("%d %s", status, http.StatusText(status))
}
