package spreadsheet

import (
	"regexp"
	"strings"
)

var (
	repoURLRegex = regexp.MustCompile(`https://github\.com/[A-Za-z0-9\-_]+/[A-Za-z0-9\-_]+`)
	jiraURLRegex = regexp.MustCompile(`https://[A-Za-z0-9\-_]+\.atlassian\.net`)
)

// ExportURL turns the browser URL of a Google sheet into the URL of its CSV export:
//
//	https://docs.google.com/spreadsheets/d/<id>/edit?gid=0#gid=0
//	https://docs.google.com/spreadsheets/d/<id>/export?format=csv&gid=0#gid=0
//
// URLs that are not edit URLs are returned unchanged.
func ExportURL(sheetURL string) string {
	return strings.Replace(sheetURL, "/edit?gid=", "/export?format=csv&gid=", 1)
}

// StripRepoURL reduces whatever students typed into the repository cell to the
// bare https://github.com/<owner>/<repo> URL, dropping trailing paths such as
// /tree/main or .git. Cells without a recognizable GitHub URL are returned trimmed.
func StripRepoURL(raw string) string {
	if m := repoURLRegex.FindString(raw); m != "" {
		return m
	}

	return strings.TrimSpace(raw)
}

// StripJiraURL reduces a Jira board link to its site root
// (https://<site>.atlassian.net). Anything else is returned trimmed and is
// rejected later by the Jira client.
func StripJiraURL(raw string) string {
	if m := jiraURLRegex.FindString(raw); m != "" {
		return m
	}

	return strings.TrimSpace(raw)
}
