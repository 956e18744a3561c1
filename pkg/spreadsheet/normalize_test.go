package spreadsheet_test

import (
	"testing"

	"github.com/samhab/hslu-devops-evaluation/pkg/spreadsheet"
)

func TestExportURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "edit url with fragment",
			in:   "https://docs.google.com/spreadsheets/d/1d2ih/edit?gid=0#gid=0",
			out:  "https://docs.google.com/spreadsheets/d/1d2ih/export?format=csv&gid=0#gid=0",
		},
		{
			name: "already an export url",
			in:   "https://docs.google.com/spreadsheets/d/1d2ih/export?format=csv&gid=5",
			out:  "https://docs.google.com/spreadsheets/d/1d2ih/export?format=csv&gid=5",
		},
	}

	for _, tc := range cases {
		if got := spreadsheet.ExportURL(tc.in); got != tc.out {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.out)
		}
	}
}

func TestStripRepoURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "bare url",
			in:   "https://github.com/team-7/devops_project",
			out:  "https://github.com/team-7/devops_project",
		},
		{
			name: "tree path and whitespace",
			in:   "  https://github.com/team-7/devops_project/tree/main ",
			out:  "https://github.com/team-7/devops_project",
		},
		{
			name: ".git suffix",
			in:   "https://github.com/Team_7/devops-project.git",
			out:  "https://github.com/Team_7/devops-project",
		},
		{
			name: "text around the url",
			in:   "repo: https://github.com/a/b (private)",
			out:  "https://github.com/a/b",
		},
		{
			name: "not a github url",
			in:   " https://gitlab.com/a/b ",
			out:  "https://gitlab.com/a/b",
		},
	}

	for _, tc := range cases {
		if got := spreadsheet.StripRepoURL(tc.in); got != tc.out {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.out)
		}
	}
}

func TestStripJiraURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "board url",
			in:   "https://team7-hslu.atlassian.net/jira/software/projects/T7/boards/1",
			out:  "https://team7-hslu.atlassian.net",
		},
		{
			name: "site root",
			in:   "https://team7.atlassian.net",
			out:  "https://team7.atlassian.net",
		},
		{
			name: "not atlassian",
			in:   "trello.com/b/xyz",
			out:  "trello.com/b/xyz",
		},
	}

	for _, tc := range cases {
		if got := spreadsheet.StripJiraURL(tc.in); got != tc.out {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.out)
		}
	}
}
