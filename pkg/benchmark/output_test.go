package benchmark_test

import (
	"testing"

	"github.com/samhab/hslu-devops-evaluation/pkg/benchmark"
	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
	"github.com/stretchr/testify/require"
)

const sampleOutput = "\x1b[92mTest 001\x1b[0m: Initial game state is valid [1 point]\n" +
	"\x1b[91mTest 002\x1b[0m: Set state with wrong guesses [2 points]\n" +
	"\x1b[92mTest 010\x1b[0m: List actions after the game ended [10 points]\n" +
	"\n" +
	"Tests: 2/3 valid\n" +
	"Mark:  11/13 points\n" +
	"\n"

func TestParseOutput(t *testing.T) {
	res, ok := benchmark.ParseOutput(sampleOutput)
	require.True(t, ok)
	require.Equal(t, "Tests: 2/3 valid\nMark:  11/13 points", res.Overall)
	require.Equal(t, []domain.TestResult{
		{Nr: 1, Name: "Initial game state is valid", Passed: true},
		{Nr: 2, Name: "Set state with wrong guesses", Passed: false},
		{Nr: 10, Name: "List actions after the game ended", Passed: true},
	}, res.Tests)
}

func TestParseOutput_NoSummary(t *testing.T) {
	for name, out := range map[string]string{
		"empty":            "",
		"tests only":       "\x1b[92mTest 001\x1b[0m: ok [1 point]\n",
		"missing trailer":  "Tests: 2/3 valid\nMark:  11/13 points\n",
		"single space":     "Tests: 2/3 valid\nMark: 11/13 points\n\n",
		"trailing content": "Tests: 2/3 valid\nMark:  11/13 points\n\nTraceback\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := benchmark.ParseOutput(out)
			require.False(t, ok)
		})
	}
}

func TestParseOutput_SummaryWithoutTests(t *testing.T) {
	res, ok := benchmark.ParseOutput("Tests: 0/0 valid\nMark:  0/0 points\n\n")
	require.True(t, ok)
	require.Equal(t, "Tests: 0/0 valid\nMark:  0/0 points", res.Overall)
	require.Empty(t, res.Tests)
}
