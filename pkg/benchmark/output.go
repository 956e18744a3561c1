package benchmark

import (
	"regexp"
	"strconv"

	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
)

var (
	// summaryRegex matches the two summary lines the benchmark prints last.
	summaryRegex = regexp.MustCompile(`(Tests:\s\d+/\d+\svalid\nMark:\s\s\d+/\d+\spoints)\n\n$`)
	// testRegex matches one colored test line; 92m is green (passed), 91m is red.
	testRegex = regexp.MustCompile(`(92m|91m)Test\s(\d\d\d)\x1b\[0m:\s([^\n]+?)\s\[\d\d?\spoints?\]`)
)

// ParseOutput extracts the summary and the individual tests from benchmark stdout.
// ok is false when the output has no summary section.
func ParseOutput(stdout string) (result domain.BenchmarkResult, ok bool) {
	summary := summaryRegex.FindStringSubmatch(stdout)
	if summary == nil {
		return domain.BenchmarkResult{}, false
	}
	result.Overall = summary[1]

	for _, m := range testRegex.FindAllStringSubmatch(stdout, -1) {
		nr, _ := strconv.Atoi(m[2])
		result.Tests = append(result.Tests, domain.TestResult{
			Nr:     nr,
			Name:   m[3],
			Passed: m[1] == "92m",
		})
	}

	return result, true
}
