package conformance

import (
	"fmt"
	"strings"

	"blockc/gen"
	"blockc/php"
	"blockc/trace"
)

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Output     string
	Error      error
}

// Runner compiles test programs with the PHP backend.
type Runner struct {
	tracer     *trace.Tracer
	generators map[string]*gen.Generator // by indent
}

// NewRunner creates a runner. A nil tracer traces nothing.
func NewRunner(tracer *trace.Tracer) *Runner {
	return &Runner{
		tracer:     tracer,
		generators: make(map[string]*gen.Generator),
	}
}

func (r *Runner) generator(indent string) *gen.Generator {
	g, ok := r.generators[indent]
	if !ok {
		g = php.New(gen.Options{Indent: indent, Tracer: r.tracer})
		r.generators[indent] = g
	}
	return g
}

// Run executes a single test case
func (r *Runner) Run(test LoadedTest) TestResult {
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{
			Test:       test,
			Skipped:    true,
			SkipReason: reason,
		}
	}

	prog, err := test.Test.Blocks()
	if err != nil {
		return TestResult{Test: test, Error: fmt.Errorf("program: %w", err)}
	}

	out, compileErr := r.generator(test.Test.Indent).Compile(prog)
	if err := checkExpectation(test.Test.Expect, out, compileErr); err != nil {
		return TestResult{Test: test, Output: out, Error: err}
	}
	return TestResult{Test: test, Passed: true, Output: out}
}

// RunAll executes all loaded tests
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))
	for i, test := range tests {
		results[i] = r.Run(test)
	}
	return results
}

// SummaryStats computes statistics from test results
type SummaryStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// ComputeStats generates statistics from test results
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		if r.Skipped {
			stats.Skipped++
		} else if r.Passed {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	return stats
}

// FormatStats returns a human-readable summary
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)",
		stats.Passed, stats.Failed, stats.Skipped, stats.Total)
}

// checkExpectation compares a compilation outcome with the expected one
func checkExpectation(expect Expectation, out string, err error) error {
	if expect.Error != "" {
		if err == nil {
			return fmt.Errorf("expected error containing %q, got output:\n%s", expect.Error, out)
		}
		if !strings.Contains(err.Error(), expect.Error) {
			return fmt.Errorf("expected error containing %q, got %q", expect.Error, err.Error())
		}
		return nil
	}

	if err != nil {
		return fmt.Errorf("unexpected error: %w", err)
	}
	if expect.Output != nil && out != *expect.Output {
		return fmt.Errorf("output mismatch\n--- want\n%s--- got\n%s", *expect.Output, out)
	}
	for _, s := range expect.Contains {
		if !strings.Contains(out, s) {
			return fmt.Errorf("output does not contain %q:\n%s", s, out)
		}
	}
	return nil
}
