package framework

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// PrintResults writes a summary of the run. The root context's own result is not counted.
func PrintResults(out io.Writer, results Results) {
	ran, skipped := 0, 0
	for _, r := range results.Tests {
		if len(r.TestID.Path) == 0 {
			continue
		}
		if r.Skipped {
			skipped++
		} else {
			ran++
		}
	}
	if results.OK() {
		fmt.Fprintln(out, color.GreenString("All tests passed"), fmt.Sprintf("(%d run, %d skipped)", ran, skipped))
		return
	}
	fmt.Fprintln(out, color.RedString("FAILED TESTS (%d of %d):", len(results.Failures), ran))
	for _, f := range results.Failures {
		name := f.TestID.String()
		if name == "" {
			name = "(test suite setup)"
		}
		fmt.Fprintf(out, "  * %s\n", name)
	}
}
