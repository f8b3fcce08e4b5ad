package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/getstarted/bookshelf-journey-tests/framework"
)

type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Printf("[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("  %s\n", color.RedString(line))
	}
}

// TestAttachment prints diagnostic content, such as the page markup of a failed test, between
// marker lines.
func (c *ConsoleTestLogger) TestAttachment(id framework.TestID, name string, content string) {
	fmt.Printf("  %s\n", color.YellowString("----- begin %s -----", name))
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Printf("  %s\n", line)
	}
	fmt.Printf("  %s\n", color.YellowString("----- end %s -----", name))
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Printf("  %s %s\n", color.RedString("FAILED:"), id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(os.Stdout, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Printf("  SKIPPED: %s\n", id)
	} else {
		fmt.Printf("  SKIPPED: %s (%s)\n", id, reason)
	}
}
