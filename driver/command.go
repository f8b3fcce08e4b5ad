package driver

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/alessio/shellescape"
)

// Binaries searched for, in order, when Config.Binary is empty.
var defaultBinaries = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
	"chrome",
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	*b = append(*b, args...)
}

// String returns the command line in a form that can be pasted into a shell.
func (b commandBuilder) String() string {
	quoted := make([]string, 0, len(b))
	for _, a := range b {
		quoted = append(quoted, shellescape.Quote(a))
	}
	return strings.Join(quoted, " ")
}

func findBinary(configured string) (string, error) {
	if configured != "" {
		path, err := exec.LookPath(configured)
		if err != nil {
			return "", fmt.Errorf("browser binary %q: %w", configured, err)
		}
		return path, nil
	}
	for _, name := range defaultBinaries {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", errors.New("no Chrome or Chromium binary found in PATH; use -driver-binary to choose one")
}

func buildCommand(binary string, port int, userDataDir string, headless bool, extraArgs []string) commandBuilder {
	var cmd commandBuilder
	cmd.add(binary)
	if headless {
		cmd.add("--headless=new")
	}
	cmd.add(
		fmt.Sprintf("--remote-debugging-port=%d", port),
		"--remote-debugging-address=127.0.0.1",
		"--user-data-dir="+userDataDir,
		"--no-first-run",
		"--no-default-browser-check",
		"--disable-gpu",
		"--disable-dev-shm-usage",
		"--disable-extensions",
	)
	cmd.add(extraArgs...)
	cmd.add("about:blank")
	return cmd
}
