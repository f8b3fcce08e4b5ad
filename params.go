package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/getstarted/bookshelf-journey-tests/config"
	"github.com/getstarted/bookshelf-journey-tests/framework"
)

type commandParams struct {
	configPath string
	config     config.Config
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
}

type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, " ")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// Read parses the command line. Settings come from the defaults, then the -config file, then the
// environment for the app ID and version, with any flag that was given on the command line
// winning over all of them.
func (c *commandParams) Read(args []string) bool {
	flagValues := config.Default()
	var driverArgs stringList

	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.configPath, "config", "", "TOML file with settings")
	fs.StringVar(&flagValues.AppID, "app-id", "", "App Engine app ID of a deployed target (default $"+config.EnvAppID+")")
	fs.StringVar(&flagValues.AppVersion, "app-version", "", "App Engine version of a deployed target (default $"+config.EnvAppVersion+")")
	fs.StringVar(&flagValues.BaseURL, "base-url", "", "application root URL, overriding the one derived from the target")
	fs.StringVar(&flagValues.ArtifactDir, "artifacts", "", "directory for page markup and screenshots of failed tests")
	fs.StringVar(&flagValues.Driver.URL, "driver-url", "", "URL of an already running driver service; if empty, one is started")
	fs.StringVar(&flagValues.Driver.Binary, "driver-binary", "", "browser executable to start as the driver service")
	fs.IntVar(&flagValues.Driver.Port, "driver-port", 0, "remote debugging port of the started driver service (default: any free port)")
	fs.BoolVar(&flagValues.Driver.Headless, "headless", flagValues.Driver.Headless, "run the started browser without a window")
	fs.Var(&driverArgs, "driver-arg", "extra command line argument for the started browser (repeatable)")
	fs.Var(&flagValues.Driver.StartupTimeout, "startup-timeout", "how long to wait for the driver service to become reachable")
	fs.StringVar(&flagValues.Driver.Capabilities, "capabilities", "", `browser capabilities as JSON, e.g. {"browserName":"chrome"}`)
	fs.Var(&flagValues.Driver.ActionTimeout, "action-timeout", "time limit for each browser command")
	fs.Var(&flagValues.Journey.WaitTimeout, "wait-timeout", "how long to wait for each page transition")
	fs.StringVar(&flagValues.Cleanup.Kind, "kind", flagValues.Cleanup.Kind, "record kind deleted after the run")
	fs.StringVar(&flagValues.Cleanup.Project, "project", "", "project ID of the store to clean up (default: the app ID)")
	fs.BoolVar(&flagValues.Cleanup.Skip, "skip-cleanup", false, "leave created records in place")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	flagValues.Driver.ExtraArgs = driverArgs

	c.config = config.Default()
	if c.configPath != "" {
		loaded, err := config.Load(c.configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return false
		}
		c.config = loaded
	}
	fs.Visit(func(f *flag.Flag) {
		overrideFromFlag(&c.config, flagValues, f.Name)
	})
	c.config.FillFromEnv()
	return true
}

func overrideFromFlag(dest *config.Config, from config.Config, name string) {
	switch name {
	case "app-id":
		dest.AppID = from.AppID
	case "app-version":
		dest.AppVersion = from.AppVersion
	case "base-url":
		dest.BaseURL = from.BaseURL
	case "artifacts":
		dest.ArtifactDir = from.ArtifactDir
	case "driver-url":
		dest.Driver.URL = from.Driver.URL
	case "driver-binary":
		dest.Driver.Binary = from.Driver.Binary
	case "driver-port":
		dest.Driver.Port = from.Driver.Port
	case "headless":
		dest.Driver.Headless = from.Driver.Headless
	case "driver-arg":
		dest.Driver.ExtraArgs = from.Driver.ExtraArgs
	case "startup-timeout":
		dest.Driver.StartupTimeout = from.Driver.StartupTimeout
	case "capabilities":
		dest.Driver.Capabilities = from.Driver.Capabilities
	case "action-timeout":
		dest.Driver.ActionTimeout = from.Driver.ActionTimeout
	case "wait-timeout":
		dest.Journey.WaitTimeout = from.Journey.WaitTimeout
	case "kind":
		dest.Cleanup.Kind = from.Cleanup.Kind
	case "project":
		dest.Cleanup.Project = from.Cleanup.Project
	case "skip-cleanup":
		dest.Cleanup.Skip = from.Cleanup.Skip
	}
}
