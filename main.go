package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/getstarted/bookshelf-journey-tests/browser"
	"github.com/getstarted/bookshelf-journey-tests/cleanup"
	"github.com/getstarted/bookshelf-journey-tests/config"
	"github.com/getstarted/bookshelf-journey-tests/driver"
	"github.com/getstarted/bookshelf-journey-tests/framework"
	"github.com/getstarted/bookshelf-journey-tests/journey"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}
	os.Exit(run(params))
}

func run(params commandParams) int {
	cfg := params.config

	mainDebugLogger := framework.NullLogger()
	var driverOutput io.Writer
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
		driverOutput = os.Stderr
	}

	caps, err := browser.ParseCapabilities(cfg.Driver.Capabilities)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	target := cfg.Target()
	fmt.Printf("Testing endpoint: %s\n", target.Endpoint())

	var service *driver.Service
	var endpoint driver.Endpoint
	if cfg.Driver.URL != "" {
		endpoint, err = driver.Attach(cfg.Driver.URL, time.Duration(cfg.Driver.StartupTimeout), os.Stdout)
	} else {
		service = driver.NewService(driver.Config{
			Binary:         cfg.Driver.Binary,
			Port:           cfg.Driver.Port,
			Headless:       cfg.Driver.Headless,
			ExtraArgs:      cfg.Driver.ExtraArgs,
			StartupTimeout: time.Duration(cfg.Driver.StartupTimeout),
			Output:         driverOutput,
		}, mainDebugLogger)
		endpoint, err = service.Start()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Driver service error: %s\n", err)
		return 1
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	ctx := context.Background()
	opener := func(logger framework.Logger) (journey.Browser, error) {
		session, err := browser.Open(ctx, endpoint, caps, browser.Options{
			ActionTimeout: time.Duration(cfg.Driver.ActionTimeout),
			Logger:        logger,
		})
		if err != nil {
			return nil, err
		}
		return session, nil
	}
	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	results := journey.RunTestSuite(journeyConfig(cfg, target), opener, params.filters.AsFilter, testLogger)

	if service != nil {
		if err := service.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "Could not stop driver service: %s\n", err)
		}
	}

	exitCode := 0
	if !cfg.Cleanup.Skip {
		openStore := func(ctx context.Context) (cleanup.Store, error) {
			store, err := cleanup.OpenDatastore(ctx, cfg.CleanupProject())
			if err != nil {
				return nil, err
			}
			return store, nil
		}
		n, err := cleanup.ForTarget(ctx, target, openStore, cfg.Cleanup.Kind, mainDebugLogger)
		if err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("Test data cleanup failed: %s", err))
			exitCode = 1
		} else if target.Mode == config.Deployed {
			fmt.Printf("Deleted %d %s records\n", n, cfg.Cleanup.Kind)
		}
	}

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		exitCode = 1
	}
	return exitCode
}

func journeyConfig(cfg config.Config, target config.Target) journey.Config {
	return journey.Config{
		BaseURL:     target.Endpoint(),
		WaitTimeout: time.Duration(cfg.Journey.WaitTimeout),
		ArtifactDir: cfg.ArtifactDir,
		Book: journey.Book{
			Title:         cfg.Journey.Title,
			Author:        cfg.Journey.Author,
			PublishedDate: cfg.Journey.PublishedDate,
			Description:   cfg.Journey.Description,
		},
	}
}
