// Package config holds the settings of a harness run and decides which application instance the
// run targets.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables read by FillFromEnv.
const (
	EnvAppID      = "APPENGINE_APP_ID"
	EnvAppVersion = "APPENGINE_VERSION"
)

// Duration is a time.Duration written as a string such as "10s" in the config file. It can also be
// bound to a command-line flag.
type Duration time.Duration

func (d *Duration) Set(s string) error {
	return d.UnmarshalText([]byte(s))
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Config struct {
	AppID       string `toml:"app_id"`
	AppVersion  string `toml:"app_version"`
	BaseURL     string `toml:"base_url"`
	ArtifactDir string `toml:"artifact_dir"`

	Driver  DriverConfig  `toml:"driver"`
	Journey JourneyConfig `toml:"journey"`
	Cleanup CleanupConfig `toml:"cleanup"`
}

type DriverConfig struct {
	// URL of an already running driver service. When empty the harness starts its own.
	URL            string   `toml:"url"`
	Binary         string   `toml:"binary"`
	Port           int      `toml:"port"`
	Headless       bool     `toml:"headless"`
	ExtraArgs      []string `toml:"extra_args"`
	StartupTimeout Duration `toml:"startup_timeout"`
	// Capabilities is a JSON object, e.g. {"browserName":"chrome","windowWidth":1280}.
	Capabilities  string   `toml:"capabilities"`
	ActionTimeout Duration `toml:"action_timeout"`
}

type JourneyConfig struct {
	WaitTimeout   Duration `toml:"wait_timeout"`
	Title         string   `toml:"title"`
	Author        string   `toml:"author"`
	PublishedDate string   `toml:"published_date"`
	Description   string   `toml:"description"`
}

type CleanupConfig struct {
	Kind string `toml:"kind"`
	// Project defaults to the app ID.
	Project string `toml:"project"`
	Skip    bool   `toml:"skip"`
}

func Default() Config {
	return Config{
		Driver: DriverConfig{
			Headless:       true,
			StartupTimeout: Duration(20 * time.Second),
			ActionTimeout:  Duration(10 * time.Second),
		},
		Journey: JourneyConfig{
			WaitTimeout:   Duration(10 * time.Second),
			Title:         "mytitle",
			Author:        "myauthor",
			PublishedDate: "1984-02-27",
			Description:   "mydescription",
		},
		Cleanup: CleanupConfig{
			Kind: "Book2",
		},
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("could not read config file: %w", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return c, nil
}

// FillFromEnv sets the app ID and version from the environment where they are not already set.
func (c *Config) FillFromEnv() {
	if c.AppID == "" {
		c.AppID = os.Getenv(EnvAppID)
	}
	if c.AppVersion == "" {
		c.AppVersion = os.Getenv(EnvAppVersion)
	}
}

func (c Config) Target() Target {
	return NewTarget(c.AppID, c.AppVersion).WithBaseURL(c.BaseURL)
}

func (c Config) CleanupProject() string {
	if c.Cleanup.Project != "" {
		return c.Cleanup.Project
	}
	return c.AppID
}
