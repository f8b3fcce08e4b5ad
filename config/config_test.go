package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTarget(t *testing.T) {
	assert.Equal(t, Local, NewTarget("", "").Mode)
	assert.Equal(t, Local, NewTarget("my-app", "").Mode)
	assert.Equal(t, Local, NewTarget("", "v1").Mode)

	target := NewTarget("my-app", "v1")
	assert.Equal(t, Deployed, target.Mode)
	assert.Equal(t, "deployed", target.Mode.String())
}

func TestTargetEndpoint(t *testing.T) {
	assert.Equal(t, "http://localhost:8080", NewTarget("", "").Endpoint())
	assert.Equal(t, "https://v1-dot-my-app.appspot.com", NewTarget("my-app", "v1").Endpoint())
	assert.Equal(t, "http://127.0.0.1:9000", NewTarget("my-app", "v1").WithBaseURL("http://127.0.0.1:9000/").Endpoint())
}

func TestBaseURLOverrideKeepsMode(t *testing.T) {
	target := NewTarget("my-app", "v1").WithBaseURL("https://staging.example.com")
	assert.Equal(t, Deployed, target.Mode)
}

func writeFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "journey.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
app_id = "my-app"
app_version = "v2"

[driver]
binary = "/usr/bin/chromium"
headless = false
startup_timeout = "45s"
extra_args = ["--lang=en-US"]

[journey]
wait_timeout = "30s"
title = "Dune"

[cleanup]
kind = "Book"
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "my-app", c.AppID)
	assert.Equal(t, "/usr/bin/chromium", c.Driver.Binary)
	assert.False(t, c.Driver.Headless)
	assert.Equal(t, Duration(45*time.Second), c.Driver.StartupTimeout)
	assert.Equal(t, []string{"--lang=en-US"}, c.Driver.ExtraArgs)
	assert.Equal(t, Duration(30*time.Second), c.Journey.WaitTimeout)
	assert.Equal(t, "Dune", c.Journey.Title)
	assert.Equal(t, "myauthor", c.Journey.Author)
	assert.Equal(t, "Book", c.Cleanup.Kind)
	assert.Equal(t, Deployed, c.Target().Mode)
	assert.Equal(t, "my-app", c.CleanupProject())
}

func TestLoadRejectsBadDuration(t *testing.T) {
	_, err := Load(writeFile(t, "[journey]\nwait_timeout = \"soon\"\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestFillFromEnv(t *testing.T) {
	t.Setenv(EnvAppID, "env-app")
	t.Setenv(EnvAppVersion, "env-version")

	c := Default()
	c.AppVersion = "flag-version"
	c.FillFromEnv()

	assert.Equal(t, "env-app", c.AppID)
	assert.Equal(t, "flag-version", c.AppVersion)
	assert.Equal(t, "https://flag-version-dot-env-app.appspot.com", c.Target().Endpoint())
}

func TestDefaults(t *testing.T) {
	c := Default()
	assert.Equal(t, Local, c.Target().Mode)
	assert.Equal(t, "Book2", c.Cleanup.Kind)
	assert.Equal(t, Duration(10*time.Second), c.Journey.WaitTimeout)
	assert.Equal(t, "", c.CleanupProject())
}
