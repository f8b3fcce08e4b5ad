package config

import (
	"fmt"
	"strings"
)

// TargetMode says whether the application under test is a local development server or a deployed
// App Engine version.
type TargetMode int

const (
	Local TargetMode = iota
	Deployed
)

// LocalEndpoint is where the development server listens.
const LocalEndpoint = "http://localhost:8080"

func (m TargetMode) String() string {
	switch m {
	case Local:
		return "local"
	case Deployed:
		return "deployed"
	default:
		return fmt.Sprintf("TargetMode(%d)", int(m))
	}
}

// Target identifies the application instance a run is pointed at.
type Target struct {
	Mode    TargetMode
	AppID   string
	Version string
	// BaseURL overrides the endpoint derived from the mode.
	BaseURL string
}

// NewTarget returns a Deployed target when both appID and version are set, and a Local target
// otherwise.
func NewTarget(appID, version string) Target {
	if appID == "" || version == "" {
		return Target{Mode: Local}
	}
	return Target{Mode: Deployed, AppID: appID, Version: version}
}

func (t Target) WithBaseURL(url string) Target {
	t.BaseURL = url
	return t
}

// Endpoint returns the root URL of the application, without a trailing slash.
func (t Target) Endpoint() string {
	if t.BaseURL != "" {
		return strings.TrimSuffix(t.BaseURL, "/")
	}
	if t.Mode == Deployed {
		return fmt.Sprintf("https://%s-dot-%s.appspot.com", t.Version, t.AppID)
	}
	return LocalEndpoint
}
