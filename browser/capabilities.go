package browser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/getstarted/bookshelf-journey-tests/driver"
)

const (
	defaultWindowWidth  = 1280
	defaultWindowHeight = 1024
)

// Capabilities is the profile a session asks the driver service for.
type Capabilities struct {
	// BrowserName must be contained in the product name reported by the driver service, ignoring
	// case; "chrome" matches both Chrome and HeadlessChrome.
	BrowserName string `json:"browserName,omitempty"`
	// BrowserVersion must be a prefix of the reported version.
	BrowserVersion string              `json:"browserVersion,omitempty"`
	WindowWidth    ldvalue.OptionalInt `json:"windowWidth"`
	WindowHeight   ldvalue.OptionalInt `json:"windowHeight"`
	UserAgent      string              `json:"userAgent,omitempty"`
}

// ParseCapabilities decodes a JSON object such as {"browserName":"chrome","windowWidth":1024}.
func ParseCapabilities(s string) (Capabilities, error) {
	var c Capabilities
	if strings.TrimSpace(s) == "" {
		return c, nil
	}
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return c, fmt.Errorf("invalid capabilities: %w", err)
	}
	return c, nil
}

func (c Capabilities) String() string {
	data, _ := json.Marshal(c)
	return string(data)
}

func splitProduct(product string) (name, version string) {
	if i := strings.Index(product, "/"); i >= 0 {
		return product[:i], product[i+1:]
	}
	return product, ""
}

func (c Capabilities) negotiate(e driver.Endpoint) error {
	name, version := splitProduct(e.Browser)
	if c.BrowserName != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(c.BrowserName)) {
		return fmt.Errorf("driver service runs %q, which does not satisfy browserName %q", e.Browser, c.BrowserName)
	}
	if c.BrowserVersion != "" && !strings.HasPrefix(version, c.BrowserVersion) {
		return fmt.Errorf("driver service runs %q, which does not satisfy browserVersion %q", e.Browser, c.BrowserVersion)
	}
	return nil
}

func (c Capabilities) actions() []chromedp.Action {
	var actions []chromedp.Action
	if c.WindowWidth.IsDefined() || c.WindowHeight.IsDefined() {
		actions = append(actions, chromedp.EmulateViewport(
			int64(c.WindowWidth.OrElse(defaultWindowWidth)),
			int64(c.WindowHeight.OrElse(defaultWindowHeight)),
		))
	}
	if c.UserAgent != "" {
		actions = append(actions, emulation.SetUserAgentOverride(c.UserAgent))
	}
	return actions
}
