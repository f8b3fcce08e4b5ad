package driver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/getstarted/bookshelf-journey-tests/framework"
	"github.com/getstarted/bookshelf-journey-tests/poll"
)

const versionPath = "/json/version"

// Endpoint describes a running driver service. It does not change after the service has started,
// so it can be shared by concurrently created browser sessions.
type Endpoint struct {
	// URL is the HTTP base URL of the service, e.g. http://127.0.0.1:9222.
	URL string
	// WebSocketURL is the browser-level DevTools socket that sessions attach to.
	WebSocketURL    string
	Browser         string
	ProtocolVersion string
	UserAgent       string
}

type versionInfo struct {
	Browser              string `json:"Browser"`
	ProtocolVersion      string `json:"Protocol-Version"`
	UserAgent            string `json:"User-Agent"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

var statusClient = &http.Client{Timeout: 2 * time.Second}

func queryEndpoint(ctx context.Context, baseURL string) (Endpoint, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+versionPath, nil)
	if err != nil {
		return Endpoint{}, err
	}
	resp, err := statusClient.Do(req)
	if err != nil {
		return Endpoint{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Endpoint{}, fmt.Errorf("driver service returned status code %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Endpoint{}, err
	}
	var info versionInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return Endpoint{}, fmt.Errorf("malformed status response from driver service: %s", string(data))
	}
	if info.WebSocketDebuggerURL == "" {
		return Endpoint{}, errors.New("driver service did not report a webSocketDebuggerUrl")
	}
	return Endpoint{
		URL:             baseURL,
		WebSocketURL:    info.WebSocketDebuggerURL,
		Browser:         info.Browser,
		ProtocolVersion: info.ProtocolVersion,
		UserAgent:       info.UserAgent,
	}, nil
}

// Attach waits for an already running driver service at baseURL to answer its status query,
// for runs where the browser is managed outside the harness.
func Attach(baseURL string, timeout time.Duration, output io.Writer) (Endpoint, error) {
	if output == nil {
		output = io.Discard
	}
	fmt.Fprintf(output, "Connecting to driver service at %s", baseURL)
	var endpoint Endpoint
	var lastErr error
	err := poll.Until(context.Background(), func(ctx context.Context) (bool, error) {
		fmt.Fprintf(output, ".")
		endpoint, lastErr = queryEndpoint(ctx, baseURL)
		return lastErr == nil, nil
	}, poll.Options{Interval: 100 * time.Millisecond, MaxInterval: 500 * time.Millisecond, Timeout: timeout})
	fmt.Fprintln(output)
	if err != nil {
		return Endpoint{}, &ServiceStartError{Command: baseURL, Err: fmt.Errorf("timed out, result of last query was: %w", lastErr)}
	}
	fmt.Fprintf(output, "Driver service reports %s (protocol %s)\n", endpoint.Browser, endpoint.ProtocolVersion)
	return endpoint, nil
}

func logEndpoint(logger framework.Logger, e Endpoint) {
	logger.Printf("Driver service at %s: %s, protocol %s, socket %s", e.URL, e.Browser, e.ProtocolVersion, e.WebSocketURL)
}
