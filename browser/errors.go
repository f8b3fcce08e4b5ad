package browser

import (
	"fmt"
	"time"
)

// SessionCreateError means a browser session could not be obtained from the driver service.
type SessionCreateError struct {
	Endpoint string
	Err      error
}

func (e *SessionCreateError) Error() string {
	return fmt.Sprintf("could not create browser session on %s: %s", e.Endpoint, e.Err)
}

func (e *SessionCreateError) Unwrap() error {
	return e.Err
}

// NavigationError means a page could not be loaded.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("could not navigate to %s: %s", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// ElementNotFoundError means a lookup matched no elements at the time it was made.
type ElementNotFoundError struct {
	Selector string
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("no element matches %q", e.Selector)
}

// NavigationTimeoutError means the page URL never matched the expected pattern.
type NavigationTimeoutError struct {
	Pattern string
	LastURL string
	Timeout time.Duration
	// LastErr is the error from the most recent URL read, if it failed.
	LastErr error
}

func (e *NavigationTimeoutError) Error() string {
	msg := fmt.Sprintf("timed out after %s waiting for URL matching %s; last URL was %q", e.Timeout, e.Pattern, e.LastURL)
	if e.LastErr != nil {
		msg += fmt.Sprintf(" (last read failed: %s)", e.LastErr)
	}
	return msg
}
