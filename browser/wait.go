package browser

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/getstarted/bookshelf-journey-tests/poll"
)

// URLPattern is a condition on a page URL.
type URLPattern interface {
	MatchString(url string) bool
	String() string
}

type regexpPattern struct {
	re *regexp.Regexp
}

// MatchURL returns a pattern that matches when expr is found anywhere in the URL; anchor it with
// ^ and $ as needed, e.g. `.*/read\?id=[0-9]+$`. It panics if expr does not compile.
func MatchURL(expr string) URLPattern {
	return regexpPattern{re: regexp.MustCompile(expr)}
}

func (p regexpPattern) MatchString(url string) bool { return p.re.MatchString(url) }
func (p regexpPattern) String() string            { return "/" + p.re.String() + "/" }

type suffixPattern string

// URLSuffix returns a pattern that matches URLs ending in suffix.
func URLSuffix(suffix string) URLPattern {
	return suffixPattern(suffix)
}

func (p suffixPattern) MatchString(url string) bool { return strings.HasSuffix(url, string(p)) }
func (p suffixPattern) String() string            { return "*" + strconv.Quote(string(p)) }

// URLSource reports the URL of the page currently loaded. The read must give up when ctx is done.
type URLSource interface {
	CurrentURLContext(ctx context.Context) (string, error)
}

// WaitForURL polls source until its URL matches pattern and returns that URL. A failed URL read
// counts as a non-match, since the page may be in the middle of a transition. When opts.Timeout
// elapses first it returns *NavigationTimeoutError with the last URL seen; a read that blocks past
// the deadline is cancelled through its context, so that happens within opts.Interval of the
// timeout.
func WaitForURL(ctx context.Context, source URLSource, pattern URLPattern, opts poll.Options) (string, error) {
	var lastURL string
	var lastErr error
	err := poll.Until(ctx, func(ctx context.Context) (bool, error) {
		url, err := source.CurrentURLContext(ctx)
		if err != nil {
			lastErr = err
			return false, nil
		}
		lastURL, lastErr = url, nil
		return pattern.MatchString(url), nil
	}, opts)
	if errors.Is(err, poll.ErrTimeout) {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = poll.DefaultTimeout
		}
		return lastURL, &NavigationTimeoutError{
			Pattern: pattern.String(),
			LastURL: lastURL,
			Timeout: timeout,
			LastErr: lastErr,
		}
	}
	return lastURL, err
}
