package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"

	"github.com/getstarted/bookshelf-journey-tests/driver"
	"github.com/getstarted/bookshelf-journey-tests/framework"
	"github.com/getstarted/bookshelf-journey-tests/poll"
)

// DefaultActionTimeout bounds each browser command when Options.ActionTimeout is not set.
const DefaultActionTimeout = 10 * time.Second

// Options for Open.
type Options struct {
	// ActionTimeout bounds every individual browser command after the session is open.
	ActionTimeout time.Duration
	Logger        framework.Logger
}

// Session is one browser tab obtained from the driver service. It is owned by a single scenario and
// must be closed by it, including when the scenario fails.
type Session struct {
	id            string
	endpoint      driver.Endpoint
	capabilities  Capabilities
	ctx           context.Context
	cancelTab     context.CancelFunc
	cancelAlloc   context.CancelFunc
	actionTimeout time.Duration
	logger        framework.Logger
	closeOnce     sync.Once
	closeErr      error
}

// Open attaches to the driver service at endpoint and opens a new tab configured by caps.
func Open(ctx context.Context, endpoint driver.Endpoint, caps Capabilities, opts Options) (*Session, error) {
	if endpoint.WebSocketURL == "" {
		return nil, &SessionCreateError{Endpoint: endpoint.URL, Err: errors.New("driver service is not running")}
	}
	if err := caps.negotiate(endpoint); err != nil {
		return nil, &SessionCreateError{Endpoint: endpoint.URL, Err: err}
	}
	if opts.ActionTimeout <= 0 {
		opts.ActionTimeout = DefaultActionTimeout
	}

	id := uuid.NewString()
	logger := framework.LoggerWithPrefix(opts.Logger, fmt.Sprintf("[session %s] ", id[:8]))

	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(ctx, endpoint.WebSocketURL)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(logger.Printf),
		chromedp.WithErrorf(logger.Printf),
	)
	// The first Run allocates the tab and binds it to tabCtx, so it must not carry a timeout.
	if err := chromedp.Run(tabCtx, caps.actions()...); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, &SessionCreateError{Endpoint: endpoint.URL, Err: err}
	}
	logger.Printf("Opened session on %s with capabilities %s", endpoint.URL, caps)

	return &Session{
		id:            id,
		endpoint:      endpoint,
		capabilities:  caps,
		ctx:           tabCtx,
		cancelTab:     cancelTab,
		cancelAlloc:   cancelAlloc,
		actionTimeout: opts.ActionTimeout,
		logger:        logger,
	}, nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Capabilities() Capabilities {
	return s.capabilities
}

func (s *Session) run(actions ...chromedp.Action) error {
	return s.runContext(s.ctx, actions...)
}

// runContext runs actions on the tab, stopping at the action timeout or when ctx is done,
// whichever comes first. ctx does not have to be derived from the session's context.
func (s *Session) runContext(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(s.ctx, s.actionTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

// Navigate loads url and returns when the browser reports the load finished.
func (s *Session) Navigate(url string) error {
	s.logger.Printf("Navigating to %s", url)
	if err := s.run(chromedp.Navigate(url)); err != nil {
		return &NavigationError{URL: url, Err: err}
	}
	return nil
}

func (s *Session) CurrentURL() (string, error) {
	return s.CurrentURLContext(s.ctx)
}

// CurrentURLContext reads the URL of the page, giving up when ctx is done.
func (s *Session) CurrentURLContext(ctx context.Context) (string, error) {
	var url string
	if err := s.runContext(ctx, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("could not read current URL: %w", err)
	}
	return url, nil
}

// PageSource returns the serialized markup of the current document.
func (s *Session) PageSource() (string, error) {
	var html string
	if err := s.run(chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("could not read page source: %w", err)
	}
	return html, nil
}

func (s *Session) Screenshot() ([]byte, error) {
	var buf []byte
	if err := s.run(chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, fmt.Errorf("could not capture screenshot: %w", err)
	}
	return buf, nil
}

func (s *Session) FindElement(selector string) (Element, error) {
	elements, err := s.FindElements(selector)
	return firstMatch(selector, elements, err)
}

func (s *Session) FindElements(selector string) ([]Element, error) {
	return s.query(selector, selector, chromedp.ByQueryAll)
}

func (s *Session) FindLink(text string) (Element, error) {
	label := fmt.Sprintf("link %q", text)
	elements, err := s.query(label, linkXPath(text), chromedp.BySearch)
	return firstMatch(label, elements, err)
}

// WaitForURL blocks until the current URL matches pattern or timeout elapses. A URL read still in
// progress at the deadline is abandoned, so the wait ends close to timeout even while the page is
// unresponsive.
func (s *Session) WaitForURL(pattern URLPattern, timeout time.Duration) (string, error) {
	return WaitForURL(s.ctx, s, pattern, poll.Options{
		Interval:    100 * time.Millisecond,
		MaxInterval: 500 * time.Millisecond,
		Timeout:     timeout,
	})
}

// query returns the nodes matching selector. label describes them in errors and is usually the
// selector itself, qualified by the parent for child lookups.
func (s *Session) query(label, selector string, opts ...chromedp.QueryOption) ([]Element, error) {
	var nodes []*cdp.Node
	opts = append(opts, chromedp.AtLeast(0))
	if err := s.run(chromedp.Nodes(selector, &nodes, opts...)); err != nil {
		return nil, fmt.Errorf("could not query %q: %w", label, err)
	}
	elements := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, &nodeElement{session: s, node: n, selector: label})
	}
	return elements, nil
}

// Close releases the tab. Only the first call has any effect.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		err := chromedp.Cancel(s.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			s.closeErr = fmt.Errorf("could not close browser session: %w", err)
		}
		s.cancelTab()
		s.cancelAlloc()
		s.logger.Printf("Closed session")
	})
	return s.closeErr
}

func firstMatch(selector string, elements []Element, err error) (Element, error) {
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, &ElementNotFoundError{Selector: selector}
	}
	return elements[0], nil
}

// linkXPath builds an XPath expression for an anchor with the given visible text. XPath 1.0 has no
// escape syntax, so text containing both quote kinds is assembled with concat().
func linkXPath(text string) string {
	return fmt.Sprintf("//a[normalize-space(.)=%s]", xpathLiteral(text))
}

func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		quoted = append(quoted, `"`+p+`"`)
	}
	return "concat(" + strings.Join(quoted, ",") + ")"
}
