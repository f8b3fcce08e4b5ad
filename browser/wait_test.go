package browser

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getstarted/bookshelf-journey-tests/poll"
)

type scriptedURLSource struct {
	lock  sync.Mutex
	urls  []string
	errs  []error
	calls int
}

func (s *scriptedURLSource) CurrentURLContext(context.Context) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i >= len(s.urls) {
		i = len(s.urls) - 1
	}
	return s.urls[i], nil
}

func fastPoll(timeout time.Duration) poll.Options {
	return poll.Options{Interval: time.Millisecond, MaxInterval: 5 * time.Millisecond, Timeout: timeout}
}

func TestMatchURLUsesFindSemantics(t *testing.T) {
	p := MatchURL(`.*/read\?id=[0-9]+$`)
	assert.True(t, p.MatchString("http://localhost:8080/books/read?id=42"))
	assert.False(t, p.MatchString("http://localhost:8080/books/read?id=42&x=1"))
	assert.False(t, p.MatchString("http://localhost:8080/books/read?id="))
	assert.True(t, MatchURL(`/create$`).MatchString("http://localhost:8080/books/create"))
	assert.Equal(t, `/.*/$/`, MatchURL(`.*/$`).String())
}

func TestURLSuffix(t *testing.T) {
	p := URLSuffix("/create")
	assert.True(t, p.MatchString("http://host/books/create"))
	assert.False(t, p.MatchString("http://host/books/create?x=1"))
	assert.Equal(t, `*"/create"`, p.String())
}

func TestWaitForURLReturnsOnceMatched(t *testing.T) {
	src := &scriptedURLSource{urls: []string{"http://h/", "http://h/", "http://h/books/create"}}
	url, err := WaitForURL(context.Background(), src, MatchURL(`.*/create$`), fastPoll(time.Second))
	require.NoError(t, err)
	assert.Equal(t, "http://h/books/create", url)
	assert.Equal(t, 3, src.calls)
}

func TestWaitForURLMatchesImmediately(t *testing.T) {
	src := &scriptedURLSource{urls: []string{"http://h/"}}
	url, err := WaitForURL(context.Background(), src, MatchURL(`.*/$`), fastPoll(time.Second))
	require.NoError(t, err)
	assert.Equal(t, "http://h/", url)
	assert.Equal(t, 1, src.calls)
}

func TestWaitForURLTimesOut(t *testing.T) {
	src := &scriptedURLSource{urls: []string{"http://h/books/create"}}
	start := time.Now()
	_, err := WaitForURL(context.Background(), src, MatchURL(`.*/read\?id=[0-9]+$`), fastPoll(50*time.Millisecond))
	elapsed := time.Since(start)

	var timeoutErr *NavigationTimeoutError
	require.True(t, errors.As(err, &timeoutErr), "unexpected error: %v", err)
	assert.Equal(t, "http://h/books/create", timeoutErr.LastURL)
	assert.Equal(t, 50*time.Millisecond, timeoutErr.Timeout)
	assert.Contains(t, timeoutErr.Error(), "read")
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
}

func TestWaitForURLTreatsReadErrorsAsNonMatch(t *testing.T) {
	transient := errors.New("page is loading")
	src := &scriptedURLSource{
		urls: []string{"", "", "http://h/books/create"},
		errs: []error{transient, transient},
	}
	url, err := WaitForURL(context.Background(), src, URLSuffix("/create"), fastPoll(time.Second))
	require.NoError(t, err)
	assert.Equal(t, "http://h/books/create", url)
}

func TestWaitForURLTimeoutKeepsLastReadError(t *testing.T) {
	broken := errors.New("target closed")
	src := &scriptedURLSource{urls: []string{""}, errs: []error{broken, broken, broken, broken, broken, broken, broken, broken}}
	opts := fastPoll(20 * time.Millisecond)
	opts.Interval = 10 * time.Millisecond
	opts.MaxInterval = 10 * time.Millisecond
	_, err := WaitForURL(context.Background(), src, URLSuffix("/create"), opts)

	var timeoutErr *NavigationTimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, broken, timeoutErr.LastErr)
	assert.Contains(t, timeoutErr.Error(), "target closed")
}

// stalledURLSource never answers until its context is done, like a tab stuck in a transition.
type stalledURLSource struct{}

func (stalledURLSource) CurrentURLContext(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(5 * time.Second):
		return "http://h/books/create", nil
	}
}

func TestWaitForURLDoesNotOverrunTimeoutWhenReadStalls(t *testing.T) {
	start := time.Now()
	_, err := WaitForURL(context.Background(), stalledURLSource{}, URLSuffix("/create"), poll.Options{
		Interval:    10 * time.Millisecond,
		MaxInterval: 10 * time.Millisecond,
		Timeout:     200 * time.Millisecond,
	})
	elapsed := time.Since(start)

	var timeoutErr *NavigationTimeoutError
	require.True(t, errors.As(err, &timeoutErr), "unexpected error: %v", err)
	assert.ErrorIs(t, timeoutErr.LastErr, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, elapsed, 200*time.Millisecond)
	assert.Less(t, elapsed, 400*time.Millisecond)
}

func TestWaitForURLStopsOnCancel(t *testing.T) {
	src := &scriptedURLSource{urls: []string{"http://h/"}}
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)
	_, err := WaitForURL(ctx, src, URLSuffix("/never"), fastPoll(10*time.Second))
	assert.ErrorIs(t, err, context.Canceled)
}
