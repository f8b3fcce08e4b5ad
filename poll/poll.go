// Package poll provides a cooperative wait for conditions that become true asynchronously, such
// as a page URL changing after a form submission or a local process starting to accept requests.
package poll

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultInterval is the first delay between evaluations.
	DefaultInterval = 100 * time.Millisecond
	// DefaultMaxInterval caps the delay between evaluations.
	DefaultMaxInterval = time.Second
	// DefaultTimeout bounds a wait when Options.Timeout is not set.
	DefaultTimeout = 10 * time.Second
)

// ErrTimeout is returned by Until when the condition did not become true in time.
var ErrTimeout = errors.New("condition not met before timeout")

// Condition is evaluated on each poll. A non-nil error stops polling immediately. The context is
// done once the wait is over, and blocking work in the condition must stop when it is.
type Condition func(ctx context.Context) (bool, error)

// Options controls the polling schedule. Zero values are replaced by the defaults.
type Options struct {
	// Interval is the delay after the first unsuccessful evaluation.
	Interval time.Duration
	// MaxInterval caps the exponentially growing delay between evaluations.
	MaxInterval time.Duration
	// Timeout bounds the whole wait. The condition is always evaluated once more at the deadline.
	Timeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.MaxInterval < o.Interval {
		o.MaxInterval = DefaultMaxInterval
		if o.MaxInterval < o.Interval {
			o.MaxInterval = o.Interval
		}
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

func (o Options) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.Interval
	b.MaxInterval = o.MaxInterval
	b.Multiplier = 1.5
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Until evaluates cond until it returns true, returns an error, ctx is done, or opts.Timeout
// elapses. Between evaluations the caller's goroutine sleeps on a timer. The context passed to
// cond expires opts.Interval after the deadline, which leaves the evaluation made at the deadline
// time to finish, so Until returns no later than Timeout plus Interval.
func Until(ctx context.Context, cond Condition, opts Options) error {
	opts = opts.withDefaults()
	deadline := time.Now().Add(opts.Timeout)
	evalCtx, cancel := context.WithDeadline(ctx, deadline.Add(opts.Interval))
	defer cancel()
	b := opts.newBackOff()

	for {
		ok, err := cond(evalCtx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return ErrTimeout
		}
		delay := b.NextBackOff()
		if delay == backoff.Stop || delay > remaining {
			delay = remaining
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
