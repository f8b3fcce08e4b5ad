package journey

import (
	"github.com/getstarted/bookshelf-journey-tests/framework"
)

// T is the scenario-level test context, used like *testing.T. It implements require.TestingT.
type T struct {
	context *framework.Context
	env     *environment
	browser Browser
}

type environment struct {
	config Config
	opener Opener
}

func newTestScope(c *framework.Context, env *environment) *T {
	return &T{context: c, env: env}
}

func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

func (t *T) Config() Config {
	return t.env.config
}

func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

func (t *T) FailNow() {
	t.context.FailNow()
}

// Require stops the scenario if err is non-nil. The error is recorded as is, so a typed failure
// such as *browser.NavigationTimeoutError reaches the results unchanged.
func (t *T) Require(err error) {
	if err != nil {
		t.context.Fail(err)
		t.context.FailNow()
	}
}

func (t *T) Debug(message string, args ...interface{}) {
	t.context.Debug(message, args...)
}

func (t *T) Defer(f func()) {
	t.context.Defer(f)
}

func (t *T) Failed() bool {
	return t.context.Failed()
}

// Browser returns this scenario's browser session, opening it on first use. The session is closed
// when the scenario ends; if the scenario failed, the page is captured first.
func (t *T) Browser() Browser {
	if t.browser != nil {
		return t.browser
	}
	b, err := t.env.opener(t.context.DebugLogger())
	t.Require(err)
	t.browser = b
	t.Defer(func() {
		if err := b.Close(); err != nil {
			t.Errorf("%s", err)
		}
	})
	t.Defer(func() {
		if t.Failed() {
			captureDiagnostics(t, b)
		}
	})
	return b
}
