// Package framework contains the low-level implementation of test harness infrastructure
// that is not specific to any application under test.
//
// The general model is:
//
// 1. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. Tests are run outside of the Go test runner, so that the harness
// can be built once and pointed at any deployment of the application.
//
// 2. Each test can capture debug output, which the TestLogger decides whether to show, and can
// attach diagnostic content such as page markup, which is always passed to the TestLogger.
//
// 3. Resources owned by a test are released by functions registered with Context.Defer, which
// run on every exit path.
//
// The domain-specific code that knows what is being tested is responsible for providing a
// domain-specific test API on top of the test context.
package framework
