// Package journey contains the bookshelf user journey scenario, the page checks it is built from,
// and the test API that ties each scenario to its own browser session.
//
// Infrastructure that does not know about the bookshelf pages, such as the test tree and result
// reporting, is in the lower-level framework package; browser control is in the browser package.
package journey
