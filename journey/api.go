package journey

import (
	"time"

	"github.com/getstarted/bookshelf-journey-tests/browser"
	"github.com/getstarted/bookshelf-journey-tests/framework"
)

// DefaultWaitTimeout bounds each wait for a page transition when Config.WaitTimeout is not set.
const DefaultWaitTimeout = 10 * time.Second

// Browser is what a scenario needs from a browser session. *browser.Session implements it.
type Browser interface {
	browser.Page
	Navigate(url string) error
	CurrentURL() (string, error)
	PageSource() (string, error)
	Screenshot() ([]byte, error)
	WaitForURL(pattern browser.URLPattern, timeout time.Duration) (string, error)
	Close() error
}

// Opener creates a new browser session for one scenario. Debug output of the session should go to
// logger, which belongs to the scenario.
type Opener func(logger framework.Logger) (Browser, error)

// Book holds the values the journey types into the create form and then expects to see rendered.
type Book struct {
	Title         string
	Author        string
	PublishedDate string
	Description   string
}

func DefaultBook() Book {
	return Book{
		Title:         "mytitle",
		Author:        "myauthor",
		PublishedDate: "1984-02-27",
		Description:   "mydescription",
	}
}

type Config struct {
	// BaseURL is the root of the application under test.
	BaseURL string
	// WaitTimeout bounds each wait for a page transition.
	WaitTimeout time.Duration
	// ArtifactDir, if set, receives the markup and a screenshot of the page for each failed
	// scenario.
	ArtifactDir string
	Book        Book
}
