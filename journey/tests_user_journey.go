package journey

import (
	"github.com/getstarted/bookshelf-journey-tests/browser"
)

var (
	createPagePattern = browser.MatchURL(`.*/create$`)
	readPagePattern   = browser.MatchURL(`.*/read\?id=[0-9]+$`)
	listPagePattern   = browser.MatchURL(`.*/$`)
)

// DoUserJourneyTest creates a book through the UI and follows it to the detail page and back to
// the list.
func DoUserJourneyTest(t *T) {
	config := t.Config()
	b := t.Browser()

	t.Require(b.Navigate(config.BaseURL))
	addButton := CheckLandingPage(t, b)

	t.Require(addButton.Click())
	awaitPage(t, b, createPagePattern)
	CheckAddBookPage(t, b)

	SubmitForm(t, b, config.Book)
	awaitPage(t, b, readPagePattern)
	CheckReadPage(t, b, config.Book)

	booksLink, err := b.FindLink("Books")
	t.Require(err)
	t.Require(booksLink.Click())
	awaitPage(t, b, listPagePattern)
	CheckBookList(t, b, config.Book)
}

func awaitPage(t *T, b Browser, pattern browser.URLPattern) {
	timeout := t.Config().WaitTimeout
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	url, err := b.WaitForURL(pattern, timeout)
	t.Require(err)
	t.Debug("Now on %s", url)
}
