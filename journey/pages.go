package journey

import (
	"fmt"
	"strings"

	"github.com/getstarted/bookshelf-journey-tests/browser"
)

const placeholderImageProvider = "placekitten"

var createFormLabels = []string{"Title", "Author", "Date Published", "Description"}

// CheckLandingPage verifies the book list of an empty shelf and returns its "Add book" button.
func CheckLandingPage(t *T, page browser.Page) browser.Element {
	buttons := findAll(t, page, "a.btn")
	expectCount(t, "landing page action", "a.btn", 1, len(buttons))
	expectText(t, "landing page action label", "a.btn", "Add book", textOf(t, buttons[0]))

	expectText(t, "landing page heading", "body>.container h3", "Books", textAt(t, page, "body>.container h3"))
	expectText(t, "empty list message", "body>.container p", "No books found", textAt(t, page, "body>.container p"))
	return buttons[0]
}

// CheckAddBookPage verifies that the create form shows the four book fields, in order, and hides
// the rest.
func CheckAddBookPage(t *T, page browser.Page) {
	groups := findAll(t, page, "form .form-group")
	if len(groups) <= len(createFormLabels) {
		t.Require(&AssertionError{
			Check:    "create form input groups",
			Selector: "form .form-group",
			Expected: fmt.Sprintf("more than %d", len(createFormLabels)),
			Actual:   fmt.Sprint(len(groups)),
		})
	}
	for i, want := range createFormLabels {
		label, err := groups[i].FindElement("label")
		t.Require(err)
		expectText(t, fmt.Sprintf("create form label %d", i+1), "form .form-group label", want, textOf(t, label))
	}
	for i, g := range groups[len(createFormLabels):] {
		class, err := g.Attribute("class")
		t.Require(err)
		if !hasClass(class, "hidden") {
			t.Require(&AssertionError{
				Check:    fmt.Sprintf("create form group %d visibility", len(createFormLabels)+i+1),
				Selector: "form .form-group",
				Expected: `class "hidden"`,
				Actual:   fmt.Sprintf("class %q", class),
			})
		}
	}
}

// SubmitForm fills in the create form with book and submits it. The page transition that follows
// has to be waited for separately.
func SubmitForm(t *T, page browser.Page, book Book) {
	fields := []struct{ selector, value string }{
		{"[name=title]", book.Title},
		{"[name=author]", book.Author},
		{"[name=publishedDate]", book.PublishedDate},
		{"[name=description]", book.Description},
	}
	for _, f := range fields {
		t.Require(find(t, page, f.selector).SendKeys(f.value))
	}
	t.Require(find(t, page, "button[type=submit]").Submit())
}

// CheckReadPage verifies the detail page of a newly created book.
func CheckReadPage(t *T, page browser.Page, book Book) {
	expectText(t, "detail page heading", "h3", "Book", textAt(t, page, "h3"))

	buttons := findAll(t, page, "a.btn")
	expectCount(t, "detail page actions", "a.btn", 2, len(buttons))
	expectText(t, "first detail page action", "a.btn", "Edit book", textOf(t, buttons[0]))
	expectText(t, "second detail page action", "a.btn", "Delete book", textOf(t, buttons[1]))

	src, err := find(t, page, "img.book-image").Attribute("src")
	t.Require(err)
	if !strings.Contains(src, placeholderImageProvider) {
		t.Require(&AssertionError{
			Check:    "placeholder image",
			Selector: "img.book-image",
			Expected: fmt.Sprintf("src containing %q", placeholderImageProvider),
			Actual:   fmt.Sprintf("%q", src),
		})
	}

	// The rendered title may carry more than what was typed, e.g. the publication date.
	title := textAt(t, page, ".book-title")
	if !strings.HasPrefix(title, book.Title) {
		t.Require(&AssertionError{
			Check:    "book title",
			Selector: ".book-title",
			Expected: fmt.Sprintf("text starting with %q", book.Title),
			Actual:   fmt.Sprintf("%q", title),
		})
	}
	expectText(t, "book author", ".book-author", "By "+book.Author, textAt(t, page, ".book-author"))
	expectText(t, "book description", ".book-description", book.Description, textAt(t, page, ".book-description"))

	addedBy := textAt(t, page, ".book-added-by")
	if !strings.Contains(addedBy, "Anonymous") {
		t.Require(&AssertionError{
			Check:    "book attribution",
			Selector: ".book-added-by",
			Expected: `text containing "Anonymous"`,
			Actual:   fmt.Sprintf("%q", addedBy),
		})
	}
}

// CheckBookList verifies that the list page shows exactly the one book the journey created.
func CheckBookList(t *T, page browser.Page, book Book) {
	entries := findAll(t, page, "div.media")
	expectCount(t, "book list entries", "div.media", 1, len(entries))

	heading, err := entries[0].FindElement("h4")
	t.Require(err)
	expectText(t, "listed title", "div.media h4", book.Title, textOf(t, heading))

	author, err := entries[0].FindElement("p")
	t.Require(err)
	expectText(t, "listed author", "div.media p", book.Author, textOf(t, author))
}

func find(t *T, page browser.Page, selector string) browser.Element {
	e, err := page.FindElement(selector)
	t.Require(err)
	return e
}

func findAll(t *T, page browser.Page, selector string) []browser.Element {
	elements, err := page.FindElements(selector)
	t.Require(err)
	return elements
}

// textOf returns the visible text of e with surrounding whitespace removed. Icons inside buttons
// leave leading whitespace in the rendered text.
func textOf(t *T, e browser.Element) string {
	text, err := e.Text()
	t.Require(err)
	return strings.TrimSpace(text)
}

func textAt(t *T, page browser.Page, selector string) string {
	return textOf(t, find(t, page, selector))
}

func expectText(t *T, check, selector, expected, actual string) {
	if actual != expected {
		t.Require(&AssertionError{
			Check:    check,
			Selector: selector,
			Expected: fmt.Sprintf("%q", expected),
			Actual:   fmt.Sprintf("%q", actual),
		})
	}
}

func expectCount(t *T, check, selector string, expected, actual int) {
	if actual != expected {
		t.Require(&AssertionError{
			Check:    check,
			Selector: selector,
			Expected: fmt.Sprintf("%d elements", expected),
			Actual:   fmt.Sprintf("%d elements", actual),
		})
	}
}

func hasClass(class, name string) bool {
	for _, c := range strings.Fields(class) {
		if c == name {
			return true
		}
	}
	return false
}
