// Package markup parses static page snapshots. A Document answers the same lookups as a live
// browser session, which lets page checks run against saved markup, and it produces the outline
// that is attached to failure reports.
package markup

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/getstarted/bookshelf-journey-tests/browser"
)

// ErrReadOnly is returned by element actions on a Document that was not made interactive.
var ErrReadOnly = errors.New("markup snapshot is read-only")

// ActionKind identifies an interaction recorded by an interactive Document.
type ActionKind string

const (
	ActionClick    ActionKind = "click"
	ActionSendKeys ActionKind = "sendKeys"
	ActionSubmit   ActionKind = "submit"
)

// Action is one interaction performed on an element of an interactive Document.
type Action struct {
	Kind     ActionKind
	Selector string
	Text     string
}

// Document is a parsed page. It implements browser.Page.
type Document struct {
	doc         *goquery.Document
	interactive bool
	actions     []Action
}

func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not parse page markup: %w", err)
	}
	return &Document{doc: doc}, nil
}

func ParseString(html string) (*Document, error) {
	return Parse(strings.NewReader(html))
}

// Interactive makes element actions succeed and be recorded instead of returning ErrReadOnly.
// SendKeys appends to the element's value attribute.
func (d *Document) Interactive() *Document {
	d.interactive = true
	return d
}

// Actions returns the interactions recorded so far, oldest first.
func (d *Document) Actions() []Action {
	return append([]Action(nil), d.actions...)
}

// HTML serializes the document back to markup.
func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}

func (d *Document) FindElement(selector string) (browser.Element, error) {
	return d.first(selector, d.doc.Find(selector))
}

func (d *Document) FindElements(selector string) ([]browser.Element, error) {
	return d.wrap(selector, d.doc.Find(selector)), nil
}

func (d *Document) FindLink(text string) (browser.Element, error) {
	links := d.doc.Find("a").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return normalizeSpace(s.Text()) == text
	})
	return d.first(fmt.Sprintf("link %q", text), links)
}

func (d *Document) first(selector string, sel *goquery.Selection) (browser.Element, error) {
	if sel.Length() == 0 {
		return nil, &browser.ElementNotFoundError{Selector: selector}
	}
	return &element{doc: d, sel: sel.First(), selector: selector}, nil
}

func (d *Document) wrap(selector string, sel *goquery.Selection) []browser.Element {
	elements := make([]browser.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &element{doc: d, sel: s, selector: selector})
	})
	return elements
}

func (d *Document) record(a Action) error {
	if !d.interactive {
		return ErrReadOnly
	}
	d.actions = append(d.actions, a)
	return nil
}

type element struct {
	doc      *Document
	sel      *goquery.Selection
	selector string
}

// Text returns the element's text content with runs of whitespace collapsed, which approximates
// what a browser renders for the simple markup of the pages under test.
func (e *element) Text() (string, error) {
	return normalizeSpace(e.sel.Text()), nil
}

func (e *element) Attribute(name string) (string, error) {
	return e.sel.AttrOr(name, ""), nil
}

func (e *element) FindElement(selector string) (browser.Element, error) {
	return e.doc.first(e.childLabel(selector), e.sel.Find(selector))
}

func (e *element) FindElements(selector string) ([]browser.Element, error) {
	return e.doc.wrap(e.childLabel(selector), e.sel.Find(selector)), nil
}

// childLabel names a lookup under this element in errors and recorded actions.
func (e *element) childLabel(selector string) string {
	return e.selector + " " + selector
}

func (e *element) Click() error {
	return e.doc.record(Action{Kind: ActionClick, Selector: e.selector})
}

func (e *element) SendKeys(text string) error {
	if err := e.doc.record(Action{Kind: ActionSendKeys, Selector: e.selector, Text: text}); err != nil {
		return err
	}
	e.sel.SetAttr("value", e.sel.AttrOr("value", "")+text)
	return nil
}

func (e *element) Submit() error {
	return e.doc.record(Action{Kind: ActionSubmit, Selector: e.selector})
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
