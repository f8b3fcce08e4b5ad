package browser

import (
	"fmt"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
)

// nodeElement is an Element backed by a DOM node in a live Session. Node IDs become invalid when
// the page navigates, so elements should not be kept across page transitions.
type nodeElement struct {
	session  *Session
	node     *cdp.Node
	selector string
}

func (e *nodeElement) ids() []cdp.NodeID {
	return []cdp.NodeID{e.node.NodeID}
}

func (e *nodeElement) Text() (string, error) {
	var text string
	if err := e.session.run(chromedp.Text(e.ids(), &text, chromedp.ByNodeID)); err != nil {
		return "", fmt.Errorf("could not read text of %q: %w", e.selector, err)
	}
	return text, nil
}

func (e *nodeElement) Attribute(name string) (string, error) {
	var value string
	var ok bool
	if err := e.session.run(chromedp.AttributeValue(e.ids(), name, &value, &ok, chromedp.ByNodeID)); err != nil {
		return "", fmt.Errorf("could not read attribute %q of %q: %w", name, e.selector, err)
	}
	return value, nil
}

func (e *nodeElement) FindElement(selector string) (Element, error) {
	elements, err := e.FindElements(selector)
	return firstMatch(e.childLabel(selector), elements, err)
}

func (e *nodeElement) FindElements(selector string) ([]Element, error) {
	return e.session.query(e.childLabel(selector), selector, chromedp.ByQueryAll, chromedp.FromNode(e.node))
}

// childLabel names a lookup under this element in errors.
func (e *nodeElement) childLabel(selector string) string {
	return e.selector + " " + selector
}

func (e *nodeElement) Click() error {
	e.session.logger.Printf("Clicking %q", e.selector)
	if err := e.session.run(chromedp.Click(e.ids(), chromedp.ByNodeID)); err != nil {
		return fmt.Errorf("could not click %q: %w", e.selector, err)
	}
	return nil
}

func (e *nodeElement) SendKeys(text string) error {
	if err := e.session.run(chromedp.SendKeys(e.ids(), text, chromedp.ByNodeID)); err != nil {
		return fmt.Errorf("could not type into %q: %w", e.selector, err)
	}
	return nil
}

func (e *nodeElement) Submit() error {
	e.session.logger.Printf("Submitting form of %q", e.selector)
	if err := e.session.run(chromedp.Submit(e.ids(), chromedp.ByNodeID)); err != nil {
		return fmt.Errorf("could not submit form of %q: %w", e.selector, err)
	}
	return nil
}
