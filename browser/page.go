package browser

// Page is the read and lookup surface of a loaded page. Lookups never wait: a selector that
// matches nothing at call time yields ElementNotFoundError from FindElement and an empty slice from
// FindElements. Use WaitForURL to synchronize with page transitions first.
type Page interface {
	FindElement(selector string) (Element, error)
	FindElements(selector string) ([]Element, error)
	// FindLink returns the first link whose visible text equals text.
	FindLink(text string) (Element, error)
}

// Element is a node on a Page. Click and Submit start an asynchronous page transition that has no
// completion signal of its own.
type Element interface {
	Text() (string, error)
	// Attribute returns the attribute value, or an empty string if it is absent.
	Attribute(name string) (string, error)
	FindElement(selector string) (Element, error)
	FindElements(selector string) ([]Element, error)
	Click() error
	SendKeys(text string) error
	Submit() error
}
