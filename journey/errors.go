package journey

import "fmt"

// AssertionError describes a page that does not have the expected structure or content.
type AssertionError struct {
	Check    string
	Selector string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s (%s): expected %s, got %s", e.Check, e.Selector, e.Expected, e.Actual)
}
