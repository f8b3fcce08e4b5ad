package driver

import "fmt"

// ServiceStartError means the browser driver process could not be spawned or did not become
// reachable within the startup window.
type ServiceStartError struct {
	Command string
	Err     error
}

func (e *ServiceStartError) Error() string {
	return fmt.Sprintf("could not start driver service (%s): %s", e.Command, e.Err)
}

func (e *ServiceStartError) Unwrap() error {
	return e.Err
}
