package types

import (
	"errors"
	"fmt"
)

// LoadError is the fatal failure of fetching or parsing one of the catalog
// resources. Resource is the identifier of the failing resource, Status the
// HTTP status when the failure was a non success response, zero otherwise.
type LoadError struct {
	Resource string
	Status   int
	Err      error
}

func (e *LoadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("load %s: status %d", e.Resource, e.Status)
	}
	return fmt.Sprintf("load %s: %v", e.Resource, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Terminal detail view states, never retried.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrNoProductSelected = errors.New("no product selected")
)
