package catalog

import "fmt"

// NotFoundError reports a destination, activity or sub-item id that
// does not exist in the catalog.
type NotFoundError struct {
	Kind string
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// ValidationError reports a write rejected at the admin/import
// boundary. The engine itself never raises it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
