package extraction

import "fmt"

// ServiceError represents a failure reported by (or while reaching) the
// extraction service. Message is surfaced to the user verbatim.
type ServiceError struct {
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}
