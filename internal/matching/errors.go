package matching

import (
	"fmt"
	"strings"
)

// ValidationError describes one rejected request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is returned when a query is rejected before any
// storage access.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	messages := make([]string, len(e))
	for i, err := range e {
		messages[i] = err.Error()
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

// RetrievalFailure wraps a storage error. No partial result accompanies it.
type RetrievalFailure struct {
	Op  string
	Err error
}

func (e *RetrievalFailure) Error() string {
	return fmt.Sprintf("retrieval failed: %s: %v", e.Op, e.Err)
}

func (e *RetrievalFailure) Unwrap() error {
	return e.Err
}
