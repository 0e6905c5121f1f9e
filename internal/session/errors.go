package session

import "fmt"

// NotFoundError is returned for unknown or evicted session ids
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// LimitError is returned when the manager already holds its maximum number of sessions
type LimitError struct {
	Max int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("session limit reached: %d", e.Max)
}
