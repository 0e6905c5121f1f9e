package document

import "fmt"

// PreconditionError reports an operation addressed at something that does not
// exist: an unknown section, field or block, or an index out of range.
// Store methods panic with it; Apply returns it.
type PreconditionError struct {
	Op      string
	Message string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition violated: %s: %s", e.Op, e.Message)
}

// OpError identifies the failing operation of a script.
type OpError struct {
	Index int
	Op    string
	Cause error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("op %d (%s): %v", e.Index, e.Op, e.Cause)
}

func (e *OpError) Unwrap() error {
	return e.Cause
}

func violation(op, format string, args ...any) *PreconditionError {
	return &PreconditionError{Op: op, Message: fmt.Sprintf(format, args...)}
}
