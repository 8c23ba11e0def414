package economics

import "fmt"

// InvalidInputError reports an input that fails a boundary check. No partial
// result is ever returned alongside it.
type InvalidInputError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s=%v: %s", e.Field, e.Value, e.Reason)
}

// DivisionByZeroError is returned when a ratio has a zero denominator, for
// example ROI with no implementation or subscription cost.
type DivisionByZeroError struct {
	Op string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("division by zero in %s", e.Op)
}

// InvariantViolationError signals an internal consistency failure. It is a
// defect in the engine, not a caller error.
type InvariantViolationError struct {
	Invariant string
	Detail    string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant %q violated: %s", e.Invariant, e.Detail)
}

func invalid(field string, value interface{}, reason string) error {
	return &InvalidInputError{Field: field, Value: value, Reason: reason}
}
