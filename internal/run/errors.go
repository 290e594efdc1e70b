package run

import "fmt"

// NotFoundError is returned when attribute resolution exhausts the chain
// without a hit, or an exactly-one query matches nothing.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return "no run found matching the specified criteria"
	}
	return fmt.Sprintf("no such key: %s", e.Key)
}

// AmbiguousError is returned when an exactly-one query matches more than one
// run.
type AmbiguousError struct {
	Count int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("multiple runs (%d) found matching the criteria, expected exactly one", e.Count)
}

// TypeMismatchError is returned when a multi-key update is given a value
// that is not a slice, or a slice of the wrong length.
type TypeMismatchError struct {
	Reason string
}

func (e *TypeMismatchError) Error() string {
	return e.Reason
}
