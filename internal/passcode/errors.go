package passcode

import "errors"

// Domain errors for the passcode package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, passcode.ErrNotFound) {
//	    // handle not found case
//	}
var (
	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("passcode: not found")

	// ErrNoChanges is returned when a partial update supplies no field
	// that differs from the stored values.
	ErrNoChanges = errors.New("passcode: no changes provided")

	// ErrEmptySecret is returned when an empty secret is supplied to an
	// operation that requires one.
	ErrEmptySecret = errors.New("passcode: secret cannot be empty")
)
