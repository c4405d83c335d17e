package versions

import "errors"

var (
	// ErrNotFound indicates the version or its resume does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden indicates the caller does not own the parent resume.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict indicates version-number assignment kept colliding.
	ErrConflict = errors.New("version number conflict")
)
