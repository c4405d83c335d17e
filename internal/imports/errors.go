package imports

import "errors"

var (
	// ErrInvalidInput marks malformed import requests.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedType is returned for file types the extractor cannot read.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrEmptyDocument is returned when no text could be extracted.
	ErrEmptyDocument = errors.New("no text extracted from document")
)
