package models

import "errors"

var (
	// ErrNotFound is returned when an update or delete references an id
	// that has no stored record.
	ErrNotFound = errors.New("record not found")

	// ErrValidation is returned for malformed input, including import
	// payloads whose format is not recognized.
	ErrValidation = errors.New("validation failed")
)
