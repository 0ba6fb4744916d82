package event

import "errors"

// Event domain errors
var (
	ErrEventNotFound = errors.New("attendance event not found")
	ErrInvalidStatus = errors.New("status is not in the attendance status enumeration")
)
