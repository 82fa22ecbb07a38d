package domain

import "errors"

var (
	// ErrNotFound is returned on a booking, notification, staff or
	// customer lookup miss.
	ErrNotFound = errors.New("not found")

	// ErrThrottled is returned when a message for the same conversation
	// key was sent within the trailing 15 minutes.
	ErrThrottled = errors.New("must wait until cooldown elapses")

	// ErrValidation covers a missing _data property or a malformed
	// booking interval on a line item.
	ErrValidation = errors.New("invalid payload")

	// ErrProvider is a messaging provider failure.
	ErrProvider = errors.New("messaging provider failure")

	// ErrPersistence is a store operation failure, always fatal to the
	// enclosing operation.
	ErrPersistence = errors.New("persistence failure")
)
