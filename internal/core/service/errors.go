package service

import "errors"

var (
	// ErrNilEntity is returned when a nil record is handed to a service.
	ErrNilEntity = errors.New("entity is nil")
	// ErrNotPersisted is returned when an operation needs a stored record
	// but got one without an identity.
	ErrNotPersisted = errors.New("entity has not been persisted")
)
