package repository

import (
	"errors"
	"fmt"

	"github.com/martijn/roster/internal/core/domain"
)

var (
	// ErrStore matches every failure reported by the record store.
	ErrStore = errors.New("store failure")
	// ErrIntegrity matches deletes blocked by a referential constraint.
	ErrIntegrity = errors.New("referential integrity violation")
	ErrNotFound  = errors.New("record not found")

	ErrIdentityAssigned = errors.New("entity already has an identity")
	ErrIdentityMissing  = errors.New("entity has no identity")
)

// StoreError is a generic read or write failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

// IntegrityError is returned when a delete is rejected because other rows
// still reference the record.
type IntegrityError struct {
	Kind domain.Kind
	ID   int64
	Err  error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("cannot delete %s %d: it is still referenced by other records", e.Kind, e.ID)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity || target == ErrStore
}

func NewStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
