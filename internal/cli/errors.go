package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/martijn/roster/internal/core/repository"
	"github.com/martijn/roster/internal/core/validation"
)

// userError keeps the original error for errors.Is/As while printing a
// message meant for the person at the keyboard.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

// present turns core failures into user messages. action reads like
// "save client" or "remove employee 3".
func present(action string, err error) error {
	if err == nil {
		return nil
	}

	var ve *validation.Error
	if errors.As(err, &ve) {
		var b strings.Builder
		fmt.Fprintf(&b, "cannot %s, invalid input:", action)
		for _, field := range ve.Errors.Fields() {
			fmt.Fprintf(&b, "\n  %s: %s", field, ve.Errors[field])
		}
		return &userError{msg: b.String(), err: err}
	}

	var ie *repository.IntegrityError
	if errors.As(err, &ie) {
		return &userError{
			msg: fmt.Sprintf("cannot %s: %s %d is still referenced by other records", action, kindLabel(ie.Kind), ie.ID),
			err: err,
		}
	}

	if errors.Is(err, repository.ErrNotFound) {
		return &userError{msg: fmt.Sprintf("cannot %s: record not found", action), err: err}
	}

	if errors.Is(err, repository.ErrStore) {
		return &userError{msg: fmt.Sprintf("cannot %s: %v", action, err), err: err}
	}

	return fmt.Errorf("failed to %s: %w", action, err)
}
