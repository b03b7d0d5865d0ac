// Package validation checks candidate records before they are written and
// reports every failing field at once.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/martijn/roster/internal/core/domain"
)

const (
	FieldOrganization = "organization"
	FieldProject      = "project"
	FieldName         = "name"
	FieldEmail        = "email"
)

const (
	MaxOrganizationLength = 40
	MaxProjectLength      = 40
	MaxNameLength         = 70
	MaxEmailLength        = 60
)

// Errors maps a field name to a human readable message.
type Errors map[string]string

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Error is raised when a candidate record has at least one invalid field.
type Error struct {
	Errors Errors
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, field := range e.Errors.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Errors[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// RaiseIfInvalid returns an *Error carrying the whole set, or nil when the
// set is empty.
func RaiseIfInvalid(errs Errors) error {
	if len(errs) == 0 {
		return nil
	}
	copied := make(Errors, len(errs))
	for field, msg := range errs {
		copied[field] = msg
	}
	return &Error{Errors: copied}
}

// notBlank rejects strings made only of whitespace. ozzo's Required treats
// them as present.
var notBlank = ozzo.By(func(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return ozzo.NewError("validation_blank", "must not be blank")
	}
	return nil
})

func requiredText(max int) []ozzo.Rule {
	return []ozzo.Rule{
		ozzo.Required.Error("must not be blank"),
		notBlank,
		ozzo.RuneLength(0, max).Error(fmt.Sprintf("must be at most %d characters", max)),
	}
}

// ValidateClient checks every client field and never fails itself.
func ValidateClient(client *domain.Client) Errors {
	if client == nil {
		return Errors{}
	}
	return collect(ozzo.Errors{
		FieldOrganization: ozzo.Validate(client.Organization, requiredText(MaxOrganizationLength)...),
		FieldProject:      ozzo.Validate(client.Project, requiredText(MaxProjectLength)...),
	})
}

// ValidateEmployee checks every employee field. Salary and start date are
// parsed by the caller; the client reference is checked by the store.
func ValidateEmployee(employee *domain.Employee) Errors {
	if employee == nil {
		return Errors{}
	}
	return collect(ozzo.Errors{
		FieldName:  ozzo.Validate(employee.Name, requiredText(MaxNameLength)...),
		FieldEmail: ozzo.Validate(employee.Email, requiredText(MaxEmailLength)...),
	})
}

func collect(results ozzo.Errors) Errors {
	errs := Errors{}
	for field, err := range results {
		if err == nil {
			continue
		}
		var ve ozzo.Error
		if errors.As(err, &ve) {
			errs[field] = ve.Message()
			continue
		}
		errs[field] = err.Error()
	}
	return errs
}
