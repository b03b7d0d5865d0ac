package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DateLayout is the dd/MM/yyyy layout used when reading and printing dates.
	DateLayout = "02/01/2006"
	// ISODateLayout is accepted on input and used for storage.
	ISODateLayout = "2006-01-02"
)

type Employee struct {
	ID        *int64
	Name      string
	Email     string
	StartDate *time.Time
	Salary    decimal.NullDecimal
	Client    *Client // optional
}

// NewEmployee returns an unsaved employee without a client.
func NewEmployee(name, email string) *Employee {
	return &Employee{
		Name:  name,
		Email: email,
	}
}

// IsNew reports whether the employee has not been persisted yet.
func (e *Employee) IsNew() bool {
	return e.ID == nil
}

// ClientID returns the identity of the assigned client, or nil when the
// employee has no client or the client has not been persisted.
func (e *Employee) ClientID() *int64 {
	if e.Client == nil {
		return nil
	}
	return e.Client.ID
}

// ClientLabel is empty for employees without a client.
func (e *Employee) ClientLabel() string {
	return e.Client.Label()
}

// SalaryText formats the salary with two fraction digits.
func (e *Employee) SalaryText() string {
	if !e.Salary.Valid {
		return ""
	}
	return e.Salary.Decimal.StringFixed(2)
}

// StartDateText formats the start date as dd/mm/yyyy, or "" when unset.
func (e *Employee) StartDateText() string {
	if e.StartDate == nil {
		return ""
	}
	return e.StartDate.Format(DateLayout)
}

// ParseDate accepts dd/MM/yyyy or yyyy-MM-dd and returns a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayout, ISODateLayout} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected dd/mm/yyyy", s)
}

// ParseSalary parses a decimal amount. Comma decimal separators are accepted.
func ParseSalary(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid salary %q: %w", s, err)
	}
	return d, nil
}
