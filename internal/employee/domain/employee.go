package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Column limits of the employees table, in characters.
const (
	MaxNameLen       = 100
	MaxEmailLen      = 120
	MaxDepartmentLen = 50
)

// LengthError reports a field longer than its column allows.
type LengthError struct {
	Field string
	Max   int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s must be at most %d characters", e.Field, e.Max)
}

// Employee is a survey respondent, identified by email. Employees are created on first submission and never deleted.
type Employee struct {
	ID         int64
	Name       string
	Email      string
	Department string
	CreatedAt  time.Time
}

// Validate validates the employee for persistence. Returns an error describing the first validation failure;
// over-long fields yield a *LengthError.
func (e *Employee) Validate() error {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.TrimSpace(e.Email)
	e.Department = strings.TrimSpace(e.Department)
	if e.Name == "" {
		return errors.New("name is required")
	}
	if e.Email == "" {
		return errors.New("email is required")
	}
	if e.Department == "" {
		return errors.New("department is required")
	}
	for _, f := range []struct {
		name, value string
		max         int
	}{
		{"name", e.Name, MaxNameLen},
		{"email", e.Email, MaxEmailLen},
		{"department", e.Department, MaxDepartmentLen},
	} {
		if utf8.RuneCountInString(f.value) > f.max {
			return &LengthError{Field: f.name, Max: f.max}
		}
	}
	return nil
}
