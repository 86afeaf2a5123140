package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestEmployee_Validate(t *testing.T) {
	tests := []struct {
		name    string
		e       Employee
		wantErr bool
	}{
		{"valid", Employee{Name: "Ada", Email: "ada@example.com", Department: "Engineering"}, false},
		{"blank name", Employee{Name: "  ", Email: "ada@example.com", Department: "Engineering"}, true},
		{"missing email", Employee{Name: "Ada", Department: "Engineering"}, true},
		{"missing department", Employee{Name: "Ada", Email: "ada@example.com"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.e.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEmployee_ValidateTrims(t *testing.T) {
	e := Employee{Name: " Ada ", Email: " ada@example.com ", Department: " Ops "}
	if err := e.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if e.Name != "Ada" || e.Email != "ada@example.com" || e.Department != "Ops" {
		t.Errorf("Validate did not trim: %+v", e)
	}
}

func TestEmployee_ValidateLength(t *testing.T) {
	tests := []struct {
		name  string
		e     Employee
		field string
	}{
		{"name", Employee{Name: strings.Repeat("a", MaxNameLen+1), Email: "a@x.io", Department: "Ops"}, "name"},
		{"email", Employee{Name: "A", Email: strings.Repeat("a", MaxEmailLen+1), Department: "Ops"}, "email"},
		{"department multibyte", Employee{Name: "A", Email: "a@x.io", Department: strings.Repeat("ü", MaxDepartmentLen+1)}, "department"},
		{"at limit", Employee{Name: strings.Repeat("ü", MaxNameLen), Email: "a@x.io", Department: "Ops"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.e.Validate()
			var le *LengthError
			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.As(err, &le) || le.Field != tt.field {
				t.Errorf("Validate() = %v, want *LengthError for %s", err, tt.field)
			}
		})
	}
}
