// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package credential

import (
	"strings"

	"github.com/samber/oops"
)

// Field identifies a credential field.
type Field int

// Credential fields in declaration order.
const (
	FieldName Field = iota + 1
	FieldEmail
	FieldPassword
)

// Fields lists every field in declaration order.
var Fields = []Field{FieldName, FieldEmail, FieldPassword}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldPassword:
		return "password"
	default:
		return "unknown"
	}
}

// ParseField converts a field name ("name", "email", "password") to a Field.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return FieldName, nil
	case "email":
		return FieldEmail, nil
	case "password":
		return FieldPassword, nil
	default:
		return 0, oops.Code("CREDENTIAL_UNKNOWN_FIELD").
			With("field", s).
			Errorf("unknown credential field %q", s)
	}
}

// ValidateField runs the rule set for field against value.
// It is the entry point for form fields validating on each change or blur.
func ValidateField(field Field, value string) error {
	switch field {
	case FieldName:
		return ValidateName(value)
	case FieldEmail:
		return ValidateEmail(value)
	case FieldPassword:
		return ValidatePassword(value)
	default:
		return oops.Code("CREDENTIAL_UNKNOWN_FIELD").
			With("field", int(field)).
			Errorf("unknown credential field")
	}
}

// Message returns the inline error text for value, or "" when it is valid.
// An unknown field yields its error text so misuse is never silently valid.
func Message(field Field, value string) string {
	err := ValidateField(field, value)
	if err == nil {
		return ""
	}
	if fe, ok := AsFieldError(err); ok {
		return fe.Message
	}
	return err.Error()
}
