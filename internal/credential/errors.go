// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package credential

import (
	"errors"
	"fmt"
)

// Kind classifies a field rejection.
type Kind int

// Rejection kinds.
const (
	KindMissingName Kind = iota + 1
	KindMalformedEmail
	KindPasswordTooShort
	KindPasswordComposition
)

// Code returns the stable machine-readable code for the kind.
func (k Kind) Code() string {
	switch k {
	case KindMissingName:
		return "CREDENTIAL_NAME_REQUIRED"
	case KindMalformedEmail:
		return "CREDENTIAL_EMAIL_MALFORMED"
	case KindPasswordTooShort:
		return "CREDENTIAL_PASSWORD_TOO_SHORT"
	case KindPasswordComposition:
		return "CREDENTIAL_PASSWORD_WEAK"
	default:
		return "CREDENTIAL_UNKNOWN"
	}
}

// WeakPassword reports whether the kind is one of the password sub-cases.
func (k Kind) WeakPassword() bool {
	return k == KindPasswordTooShort || k == KindPasswordComposition
}

// FieldError is a user-correctable rejection of a single field value.
// Message is the text shown next to the offending field.
type FieldError struct {
	Field   Field
	Kind    Kind
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Code returns the machine-readable code of the rejection.
func (e *FieldError) Code() string {
	return e.Kind.Code()
}

// AsFieldError extracts a *FieldError from err's chain.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

func reject(field Field, kind Kind, message string) *FieldError {
	return &FieldError{Field: field, Kind: kind, Message: message}
}
