// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package credential

import (
	"strings"

	"github.com/samber/oops"
)

// Mode selects the record shape a submission is validated against.
type Mode int

// Record modes.
const (
	SignUp Mode = iota + 1
	SignIn
)

func (m Mode) String() string {
	switch m {
	case SignUp:
		return "signup"
	case SignIn:
		return "signin"
	default:
		return "unknown"
	}
}

// Fields returns the fields accepted by the mode in validation order.
func (m Mode) Fields() []Field {
	switch m {
	case SignUp:
		return []Field{FieldName, FieldEmail, FieldPassword}
	case SignIn:
		return []Field{FieldEmail, FieldPassword}
	default:
		return nil
	}
}

// ParseMode converts a mode name to a Mode.
// Accepts "signup", "signUp", "sign-up" and the matching sign-in spellings.
func ParseMode(s string) (Mode, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "")
	normalized = strings.ReplaceAll(normalized, "_", "")
	switch normalized {
	case "signup":
		return SignUp, nil
	case "signin":
		return SignIn, nil
	default:
		return 0, oops.Code("CREDENTIAL_INVALID_MODE").
			With("mode", s).
			Errorf("unknown credential mode %q", s)
	}
}

// Candidate is an unvalidated credential submission.
// A nil Name means the name was not supplied at all.
type Candidate struct {
	Name     *string
	Email    string
	Password string
}

// Record is an accepted credential record.
type Record interface {
	// Mode returns the mode the record was accepted under.
	Mode() Mode

	// Fields returns exactly the fields relevant to the mode, keyed by name.
	Fields() map[string]string
}

// SignUpRecord is an accepted sign-up submission.
type SignUpRecord struct {
	Name     string `json:"name" yaml:"name" jsonschema:"title=Name,minLength=1,description=Display name; must not be blank"`
	Email    string `json:"email" yaml:"email" jsonschema:"title=Email,format=email"`
	Password string `json:"password" yaml:"password" jsonschema:"title=Password,minLength=8,description=At least one number and one symbol and one uppercase letter"`
}

// Mode implements Record.
func (SignUpRecord) Mode() Mode { return SignUp }

// Fields implements Record.
func (r SignUpRecord) Fields() map[string]string {
	return map[string]string{
		FieldName.String():     r.Name,
		FieldEmail.String():    r.Email,
		FieldPassword.String(): r.Password,
	}
}

// SignInRecord is an accepted sign-in submission. It has no name.
type SignInRecord struct {
	Email    string `json:"email" yaml:"email" jsonschema:"title=Email,format=email"`
	Password string `json:"password" yaml:"password" jsonschema:"title=Password,minLength=8,description=At least one number and one symbol and one uppercase letter"`
}

// Mode implements Record.
func (SignInRecord) Mode() Mode { return SignIn }

// Fields implements Record.
func (r SignInRecord) Fields() map[string]string {
	return map[string]string{
		FieldEmail.String():    r.Email,
		FieldPassword.String(): r.Password,
	}
}

// ValidateSignUp validates c as a sign-up submission.
// Fields are checked name, email, password and the first rejection is returned.
func ValidateSignUp(c Candidate) (SignUpRecord, error) {
	if c.Name == nil {
		return SignUpRecord{}, reject(FieldName, KindMissingName, MsgNameMissing)
	}
	if err := ValidateName(*c.Name); err != nil {
		return SignUpRecord{}, err
	}
	if err := ValidateEmail(c.Email); err != nil {
		return SignUpRecord{}, err
	}
	if err := ValidatePassword(c.Password); err != nil {
		return SignUpRecord{}, err
	}
	return SignUpRecord{
		Name:     strings.TrimSpace(*c.Name),
		Email:    c.Email,
		Password: c.Password,
	}, nil
}

// ValidateSignIn validates c as a sign-in submission.
// The name is never inspected and never appears in the result.
func ValidateSignIn(c Candidate) (SignInRecord, error) {
	if err := ValidateEmail(c.Email); err != nil {
		return SignInRecord{}, err
	}
	if err := ValidatePassword(c.Password); err != nil {
		return SignInRecord{}, err
	}
	return SignInRecord{Email: c.Email, Password: c.Password}, nil
}

// ValidateRecord validates c under mode and returns the accepted record.
// A user-correctable rejection is a *FieldError; an unknown mode is a coded
// CREDENTIAL_INVALID_MODE error.
func ValidateRecord(c Candidate, mode Mode) (Record, error) {
	switch mode {
	case SignUp:
		rec, err := ValidateSignUp(c)
		if err != nil {
			return nil, err
		}
		return rec, nil
	case SignIn:
		rec, err := ValidateSignIn(c)
		if err != nil {
			return nil, err
		}
		return rec, nil
	default:
		return nil, oops.Code("CREDENTIAL_INVALID_MODE").
			With("mode", int(mode)).
			Errorf("unknown credential mode")
	}
}

// StringPtr returns a pointer to s, for building a Candidate with a name.
func StringPtr(s string) *string {
	return &s
}
