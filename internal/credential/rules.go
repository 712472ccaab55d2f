// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package credential

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rejection messages shown to users.
const (
	MsgNameRequired        = "Name is required"
	MsgNameMissing         = "Required"
	MsgInvalidEmail        = "Invalid email address"
	MsgPasswordTooShort    = "Password must be at least 8 characters"
	MsgPasswordComposition = "Password must contain at least one number, one symbol, and one uppercase letter"
)

// MinPasswordLength is the minimum password length in characters.
const MinPasswordLength = 8

// emailRegex matches addresses that:
// - have a local part of letters, digits and _ ' + - . ending in a non-dot
// - have one or more dot-separated domain labels starting with a letter or digit
// - end in an alphabetic TLD of at least two letters
//
// Leading and doubled dots in the local part are rejected separately.
var emailRegex = regexp.MustCompile(`^[A-Za-z0-9_'+\-.]*[A-Za-z0-9_+\-]@([A-Za-z0-9][A-Za-z0-9\-]*\.)+[A-Za-z]{2,}$`)

// ValidateName checks that a name is present once surrounding whitespace
// is removed.
func ValidateName(candidate string) error {
	if strings.TrimSpace(candidate) == "" {
		return reject(FieldName, KindMissingName, MsgNameRequired)
	}
	return nil
}

// ValidateEmail checks that candidate looks like local@domain.tld.
func ValidateEmail(candidate string) error {
	if !isEmail(candidate) {
		return reject(FieldEmail, KindMalformedEmail, MsgInvalidEmail)
	}
	return nil
}

func isEmail(s string) bool {
	if strings.HasPrefix(s, ".") || strings.Contains(s, "..") {
		return false
	}
	return emailRegex.MatchString(s)
}

// ValidatePassword checks password strength.
// Requirements, in order:
// - Length: at least MinPasswordLength characters
// - At least one digit, one symbol (non-alphanumeric) and one uppercase letter
//
// The length message wins even when the character classes also fail.
func ValidatePassword(candidate string) error {
	if utf8.RuneCountInString(candidate) < MinPasswordLength {
		return reject(FieldPassword, KindPasswordTooShort, MsgPasswordTooShort)
	}

	var hasDigit, hasSymbol, hasUpper bool
	for _, r := range candidate {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case !unicode.IsLetter(r):
			hasSymbol = true
		}
	}

	if !hasDigit || !hasSymbol || !hasUpper {
		return reject(FieldPassword, KindPasswordComposition, MsgPasswordComposition)
	}
	return nil
}
