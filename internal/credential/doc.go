// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package credential validates the shape of authentication credentials
// before they are submitted.
//
// # Field Rules
//
// Each field has a single validator that returns nil or a *FieldError
// carrying exactly one message:
//   - ValidateName - trimmed name must be non-empty
//   - ValidateEmail - conventional local@domain.tld address
//   - ValidatePassword - at least 8 characters, then a digit, a symbol and
//     an uppercase letter
//
// Rules within a field run in declaration order and the first failure wins.
//
// # Records
//
// ValidateRecord combines the field rules for a Mode:
//   - SignUp - name, email and password, checked in that order
//   - SignIn - email and password; a supplied name is dropped unvalidated
//
// A rejection is ordinary data (a *FieldError), not a fault. Only misuse,
// such as an unknown Mode, produces a coded oops error.
//
// All functions are pure and safe for concurrent use.
package credential
