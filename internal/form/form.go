// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package form tracks the state of an interactive credential form: field
// values, which fields the user has left, and the inline error shown beside
// each one.
package form

import (
	"context"
	"sync"

	"github.com/samber/oops"

	"github.com/holomush/credcheck/internal/credential"
)

// Submitter receives an accepted record. It is the external transport.
type Submitter interface {
	Submit(ctx context.Context, record credential.Record) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, record credential.Record) error

// Submit calls f.
func (f SubmitterFunc) Submit(ctx context.Context, record credential.Record) error {
	return f(ctx, record)
}

type fieldState struct {
	value   string
	set     bool
	touched bool
	err     string
}

// Form holds the values and inline errors for one mode. It is safe for
// concurrent use.
type Form struct {
	mode credential.Mode

	mu     sync.Mutex
	fields map[credential.Field]*fieldState
}

// New creates an empty form for mode.
func New(mode credential.Mode) (*Form, error) {
	fields := mode.Fields()
	if len(fields) == 0 {
		return nil, oops.Code("CREDENTIAL_INVALID_MODE").
			With("mode", int(mode)).
			Errorf("invalid form mode")
	}
	f := &Form{mode: mode, fields: make(map[credential.Field]*fieldState, len(fields))}
	for _, field := range fields {
		f.fields[field] = &fieldState{}
	}
	return f, nil
}

// Mode returns the form's mode.
func (f *Form) Mode() credential.Mode {
	return f.mode
}

// Fields returns the form's fields in prompt order.
func (f *Form) Fields() []credential.Field {
	return f.mode.Fields()
}

func (f *Form) lookup(field credential.Field) (*fieldState, error) {
	st, ok := f.fields[field]
	if !ok {
		return nil, oops.Code("FORM_UNKNOWN_FIELD").
			With("field", field.String()).
			With("mode", f.mode.String()).
			Errorf("field %s is not part of the %s form", field, f.mode)
	}
	return st, nil
}

// Set stores a value. A touched field is re-validated so its inline error
// follows the keystrokes.
func (f *Form) Set(field credential.Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, err := f.lookup(field)
	if err != nil {
		return err
	}
	st.value = value
	st.set = true
	if st.touched {
		st.err = credential.Message(field, value)
	}
	return nil
}

// Blur marks a field touched and validates it.
func (f *Form) Blur(field credential.Field) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, err := f.lookup(field)
	if err != nil {
		return err
	}
	st.touched = true
	st.err = credential.Message(field, st.value)
	return nil
}

// Value returns the current value of a field.
func (f *Form) Value(field credential.Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.fields[field]; ok {
		return st.value
	}
	return ""
}

// Error returns the inline message for a field, or "" when there is none.
func (f *Form) Error(field credential.Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.fields[field]; ok {
		return st.err
	}
	return ""
}

// Valid reports whether no touched field shows an error.
func (f *Form) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, st := range f.fields {
		if st.err != "" {
			return false
		}
	}
	return true
}

// Reset clears every value and error.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, st := range f.fields {
		*st = fieldState{}
	}
}

func (f *Form) candidate() credential.Candidate {
	c := credential.Candidate{
		Email:    f.fields[credential.FieldEmail].value,
		Password: f.fields[credential.FieldPassword].value,
	}
	if st, ok := f.fields[credential.FieldName]; ok && st.set {
		c.Name = credential.StringPtr(st.value)
	}
	return c
}

// Submit touches every field, validates the record and forwards it to s.
// A rejection is returned as *credential.FieldError and shown on its field.
// The transport is not called unless the record is accepted.
func (f *Form) Submit(ctx context.Context, s Submitter) (credential.Record, error) {
	f.mu.Lock()
	for field, st := range f.fields {
		st.touched = true
		st.err = credential.Message(field, st.value)
	}
	record, err := credential.ValidateRecord(f.candidate(), f.mode)
	if err != nil {
		if fe, ok := credential.AsFieldError(err); ok {
			if st, found := f.fields[fe.Field]; found {
				st.err = fe.Message
			}
		}
		f.mu.Unlock()
		return nil, err
	}
	f.mu.Unlock()

	if s == nil {
		return record, nil
	}
	if err := s.Submit(ctx, record); err != nil {
		return nil, oops.Code("FORM_SUBMIT_FAILED").
			With("mode", f.mode.String()).
			Wrap(err)
	}
	return record, nil
}
