// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package errutil

import (
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/credcheck/internal/credential"
)

// AssertErrorCode asserts that err is an oops error with the given code.
func AssertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "expected oops error, got %T", err)
	assert.Equal(t, code, oopsErr.Code())
}

// AssertErrorContext asserts that err is an oops error with the given context key/value.
func AssertErrorContext(t *testing.T, err error, key string, value any) {
	t.Helper()
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "expected oops error, got %T", err)
	ctx := oopsErr.Context()
	assert.Contains(t, ctx, key)
	assert.Equal(t, value, ctx[key])
}

// AssertRejection asserts that err is a credential rejection of field with
// the given user-facing message.
func AssertRejection(t *testing.T, err error, field, message string) {
	t.Helper()
	require.Error(t, err, "expected %s rejection %q", field, message)
	fe, ok := credential.AsFieldError(err)
	require.True(t, ok, "expected *credential.FieldError, got %T: %v", err, err)
	assert.Equal(t, field, fe.Field.String())
	assert.Equal(t, message, fe.Message)
}
