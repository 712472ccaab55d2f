// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package credential_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/credcheck/internal/credential"
	"github.com/holomush/credcheck/pkg/errutil"
)

const strongPassword = "Password123!"

func TestParseMode(t *testing.T) {
	for _, s := range []string{"signup", "signUp", "sign-up", "SIGN_UP", " signup "} {
		m, err := credential.ParseMode(s)
		require.NoError(t, err, s)
		assert.Equal(t, credential.SignUp, m)
	}
	for _, s := range []string{"signin", "signIn", "sign-in"} {
		m, err := credential.ParseMode(s)
		require.NoError(t, err, s)
		assert.Equal(t, credential.SignIn, m)
	}

	_, err := credential.ParseMode("login")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "CREDENTIAL_INVALID_MODE")
}

func TestMode_Fields(t *testing.T) {
	assert.Equal(t, []credential.Field{credential.FieldName, credential.FieldEmail, credential.FieldPassword}, credential.SignUp.Fields())
	assert.Equal(t, []credential.Field{credential.FieldEmail, credential.FieldPassword}, credential.SignIn.Fields())
	assert.Nil(t, credential.Mode(0).Fields())
	assert.Equal(t, "unknown", credential.Mode(0).String())
}

func TestValidateSignUp(t *testing.T) {
	t.Run("accepts complete data", func(t *testing.T) {
		rec, err := credential.ValidateSignUp(credential.Candidate{
			Name:     credential.StringPtr("John Doe"),
			Email:    "john@example.com",
			Password: strongPassword,
		})
		require.NoError(t, err)
		assert.Equal(t, credential.SignUpRecord{Name: "John Doe", Email: "john@example.com", Password: strongPassword}, rec)
	})

	t.Run("trims the accepted name", func(t *testing.T) {
		rec, err := credential.ValidateSignUp(credential.Candidate{
			Name:     credential.StringPtr("  Ada Lovelace "),
			Email:    "ada@example.com",
			Password: strongPassword,
		})
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", rec.Name)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := credential.ValidateSignUp(credential.Candidate{Email: "john@example.com", Password: strongPassword})
		errutil.AssertRejection(t, err, "name", credential.MsgNameMissing)
		fe, _ := credential.AsFieldError(err)
		assert.Equal(t, credential.KindMissingName, fe.Kind)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := credential.ValidateSignUp(credential.Candidate{
			Name:     credential.StringPtr(""),
			Email:    "a@b.com",
			Password: strongPassword,
		})
		errutil.AssertRejection(t, err, "name", credential.MsgNameRequired)
	})

	t.Run("reports the first offending field", func(t *testing.T) {
		_, err := credential.ValidateSignUp(credential.Candidate{
			Name:     credential.StringPtr(" "),
			Email:    "bad",
			Password: "bad",
		})
		errutil.AssertRejection(t, err, "name", credential.MsgNameRequired)

		_, err = credential.ValidateSignUp(credential.Candidate{
			Name:     credential.StringPtr("Ok"),
			Email:    "bad",
			Password: "bad",
		})
		errutil.AssertRejection(t, err, "email", credential.MsgInvalidEmail)

		_, err = credential.ValidateSignUp(credential.Candidate{
			Name:     credential.StringPtr("Ok"),
			Email:    "ok@example.com",
			Password: "weak",
		})
		errutil.AssertRejection(t, err, "password", credential.MsgPasswordTooShort)
	})
}

func TestValidateSignIn(t *testing.T) {
	t.Run("accepts data without name", func(t *testing.T) {
		rec, err := credential.ValidateSignIn(credential.Candidate{Email: "a@b.com", Password: strongPassword})
		require.NoError(t, err)
		assert.Equal(t, credential.SignInRecord{Email: "a@b.com", Password: strongPassword}, rec)
	})

	t.Run("drops a supplied name without validating it", func(t *testing.T) {
		rec, err := credential.ValidateSignIn(credential.Candidate{
			Name:     credential.StringPtr(""),
			Email:    "john@example.com",
			Password: strongPassword,
		})
		require.NoError(t, err)

		data, err := json.Marshal(rec)
		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.NotContains(t, decoded, "name")
		assert.Equal(t, map[string]any{"email": "john@example.com", "password": strongPassword}, decoded)
	})

	t.Run("email before password", func(t *testing.T) {
		_, err := credential.ValidateSignIn(credential.Candidate{Email: "invalid-email", Password: "weak"})
		errutil.AssertRejection(t, err, "email", credential.MsgInvalidEmail)

		_, err = credential.ValidateSignIn(credential.Candidate{Email: "john@example.com", Password: "weak"})
		errutil.AssertRejection(t, err, "password", credential.MsgPasswordTooShort)
	})
}

func TestValidateRecord(t *testing.T) {
	t.Run("sign in excludes name key", func(t *testing.T) {
		rec, err := credential.ValidateRecord(credential.Candidate{
			Name:     credential.StringPtr("John Doe"),
			Email:    "a@b.com",
			Password: strongPassword,
		}, credential.SignIn)
		require.NoError(t, err)
		assert.Equal(t, credential.SignIn, rec.Mode())
		assert.Equal(t, map[string]string{"email": "a@b.com", "password": strongPassword}, rec.Fields())
	})

	t.Run("sign up includes name key", func(t *testing.T) {
		rec, err := credential.ValidateRecord(credential.Candidate{
			Name:     credential.StringPtr("John Doe"),
			Email:    "a@b.com",
			Password: strongPassword,
		}, credential.SignUp)
		require.NoError(t, err)
		assert.Equal(t, credential.SignUp, rec.Mode())
		assert.Equal(t, "John Doe", rec.Fields()["name"])
	})

	t.Run("sign up rejects empty name", func(t *testing.T) {
		rec, err := credential.ValidateRecord(credential.Candidate{
			Name:     credential.StringPtr(""),
			Email:    "a@b.com",
			Password: strongPassword,
		}, credential.SignUp)
		assert.Nil(t, rec)
		errutil.AssertRejection(t, err, "name", "Name is required")
	})

	t.Run("unknown mode is a coded error, not a rejection", func(t *testing.T) {
		rec, err := credential.ValidateRecord(credential.Candidate{}, credential.Mode(9))
		assert.Nil(t, rec)
		require.Error(t, err)
		_, isRejection := credential.AsFieldError(err)
		assert.False(t, isRejection)
		errutil.AssertErrorCode(t, err, "CREDENTIAL_INVALID_MODE")
	})
}
