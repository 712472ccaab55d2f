// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package errutil provides logging and test helpers for coded errors and
// credential rejections.
package errutil

import (
	"context"
	"log/slog"

	"github.com/samber/oops"

	"github.com/holomush/credcheck/internal/credential"
)

// LogError logs an error with structured context if it's an oops error.
// For oops errors, it extracts and logs the message, code, and context.
// For standard errors, it logs the error string.
func LogError(logger *slog.Logger, msg string, err error) {
	if oopsErr, ok := oops.AsOops(err); ok {
		attrs := []any{
			"error", oopsErr.Error(),
		}
		if code := oopsErr.Code(); code != nil {
			attrs = append(attrs, "code", code)
		}
		if ctx := oopsErr.Context(); len(ctx) > 0 {
			attrs = append(attrs, "context", ctx)
		}
		logger.Error(msg, attrs...)
	} else {
		logger.Error(msg, "error", err)
	}
}

// LogRejection logs a credential rejection at info level.
// Only the field, code and message are logged, never the rejected value.
// Errors that are not rejections are passed to LogError.
func LogRejection(ctx context.Context, logger *slog.Logger, msg string, err error) {
	fe, ok := credential.AsFieldError(err)
	if !ok {
		LogError(logger, msg, err)
		return
	}
	logger.InfoContext(ctx, msg,
		"field", fe.Field.String(),
		"code", fe.Code(),
		"reason", fe.Message,
	)
}
