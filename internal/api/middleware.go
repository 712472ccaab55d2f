// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RequestIDHeader carries the request's ULID.
const RequestIDHeader = "X-Request-ID"

var tracer = otel.Tracer("credcheck/api")

type requestIDKey struct{}

// RequestID returns the ID assigned to the request carried by ctx.
func RequestID(ctx context.Context) (ulid.ULID, bool) {
	id, ok := ctx.Value(requestIDKey{}).(ulid.ULID)
	return id, ok
}

// requestID reuses a caller-supplied ULID and mints one otherwise.
func requestID(r *http.Request) ulid.ULID {
	if id, err := ulid.ParseStrict(r.Header.Get(RequestIDHeader)); err == nil {
		return id
	}
	return ulid.Make()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	if s.status == 0 {
		s.status = status
	}
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func routeOf(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return "unmatched"
}

// annotate adds an attribute to the request's span.
func annotate(ctx context.Context, key, value string) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("credcheck."+key, value))
}

// instrument assigns the request ID, opens a span, counts the response and
// logs it. Bodies are never logged.
func (h *Handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := requestID(r)
		w.Header().Set(RequestIDHeader, id.String())

		ctx, span := tracer.Start(r.Context(), "api.request",
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.path", r.URL.Path),
				attribute.String("request.id", id.String()),
			),
		)
		defer span.End()

		ctx = context.WithValue(ctx, requestIDKey{}, id)
		req := r.WithContext(ctx)
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, req)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		route := routeOf(req)
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", rec.status),
		)
		if rec.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(rec.status))
		}
		h.metrics.ObserveRequest(route, rec.status)
		h.logger.InfoContext(ctx, "request handled",
			"request_id", id.String(),
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
