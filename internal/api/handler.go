// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package api serves credential validation over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/samber/oops"

	"github.com/holomush/credcheck/internal/credential"
	"github.com/holomush/credcheck/internal/observability"
	"github.com/holomush/credcheck/internal/schema"
	"github.com/holomush/credcheck/pkg/errutil"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 64 << 10

// Verdict is the response to a validation request.
type Verdict struct {
	Valid   bool              `json:"valid"`
	Field   string            `json:"field,omitempty"`
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Record  credential.Record `json:"record,omitempty"`
}

// ErrorBody is the response for requests that could not be validated at all.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type fieldRequest struct {
	Value string `json:"value"`
}

// Handler routes validation requests.
type Handler struct {
	metrics *observability.Metrics
	logger  *slog.Logger
	mux     *http.ServeMux
}

// NewHandler builds the API routes. A nil metrics disables counting.
func NewHandler(metrics *observability.Metrics, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{metrics: metrics, logger: logger, mux: http.NewServeMux()}
	h.mux.HandleFunc("POST /v1/fields/{field}/validate", h.validateField)
	h.mux.HandleFunc("POST /v1/records/{mode}/validate", h.validateRecord)
	h.mux.HandleFunc("GET /v1/schemas/{mode}", h.getSchema)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.instrument(h.mux).ServeHTTP(w, r)
}

func (h *Handler) validateField(w http.ResponseWriter, r *http.Request) {
	field, err := credential.ParseField(r.PathValue("field"))
	if err != nil {
		h.writeError(w, r, http.StatusNotFound, err)
		return
	}

	var req fieldRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, r, http.StatusBadRequest, oops.Code("API_BAD_REQUEST").
			With("reason", "body").
			Errorf("body must be a JSON object with a string value"))
		return
	}

	err = credential.ValidateField(field, req.Value)
	h.metrics.ObserveField(field, err)
	annotate(r.Context(), "field", field.String())
	h.writeVerdict(w, r, "field rejected", err, nil)
}

func (h *Handler) validateRecord(w http.ResponseWriter, r *http.Request) {
	mode, err := credential.ParseMode(r.PathValue("mode"))
	if err != nil {
		h.writeError(w, r, http.StatusNotFound, err)
		return
	}
	annotate(r.Context(), "mode", mode.String())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		h.writeError(w, r, http.StatusRequestEntityTooLarge, oops.Code("API_BODY_TOO_LARGE").
			With("limit", MaxBodyBytes).
			Wrap(err))
		return
	}

	candidate, err := schema.Decode(mode, body)
	if err != nil {
		h.metrics.ObserveRecord(mode, err)
		h.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	record, err := credential.ValidateRecord(candidate, mode)
	h.metrics.ObserveRecord(mode, err)
	h.writeVerdict(w, r, "record rejected", err, record)
}

func (h *Handler) getSchema(w http.ResponseWriter, r *http.Request) {
	mode, err := credential.ParseMode(strings.TrimSuffix(r.PathValue("mode"), ".schema.json"))
	if err != nil {
		h.writeError(w, r, http.StatusNotFound, err)
		return
	}
	data, err := schema.Generate(mode)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		observability.RecordResponseWriteFailure(routeOf(r))
	}
}

func (h *Handler) writeVerdict(w http.ResponseWriter, r *http.Request, msg string, err error, record credential.Record) {
	if err == nil {
		h.writeJSON(w, r, http.StatusOK, Verdict{Valid: true, Record: record})
		return
	}
	fe, ok := credential.AsFieldError(err)
	if !ok {
		h.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	errutil.LogRejection(r.Context(), h.logger, msg, err)
	h.writeJSON(w, r, http.StatusOK, Verdict{
		Field:   fe.Field.String(),
		Code:    fe.Code(),
		Message: fe.Message,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	body := ErrorBody{Error: "API_INTERNAL", Message: http.StatusText(status)}
	if oopsErr, ok := oops.AsOops(err); ok {
		if code, isString := oopsErr.Code().(string); isString && code != "" {
			body.Error = code
		}
	}
	switch {
	case status == http.StatusBadRequest && body.Error == "SCHEMA_INVALID_DOCUMENT":
		body.Message = schema.FormatError(err)
	case status < http.StatusInternalServerError:
		if oopsErr, ok := oops.AsOops(err); ok {
			body.Message = oopsErr.Error()
		}
	default:
		errutil.LogError(h.logger, "request failed", err)
	}
	h.writeJSON(w, r, status, body)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		observability.RecordResponseWriteFailure(routeOf(r))
		h.logger.WarnContext(r.Context(), "failed to write response", "error", err)
	}
}
