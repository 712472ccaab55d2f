// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/holomush/credcheck/internal/credential"
)

// Verdict outcomes used as metric label values.
const (
	OutcomeValid    = "valid"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// responseWriteFailures is a package-level counter for response write failures.
// This allows handlers to increment the metric without needing access to the Server instance.
var responseWriteFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "credcheck_response_write_failures_total",
		Help: "Total number of API response write failures by route",
	},
	[]string{"route"},
)

// RecordResponseWriteFailure increments the response write failure counter.
func RecordResponseWriteFailure(route string) {
	responseWriteFailures.WithLabelValues(route).Inc()
}

// Metrics contains custom Prometheus metrics for credcheck.
type Metrics struct {
	ValidationsTotal *prometheus.CounterVec
	RecordsTotal     *prometheus.CounterVec
	RequestsTotal    *prometheus.CounterVec
}

// NewMetrics creates and registers custom credcheck metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ValidationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credcheck_field_validations_total",
				Help: "Total number of single-field validations by field and outcome",
			},
			[]string{"field", "outcome"},
		),
		RecordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credcheck_record_validations_total",
				Help: "Total number of record validations by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credcheck_requests_total",
				Help: "Total number of API requests by route and status",
			},
			[]string{"route", "status"},
		),
	}

	reg.MustRegister(m.ValidationsTotal)
	reg.MustRegister(m.RecordsTotal)
	reg.MustRegister(m.RequestsTotal)
	reg.MustRegister(responseWriteFailures)

	return m
}

// Outcome classifies a validation error as a metric label.
func Outcome(err error) string {
	if err == nil {
		return OutcomeValid
	}
	if _, ok := credential.AsFieldError(err); ok {
		return OutcomeRejected
	}
	return OutcomeError
}

// ObserveField counts a single-field verdict. A nil Metrics is a no-op.
func (m *Metrics) ObserveField(field credential.Field, err error) {
	if m == nil {
		return
	}
	m.ValidationsTotal.WithLabelValues(field.String(), Outcome(err)).Inc()
}

// ObserveRecord counts a record verdict. A nil Metrics is a no-op.
func (m *Metrics) ObserveRecord(mode credential.Mode, err error) {
	if m == nil {
		return
	}
	m.RecordsTotal.WithLabelValues(mode.String(), Outcome(err)).Inc()
}

// ObserveRequest counts an API request. A nil Metrics is a no-op.
func (m *Metrics) ObserveRequest(route string, status int) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(route, statusClass(status)).Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
