package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PasswordsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "passgen_passwords_generated_total",
			Help: "Total number of generated passwords by enabled character classes",
		},
		[]string{"classes"},
	)

	GenerateFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "passgen_generate_failures_total",
			Help: "Total number of refused generations by reason",
		},
		[]string{"reason"},
	)

	ClipboardCopies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "passgen_clipboard_copies_total",
			Help: "Total number of clipboard copy attempts by result",
		},
		[]string{"result"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "passgen_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route pattern and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "status"},
	)

	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "passgen_sessions_created_total",
			Help: "Total number of generator sessions created",
		},
	)
)

// ClassesLabel joins class names with "+" for use as a label value, e.g. "lowercase+digits".
func ClassesLabel[T interface{ String() string }](classes []T) string {
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = c.String()
	}
	return strings.Join(names, "+")
}
