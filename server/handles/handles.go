// Package handles implements the HTTP API handlers.
package handles

import (
	"github.com/AntaresQAQ/tywzoj/internal/auth"
	"github.com/AntaresQAQ/tywzoj/internal/metrics"
)

var (
	sessions *auth.SessionManager
	counters *metrics.Metrics
)

// Init installs the shared dependencies. Must run before any route is served.
func Init(sm *auth.SessionManager, m *metrics.Metrics) {
	sessions = sm
	counters = m
}
