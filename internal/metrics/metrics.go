// Package metrics keeps lightweight in-process counters for the auth and
// session hot paths. Counters are fixed at compile time and incremented with
// a single atomic add, so they are safe on every request.
package metrics

import "sync/atomic"

// ID selects one counter.
type ID uint16

const (
	LoginSuccess ID = iota
	LoginFailure
	Logout
	Register
	SessionCreated
	SessionResolved
	SessionRejected
	SessionRevoked
	SessionSweep
	idCount
)

var names = [idCount]string{
	LoginSuccess:    "login_success",
	LoginFailure:    "login_failure",
	Logout:          "logout",
	Register:        "register",
	SessionCreated:  "session_created",
	SessionResolved: "session_resolved",
	SessionRejected: "session_rejected",
	SessionRevoked:  "session_revoked",
	SessionSweep:    "session_sweep",
}

const cacheLineSize = 64

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is a fixed set of atomic counters.
type Metrics struct {
	enabled  bool
	counters [idCount]paddedCounter
}

// New returns a counter set; when enabled is false every Inc is a no-op.
func New(enabled bool) *Metrics {
	return &Metrics{enabled: enabled}
}

// Inc adds one to the counter. Safe on a nil receiver.
func (m *Metrics) Inc(id ID) {
	if m == nil || !m.enabled || id >= idCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Snapshot returns a point-in-time copy of all counters keyed by name.
func (m *Metrics) Snapshot() map[string]uint64 {
	out := make(map[string]uint64, idCount)
	if m == nil {
		return out
	}
	for id := ID(0); id < idCount; id++ {
		out[names[id]] = atomic.LoadUint64(&m.counters[id].value)
	}
	return out
}
