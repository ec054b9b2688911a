package msgbus

import "log/slog"

// defaultDiagnosticsCapacity is the diagnostics ring buffer capacity used
// when no explicit capacity is configured.
const defaultDiagnosticsCapacity = 256

// Option configures a Bus.
type Option func(*busConfig)

// busConfig contains configuration for a bus.
type busConfig struct {
	// diagnostics enables the diagnostics ring buffer from the start.
	diagnostics bool

	// diagnosticsCapacity is the ring buffer size.
	diagnosticsCapacity int

	// faultIsolation switches the fault policy from propagate-and-stop
	// to isolate-and-continue.
	faultIsolation bool

	// faultReporter receives isolated faults.
	faultReporter func(error)
}

// defaultBusConfig returns the default configuration.
func defaultBusConfig() busConfig {
	return busConfig{
		diagnosticsCapacity: defaultDiagnosticsCapacity,
	}
}

// WithDiagnostics enables or disables diagnostics recording from
// construction. It can be toggled later with Bus.SetDiagnostics.
func WithDiagnostics(enabled bool) Option {
	return func(c *busConfig) {
		c.diagnostics = enabled
	}
}

// WithDiagnosticsCapacity sets the diagnostics ring buffer size.
// Non-positive values are ignored.
func WithDiagnosticsCapacity(n int) Option {
	return func(c *busConfig) {
		if n > 0 {
			c.diagnosticsCapacity = n
		}
	}
}

// WithFaultIsolation switches the bus to isolate-and-continue fault
// handling: a callback error is passed to report and the dispatch walk
// continues with the remaining callbacks.
//
// This changes the delivery guarantee for faulting emissions from
// all-or-stop to best-effort. Without this option a callback error aborts
// the remaining walk and is returned from the emit call.
//
// A nil report falls back to logging via log/slog.
func WithFaultIsolation(report func(error)) Option {
	return func(c *busConfig) {
		c.faultIsolation = true
		c.faultReporter = report
	}
}

// defaultFaultReporter logs isolated faults.
func defaultFaultReporter(err error) {
	slog.Error("msgbus: handler fault isolated", "error", err)
}
