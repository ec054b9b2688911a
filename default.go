package msgbus

import (
	"log/slog"
	"sync"

	"github.com/caarlos0/env/v11"
)

var (
	defaultOnce sync.Once
	defaultBus  *Bus
)

// defaultConfig is the environment-driven configuration for the
// process-wide default bus. Explicit New() buses ignore the environment
// entirely so tests stay hermetic.
type defaultConfig struct {
	Diagnostics         bool `env:"MSGBUS_DIAGNOSTICS" envDefault:"false"`
	DiagnosticsCapacity int  `env:"MSGBUS_DIAGNOSTICS_CAPACITY" envDefault:"256"`
}

// Default returns the process-wide default bus, initializing it on first
// call. Emit and token APIs fall back to this bus when given a nil bus.
//
// Initialization happens exactly once; later environment changes have no
// effect. Prefer explicit buses wherever one can be threaded through.
func Default() *Bus {
	defaultOnce.Do(func() {
		var cfg defaultConfig
		if err := env.Parse(&cfg); err != nil {
			slog.Warn("msgbus: invalid environment configuration, using defaults", "error", err)
			cfg = defaultConfig{DiagnosticsCapacity: defaultDiagnosticsCapacity}
		}
		defaultBus = New(
			WithDiagnostics(cfg.Diagnostics),
			WithDiagnosticsCapacity(cfg.DiagnosticsCapacity),
		)
	})
	return defaultBus
}
