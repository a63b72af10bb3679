// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/eqrun/internal/adapters/cas"
	_ "go.trai.ch/eqrun/internal/adapters/config"
	_ "go.trai.ch/eqrun/internal/adapters/equinox"
	_ "go.trai.ch/eqrun/internal/adapters/logger"
	_ "go.trai.ch/eqrun/internal/adapters/p2"
	_ "go.trai.ch/eqrun/internal/adapters/reactor"
	_ "go.trai.ch/eqrun/internal/adapters/telemetry"
	_ "go.trai.ch/eqrun/internal/adapters/toolchain"
	// Register app and engine nodes.
	_ "go.trai.ch/eqrun/internal/app"
	_ "go.trai.ch/eqrun/internal/engine/launch"
	_ "go.trai.ch/eqrun/internal/engine/listing"
)
