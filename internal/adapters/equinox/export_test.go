package equinox

import (
	"go.trai.ch/eqrun/internal/core/ports"
)

// NewLauncherWithEnviron creates a Launcher with a fixed inherited environment.
func NewLauncherWithEnviron(logger ports.Logger, environ []string) *Launcher {
	return &Launcher{logger: logger, environ: func() []string { return environ }}
}
