package ports

import (
	"context"

	"go.trai.ch/eqrun/internal/core/domain"
)

// Launcher forks the Equinox runtime.
//
//go:generate go run go.uber.org/mock/mockgen -source=launcher.go -destination=mocks/mock_launcher.go -package=mocks
type Launcher interface {
	// Execute runs plan and blocks until the child exits or timeoutSeconds elapse.
	// A timeout of zero waits forever. On expiry the child is killed and
	// domain.ErrLaunchTimeout is returned.
	Execute(ctx context.Context, plan *domain.LaunchPlan, timeoutSeconds int) (int, error)
}
