package ports

import (
	"context"

	"go.trai.ch/eqrun/internal/core/domain"
)

// InstallationFactory lays out an Equinox runtime on disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=installation.go -destination=mocks/mock_installation.go -package=mocks
type InstallationFactory interface {
	// CreateInstallation writes the runtime described by desc below workDir.
	// A partial failure leaves workDir in an undefined state.
	CreateInstallation(
		ctx context.Context,
		desc *domain.InstallationDescription,
		workDir string,
	) (*domain.Installation, error)
}
