package ports

import "go.trai.ch/eqrun/internal/core/domain"

// ToolchainProvider finds registered JDKs.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type ToolchainProvider interface {
	// FindMatchingJavaToolchain returns the JDK registered for the execution environment, or nil.
	FindMatchingJavaToolchain(executionEnvironment string) (*domain.Toolchain, error)
	// FindTool returns the path of tool inside tc, or "" when it does not exist.
	FindTool(tc *domain.Toolchain, tool string) string
}
