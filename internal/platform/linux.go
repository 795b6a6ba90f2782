package platform

import (
	"context"

	"go.uber.org/zap"

	"github.com/frkavka/browser-info/internal/domain"
)

// LinuxStrategy has no native automation channel yet. Every call reports
// a platform error so the orchestrator's Auto policy can fall through to
// remote debugging.
type LinuxStrategy struct {
	logger *zap.Logger
}

// NewLinuxStrategy creates the Linux strategy stub.
func NewLinuxStrategy(logger *zap.Logger) *LinuxStrategy {
	return &LinuxStrategy{logger: logger}
}

func (s *LinuxStrategy) Name() string { return "linux" }

// ExtractURL always fails recoverably.
func (s *LinuxStrategy) ExtractURL(_ context.Context, _ *domain.WindowSnapshot, _ domain.BrowserType) (string, error) {
	s.logger.Debug("native automation not implemented on linux")
	return "", domain.E(domain.KindPlatformError, "linux native automation not implemented")
}

var _ domain.URLStrategy = (*LinuxStrategy)(nil)
