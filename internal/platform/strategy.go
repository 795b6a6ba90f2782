package platform

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/frkavka/browser-info/internal/config"
	"github.com/frkavka/browser-info/internal/domain"
)

// ForHost selects the strategy for the current OS once at startup.
// Call sites never branch on GOOS themselves.
func ForHost(cfg *config.Config, logger *zap.Logger) domain.URLStrategy {
	switch runtime.GOOS {
	case "windows":
		return NewWindowsStrategy(cfg, logger)
	case "darwin":
		return NewMacStrategy(cfg, logger)
	default:
		return NewLinuxStrategy(logger)
	}
}
