// Package usecase contains application business logic.
package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/frkavka/browser-info/internal/browser"
	"github.com/frkavka/browser-info/internal/domain"
)

// Extractor orchestrates one extraction call: probe the foreground
// window, classify it, pick an extraction technique per the requested
// method, and assemble the result. It holds no state across calls.
type Extractor struct {
	probe    domain.WindowProbe
	strategy domain.URLStrategy
	debug    domain.DebugClient
	logger   *zap.Logger
}

// NewExtractor creates an extraction orchestrator.
func NewExtractor(
	probe domain.WindowProbe,
	strategy domain.URLStrategy,
	debug domain.DebugClient,
	logger *zap.Logger,
) *Extractor {
	return &Extractor{
		probe:    probe,
		strategy: strategy,
		debug:    debug,
		logger:   logger,
	}
}

// Info returns full metadata about the currently focused browser window.
//
// NotABrowser and WindowNotFound are terminal: no extraction technique
// is attempted for a window that cannot be found or cannot be a browser.
func (e *Extractor) Info(ctx context.Context, method domain.ExtractionMethod) (*domain.BrowserInfo, error) {
	snapshot, browserType, err := e.resolve(ctx)
	if err != nil {
		return nil, err
	}

	switch method {
	case domain.MethodNativeAutomation:
		return e.nativeInfo(ctx, snapshot, browserType)

	case domain.MethodRemoteDebugging:
		if !e.debug.Available(ctx) {
			return nil, domain.E(domain.KindCapabilityUnavailable, "remote debugging endpoint not reachable")
		}
		return e.debug.ExtractInfo(ctx)

	case domain.MethodAuto:
		fallthrough
	default:
		info, nativeErr := e.nativeInfo(ctx, snapshot, browserType)
		if nativeErr == nil {
			return info, nil
		}
		e.logger.Debug("native automation failed, considering remote debugging",
			zap.Error(nativeErr))

		if !e.debug.Available(ctx) {
			// Scenario: both paths exhausted. The caller gets the
			// generic verdict, not a native-specific failure.
			return nil, domain.E(domain.KindOther, "all extraction methods failed")
		}
		return e.debug.ExtractInfo(ctx)
	}
}

// URL is the lightweight variant: it resolves only the URL.
func (e *Extractor) URL(ctx context.Context, method domain.ExtractionMethod) (string, error) {
	info, err := e.Info(ctx, method)
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

// IsBrowserActive reports whether the current foreground window
// classifies as a browser.
func (e *Extractor) IsBrowserActive(ctx context.Context) bool {
	_, _, err := e.resolve(ctx)
	return err == nil
}

// resolve probes and classifies the foreground window.
func (e *Extractor) resolve(ctx context.Context) (*domain.WindowSnapshot, domain.BrowserType, error) {
	snapshot, err := e.probe.ActiveWindow(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrWindowNotFound) {
			return nil, domain.BrowserType{}, err
		}
		return nil, domain.BrowserType{}, domain.Wrap(domain.KindWindowNotFound, "window probe failed", err)
	}

	browserType, err := browser.Classify(snapshot)
	if err != nil {
		return nil, domain.BrowserType{}, err
	}

	e.logger.Debug("classified foreground window",
		zap.String("app", snapshot.AppName),
		zap.String("browser", browserType.String()),
		zap.Int32("pid", snapshot.ProcessID))
	return snapshot, browserType, nil
}

// nativeInfo runs the platform strategy and assembles the result from
// the snapshot.
func (e *Extractor) nativeInfo(ctx context.Context, snapshot *domain.WindowSnapshot, browserType domain.BrowserType) (*domain.BrowserInfo, error) {
	url, err := e.strategy.ExtractURL(ctx, snapshot, browserType)
	if err != nil {
		return nil, err
	}
	if !domain.ValidURL(url) {
		return nil, domain.Ef(domain.KindInvalidUrl, "strategy returned %q", url)
	}

	metadata := browser.Metadata(snapshot, browserType)

	return &domain.BrowserInfo{
		URL:         url,
		Title:       snapshot.Title,
		BrowserName: snapshot.AppName,
		BrowserType: browserType,
		Version:     metadata.Version,
		TabsCount:   metadata.TabsCount,
		IsIncognito: metadata.IsIncognito,
		ProcessID:   snapshot.ProcessID,
		Position:    snapshot.Position,
	}, nil
}
