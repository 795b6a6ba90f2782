package platform

import (
	"context"

	"go.uber.org/zap"

	"github.com/frkavka/browser-info/internal/domain"
)

// Outcome is the tagged result of one fallback stage. A recoverable
// failure lets the chain advance to the next stage; a fatal one aborts
// it (the window is confirmed not to be a browser, there is nothing a
// later stage could do).
type Outcome struct {
	url   string
	err   error
	fatal bool
}

// Success carries a URL that already passed the scheme invariant.
func Success(url string) Outcome {
	return Outcome{url: url}
}

// Recoverable records a stage failure that permits falling through.
func Recoverable(err error) Outcome {
	return Outcome{err: err}
}

// Fatal records a failure that aborts the whole chain.
func Fatal(err error) Outcome {
	return Outcome{err: err, fatal: true}
}

// OK reports whether the stage produced a URL.
func (o Outcome) OK() bool { return o.err == nil }

// URL returns the extracted URL; only meaningful when OK.
func (o Outcome) URL() string { return o.url }

// Err returns the stage failure, nil on success.
func (o Outcome) Err() error { return o.err }

// stage is one technique in a strategy's fallback chain.
type stage struct {
	name string
	run  func(ctx context.Context, snapshot *domain.WindowSnapshot, browser domain.BrowserType) Outcome
}

// runChain attempts each stage in order. The last stage's failure is
// surfaced verbatim when every stage fails.
func runChain(
	ctx context.Context,
	logger *zap.Logger,
	stages []stage,
	snapshot *domain.WindowSnapshot,
	browser domain.BrowserType,
) (string, error) {
	var lastErr error

	for _, s := range stages {
		out := s.run(ctx, snapshot, browser)
		if out.OK() {
			logger.Debug("extraction stage succeeded",
				zap.String("stage", s.name),
				zap.String("url", out.URL()))
			return out.URL(), nil
		}
		if out.fatal {
			logger.Debug("extraction stage failed fatally",
				zap.String("stage", s.name),
				zap.Error(out.Err()))
			return "", out.Err()
		}
		logger.Debug("extraction stage failed, falling through",
			zap.String("stage", s.name),
			zap.Error(out.Err()))
		lastErr = out.Err()
	}

	if lastErr == nil {
		lastErr = domain.E(domain.KindUrlExtractionFailed, "no extraction stages configured")
	}
	return "", lastErr
}
