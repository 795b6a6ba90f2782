package platform

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/frkavka/browser-info/internal/config"
	"github.com/frkavka/browser-info/internal/domain"
)

// inlineAppleScripts query the active tab/document URL directly.
// Firefox exposes no scripting dictionary for this and is absent on
// purpose; it falls through to the next stage.
var inlineAppleScripts = map[domain.BrowserKind]string{
	domain.BrowserChrome: `tell application "Google Chrome"
	if (count of windows) > 0 then
		get URL of active tab of front window
	else
		error "No Chrome windows open"
	end if
end tell`,
	domain.BrowserSafari: `tell application "Safari"
	if (count of windows) > 0 then
		get URL of front document
	else
		error "No Safari windows open"
	end if
end tell`,
	domain.BrowserEdge: `tell application "Microsoft Edge"
	if (count of windows) > 0 then
		get URL of active tab of front window
	else
		error "No Edge windows open"
	end if
end tell`,
	domain.BrowserBrave: `tell application "Brave Browser"
	if (count of windows) > 0 then
		get URL of active tab of front window
	else
		error "No Brave windows open"
	end if
end tell`,
}

// MacStrategy extracts the URL on macOS via an ordered chain: external
// AppleScript file, inline per-browser AppleScript, keyboard simulation
// (reserved), title heuristic.
type MacStrategy struct {
	runner        CommandRunner
	files         FileChecker
	scriptPaths   []string
	scriptTimeout time.Duration
	logger        *zap.Logger
}

// NewMacStrategy creates the macOS strategy from configuration.
func NewMacStrategy(cfg *config.Config, logger *zap.Logger) *MacStrategy {
	return &MacStrategy{
		runner:        &RealCommandRunner{},
		files:         &RealFileChecker{},
		scriptPaths:   cfg.MacScriptPaths,
		scriptTimeout: cfg.MacScriptTimeout,
		logger:        logger,
	}
}

// NewMacStrategyWithDeps creates a strategy with injectable dependencies
// (for testing).
func NewMacStrategyWithDeps(
	runner CommandRunner,
	files FileChecker,
	cfg *config.Config,
	logger *zap.Logger,
) *MacStrategy {
	s := NewMacStrategy(cfg, logger)
	s.runner = runner
	s.files = files
	return s
}

func (s *MacStrategy) Name() string { return "macos" }

// ExtractURL runs the macOS fallback chain.
func (s *MacStrategy) ExtractURL(ctx context.Context, snapshot *domain.WindowSnapshot, browser domain.BrowserType) (string, error) {
	return runChain(ctx, s.logger, []stage{
		{name: "external_script", run: s.externalScript},
		{name: "inline_script", run: s.inlineScript},
		{name: "keyboard_simulation", run: s.keyboardSimulation},
		titleStage(),
	}, snapshot, browser)
}

// externalScript executes the first .scpt helper found on the
// configured candidate paths via osascript.
func (s *MacStrategy) externalScript(ctx context.Context, _ *domain.WindowSnapshot, _ domain.BrowserType) Outcome {
	path, found := s.findScript()
	if !found {
		return Recoverable(domain.E(domain.KindPlatformError, "no external helper script found"))
	}
	s.logger.Debug("executing external script", zap.String("path", path))

	ctx, cancel := context.WithTimeout(ctx, s.scriptTimeout)
	defer cancel()

	stdout, stderr, err := s.runner.Output(ctx, "osascript", path)
	if len(stderr) > 0 {
		s.logger.Debug("external script stderr", zap.ByteString("stderr", stderr))
	}
	if err != nil {
		return Recoverable(runErrToDomain(ctx, "external applescript", err))
	}

	return parseOutcome(string(stdout))
}

// inlineScript asks the browser for its active tab URL directly. The
// output is a bare URL string, not the tagged protocol, and must still
// pass the scheme invariant.
func (s *MacStrategy) inlineScript(ctx context.Context, _ *domain.WindowSnapshot, browser domain.BrowserType) Outcome {
	script, supported := inlineAppleScripts[browser.Kind]
	if !supported {
		return Recoverable(domain.Ef(domain.KindPlatformError,
			"no inline automation for browser %s", browser))
	}

	ctx, cancel := context.WithTimeout(ctx, s.scriptTimeout)
	defer cancel()

	stdout, stderr, err := s.runner.Output(ctx, "osascript", "-e", script)
	if len(stderr) > 0 {
		s.logger.Debug("inline script stderr", zap.ByteString("stderr", stderr))
	}
	if err != nil {
		return Recoverable(runErrToDomain(ctx, "inline applescript", err))
	}

	url := strings.TrimSpace(string(stdout))
	if !domain.ValidURL(url) {
		return Recoverable(domain.Ef(domain.KindInvalidUrl, "inline applescript returned %q", url))
	}
	return Success(url)
}

// keyboardSimulation is reserved; it always defers to the next stage.
// TODO: drive CGEventPost key chords once accessibility-permission
// prompting is sorted out.
func (s *MacStrategy) keyboardSimulation(_ context.Context, _ *domain.WindowSnapshot, _ domain.BrowserType) Outcome {
	return Recoverable(domain.E(domain.KindPlatformError,
		"keyboard simulation not implemented on macos"))
}

func (s *MacStrategy) findScript() (string, bool) {
	for _, path := range s.scriptPaths {
		if s.files.Exists(path) {
			return path, true
		}
	}
	return "", false
}

var _ domain.URLStrategy = (*MacStrategy)(nil)
