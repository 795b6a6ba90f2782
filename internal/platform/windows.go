package platform

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/frkavka/browser-info/internal/config"
	"github.com/frkavka/browser-info/internal/domain"
)

// embeddedWindowsScript reads the address bar via keyboard simulation:
// focus the omnibox (Ctrl+L), copy it (Ctrl+C), read the clipboard, then
// restore the original clipboard contents. It reports a single JSON line.
// The script restores the clipboard itself on its happy and error paths;
// the Go-side guard covers the case where the process is killed at the
// deadline before it gets there.
const embeddedWindowsScript = `
[Console]::OutputEncoding = [System.Text.Encoding]::UTF8
Add-Type -AssemblyName System.Windows.Forms

Add-Type -TypeDefinition @"
    using System;
    using System.Runtime.InteropServices;
    public class BrowserKeys {
        [DllImport("user32.dll")] public static extern void keybd_event(byte bVk, byte bScan, int dwFlags, int dwExtraInfo);
        public const int KEYEVENTF_KEYUP = 0x0002;
        public const byte VK_CONTROL = 0x11;
        public const byte VK_L = 0x4C;
        public const byte VK_C = 0x43;
        public const byte VK_ESCAPE = 0x1B;
    }
"@

try {
    $originalClipboard = ""
    try { $originalClipboard = [System.Windows.Forms.Clipboard]::GetText() } catch {}

    # Ctrl+L then Ctrl+C
    [BrowserKeys]::keybd_event([BrowserKeys]::VK_CONTROL, 0, 0, 0)
    [BrowserKeys]::keybd_event([BrowserKeys]::VK_L, 0, 0, 0)
    Start-Sleep -Milliseconds 50
    [BrowserKeys]::keybd_event([BrowserKeys]::VK_C, 0, 0, 0)
    [BrowserKeys]::keybd_event([BrowserKeys]::VK_L, 0, [BrowserKeys]::KEYEVENTF_KEYUP, 0)
    [BrowserKeys]::keybd_event([BrowserKeys]::VK_C, 0, [BrowserKeys]::KEYEVENTF_KEYUP, 0)
    [BrowserKeys]::keybd_event([BrowserKeys]::VK_CONTROL, 0, [BrowserKeys]::KEYEVENTF_KEYUP, 0)
    Start-Sleep -Milliseconds 100

    $url = [System.Windows.Forms.Clipboard]::GetText().Trim()

    # Clear the address-bar selection
    [BrowserKeys]::keybd_event([BrowserKeys]::VK_ESCAPE, 0, 0, 0)
    [BrowserKeys]::keybd_event([BrowserKeys]::VK_ESCAPE, 0, [BrowserKeys]::KEYEVENTF_KEYUP, 0)

    try { if ($originalClipboard) { [System.Windows.Forms.Clipboard]::SetText($originalClipboard) } } catch {}

    if ($url -and (($url -match '^https?://') -or ($url -match '^file://'))) {
        @{status="success"; url=$url} | ConvertTo-Json -Compress | Write-Output
    } else {
        @{status="failed"; reason="clipboard did not contain a URL: $url"} | ConvertTo-Json -Compress | Write-Output
    }
} catch {
    @{status="error"; reason=$_.Exception.Message} | ConvertTo-Json -Compress | Write-Output
}
`

// WindowsStrategy extracts the URL on Windows via an ordered chain:
// external PowerShell helper script, embedded keyboard-simulation
// script, title heuristic.
type WindowsStrategy struct {
	runner          CommandRunner
	files           FileChecker
	clip            ClipboardGuard
	scriptPaths     []string
	externalTimeout time.Duration
	embeddedTimeout time.Duration
	logger          *zap.Logger
}

// NewWindowsStrategy creates the Windows strategy from configuration.
func NewWindowsStrategy(cfg *config.Config, logger *zap.Logger) *WindowsStrategy {
	return &WindowsStrategy{
		runner:          &RealCommandRunner{},
		files:           &RealFileChecker{},
		clip:            SystemClipboard{},
		scriptPaths:     cfg.WindowsScriptPaths,
		externalTimeout: cfg.ExternalScriptTimeout,
		embeddedTimeout: cfg.EmbeddedScriptTimeout,
		logger:          logger,
	}
}

// NewWindowsStrategyWithDeps creates a strategy with injectable
// dependencies (for testing).
func NewWindowsStrategyWithDeps(
	runner CommandRunner,
	files FileChecker,
	clip ClipboardGuard,
	cfg *config.Config,
	logger *zap.Logger,
) *WindowsStrategy {
	s := NewWindowsStrategy(cfg, logger)
	s.runner = runner
	s.files = files
	s.clip = clip
	return s
}

func (s *WindowsStrategy) Name() string { return "windows" }

// ExtractURL runs the Windows fallback chain.
func (s *WindowsStrategy) ExtractURL(ctx context.Context, snapshot *domain.WindowSnapshot, browser domain.BrowserType) (string, error) {
	return runChain(ctx, s.logger, []stage{
		{name: "external_script", run: s.externalScript},
		{name: "embedded_script", run: s.embeddedScript},
		titleStage(),
	}, snapshot, browser)
}

// externalScript executes the first helper script found on the
// configured candidate paths. The script discovers the foreground
// browser itself, so it receives no arguments beyond its own path.
func (s *WindowsStrategy) externalScript(ctx context.Context, _ *domain.WindowSnapshot, _ domain.BrowserType) Outcome {
	path, found := s.findScript()
	if !found {
		return Recoverable(domain.E(domain.KindPlatformError, "no external helper script found"))
	}
	s.logger.Debug("executing external script", zap.String("path", path))

	ctx, cancel := context.WithTimeout(ctx, s.externalTimeout)
	defer cancel()

	stdout, stderr, err := s.runner.Output(ctx, "powershell",
		"-ExecutionPolicy", "Bypass", "-NoProfile", "-File", path)
	if len(stderr) > 0 {
		s.logger.Debug("external script stderr", zap.ByteString("stderr", stderr))
	}
	if err != nil {
		return Recoverable(runErrToDomain(ctx, "external powershell script", err))
	}

	return parseOutcome(string(stdout))
}

// embeddedScript runs the in-memory keyboard-simulation script under a
// clipboard guard.
func (s *WindowsStrategy) embeddedScript(ctx context.Context, _ *domain.WindowSnapshot, _ domain.BrowserType) Outcome {
	saved, snapErr := s.clip.Snapshot()
	if snapErr != nil {
		s.logger.Debug("clipboard snapshot unavailable", zap.Error(snapErr))
	}
	defer func() {
		if snapErr == nil {
			if err := s.clip.Restore(saved); err != nil {
				s.logger.Warn("failed to restore clipboard", zap.Error(err))
			}
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.embeddedTimeout)
	defer cancel()

	stdout, stderr, err := s.runner.Output(ctx, "powershell",
		"-ExecutionPolicy", "Bypass", "-NoProfile", "-Command", embeddedWindowsScript)
	if len(stderr) > 0 {
		s.logger.Debug("embedded script stderr", zap.ByteString("stderr", stderr))
	}
	if err != nil {
		return Recoverable(runErrToDomain(ctx, "embedded powershell script", err))
	}

	return parseOutcome(string(stdout))
}

func (s *WindowsStrategy) findScript() (string, bool) {
	for _, path := range s.scriptPaths {
		if s.files.Exists(path) {
			return path, true
		}
	}
	return "", false
}

// parseOutcome maps parser results to chain outcomes. A NOT_BROWSER
// verdict is fatal: no later stage can turn a non-browser window into
// a browser.
func parseOutcome(output string) Outcome {
	url, err := ParseScriptOutput(output)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotABrowser {
			return Fatal(err)
		}
		return Recoverable(err)
	}
	return Success(url)
}

var _ domain.URLStrategy = (*WindowsStrategy)(nil)
