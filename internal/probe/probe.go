// Package probe observes the OS's current foreground window. It plays
// the external-collaborator role in the extraction pipeline: the rest of
// the module only sees the WindowSnapshot it returns.
package probe

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"

	"github.com/frkavka/browser-info/internal/config"
	"github.com/frkavka/browser-info/internal/domain"
)

// commandRunner abstracts command execution for testing.
type commandRunner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = nil
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// ForHost selects the probe implementation for the current OS once at
// startup.
func ForHost(cfg *config.Config, logger *zap.Logger) domain.WindowProbe {
	switch runtime.GOOS {
	case "windows":
		return &windowsProbe{runner: execRunner{}, timeout: cfg.ProbeTimeout, logger: logger}
	case "darwin":
		return &darwinProbe{runner: execRunner{}, timeout: cfg.ProbeTimeout, logger: logger}
	default:
		return &linuxProbe{runner: execRunner{}, timeout: cfg.ProbeTimeout, logger: logger}
	}
}

// parseSnapshotLine parses the probes' shared wire format:
// appName|pid|title|x|y|width|height
//
// The title is free-form and may itself contain pipes ("Rust | Docs"),
// so the fixed fields anchor both ends of the line: appName and pid at
// the front, the four geometry fields at the back, and everything in
// between is the title.
func parseSnapshotLine(line string) (*domain.WindowSnapshot, error) {
	parts := strings.Split(strings.TrimSpace(line), "|")
	if len(parts) < 7 {
		return nil, domain.Ef(domain.KindWindowNotFound, "malformed probe output %q", line)
	}

	pid, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 32)
	if err != nil {
		return nil, domain.Wrap(domain.KindWindowNotFound, "bad pid in probe output", err)
	}

	geom := make([]float64, 4)
	for i, raw := range parts[len(parts)-4:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, domain.Wrap(domain.KindWindowNotFound, "bad geometry in probe output", err)
		}
		geom[i] = v
	}

	return &domain.WindowSnapshot{
		AppName:   strings.TrimSpace(parts[0]),
		ProcessID: int32(pid),
		Title:     strings.TrimSpace(strings.Join(parts[2:len(parts)-4], "|")),
		Position: domain.WindowPosition{
			X: geom[0], Y: geom[1], Width: geom[2], Height: geom[3],
		},
	}, nil
}

// enrichFromProcess fills process identity from the PID via gopsutil.
// Best-effort: a vanished process leaves the snapshot as the probe saw it.
func enrichFromProcess(snapshot *domain.WindowSnapshot, logger *zap.Logger) {
	if snapshot.ProcessID <= 0 {
		return
	}
	p, err := process.NewProcess(snapshot.ProcessID)
	if err != nil {
		logger.Debug("process lookup failed", zap.Int32("pid", snapshot.ProcessID), zap.Error(err))
		return
	}
	if exe, err := p.Exe(); err == nil {
		snapshot.ProcessPath = exe
	}
	if snapshot.AppName == "" {
		if name, err := p.Name(); err == nil {
			snapshot.AppName = name
		}
	}
}

// lastNonEmptyLine returns the final non-blank line of command output,
// skipping any banner noise the shell may print first.
func lastNonEmptyLine(output string) string {
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

func probeContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}
