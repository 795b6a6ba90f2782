package probe

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/frkavka/browser-info/internal/domain"
)

// linuxProbe reads the active window from the X server via xprop and
// xwininfo. Wayland sessions without XWayland are not supported.
type linuxProbe struct {
	runner  commandRunner
	timeout time.Duration
	logger  *zap.Logger
}

func (p *linuxProbe) ActiveWindow(ctx context.Context) (*domain.WindowSnapshot, error) {
	ctx, cancel := probeContext(ctx, p.timeout)
	defer cancel()

	out, err := p.runner.Output(ctx, "xprop", "-root", "_NET_ACTIVE_WINDOW")
	if err != nil {
		return nil, domain.Wrap(domain.KindWindowNotFound, "querying active window id (no X11?)", err)
	}
	windowID, err := parseActiveWindowID(string(out))
	if err != nil {
		return nil, err
	}

	out, err = p.runner.Output(ctx, "xprop", "-id", windowID, "_NET_WM_NAME", "_NET_WM_PID", "WM_CLASS")
	if err != nil {
		return nil, domain.Wrap(domain.KindWindowNotFound, "querying window properties", err)
	}
	snapshot := parseWindowProps(string(out))

	if geo, err := p.runner.Output(ctx, "xwininfo", "-id", windowID); err == nil {
		snapshot.Position = parseGeometry(string(geo))
	} else {
		p.logger.Debug("window geometry unavailable", zap.Error(err))
	}

	enrichFromProcess(snapshot, p.logger)
	if snapshot.AppName == "" && snapshot.Title == "" {
		return nil, domain.E(domain.KindWindowNotFound, "active window has no identity")
	}
	return snapshot, nil
}

// parseActiveWindowID extracts the window id from
// "_NET_ACTIVE_WINDOW(WINDOW): window id # 0x3c00005".
func parseActiveWindowID(output string) (string, error) {
	fields := strings.Fields(output)
	if len(fields) < 5 {
		return "", domain.Ef(domain.KindWindowNotFound, "unexpected xprop output %q", strings.TrimSpace(output))
	}
	id := fields[len(fields)-1]
	if !strings.HasPrefix(id, "0x") || id == "0x0" {
		return "", domain.E(domain.KindWindowNotFound, "no active window")
	}
	return id, nil
}

// parseWindowProps reads _NET_WM_NAME, _NET_WM_PID and WM_CLASS lines.
func parseWindowProps(output string) *domain.WindowSnapshot {
	snapshot := &domain.WindowSnapshot{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "_NET_WM_NAME"):
			snapshot.Title = unquoteProp(line)
		case strings.HasPrefix(line, "_NET_WM_PID"):
			if idx := strings.LastIndex(line, "= "); idx >= 0 {
				if pid, err := strconv.ParseInt(strings.TrimSpace(line[idx+2:]), 10, 32); err == nil {
					snapshot.ProcessID = int32(pid)
				}
			}
		case strings.HasPrefix(line, "WM_CLASS"):
			// WM_CLASS(STRING) = "google-chrome", "Google-chrome"
			parts := strings.Split(unquoteAll(line), ",")
			if len(parts) > 0 {
				snapshot.AppName = strings.TrimSpace(parts[len(parts)-1])
			}
		}
	}
	return snapshot
}

func unquoteProp(line string) string {
	start := strings.Index(line, `"`)
	end := strings.LastIndex(line, `"`)
	if start >= 0 && end > start {
		return line[start+1 : end]
	}
	return ""
}

func unquoteAll(line string) string {
	return strings.ReplaceAll(line, `"`, "")
}

// parseGeometry reads xwininfo's absolute position and size lines.
func parseGeometry(output string) domain.WindowPosition {
	pos := domain.WindowPosition{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Absolute upper-left X:"):
			pos.X = trailingNumber(line)
		case strings.HasPrefix(line, "Absolute upper-left Y:"):
			pos.Y = trailingNumber(line)
		case strings.HasPrefix(line, "Width:"):
			pos.Width = trailingNumber(line)
		case strings.HasPrefix(line, "Height:"):
			pos.Height = trailingNumber(line)
		}
	}
	return pos
}

func trailingNumber(line string) float64 {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return 0
	}
	return v
}
