package probe

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/frkavka/browser-info/internal/domain"
)

// frontmostWindowScript asks System Events for the frontmost process and
// its front window, emitting one line in the shared probe format.
const frontmostWindowScript = `tell application "System Events"
	set frontApp to first application process whose frontmost is true
	set appName to name of frontApp
	set appPid to unix id of frontApp
	set wTitle to ""
	set wx to 0
	set wy to 0
	set ww to 0
	set wh to 0
	try
		set w to front window of frontApp
		set wTitle to name of w
		set {wx, wy} to position of w
		set {ww, wh} to size of w
	end try
	return appName & "|" & appPid & "|" & wTitle & "|" & wx & "|" & wy & "|" & ww & "|" & wh
end tell`

type darwinProbe struct {
	runner  commandRunner
	timeout time.Duration
	logger  *zap.Logger
}

func (p *darwinProbe) ActiveWindow(ctx context.Context) (*domain.WindowSnapshot, error) {
	ctx, cancel := probeContext(ctx, p.timeout)
	defer cancel()

	out, err := p.runner.Output(ctx, "osascript", "-e", frontmostWindowScript)
	if err != nil {
		return nil, domain.Wrap(domain.KindWindowNotFound, "querying frontmost window", err)
	}

	snapshot, err := parseSnapshotLine(string(out))
	if err != nil {
		return nil, err
	}
	enrichFromProcess(snapshot, p.logger)
	return snapshot, nil
}
