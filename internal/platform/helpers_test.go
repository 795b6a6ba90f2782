package platform

import (
	"context"
	"errors"
)

// fakeResponse scripts one child-process invocation.
type fakeResponse struct {
	stdout     string
	stderr     string
	err        error
	blockOnCtx bool // simulate a hung process killed at the deadline
}

type recordedCall struct {
	name string
	args []string
}

// fakeRunner replays scripted responses in order.
type fakeRunner struct {
	responses []fakeResponse
	calls     []recordedCall
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, recordedCall{name: name, args: args})
	if len(f.responses) == 0 {
		return nil, nil, errors.New("fakeRunner: no scripted response")
	}
	res := f.responses[0]
	f.responses = f.responses[1:]

	if res.blockOnCtx {
		<-ctx.Done()
		return nil, nil, errors.New("signal: killed")
	}
	return []byte(res.stdout), []byte(res.stderr), res.err
}

// fakeFiles answers existence checks from a fixed set.
type fakeFiles struct {
	existing map[string]bool
}

func (f *fakeFiles) Exists(path string) bool { return f.existing[path] }

// fakeClipboard records guard interactions.
type fakeClipboard struct {
	content     string
	snapshotErr error
	restored    []string
}

func (f *fakeClipboard) Snapshot() (string, error) {
	if f.snapshotErr != nil {
		return "", f.snapshotErr
	}
	return f.content, nil
}

func (f *fakeClipboard) Restore(content string) error {
	f.restored = append(f.restored, content)
	return nil
}
