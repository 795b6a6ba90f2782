package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/frkavka/browser-info/internal/domain"
)

type fakeProbe struct {
	snapshot *domain.WindowSnapshot
	err      error
}

func (f *fakeProbe) ActiveWindow(context.Context) (*domain.WindowSnapshot, error) {
	return f.snapshot, f.err
}

type fakeStrategy struct {
	url    string
	err    error
	called int
}

func (f *fakeStrategy) Name() string { return "fake" }

func (f *fakeStrategy) ExtractURL(context.Context, *domain.WindowSnapshot, domain.BrowserType) (string, error) {
	f.called++
	return f.url, f.err
}

type fakeDebugClient struct {
	available bool
	info      *domain.BrowserInfo
	err       error
	extracted int
}

func (f *fakeDebugClient) Available(context.Context) bool { return f.available }

func (f *fakeDebugClient) ExtractInfo(context.Context) (*domain.BrowserInfo, error) {
	f.extracted++
	return f.info, f.err
}

func chromeSnapshot() *domain.WindowSnapshot {
	return &domain.WindowSnapshot{
		AppName:   "Google Chrome",
		ProcessID: 4242,
		Title:     "GitHub - Google Chrome",
		Position:  domain.WindowPosition{X: 1, Y: 2, Width: 3, Height: 4},
	}
}

func newExtractor(p *fakeProbe, s *fakeStrategy, d *fakeDebugClient) *Extractor {
	return NewExtractor(p, s, d, zap.NewNop())
}

func TestInfo_NativeSuccess(t *testing.T) {
	strategy := &fakeStrategy{url: "https://github.com/frkavka"}
	e := newExtractor(&fakeProbe{snapshot: chromeSnapshot()}, strategy, &fakeDebugClient{})

	info, err := e.Info(context.Background(), domain.MethodNativeAutomation)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/frkavka", info.URL)
	assert.Equal(t, "Google Chrome", info.BrowserName)
	assert.Equal(t, domain.BrowserChrome, info.BrowserType.Kind)
	assert.Equal(t, int32(4242), info.ProcessID)
	assert.Equal(t, 3.0, info.Position.Width)
	assert.False(t, info.IsIncognito)
}

func TestInfo_IncognitoDetectedFromTitle(t *testing.T) {
	snap := chromeSnapshot()
	snap.Title = "New Tab - Google Chrome (Incognito)"
	e := newExtractor(&fakeProbe{snapshot: snap}, &fakeStrategy{url: "https://a.test"}, &fakeDebugClient{})

	info, err := e.Info(context.Background(), domain.MethodNativeAutomation)
	require.NoError(t, err)
	assert.True(t, info.IsIncognito)
}

func TestInfo_WindowNotFoundIsTerminal(t *testing.T) {
	strategy := &fakeStrategy{url: "https://a.test"}
	debug := &fakeDebugClient{available: true}
	e := newExtractor(&fakeProbe{err: domain.E(domain.KindWindowNotFound, "no window")}, strategy, debug)

	_, err := e.Info(context.Background(), domain.MethodAuto)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrWindowNotFound))
	assert.Zero(t, strategy.called)
	assert.Zero(t, debug.extracted)
}

func TestInfo_NotABrowserIsTerminal(t *testing.T) {
	strategy := &fakeStrategy{url: "https://a.test"}
	debug := &fakeDebugClient{available: true}
	snap := &domain.WindowSnapshot{AppName: "Terminal", Title: "zsh"}
	e := newExtractor(&fakeProbe{snapshot: snap}, strategy, debug)

	_, err := e.Info(context.Background(), domain.MethodAuto)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotABrowser))
	assert.Zero(t, strategy.called)
	assert.Zero(t, debug.extracted)
}

func TestInfo_RemoteDebuggingUnavailableFailsImmediately(t *testing.T) {
	strategy := &fakeStrategy{url: "https://a.test"}
	e := newExtractor(&fakeProbe{snapshot: chromeSnapshot()}, strategy, &fakeDebugClient{available: false})

	_, err := e.Info(context.Background(), domain.MethodRemoteDebugging)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCapabilityUnavailable))
	// No native fallback for the explicit remote-debugging method.
	assert.Zero(t, strategy.called)
}

func TestInfo_AutoPrefersNative(t *testing.T) {
	strategy := &fakeStrategy{url: "https://native.test"}
	debug := &fakeDebugClient{available: true, info: &domain.BrowserInfo{URL: "https://debug.test"}}
	e := newExtractor(&fakeProbe{snapshot: chromeSnapshot()}, strategy, debug)

	info, err := e.Info(context.Background(), domain.MethodAuto)
	require.NoError(t, err)
	assert.Equal(t, "https://native.test", info.URL)
	assert.Zero(t, debug.extracted)
}

func TestInfo_AutoFallsBackToRemoteDebugging(t *testing.T) {
	strategy := &fakeStrategy{err: domain.E(domain.KindUrlExtractionFailed, "all stages failed")}
	debug := &fakeDebugClient{available: true, info: &domain.BrowserInfo{URL: "https://debug.test"}}
	e := newExtractor(&fakeProbe{snapshot: chromeSnapshot()}, strategy, debug)

	info, err := e.Info(context.Background(), domain.MethodAuto)
	require.NoError(t, err)
	assert.Equal(t, "https://debug.test", info.URL)
	assert.Equal(t, 1, strategy.called)
}

func TestInfo_AutoBothFail(t *testing.T) {
	strategy := &fakeStrategy{err: domain.E(domain.KindUrlExtractionFailed, "native broke")}
	debug := &fakeDebugClient{available: false}
	e := newExtractor(&fakeProbe{snapshot: chromeSnapshot()}, strategy, debug)

	_, err := e.Info(context.Background(), domain.MethodAuto)
	require.Error(t, err)
	// Generic all-methods-failed, not the native-specific error.
	assert.Equal(t, domain.KindOther, domain.KindOf(err))
	assert.Contains(t, err.Error(), "all extraction methods failed")
}

func TestInfo_AutoSurfacesRemoteError(t *testing.T) {
	strategy := &fakeStrategy{err: domain.E(domain.KindUrlExtractionFailed, "native broke")}
	debug := &fakeDebugClient{available: true, err: domain.E(domain.KindNoActiveTabs, "")}
	e := newExtractor(&fakeProbe{snapshot: chromeSnapshot()}, strategy, debug)

	_, err := e.Info(context.Background(), domain.MethodAuto)
	require.Error(t, err)
	// The attempted path's specific error wins over a generic verdict.
	assert.True(t, errors.Is(err, domain.ErrNoActiveTabs))
}

func TestInfo_NativeRejectsInvalidURL(t *testing.T) {
	strategy := &fakeStrategy{url: "chrome://settings"}
	e := newExtractor(&fakeProbe{snapshot: chromeSnapshot()}, strategy, &fakeDebugClient{})

	_, err := e.Info(context.Background(), domain.MethodNativeAutomation)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidUrl))
}

func TestURL_Lightweight(t *testing.T) {
	strategy := &fakeStrategy{url: "https://light.test"}
	e := newExtractor(&fakeProbe{snapshot: chromeSnapshot()}, strategy, &fakeDebugClient{})

	url, err := e.URL(context.Background(), domain.MethodNativeAutomation)
	require.NoError(t, err)
	assert.Equal(t, "https://light.test", url)
}

func TestIsBrowserActive(t *testing.T) {
	e := newExtractor(&fakeProbe{snapshot: chromeSnapshot()}, &fakeStrategy{}, &fakeDebugClient{})
	assert.True(t, e.IsBrowserActive(context.Background()))

	e = newExtractor(&fakeProbe{snapshot: &domain.WindowSnapshot{AppName: "Terminal"}}, &fakeStrategy{}, &fakeDebugClient{})
	assert.False(t, e.IsBrowserActive(context.Background()))

	e = newExtractor(&fakeProbe{err: domain.E(domain.KindWindowNotFound, "")}, &fakeStrategy{}, &fakeDebugClient{})
	assert.False(t, e.IsBrowserActive(context.Background()))
}
