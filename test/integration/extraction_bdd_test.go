//go:build integration

package integration

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/frkavka/browser-info/internal/config"
	"github.com/frkavka/browser-info/internal/devtools"
	"github.com/frkavka/browser-info/internal/domain"
	"github.com/frkavka/browser-info/internal/platform"
	"github.com/frkavka/browser-info/internal/usecase"
)

// stubProbe stands in for the OS window probe.
type stubProbe struct {
	snapshot *domain.WindowSnapshot
	err      error
}

func (s *stubProbe) ActiveWindow(context.Context) (*domain.WindowSnapshot, error) {
	return s.snapshot, s.err
}

// stubRunner replays one scripted child-process result for every call.
type stubRunner struct {
	stdout string
	err    error
}

func (s *stubRunner) Output(context.Context, string, ...string) ([]byte, []byte, error) {
	return []byte(s.stdout), nil, s.err
}

type stubFiles struct{ present map[string]bool }

func (s *stubFiles) Exists(path string) bool { return s.present[path] }

type stubClipboard struct{ restored int }

func (s *stubClipboard) Snapshot() (string, error) { return "saved", nil }
func (s *stubClipboard) Restore(string) error      { s.restored++; return nil }

func devtoolsConfig(serverURL string) *config.Config {
	u, err := url.Parse(serverURL)
	Expect(err).NotTo(HaveOccurred())
	port, err := strconv.Atoi(u.Port())
	Expect(err).NotTo(HaveOccurred())

	return &config.Config{
		DevToolsHost:          u.Hostname(),
		DevToolsPort:          port,
		DevToolsTimeout:       2 * time.Second,
		WindowsScriptPaths:    []string{"helper.ps1"},
		ExternalScriptTimeout: 2 * time.Second,
		EmbeddedScriptTimeout: 2 * time.Second,
	}
}

var _ = Describe("Extraction pipeline", func() {
	var (
		logger   *zap.Logger
		snapshot *domain.WindowSnapshot
	)

	BeforeEach(func() {
		logger = zap.NewNop()
		snapshot = &domain.WindowSnapshot{
			AppName:   "Google Chrome",
			ProcessID: 4242,
			Title:     "GitHub - Google Chrome",
			Position:  domain.WindowPosition{Width: 1280, Height: 800},
		}
	})

	Describe("native automation", func() {
		Context("when the external helper script succeeds", func() {
			It("assembles the full record from the snapshot", func() {
				strategy := platform.NewWindowsStrategyWithDeps(
					&stubRunner{stdout: "SUCCESS|https://github.com/frkavka|external"},
					&stubFiles{present: map[string]bool{"helper.ps1": true}},
					&stubClipboard{},
					devtoolsConfig("http://127.0.0.1:1"),
					logger,
				)
				extractor := usecase.NewExtractor(
					&stubProbe{snapshot: snapshot}, strategy,
					devtools.New(devtoolsConfig("http://127.0.0.1:1"), logger), logger)

				info, err := extractor.Info(context.Background(), domain.MethodNativeAutomation)
				Expect(err).NotTo(HaveOccurred())
				Expect(info.URL).To(Equal("https://github.com/frkavka"))
				Expect(info.BrowserType.Kind).To(Equal(domain.BrowserChrome))
				Expect(info.ProcessID).To(Equal(int32(4242)))
				Expect(info.Position.Width).To(Equal(1280.0))
			})
		})
	})

	Describe("auto method", func() {
		Context("when native automation fails and the debugging endpoint is up", func() {
			It("falls back to the remote-debugging tab list", func() {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					switch r.URL.Path {
					case "/json/version":
						w.WriteHeader(http.StatusOK)
					case "/json":
						_, _ = w.Write([]byte(`[
							{"id":"1","title":"X","url":"https://a.test","type":"background_page"},
							{"id":"2","title":"Y","url":"https://b.test","type":"page"}
						]`))
					}
				}))
				defer server.Close()

				cfg := devtoolsConfig(server.URL)
				strategy := platform.NewWindowsStrategyWithDeps(
					&stubRunner{err: errors.New("powershell unavailable")},
					&stubFiles{present: map[string]bool{}},
					&stubClipboard{}, cfg, logger)
				extractor := usecase.NewExtractor(
					&stubProbe{snapshot: &domain.WindowSnapshot{
						AppName: "Google Chrome",
						Title:   "untitled window",
					}},
					strategy, devtools.New(cfg, logger), logger)

				info, err := extractor.Info(context.Background(), domain.MethodAuto)
				Expect(err).NotTo(HaveOccurred())
				Expect(info.URL).To(Equal("https://b.test"))
			})
		})

		Context("when every method is exhausted", func() {
			It("reports the generic all-methods-failed verdict", func() {
				cfg := devtoolsConfig("http://127.0.0.1:1")
				strategy := platform.NewWindowsStrategyWithDeps(
					&stubRunner{err: errors.New("powershell unavailable")},
					&stubFiles{present: map[string]bool{}},
					&stubClipboard{}, cfg, logger)
				extractor := usecase.NewExtractor(
					&stubProbe{snapshot: &domain.WindowSnapshot{
						AppName: "Google Chrome",
						Title:   "untitled window",
					}},
					strategy, devtools.New(cfg, logger), logger)

				_, err := extractor.Info(context.Background(), domain.MethodAuto)
				Expect(err).To(HaveOccurred())
				Expect(domain.KindOf(err)).To(Equal(domain.KindOther))
				Expect(err.Error()).To(ContainSubstring("all extraction methods failed"))
			})
		})
	})

	Describe("terminal failures", func() {
		Context("when the foreground window is not a browser", func() {
			It("fails without attempting any extraction", func() {
				cfg := devtoolsConfig("http://127.0.0.1:1")
				strategy := platform.NewWindowsStrategyWithDeps(
					&stubRunner{stdout: "SUCCESS|https://never.test|x"},
					&stubFiles{present: map[string]bool{"helper.ps1": true}},
					&stubClipboard{}, cfg, logger)
				extractor := usecase.NewExtractor(
					&stubProbe{snapshot: &domain.WindowSnapshot{AppName: "Terminal", Title: "zsh"}},
					strategy, devtools.New(cfg, logger), logger)

				_, err := extractor.Info(context.Background(), domain.MethodAuto)
				Expect(err).To(MatchError(domain.ErrNotABrowser))
			})
		})
	})
})
