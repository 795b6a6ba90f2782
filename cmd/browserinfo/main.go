// Package main is the CLI entry point for browserinfo.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/frkavka/browser-info/internal/config"
	"github.com/frkavka/browser-info/internal/devtools"
	"github.com/frkavka/browser-info/internal/domain"
	"github.com/frkavka/browser-info/internal/logging"
	"github.com/frkavka/browser-info/internal/platform"
	"github.com/frkavka/browser-info/internal/probe"
	"github.com/frkavka/browser-info/internal/usecase"
)

var (
	// Version info (set via ldflags)
	Version   = "0.1.0"
	Commit    = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "browserinfo",
	Short: "Report metadata about the currently focused browser window",
	Long: `browserinfo inspects the foreground window and, when it is a browser,
reports its current URL, title, process identity, geometry and privacy
state. URLs are read through native automation (helper scripts, keyboard
simulation) with a remote-debugging fallback.`,
	Version: Version,
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print full metadata for the focused browser window",
	RunE:  runGet,
}

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Print only the URL of the focused browser window",
	RunE:  runURL,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether the focused window is a browser",
	Long:  `Exits 0 when the foreground window classifies as a browser, 1 otherwise.`,
	RunE:  runCheck,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run:   runVersion,
}

var (
	methodFlag  string
	jsonOutput  bool
	logFileFlag string
	debugFlag   bool
)

func init() {
	for _, cmd := range []*cobra.Command{getCmd, urlCmd} {
		cmd.Flags().StringVar(&methodFlag, "method", "auto", "Extraction method (auto/native/devtools)")
	}
	getCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	versionCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Write logs to a rotated file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")

	// The check verdict is the printed line plus the exit code; cobra
	// must not add its own error or usage text on top.
	checkCmd.SilenceErrors = true
	checkCmd.SilenceUsage = true

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(urlCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

// buildExtractor wires the pipeline from configuration.
func buildExtractor() (*usecase.Extractor, *zap.Logger) {
	cfg := config.Load()
	if logFileFlag != "" {
		cfg.LogFile = logFileFlag
	}
	if debugFlag {
		cfg.Debug = true
	}

	logger := logging.New(cfg.LogFile, cfg.Debug)

	windowProbe := probe.ForHost(cfg, logger.Named("probe"))
	strategy := platform.ForHost(cfg, logger.Named("platform"))
	debugClient := devtools.New(cfg, logger.Named("devtools"))

	return usecase.NewExtractor(windowProbe, strategy, debugClient, logger), logger
}

func runGet(cmd *cobra.Command, args []string) error {
	method, err := domain.ParseMethod(methodFlag)
	if err != nil {
		return err
	}

	extractor, logger := buildExtractor()
	defer func() { _ = logger.Sync() }()

	info, err := extractor.Info(context.Background(), method)
	if err != nil {
		return err
	}

	if jsonOutput {
		encoded, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
		return nil
	}

	fmt.Printf("URL:       %s\n", info.URL)
	fmt.Printf("Title:     %s\n", info.Title)
	fmt.Printf("Browser:   %s (%s)\n", info.BrowserName, info.BrowserType)
	fmt.Printf("PID:       %d\n", info.ProcessID)
	fmt.Printf("Window:    %.0fx%.0f at (%.0f, %.0f)\n",
		info.Position.Width, info.Position.Height, info.Position.X, info.Position.Y)
	fmt.Printf("Incognito: %v\n", info.IsIncognito)
	return nil
}

func runURL(cmd *cobra.Command, args []string) error {
	method, err := domain.ParseMethod(methodFlag)
	if err != nil {
		return err
	}

	extractor, logger := buildExtractor()
	defer func() { _ = logger.Sync() }()

	url, err := extractor.URL(context.Background(), method)
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}

// errNotBrowser signals the non-browser verdict up to main, which maps
// any error to exit code 1. Returning instead of calling os.Exit here
// lets the deferred logger sync run first.
var errNotBrowser = errors.New("foreground window is not a browser")

func runCheck(cmd *cobra.Command, args []string) error {
	extractor, logger := buildExtractor()
	defer func() { _ = logger.Sync() }()

	return checkForeground(extractor)
}

func checkForeground(extractor *usecase.Extractor) error {
	if extractor.IsBrowserActive(context.Background()) {
		fmt.Println("browser")
		return nil
	}
	fmt.Println("not a browser")
	return errNotBrowser
}

func runVersion(cmd *cobra.Command, args []string) {
	if jsonOutput {
		fmt.Printf(`{"version":"%s","commit":"%s","build_time":"%s"}`+"\n",
			Version, Commit, BuildTime)
	} else {
		fmt.Printf("browserinfo %s (commit: %s, built: %s)\n",
			Version, Commit, BuildTime)
	}
}
