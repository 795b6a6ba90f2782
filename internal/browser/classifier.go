// Package browser classifies a window snapshot as a specific browser
// and derives best-effort session metadata from it.
package browser

import (
	"strings"

	"github.com/frkavka/browser-info/internal/domain"
)

// pathIndicators are the substrings that mark a process path as
// browser-like when the app name alone is inconclusive.
var pathIndicators = []string{
	"chrome", "firefox", "edge", "safari", "brave", "opera", "vivaldi",
}

// Classify maps a snapshot to a browser type, or reports NotABrowser.
//
// The priority order is a contract: "chrome" wins only when "edge" is
// absent from the app name, so Chromium-based Edge is never misclassified
// as Chrome. When the app name matches nothing, the process path is
// scanned for the same indicators; a path hit with no specific browser
// recognized yields Unknown("detected_from_path").
func Classify(snapshot *domain.WindowSnapshot) (domain.BrowserType, error) {
	appName := strings.ToLower(snapshot.AppName)
	processPath := strings.ToLower(snapshot.ProcessPath)

	switch {
	case strings.Contains(appName, "chrome") && !strings.Contains(appName, "edge"):
		return domain.BrowserType{Kind: domain.BrowserChrome}, nil
	case strings.Contains(appName, "msedge"), strings.Contains(appName, "edge"):
		return domain.BrowserType{Kind: domain.BrowserEdge}, nil
	case strings.Contains(appName, "firefox"):
		return domain.BrowserType{Kind: domain.BrowserFirefox}, nil
	case strings.Contains(appName, "safari"):
		return domain.BrowserType{Kind: domain.BrowserSafari}, nil
	case strings.Contains(appName, "brave"):
		return domain.BrowserType{Kind: domain.BrowserBrave}, nil
	case strings.Contains(appName, "opera"):
		return domain.BrowserType{Kind: domain.BrowserOpera}, nil
	case strings.Contains(appName, "vivaldi"):
		return domain.BrowserType{Kind: domain.BrowserVivaldi}, nil
	case isBrowserPath(processPath):
		return classifyFromPath(processPath), nil
	default:
		return domain.BrowserType{}, domain.E(domain.KindNotABrowser, "active window is not a browser")
	}
}

func isBrowserPath(path string) bool {
	for _, indicator := range pathIndicators {
		if strings.Contains(path, indicator) {
			return true
		}
	}
	return false
}

func classifyFromPath(path string) domain.BrowserType {
	switch {
	case strings.Contains(path, "chrome"):
		return domain.BrowserType{Kind: domain.BrowserChrome}
	case strings.Contains(path, "firefox"):
		return domain.BrowserType{Kind: domain.BrowserFirefox}
	case strings.Contains(path, "edge"):
		return domain.BrowserType{Kind: domain.BrowserEdge}
	default:
		return domain.Unknown("detected_from_path")
	}
}

// Metadata derives the best-effort session metadata for a classified
// snapshot. Version and TabsCount have no reliable source of truth and
// stay unset; IsIncognito is inferred from the window title.
func Metadata(snapshot *domain.WindowSnapshot, _ domain.BrowserType) domain.BrowserMetadata {
	return domain.BrowserMetadata{
		IsIncognito: detectIncognito(snapshot.Title),
	}
}

func detectIncognito(title string) bool {
	lower := strings.ToLower(title)
	return strings.Contains(lower, "incognito") ||
		strings.Contains(lower, "private") ||
		strings.Contains(lower, "inprivate")
}
