package platform

import (
	"context"
	"strings"

	"github.com/frkavka/browser-info/internal/domain"
)

// titleURLs maps recognizable window-title substrings to a canonical URL
// for the service. Last-resort guessing only; order matters when a title
// mentions several services.
var titleURLs = []struct {
	indicator string
	url       string
}{
	{"claude", "https://claude.ai/chat"},
	{"github", "https://github.com"},
	{"youtube", "https://www.youtube.com"},
	{"stackoverflow", "https://stackoverflow.com"},
	{"google", "https://www.google.com"},
	{"twitter", "https://x.com"},
	{"x.com", "https://x.com"},
	{"reddit", "https://www.reddit.com"},
}

// URLFromTitle guesses a canonical URL from the window title. This is
// the final fallback of every strategy chain.
func URLFromTitle(title string) (string, error) {
	lower := strings.ToLower(title)
	for _, entry := range titleURLs {
		if strings.Contains(lower, entry.indicator) {
			return entry.url, nil
		}
	}
	return "", domain.Ef(domain.KindUrlExtractionFailed, "cannot determine URL from title %q", title)
}

// titleStage wraps the heuristic as a chain stage. Its failure is what
// the caller sees when the whole chain is exhausted.
func titleStage() stage {
	return stage{
		name: "title_heuristic",
		run: func(_ context.Context, snapshot *domain.WindowSnapshot, _ domain.BrowserType) Outcome {
			url, err := URLFromTitle(snapshot.Title)
			if err != nil {
				return Recoverable(err)
			}
			return Success(url)
		},
	}
}
