package platform

import (
	"encoding/json"
	"strings"

	"github.com/frkavka/browser-info/internal/domain"
)

// Helper scripts report their result on the last line of stdout. Two
// grammars are accepted:
//
//   - JSON lines, one object per line:
//     {"status":"success","url":"https://..."}
//     {"status":"error","reason":"..."} / {"status":"failed","reason":"..."}
//     {"status":"not_browser"}
//
//   - Legacy pipe-delimited tags, kept for older helper scripts:
//     SUCCESS|<url>[|tag]  ERROR|<reason>[|tag]  FAILED|<reason>[|tag]
//     NOT_BROWSER|...
//
// The last recognized result line wins, regardless of grammar: a JSON
// debug line printed early never overrides a later authoritative tag
// line, and vice versa. Anything else is an extraction failure, never
// a crash.

type scriptResult struct {
	Status string `json:"status"`
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// ParseScriptOutput extracts the URL or failure from helper script output.
func ParseScriptOutput(output string) (string, error) {
	lines := strings.Split(output, "\n")

	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "{") {
			var res scriptResult
			if err := json.Unmarshal([]byte(line), &res); err == nil && res.Status != "" {
				return resultFromJSON(res)
			}
			continue
		}
		if strings.Contains(line, "|") {
			return parseLegacyLine(line)
		}
	}

	return "", domain.E(domain.KindUrlExtractionFailed, "no result line in script output")
}

func resultFromJSON(res scriptResult) (string, error) {
	switch strings.ToLower(res.Status) {
	case "success":
		return checkedURL(res.URL)
	case "error":
		return "", domain.E(domain.KindPlatformError, res.Reason)
	case "failed":
		return "", domain.E(domain.KindUrlExtractionFailed, res.Reason)
	case "not_browser":
		return "", domain.E(domain.KindNotABrowser, "script reported a non-browser window")
	default:
		return "", domain.Ef(domain.KindUrlExtractionFailed, "unrecognized script status %q", res.Status)
	}
}

func parseLegacyLine(resultLine string) (string, error) {
	parts := strings.Split(resultLine, "|")
	tag := strings.TrimSpace(parts[0])
	payload := ""
	if len(parts) >= 2 {
		payload = strings.TrimSpace(parts[1])
	}

	switch tag {
	case "SUCCESS":
		return checkedURL(payload)
	case "ERROR":
		return "", domain.E(domain.KindPlatformError, payload)
	case "FAILED":
		return "", domain.E(domain.KindUrlExtractionFailed, payload)
	case "NOT_BROWSER":
		return "", domain.E(domain.KindNotABrowser, "script reported a non-browser window")
	default:
		// Compatibility: some scripts emit the bare URL in the first field.
		if domain.ValidURL(tag) {
			return tag, nil
		}
		return "", domain.Ef(domain.KindUrlExtractionFailed, "unrecognized script output tag %q", tag)
	}
}

// checkedURL enforces the scheme invariant on a script-supplied value.
func checkedURL(url string) (string, error) {
	url = strings.TrimSpace(url)
	if !domain.ValidURL(url) {
		return "", domain.Ef(domain.KindInvalidUrl, "script returned %q", url)
	}
	return url, nil
}
