// Package common holds small helpers shared across CLI actions.
package common

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var markdownLinkRe = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

// SanitizeURL cleans up common copy-paste artifacts around a URL: edge
// whitespace, markdown link syntax, and stray punctuation.
func SanitizeURL(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if m := markdownLinkRe.FindStringSubmatch(cleaned); len(m) > 1 {
		cleaned = m[1]
	}

	cleaned = strings.TrimRight(cleaned, `,.)}]"'>;`)
	cleaned = strings.TrimLeft(cleaned, `([<"'`)

	return strings.TrimSpace(cleaned)
}

// ValidateURL sanitizes raw and rejects anything that is not a plausible
// http(s) URL with a host. A missing scheme defaults to https.
func ValidateURL(raw string) (string, error) {
	cleaned := SanitizeURL(raw)
	if cleaned == "" {
		return "", fmt.Errorf("empty URL")
	}
	if strings.Contains(cleaned, " ") {
		return "", fmt.Errorf("URL %q contains spaces", raw)
	}
	if !strings.HasPrefix(cleaned, "http://") && !strings.HasPrefix(cleaned, "https://") {
		cleaned = "https://" + cleaned
	}
	parsed, err := url.Parse(cleaned)
	if err != nil {
		return "", fmt.Errorf("parsing URL %q: %w", raw, err)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("URL %q has no host", raw)
	}
	if strings.ContainsAny(parsed.Host, `{}[]<>"'`) {
		return "", fmt.Errorf("URL %q has a malformed host", raw)
	}
	return cleaned, nil
}
