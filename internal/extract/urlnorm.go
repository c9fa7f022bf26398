// Package extract pulls structured event data out of event pages: static
// JSON-LD and app-state parsing first, an LLM extraction pass over cleaned
// HTML second, and a regex pricing sweep as the last resort.
package extract

import (
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

// jsRenderedDomains are ticketing platforms known to serve empty
// JavaScript shells to plain HTTP clients. URLs on these domains go
// straight to headless rendering.
var jsRenderedDomains = map[string]bool{
	"eventbrite.com":   true,
	"eventbrite.co.uk": true,
	"moshtix.com.au":   true,
	"dice.fm":          true,
	"humanitix.com":    true,
	"megatix.com.au":   true,
	"megatix.co.th":    true,
}

// NormalizeURL trims whitespace, strips the query string and fragment, and
// enforces an http(s) scheme (defaulting to https when absent).
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", eris.New("extract: empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", eris.Wrap(err, "extract: parse url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", eris.Errorf("extract: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", eris.New("extract: url has no host")
	}

	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// IsJSRenderedDomain reports whether the URL's host (or a parent domain)
// is a known JavaScript-shell platform.
func IsJSRenderedDomain(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for domain := range jsRenderedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// ExpandCompanionURLs adds provider-specific companion pages to the input
// set. Megatix event pages keep pricing on a separate /reservation page
// (and vice versa), so whichever half is present, the other is added.
// Output preserves input order with companions appended after their source,
// deduplicated.
func ExpandCompanionURLs(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))

	add := func(u string) {
		if u != "" && !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}

	for _, raw := range urls {
		add(raw)
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
		if !strings.Contains(host, "megatix") {
			continue
		}
		if strings.HasSuffix(u.Path, "/reservation") {
			base := *u
			base.Path = strings.TrimSuffix(u.Path, "/reservation")
			add(base.String())
		} else {
			companion := *u
			companion.Path = strings.TrimSuffix(u.Path, "/") + "/reservation"
			add(companion.String())
		}
	}
	return out
}
