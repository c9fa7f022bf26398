package extract

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/panorama-labs/survey-engine/internal/model"
)

// App-state globals left in inline scripts by SPA frameworks. The capture
// stops at the enclosing script or statement boundary; balanced-brace
// trimming happens afterwards.
var (
	initialStateRe = regexp.MustCompile(`(?s)window\.__INITIAL_STATE__\s*=\s*(\{.*?\})\s*(?:;|</script)`)
	nextDataRe     = regexp.MustCompile(`(?s)<script[^>]+id=["']__NEXT_DATA__["'][^>]*>(.*?)</script>`)
	nuxtStateRe    = regexp.MustCompile(`(?s)window\.__NUXT__\s*=\s*(\{.*?\})\s*(?:;|</script)`)
)

// ParseAppState scans inline scripts for framework state blobs and walks
// whatever parses as JSON for event-shaped fields. Best effort only; pages
// that serialize state as executable JS rather than JSON yield nothing.
func ParseAppState(html string) model.ExtractedEventData {
	var out model.ExtractedEventData
	for _, re := range []*regexp.Regexp{nextDataRe, initialStateRe, nuxtStateRe} {
		match := re.FindStringSubmatch(html)
		if match == nil {
			continue
		}
		var doc any
		if err := json.Unmarshal([]byte(strings.TrimSpace(match[1])), &doc); err != nil {
			continue
		}
		walkState(doc, &out, 0)
		if out.HasData() {
			break
		}
	}
	return out
}

const maxStateDepth = 12

// Alias lists are probed in order, so the canonical key wins over variants
// when siblings carry both.
var (
	descriptionAliases = []string{"description", "eventdescription", "event_description"}
	venueAliases       = []string{"venue", "venuename", "venue_name"}
	lineupAliases      = []string{"lineup", "artists", "performers"}
	ticketAliases      = []string{"tickets", "tickettypes", "ticket_types", "pricing"}
)

// walkState recursively searches a decoded state blob for recognizable
// event fields. First hit per field wins; keys are visited in sorted order
// so sibling matches resolve the same way on every run.
func walkState(node any, out *model.ExtractedEventData, depth int) {
	if depth > maxStateDepth {
		return
	}
	switch v := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		lowered := make(map[string]any, len(v))
		for _, key := range keys {
			lk := strings.ToLower(key)
			if _, seen := lowered[lk]; !seen {
				lowered[lk] = v[key]
			}
		}

		if out.Description == "" {
			for _, alias := range descriptionAliases {
				if s, ok := lowered[alias].(string); ok && strings.TrimSpace(s) != "" {
					out.Description = strings.TrimSpace(s)
					break
				}
			}
		}
		if out.Venue == "" {
			for _, alias := range venueAliases {
				if venue := venueFromState(lowered[alias]); venue != "" {
					out.Venue = venue
					break
				}
			}
		}
		if len(out.Lineup) == 0 {
			for _, alias := range lineupAliases {
				if lineup := lineupFromState(lowered[alias]); len(lineup) > 0 {
					out.Lineup = lineup
					break
				}
			}
		}
		if len(out.PricingTiers) == 0 {
			for _, alias := range ticketAliases {
				if tiers := tiersFromState(lowered[alias]); len(tiers) > 0 {
					out.PricingTiers = tiers
					break
				}
			}
		}

		for _, key := range keys {
			walkState(v[key], out, depth+1)
		}
	case []any:
		for _, item := range v {
			walkState(item, out, depth+1)
		}
	}
}

func venueFromState(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		return strings.TrimSpace(stringField(v, "name"))
	}
	return ""
}

func lineupFromState(value any) []model.Artist {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	var out []model.Artist
	for _, item := range list {
		var name string
		switch v := item.(type) {
		case string:
			name = v
		case map[string]any:
			name = stringField(v, "name")
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, model.Artist{Name: name, Rank: len(out) + 1})
	}
	return out
}

func tiersFromState(value any) []model.PricingTier {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	var out []model.PricingTier
	for _, item := range list {
		node, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name := strings.TrimSpace(stringField(node, "name"))
		if name == "" {
			name = strings.TrimSpace(stringField(node, "title"))
		}
		price := numericString(node["price"])
		if price == "" {
			price = numericString(node["cost"])
		}
		if name == "" || price == "" {
			continue
		}
		out = append(out, model.PricingTier{Name: name, Price: normalizePrice(price)})
	}
	return out
}
