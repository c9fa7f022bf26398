package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/panorama-labs/survey-engine/internal/model"
)

var jsonLDRe = regexp.MustCompile(`(?is)<script[^>]+type=["']application/ld\+json["'][^>]*>(.*?)</script>`)

// ParseJSONLD scans the page for JSON-LD blocks describing an Event and
// returns whatever fields it can recover: description, venue composed from
// the location name and address parts, and pricing tiers from offers.
func ParseJSONLD(html string) model.ExtractedEventData {
	var out model.ExtractedEventData

	for _, match := range jsonLDRe.FindAllStringSubmatch(html, -1) {
		var doc any
		if err := json.Unmarshal([]byte(strings.TrimSpace(match[1])), &doc); err != nil {
			continue
		}
		for _, node := range flattenLDNodes(doc) {
			if !isEventNode(node) {
				continue
			}
			applyEventNode(node, &out)
		}
	}
	return out
}

// flattenLDNodes unwraps top-level arrays and @graph containers into a
// flat node list.
func flattenLDNodes(doc any) []map[string]any {
	var out []map[string]any
	switch v := doc.(type) {
	case []any:
		for _, item := range v {
			out = append(out, flattenLDNodes(item)...)
		}
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			for _, item := range graph {
				out = append(out, flattenLDNodes(item)...)
			}
			return out
		}
		out = append(out, v)
	}
	return out
}

// isEventNode accepts Event and its subtypes (MusicEvent, Festival, ...).
func isEventNode(node map[string]any) bool {
	switch t := node["@type"].(type) {
	case string:
		return strings.Contains(strings.ToLower(t), "event") || strings.EqualFold(t, "Festival")
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.Contains(strings.ToLower(s), "event") {
				return true
			}
		}
	}
	return false
}

func applyEventNode(node map[string]any, out *model.ExtractedEventData) {
	if out.Description == "" {
		out.Description = strings.TrimSpace(stringField(node, "description"))
	}
	if out.Venue == "" {
		out.Venue = venueFrom(node["location"])
	}
	if len(out.PricingTiers) == 0 {
		out.PricingTiers = tiersFromOffers(node["offers"])
	}
	if len(out.Lineup) == 0 {
		out.Lineup = lineupFromPerformers(node["performer"])
	}
}

// venueFrom composes "Name, Street, Locality Region" from a location node,
// skipping missing parts.
func venueFrom(location any) string {
	loc, ok := location.(map[string]any)
	if !ok {
		if list, isList := location.([]any); isList && len(list) > 0 {
			loc, ok = list[0].(map[string]any)
		}
		if !ok {
			return ""
		}
	}

	parts := []string{strings.TrimSpace(stringField(loc, "name"))}
	if addr, ok := loc["address"].(map[string]any); ok {
		street := strings.TrimSpace(stringField(addr, "streetAddress"))
		locality := strings.TrimSpace(stringField(addr, "addressLocality"))
		region := strings.TrimSpace(stringField(addr, "addressRegion"))
		if street != "" {
			parts = append(parts, street)
		}
		if locality != "" || region != "" {
			parts = append(parts, strings.TrimSpace(locality+" "+region))
		}
	} else if addr, ok := loc["address"].(string); ok {
		parts = append(parts, strings.TrimSpace(addr))
	}

	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

func tiersFromOffers(offers any) []model.PricingTier {
	var list []any
	switch v := offers.(type) {
	case []any:
		list = v
	case map[string]any:
		list = []any{v}
	default:
		return nil
	}

	var out []model.PricingTier
	for _, item := range list {
		offer, ok := item.(map[string]any)
		if !ok {
			continue
		}
		price := numericString(offer["price"])
		if price == "" {
			continue
		}
		name := strings.TrimSpace(stringField(offer, "name"))
		if name == "" {
			name = "General Admission"
		}
		out = append(out, model.PricingTier{Name: name, Price: normalizePrice(price)})
	}
	return out
}

func lineupFromPerformers(performer any) []model.Artist {
	var list []any
	switch v := performer.(type) {
	case []any:
		list = v
	case map[string]any:
		list = []any{v}
	default:
		return nil
	}

	var out []model.Artist
	for _, item := range list {
		node, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name := strings.TrimSpace(stringField(node, "name"))
		if name == "" {
			continue
		}
		out = append(out, model.Artist{Name: name, Rank: len(out) + 1})
	}
	return out
}

func stringField(node map[string]any, key string) string {
	s, _ := node[key].(string)
	return s
}

// numericString accepts JSON numbers and strings for price fields.
func numericString(v any) string {
	switch n := v.(type) {
	case string:
		return strings.TrimSpace(n)
	case float64:
		return trimFloat(n)
	}
	return ""
}
