package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/panorama-labs/survey-engine/internal/model"
)

// tierKeywordRe captures "<tier name> ... $<amount>" proximity matches in
// cleaned page text. Tier vocabulary covers the names ticketing platforms
// actually use for release waves.
var tierKeywordRe = regexp.MustCompile(`(?i)\b((?:super\s+)?early\s*bird|earlybird|first\s+release|second\s+release|third\s+release|final\s+release|general\s+admission|ga|vip|premium|platinum|gold|silver|group|student|concession)\b[^$]{0,80}\$\s*(\d{1,5}(?:\.\d{1,2})?)`)

// SweepPricing is the last-resort pricing pass over cleaned HTML text, used
// only when structured and LLM extraction both came back empty. Prices are
// normalized to two decimals and tiers deduplicated by lowercased name.
func SweepPricing(text string) []model.PricingTier {
	seen := make(map[string]bool)
	var out []model.PricingTier
	for _, match := range tierKeywordRe.FindAllStringSubmatch(text, -1) {
		name := canonicalTierName(match[1])
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, model.PricingTier{Name: name, Price: normalizePrice(match[2])})
	}
	return out
}

// canonicalTierName tidies the captured keyword into a display name.
func canonicalTierName(raw string) string {
	cleaned := strings.Join(strings.Fields(raw), " ")
	switch strings.ToLower(cleaned) {
	case "ga":
		return "GA"
	case "vip":
		return "VIP"
	case "earlybird", "early bird":
		return "Early Bird"
	}
	words := strings.Fields(cleaned)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// normalizePrice renders a numeric price string as "$N.NN". Inputs that do
// not parse as numbers are returned as-is.
func normalizePrice(raw string) string {
	cleaned := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return raw
	}
	return fmt.Sprintf("$%.2f", n)
}

func trimFloat(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
