// Package merge folds per-URL extraction results into one event record.
// The per-field rules encode which platforms to trust for which fields:
// ticketing pages come later in the caller's URL order and win venue and
// pricing; marketing pages tend to carry the better description.
package merge

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/agext/levenshtein"
	"go.uber.org/zap"

	"github.com/panorama-labs/survey-engine/internal/config"
	"github.com/panorama-labs/survey-engine/internal/model"
	"github.com/panorama-labs/survey-engine/pkg/anthropic"
)

const descriptionPickSystem = `You select the best event description from numbered candidates. Pick the one that is most specific to the event itself, avoiding legal text, cookie notices, and platform boilerplate. Respond with ONLY the number of the best candidate.`

const descriptionPickTemplate = `Candidate event descriptions:

%s
Respond with only the number of the most event-specific candidate.`

// Merger combines extraction results from multiple sources.
type Merger struct {
	llm   anthropic.Client
	model string
	cfg   config.MergeConfig
}

// NewMerger builds a Merger. llm may be nil; description selection then
// always falls back to the longest candidate.
func NewMerger(llm anthropic.Client, modelName string, cfg config.MergeConfig) *Merger {
	return &Merger{llm: llm, model: modelName, cfg: cfg}
}

// Merge folds sources into one record. Sources must be in the caller's URL
// order; empty sources should already be filtered out.
func (m *Merger) Merge(ctx context.Context, sources []model.ExtractedEventData) model.ExtractedEventData {
	switch len(sources) {
	case 0:
		return model.ExtractedEventData{}
	case 1:
		return sources[0]
	}

	return model.ExtractedEventData{
		Description:  m.mergeDescriptions(ctx, sources),
		Venue:        lastVenue(sources),
		Lineup:       mergeLineups(sources),
		PricingTiers: m.mergeTiers(collectTiers(sources)),
		VIP:          m.mergeVIP(sources),
	}
}

// mergeDescriptions drops candidates under the configured length threshold
// (truncated meta tags) unless all are short, then asks the LLM to pick the
// most event-specific one. Any failure falls back to the longest.
func (m *Merger) mergeDescriptions(ctx context.Context, sources []model.ExtractedEventData) string {
	var candidates []string
	for _, src := range sources {
		if d := strings.TrimSpace(src.Description); d != "" {
			candidates = append(candidates, d)
		}
	}
	switch len(candidates) {
	case 0:
		return ""
	case 1:
		return candidates[0]
	}

	var long []string
	for _, c := range candidates {
		if len(c) >= m.cfg.DescriptionMinLength {
			long = append(long, c)
		}
	}
	if len(long) > 0 {
		candidates = long
	}
	if len(candidates) == 1 {
		return candidates[0]
	}
	return m.pickDescription(ctx, candidates)
}

func (m *Merger) pickDescription(ctx context.Context, candidates []string) string {
	if m.llm == nil {
		return longest(candidates)
	}

	var b strings.Builder
	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. %s\n\n", i+1, c)
	}

	temp := 0.0
	resp, err := m.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       m.model,
		MaxTokens:   10,
		System:      anthropic.BuildCachedSystemBlocks(descriptionPickSystem),
		Messages:    []anthropic.Message{{Role: "user", Content: fmt.Sprintf(descriptionPickTemplate, b.String())}},
		Temperature: &temp,
	})
	if err != nil {
		zap.L().Warn("description pick call failed, using longest", zap.Error(err))
		return longest(candidates)
	}

	n, err := strconv.Atoi(strings.TrimSpace(resp.Text()))
	if err != nil || n < 1 || n > len(candidates) {
		zap.L().Warn("description pick unparseable, using longest",
			zap.String("response", resp.Text()))
		return longest(candidates)
	}
	return candidates[n-1]
}

func longest(candidates []string) string {
	best := ""
	for _, c := range candidates {
		if len(c) > len(best) {
			best = c
		}
	}
	return best
}

// lastVenue prefers the last source that reported a venue. Ticketing and
// reservation pages come later in the URL order and are more authoritative
// for venue than marketing pages.
func lastVenue(sources []model.ExtractedEventData) string {
	for i := len(sources) - 1; i >= 0; i-- {
		if v := strings.TrimSpace(sources[i].Venue); v != "" {
			return v
		}
	}
	return ""
}

// mergeLineups unions lineups in first-seen order, deduplicated
// case-insensitively by artist name. Ranks are kept as the source reported
// them, not renumbered.
func mergeLineups(sources []model.ExtractedEventData) []model.Artist {
	seen := make(map[string]bool)
	var out []model.Artist
	for _, src := range sources {
		for _, artist := range src.Lineup {
			key := strings.ToLower(strings.TrimSpace(artist.Name))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, artist)
		}
	}
	return out
}

func collectTiers(sources []model.ExtractedEventData) [][]model.PricingTier {
	out := make([][]model.PricingTier, len(sources))
	for i, src := range sources {
		out[i] = src.PricingTiers
	}
	return out
}

// mergeTiers walks sources in reverse order, keeping each tier whose name
// is not a near-duplicate of one already kept. Later (ticketing) sources
// are processed first, so their tiers lead the output and win "Early Bird"
// vs "Earlybird" style conflicts across sources.
func (m *Merger) mergeTiers(tiersBySource [][]model.PricingTier) []model.PricingTier {
	var merged []model.PricingTier
	for i := len(tiersBySource) - 1; i >= 0; i-- {
		for _, tier := range tiersBySource[i] {
			if m.hasSimilarTier(merged, tier.Name) {
				continue
			}
			merged = append(merged, tier)
		}
	}
	return merged
}

func (m *Merger) hasSimilarTier(tiers []model.PricingTier, name string) bool {
	for _, t := range tiers {
		if m.similar(t.Name, name) {
			return true
		}
	}
	return false
}

// similar reports whether two tier names are near-duplicates by normalized
// edit-distance ratio.
func (m *Merger) similar(a, b string) bool {
	ratio := levenshtein.Similarity(strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b)), nil)
	return ratio >= m.cfg.SimilarityThreshold
}

func (m *Merger) mergeVIP(sources []model.ExtractedEventData) model.VIPInfo {
	var out model.VIPInfo
	tiersBySource := make([][]model.PricingTier, len(sources))
	seenIncluded := make(map[string]bool)

	for i, src := range sources {
		if src.VIP.Enabled {
			out.Enabled = true
		}
		tiersBySource[i] = src.VIP.Tiers
		for _, item := range src.VIP.Included {
			key := strings.ToLower(strings.TrimSpace(item))
			if key == "" || seenIncluded[key] {
				continue
			}
			seenIncluded[key] = true
			out.Included = append(out.Included, item)
		}
	}
	out.Tiers = m.mergeTiers(tiersBySource)
	return out
}
