package extract

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/panorama-labs/survey-engine/internal/config"
	"github.com/panorama-labs/survey-engine/internal/model"
)

// Extractor runs the per-URL extraction pipeline. Internal failures degrade
// to an empty record with a warning; FromURL never returns an error once
// the URL itself has passed normalization.
type Extractor struct {
	fetcher *Fetcher
	llm     *LLMExtractor
	cfg     config.ExtractConfig
}

func NewExtractor(fetcher *Fetcher, llm *LLMExtractor, cfg config.ExtractConfig) *Extractor {
	return &Extractor{fetcher: fetcher, llm: llm, cfg: cfg}
}

// FromURL extracts event data from a single URL.
func (e *Extractor) FromURL(ctx context.Context, rawURL string) (model.ExtractedEventData, error) {
	pageURL, err := NormalizeURL(rawURL)
	if err != nil {
		return model.ExtractedEventData{}, err
	}

	page, err := e.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		zap.L().Warn("extraction fetch failed", zap.String("url", pageURL), zap.Error(err))
		return model.ExtractedEventData{SourceURL: pageURL}, nil
	}

	static := ParseJSONLD(page.HTML)
	if !static.HasData() {
		static = ParseAppState(page.HTML)
	} else if appState := ParseAppState(page.HTML); appState.HasData() {
		fillMissing(&static, appState)
	}

	content := CleanHTML(page.HTML, e.cfg.MaxContentChars)
	if strings.TrimSpace(content) == "" && page.Markdown != "" {
		content = capContent(page.Markdown, e.cfg.MaxContentChars)
	}

	var fromLLM model.ExtractedEventData
	if e.llm != nil {
		fromLLM, err = e.llm.Extract(ctx, pageURL, content)
		if err != nil {
			zap.L().Warn("llm extraction failed, using static data only",
				zap.String("url", pageURL), zap.Error(err))
		}
	}

	merged := mergeStaticAndLLM(static, fromLLM)
	merged.SourceURL = pageURL

	if len(merged.PricingTiers) == 0 {
		if tiers := SweepPricing(content); len(tiers) > 0 {
			zap.L().Debug("pricing recovered by regex sweep",
				zap.String("url", pageURL), zap.Int("tiers", len(tiers)))
			merged.PricingTiers = tiers
		}
	}

	if !merged.HasData() {
		zap.L().Warn("no event data extracted", zap.String("url", pageURL))
	}
	return merged, nil
}

// mergeStaticAndLLM folds the two extraction passes into one record.
// Venue and pricing trust static structured data when present; description
// trusts the LLM; lineup is the union with LLM ordering first, deduplicated
// case-insensitively.
func mergeStaticAndLLM(static, llm model.ExtractedEventData) model.ExtractedEventData {
	out := model.ExtractedEventData{}

	out.Venue = static.Venue
	if out.Venue == "" {
		out.Venue = llm.Venue
	}

	out.PricingTiers = static.PricingTiers
	if len(out.PricingTiers) == 0 {
		out.PricingTiers = llm.PricingTiers
	}

	out.Description = llm.Description
	if out.Description == "" {
		out.Description = static.Description
	}

	out.Lineup = unionLineup(llm.Lineup, static.Lineup)

	out.VIP = llm.VIP
	if !out.VIP.Enabled && static.VIP.Enabled {
		out.VIP = static.VIP
	}
	return out
}

func unionLineup(first, second []model.Artist) []model.Artist {
	seen := make(map[string]bool)
	var out []model.Artist
	for _, list := range [][]model.Artist{first, second} {
		for _, artist := range list {
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

// fillMissing copies fields from src into dst where dst has none.
func fillMissing(dst *model.ExtractedEventData, src model.ExtractedEventData) {
	if dst.Description == "" {
		dst.Description = src.Description
	}
	if dst.Venue == "" {
		dst.Venue = src.Venue
	}
	if len(dst.Lineup) == 0 {
		dst.Lineup = src.Lineup
	}
	if len(dst.PricingTiers) == 0 {
		dst.PricingTiers = src.PricingTiers
	}
	if !dst.VIP.Enabled && src.VIP.Enabled {
		dst.VIP = src.VIP
	}
}

func capContent(s string, maxChars int) string {
	if maxChars > 0 && len(s) > maxChars {
		return s[:maxChars]
	}
	return s
}
