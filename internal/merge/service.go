package merge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/panorama-labs/survey-engine/internal/cache"
	"github.com/panorama-labs/survey-engine/internal/config"
	"github.com/panorama-labs/survey-engine/internal/extract"
	"github.com/panorama-labs/survey-engine/internal/model"
)

// Service runs multi-URL extraction: companion-URL expansion, concurrent
// per-URL extraction, merge, and a TTL cache over the merged result.
type Service struct {
	extractor     *extract.Extractor
	merger        *Merger
	cache         cache.Cache
	cfg           config.MergeConfig
	maxConcurrent int
}

func NewService(extractor *extract.Extractor, merger *Merger, c cache.Cache, mergeCfg config.MergeConfig, extractCfg config.ExtractConfig) *Service {
	maxConcurrent := extractCfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}
	return &Service{
		extractor:     extractor,
		merger:        merger,
		cache:         c,
		cfg:           mergeCfg,
		maxConcurrent: maxConcurrent,
	}
}

// ExtractFromURL extracts event data from a single URL.
func (s *Service) ExtractFromURL(ctx context.Context, url string) (model.ExtractedEventData, error) {
	return s.extractor.FromURL(ctx, url)
}

// ExtractFromURLs extracts all URLs concurrently and merges the results.
// A URL that fails to fetch or parse contributes no data; the merged result
// is empty only when every source came up empty. URL order is preserved
// into the merge, which relies on ticketing pages being supplied last.
func (s *Service) ExtractFromURLs(ctx context.Context, urls []string) (model.ExtractedEventData, error) {
	if len(urls) == 0 {
		return model.ExtractedEventData{}, eris.New("merge: no urls supplied")
	}

	expanded := extract.ExpandCompanionURLs(urls)
	key := URLSetKey(expanded)

	if s.cache != nil {
		if hit, ok := s.cache.Get(key); ok {
			if data, ok := hit.(model.ExtractedEventData); ok {
				zap.L().Debug("extraction cache hit", zap.Int("urls", len(expanded)))
				return data, nil
			}
		}
	}

	results := make([]model.ExtractedEventData, len(expanded))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i, url := range expanded {
		g.Go(func() error {
			data, err := s.extractor.FromURL(gctx, url)
			if err != nil {
				zap.L().Warn("url skipped", zap.String("url", url), zap.Error(err))
				return nil // individual failures contribute no data
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.ExtractedEventData{}, eris.Wrap(err, "merge: extract urls")
	}

	var sources []model.ExtractedEventData
	for _, r := range results {
		if r.HasData() {
			sources = append(sources, r)
		}
	}

	merged := s.merger.Merge(ctx, sources)
	zap.L().Info("multi-source extraction complete",
		zap.Int("urls", len(expanded)),
		zap.Int("sources_with_data", len(sources)),
		zap.Bool("has_data", merged.HasData()),
	)

	if s.cache != nil {
		s.cache.Set(key, merged, s.cfg.CacheTTL())
	}
	return merged, nil
}

// URLSetKey hashes the sorted URL set so that the same URLs in any order
// share a cache entry.
func URLSetKey(urls []string) string {
	sorted := make([]string, len(urls))
	copy(sorted, urls)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, "\n")))
	return "extract:" + hex.EncodeToString(sum[:])
}
