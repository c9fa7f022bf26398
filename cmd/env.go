package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/panorama-labs/survey-engine/internal/bank"
	"github.com/panorama-labs/survey-engine/internal/cache"
	"github.com/panorama-labs/survey-engine/internal/config"
	"github.com/panorama-labs/survey-engine/internal/extract"
	"github.com/panorama-labs/survey-engine/internal/merge"
	"github.com/panorama-labs/survey-engine/internal/rules"
	"github.com/panorama-labs/survey-engine/internal/store"
	"github.com/panorama-labs/survey-engine/internal/survey"
	anthropicpkg "github.com/panorama-labs/survey-engine/pkg/anthropic"
	"github.com/panorama-labs/survey-engine/pkg/firecrawl"
	"github.com/panorama-labs/survey-engine/pkg/jina"
)

// initStore opens the configured database backend and runs migrations.
func initStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	case "sqlite", "":
		st, err = store.NewSQLite(cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// initGenerator builds the survey question generator from config, loading
// phase rules (with optional YAML overrides) and the question bank.
func initGenerator() (*survey.Generator, error) {
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("SURVEY_ANTHROPIC_KEY is required")
	}

	phase := rules.Phase(cfg.Survey.Phase)
	r, err := rules.Load(phase, cfg.Survey.RulesFile)
	if err != nil {
		return nil, eris.Wrap(err, "load rules")
	}
	r = applySurveyBounds(r, cfg.Survey)

	llm := anthropicpkg.NewClient(cfg.Anthropic.Key)
	return survey.NewGenerator(llm, cfg.Anthropic.SonnetModel, r, bank.All()), nil
}

// applySurveyBounds overrides the rule sizing constraints with the
// primary-config bounds when they are set. Setting min and max to the same
// value pins the question count.
func applySurveyBounds(r rules.Rules, sc config.SurveyConfig) rules.Rules {
	if sc.MinQuestions > 0 {
		r.Constraints.MinQuestions = sc.MinQuestions
	}
	if sc.MaxQuestions > 0 {
		r.Constraints.MaxQuestions = sc.MaxQuestions
	}
	return r
}

// initExtraction builds the multi-URL extraction service. The Firecrawl and
// Jina clients are optional; without them JS-shell pages degrade to their
// plain-HTTP form.
func initExtraction(c cache.Cache) (*merge.Service, error) {
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("SURVEY_ANTHROPIC_KEY is required")
	}

	var render firecrawl.Client
	if cfg.Firecrawl.Key != "" {
		render = firecrawl.NewClient(cfg.Firecrawl.Key, firecrawl.WithBaseURL(cfg.Firecrawl.BaseURL))
	}
	var reader jina.Client
	if cfg.Jina.Key != "" {
		reader = jina.NewClient(cfg.Jina.Key, jina.WithBaseURL(cfg.Jina.BaseURL))
	}

	llm := anthropicpkg.NewClient(cfg.Anthropic.Key)
	fetcher := extract.NewFetcher(render, reader, cfg.Extract)
	extractor := extract.NewExtractor(fetcher, extract.NewLLMExtractor(llm, cfg.Anthropic.HaikuModel), cfg.Extract)
	merger := merge.NewMerger(llm, cfg.Anthropic.HaikuModel, cfg.Merge)
	return merge.NewService(extractor, merger, c, cfg.Merge, cfg.Extract), nil
}
