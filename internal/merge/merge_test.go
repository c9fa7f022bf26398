package merge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panorama-labs/survey-engine/internal/config"
	"github.com/panorama-labs/survey-engine/internal/model"
	"github.com/panorama-labs/survey-engine/pkg/anthropic"
)

type fakeLLM struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeLLM) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.calls++
	if len(req.Messages) > 0 {
		f.prompts = append(f.prompts, req.Messages[0].Content)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: f.response}},
	}, nil
}

func testMergeConfig() config.MergeConfig {
	return config.MergeConfig{
		SimilarityThreshold:  0.8,
		DescriptionMinLength: 300,
		CacheTTLMinutes:      60,
	}
}

func longDescription(lead string) string {
	out := lead
	for len(out) < 300 {
		out += " More detail about the event, the site, and what to expect on the day."
	}
	return out
}

func TestMergeSingleSourcePassesThrough(t *testing.T) {
	t.Parallel()

	src := model.ExtractedEventData{Venue: "Town Hall", Description: "short"}
	got := NewMerger(nil, "", testMergeConfig()).Merge(context.Background(), []model.ExtractedEventData{src})
	assert.Equal(t, src, got)
}

func TestMergeEmptyInput(t *testing.T) {
	t.Parallel()

	got := NewMerger(nil, "", testMergeConfig()).Merge(context.Background(), nil)
	assert.False(t, got.HasData())
}

func TestMergeVenuePrefersLastSource(t *testing.T) {
	t.Parallel()

	got := NewMerger(nil, "", testMergeConfig()).Merge(context.Background(), []model.ExtractedEventData{
		{Venue: "Marketing Page Venue"},
		{Venue: "Ticketing Page Venue"},
	})
	assert.Equal(t, "Ticketing Page Venue", got.Venue)

	t.Run("skips empty trailing venue", func(t *testing.T) {
		got := NewMerger(nil, "", testMergeConfig()).Merge(context.Background(), []model.ExtractedEventData{
			{Venue: "Only Venue"},
			{Description: "x", Venue: ""},
		})
		assert.Equal(t, "Only Venue", got.Venue)
	})
}

func TestMergeLineupUnionKeepsRanksAndOrder(t *testing.T) {
	t.Parallel()

	got := NewMerger(nil, "", testMergeConfig()).Merge(context.Background(), []model.ExtractedEventData{
		{Lineup: []model.Artist{{Name: "Headliner", Rank: 1}, {Name: "Support", Rank: 2}}},
		{Lineup: []model.Artist{{Name: "HEADLINER", Rank: 3}, {Name: "Local Opener", Rank: 4}}},
	})

	require.Len(t, got.Lineup, 3)
	assert.Equal(t, model.Artist{Name: "Headliner", Rank: 1}, got.Lineup[0])
	assert.Equal(t, model.Artist{Name: "Support", Rank: 2}, got.Lineup[1])
	assert.Equal(t, model.Artist{Name: "Local Opener", Rank: 4}, got.Lineup[2])
}

func TestMergePricingTiers(t *testing.T) {
	t.Parallel()

	t.Run("near-duplicate names collapse, ticketing source wins front position", func(t *testing.T) {
		got := NewMerger(nil, "", testMergeConfig()).Merge(context.Background(), []model.ExtractedEventData{
			{PricingTiers: []model.PricingTier{{Name: "Early Bird", Price: "$49.00"}}},
			{PricingTiers: []model.PricingTier{{Name: "Earlybird", Price: "$55.00"}, {Name: "VIP", Price: "$150.00"}}},
		})

		require.Len(t, got.PricingTiers, 2)
		assert.Equal(t, "Earlybird", got.PricingTiers[0].Name)
		assert.Equal(t, "$55.00", got.PricingTiers[0].Price)
		assert.Equal(t, "VIP", got.PricingTiers[1].Name)
	})

	t.Run("distinct names survive", func(t *testing.T) {
		got := NewMerger(nil, "", testMergeConfig()).Merge(context.Background(), []model.ExtractedEventData{
			{PricingTiers: []model.PricingTier{{Name: "General Admission", Price: "$89.00"}}},
			{PricingTiers: []model.PricingTier{{Name: "VIP", Price: "$199.00"}}},
		})
		require.Len(t, got.PricingTiers, 2)
		assert.Equal(t, "VIP", got.PricingTiers[0].Name, "later source leads the merged order")
	})
}

func TestMergeDescriptions(t *testing.T) {
	t.Parallel()

	t.Run("llm picks among long candidates", func(t *testing.T) {
		a := longDescription("A waterfront festival with two stages.")
		b := longDescription("Cookies policy and terms of service for the platform.")
		llm := &fakeLLM{response: "1"}

		got := NewMerger(llm, "claude-haiku-test", testMergeConfig()).Merge(context.Background(), []model.ExtractedEventData{
			{Description: a}, {Description: b},
		})
		assert.Equal(t, a, got.Description)
		assert.Equal(t, 1, llm.calls)
		assert.Contains(t, llm.prompts[0], "1. ")
	})

	t.Run("short descriptions discarded when a long one exists", func(t *testing.T) {
		long := longDescription("The real description of the festival.")
		llm := &fakeLLM{response: "2"}

		got := NewMerger(llm, "claude-haiku-test", testMergeConfig()).Merge(context.Background(), []model.ExtractedEventData{
			{Description: "Truncated meta tag..."},
			{Description: long},
		})
		assert.Equal(t, long, got.Description)
		assert.Zero(t, llm.calls, "single surviving candidate needs no pick call")
	})

	t.Run("all short falls back to comparing all", func(t *testing.T) {
		llm := &fakeLLM{err: assert.AnError}
		got := NewMerger(llm, "claude-haiku-test", testMergeConfig()).Merge(context.Background(), []model.ExtractedEventData{
			{Description: "short one"},
			{Description: "a slightly longer short description"},
		})
		assert.Equal(t, "a slightly longer short description", got.Description)
	})

	t.Run("garbage pick falls back to longest", func(t *testing.T) {
		a := longDescription("Candidate A.")
		b := longDescription("Candidate B with extra words making it the longest of the two.")
		llm := &fakeLLM{response: "definitely the first one"}

		got := NewMerger(llm, "claude-haiku-test", testMergeConfig()).Merge(context.Background(), []model.ExtractedEventData{
			{Description: a}, {Description: b},
		})
		assert.Equal(t, b, got.Description)
	})
}

func TestMergeVIP(t *testing.T) {
	t.Parallel()

	got := NewMerger(nil, "", testMergeConfig()).Merge(context.Background(), []model.ExtractedEventData{
		{VIP: model.VIPInfo{
			Enabled:  true,
			Tiers:    []model.PricingTier{{Name: "VIP Table", Price: "$500.00"}},
			Included: []string{"Priority entry"},
		}},
		{VIP: model.VIPInfo{
			Tiers:    []model.PricingTier{{Name: "Vip Table", Price: "$550.00"}},
			Included: []string{"priority entry", "Lounge access"},
		}},
	})

	assert.True(t, got.VIP.Enabled)
	require.Len(t, got.VIP.Tiers, 1)
	assert.Equal(t, "Vip Table", got.VIP.Tiers[0].Name)
	assert.Equal(t, []string{"Priority entry", "Lounge access"}, got.VIP.Included)
}
