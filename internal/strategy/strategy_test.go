package strategy

import (
	"strings"
	"testing"

	"github.com/panorama-labs/survey-engine/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFacts() Facts {
	return FactsFrom("Neon Nights", "14 March 2026", model.ExtractedEventData{
		Venue: "The Warehouse",
		Lineup: []model.Artist{
			{Name: "Mallrat", Rank: 1},
			{Name: "Flight Facilities", Rank: 2},
		},
		PricingTiers: []model.PricingTier{
			{Name: "GA", Price: "$59.00"},
			{Name: "VIP", Price: "$129.00"},
		},
		VIP: model.VIPInfo{
			Enabled:  true,
			Included: []string{"Priority entry", "Lounge access"},
		},
	}, []string{"Sparkling Co"})
}

func TestGoalIDs(t *testing.T) {
	t.Parallel()

	ids := GoalIDs()
	assert.Len(t, ids, 7)
	assert.Contains(t, ids, "pricing_perception")
	assert.Contains(t, ids, "accessibility_needs")
}

func TestApplicable(t *testing.T) {
	t.Parallel()

	t.Run("data-backed strategies come first", func(t *testing.T) {
		got := Applicable("lineup_perception", map[string]bool{"lineup": true}, 4)
		require.Len(t, got, 4)
		assert.Equal(t, "artist_excitement", got[0].ID)
	})

	t.Run("no data still fills quota", func(t *testing.T) {
		got := Applicable("pricing_perception", nil, 2)
		require.Len(t, got, 2)
		for _, s := range got {
			assert.Empty(t, s.RequiresData)
		}
	})

	t.Run("unknown goal", func(t *testing.T) {
		assert.Nil(t, Applicable("mystery_goal", nil, 4))
	})
}

func TestFactsFrom(t *testing.T) {
	t.Parallel()

	f := sampleFacts()
	assert.Equal(t, "Mallrat", f.Headliner)
	assert.Equal(t, []string{"GA - $59.00", "VIP - $129.00"}, f.PricingTiers)

	avail := f.Available()
	assert.True(t, avail["lineup"])
	assert.True(t, avail["vip_info"])
	assert.True(t, avail["bar_partners"])
}

func TestFactsFromPricingLabels(t *testing.T) {
	t.Parallel()

	f := FactsFrom("Neon Nights", "", model.ExtractedEventData{
		PricingTiers: []model.PricingTier{
			{Name: "GA", Price: "$59.00"},
			{Name: "Door sale"},
		},
	}, nil)

	// The extractor emits prices with their currency symbol already attached.
	assert.Equal(t, []string{"GA - $59.00", "Door sale"}, f.PricingTiers)
	for _, label := range f.PricingTiers {
		assert.NotContains(t, label, "$$")
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	facts := sampleFacts()

	t.Run("text and option tokens", func(t *testing.T) {
		q := model.Question{
			Text:    "Which artists are you most excited to see at {{EVENT_NAME}}?",
			Type:    model.TypeMultiSelect,
			Options: []string{TokenLineup, "All equally excited", "Other"},
		}
		got, ok := Resolve(q, facts)
		require.True(t, ok)
		assert.Equal(t, "Which artists are you most excited to see at Neon Nights?", got.Text)
		assert.Equal(t, []string{"Mallrat", "Flight Facilities", "All equally excited", "Other"}, got.Options)
	})

	t.Run("vip perks joined into text", func(t *testing.T) {
		q := model.Question{
			Text: "VIP tickets for {{EVENT_NAME}} include {{VIP_PERKS}}. How appealing is this to you?",
			Type: model.TypeLikert,
		}
		got, ok := Resolve(q, facts)
		require.True(t, ok)
		assert.Contains(t, got.Text, "Priority entry, Lounge access")
	})

	t.Run("missing data drops the question", func(t *testing.T) {
		q := model.Question{
			Text:    "Which ticket option best fits your needs for {{EVENT_NAME}}?",
			Options: []string{TokenPricingTiers},
		}
		_, ok := Resolve(q, Facts{EventName: "Neon Nights"})
		assert.False(t, ok)
	})

	t.Run("leftover marker drops the question", func(t *testing.T) {
		q := model.Question{Text: "How much will {{MYSTERY_TOKEN}} cost?"}
		_, ok := Resolve(q, facts)
		assert.False(t, ok)
	})
}

func TestResolveAll(t *testing.T) {
	t.Parallel()

	qs := []model.Question{
		{Text: "How excited are you about attending {{EVENT_NAME}}?"},
		{Text: "How much did {{HEADLINER}} influence you?"},
	}
	got := ResolveAll(qs, Facts{EventName: "Neon Nights"})
	require.Len(t, got, 1)
	assert.Equal(t, "How excited are you about attending Neon Nights?", got[0].Text)
}

func TestFormatForPrompt(t *testing.T) {
	t.Parallel()

	facts := sampleFacts()
	selected := map[string][]Strategy{
		"lineup_perception":       Applicable("lineup_perception", facts.Available(), 4),
		"marketing_effectiveness": Applicable("marketing_effectiveness", facts.Available(), 2),
	}

	out := FormatForPrompt(selected, facts, []string{"lineup_perception"}, []string{"marketing_effectiveness"}, 4, 2)

	assert.Contains(t, out, "MUST HAVE GOALS (generate 4 questions per goal)")
	assert.Contains(t, out, "### GOAL: Lineup Perception")
	assert.Contains(t, out, "INTERESTED TO KNOW (generate 2 questions per goal)")
	assert.Contains(t, out, "HEADLINER: Mallrat")
	assert.Contains(t, out, "VENUE: The Warehouse")
	// Interested bucket lists at most two strategies.
	assert.Equal(t, 2, strings.Count(out, "PURPOSE:")-4)
}

func TestGoalLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Pricing Perception", GoalLabel("pricing_perception"))
}
