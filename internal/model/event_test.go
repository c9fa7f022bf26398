package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractedEventDataHasData(t *testing.T) {
	t.Parallel()

	assert.False(t, ExtractedEventData{}.HasData())
	assert.False(t, ExtractedEventData{SourceURL: "https://example.com/event"}.HasData(),
		"source URL alone is not content")

	assert.True(t, ExtractedEventData{Description: "A night of live music."}.HasData())
	assert.True(t, ExtractedEventData{Venue: "Riverside Park"}.HasData())
	assert.True(t, ExtractedEventData{Lineup: []Artist{{Name: "The Headliners", Rank: 1}}}.HasData())
	assert.True(t, ExtractedEventData{PricingTiers: []PricingTier{{Name: "GA", Price: "$89.00"}}}.HasData())
	assert.True(t, ExtractedEventData{VIP: VIPInfo{Enabled: true}}.HasData())
}

func TestGoalBucketsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, GoalBuckets{}.Empty())
	assert.False(t, GoalBuckets{MustHave: []string{"lineup_perception"}}.Empty())
	assert.False(t, GoalBuckets{Interested: []string{"pricing_perception"}}.Empty())
	assert.False(t, GoalBuckets{NotImportant: []string{"logistics_planning"}}.Empty())
}
