package bank

import (
	"strings"
	"testing"

	"github.com/panorama-labs/survey-engine/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogShape(t *testing.T) {
	t.Parallel()

	all := All()
	assert.Len(t, all, 17)

	required := RequiredEntries()
	require.Len(t, required, 2)
	assert.Equal(t, "req_accessibility", required[0].ID)
	assert.Equal(t, "req_catch_all", required[1].ID)

	ids := map[string]bool{}
	for _, e := range all {
		assert.False(t, ids[e.ID], "duplicate id %s", e.ID)
		ids[e.ID] = true
		assert.Contains(t, Categories, e.Category)
		if e.Type.RequiresOptions() {
			assert.NotEmpty(t, e.Options, "%s needs options", e.ID)
		}
	}
}

func TestByCategory(t *testing.T) {
	t.Parallel()

	pricing := ByCategory("pricing")
	require.Len(t, pricing, 2)
	for _, e := range pricing {
		assert.Equal(t, "pricing", e.Category)
	}

	assert.Empty(t, ByCategory("nonexistent"))
}

func TestRender(t *testing.T) {
	t.Parallel()

	entry := ByCategory("expectations")[1]
	q := entry.Render("Neon Nights")

	assert.Equal(t, "What are you most hoping to experience at Neon Nights?", q.Text)
	assert.Equal(t, model.TypeMultiSelect, q.Type)
	assert.NotContains(t, q.Text, "{event_name}")

	// Rendering must not alias the catalog's option slice.
	q.Options[0] = "mutated"
	assert.Equal(t, "Live music performances", ByCategory("expectations")[1].Options[0])
}

func TestFormatForPrompt(t *testing.T) {
	t.Parallel()

	out := FormatForPrompt(ByCategory("pricing"), "Neon Nights")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[pricing]")
	assert.Contains(t, lines[0], "What price range would you consider reasonable for Neon Nights?")
	assert.Contains(t, lines[0], "Options: Under $50")
}

func TestMerged(t *testing.T) {
	t.Parallel()

	extra := []Entry{
		{ID: "notion_1", Template: "What merch would you buy at {event_name}?", Type: model.TypeTextarea, Category: "preferences"},
		// Duplicates a static template, differing only in case.
		{ID: "notion_2", Template: "WHAT IS YOUR PREFERRED EVENT FORMAT?", Type: model.TypeText, Category: "preferences"},
	}

	merged := Merged(extra)
	assert.Len(t, merged, 18)
	assert.Equal(t, "notion_1", merged[17].ID)
}
