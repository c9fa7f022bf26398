package survey

import (
	"testing"

	"github.com/panorama-labs/survey-engine/internal/model"
	"github.com/panorama-labs/survey-engine/internal/rules"
	"github.com/panorama-labs/survey-engine/internal/universal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNormalizer() *Normalizer {
	return NewNormalizer(rules.NewForbiddenPatternEngine(rules.Defaults(rules.PhasePlan).ForbiddenPatterns))
}

func TestNormalize_Drops(t *testing.T) {
	t.Parallel()

	n := testNormalizer()

	got := n.Normalize([]model.Question{
		{Text: "   "},
		{Text: "email address"}, // demographic keyword
		{Text: "Where do you currently live?", Type: model.TypeText}, // universal duplicate
		{Text: "How likely are you to recommend this event?", Type: model.TypeLikert, Options: []string{"a"}},
		{Text: "Which artists would you like to see on the lineup?", Type: model.TypeText},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Which artists would you like to see on the lineup?", got[0].Text)
	assert.Equal(t, 0, got[0].Order)
}

func TestNormalize_TypeCoercion(t *testing.T) {
	t.Parallel()

	n := testNormalizer()

	got := n.Normalize([]model.Question{
		{Text: "Which tier suits you best?", Type: "Single-select", Options: []string{"GA", "VIP"}},
		{Text: "Describe your ideal festival day", Type: "essay"},
		{Text: "Pick your favorite genres", Type: model.TypeMultiSelect}, // options missing
		{Text: "The venue choice matters to me", Type: "Likert", Options: []string{"meh", "sure"}},
		{Text: "Anything else?", Type: model.TypeText, Options: []string{"spurious"}},
	})

	require.Len(t, got, 5)

	assert.Equal(t, model.TypeSingleSelect, got[0].Type)
	assert.Equal(t, []string{"GA", "VIP"}, got[0].Options)

	// Unknown type falls back to text.
	assert.Equal(t, model.TypeText, got[1].Type)

	// Option-requiring type without options demotes to text.
	assert.Equal(t, model.TypeText, got[2].Type)
	assert.Nil(t, got[2].Options)

	// Likert options forced to the canonical scale.
	assert.Equal(t, model.LikertScale, got[3].Options)

	// Text never carries options.
	assert.Nil(t, got[4].Options)

	for i, q := range got {
		assert.Equal(t, i, q.Order)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	n := testNormalizer()

	input := []model.Question{
		{Text: "Which tier suits you best?", Type: "Single-select", Options: []string{"GA", "VIP"}},
		{Text: "", Type: model.TypeText},
		{Text: "The lineup matters to me", Type: "Likert", Options: []string{"wrong", "scale"}},
		{Text: "What would make this a great day out?", Type: "textarea"},
	}

	once := n.Normalize(input)
	twice := n.Normalize(once)
	assert.Equal(t, once, twice)
}

func TestNormalize_NoUniversalLeakage(t *testing.T) {
	t.Parallel()

	n := testNormalizer()

	var candidates []model.Question
	for _, text := range universal.Texts() {
		candidates = append(candidates, model.Question{Text: text, Type: model.TypeText})
	}
	assert.Empty(t, n.Normalize(candidates))
}
