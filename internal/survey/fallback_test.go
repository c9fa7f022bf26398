package survey

import (
	"testing"

	"github.com/panorama-labs/survey-engine/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackQuestions_FullSet(t *testing.T) {
	t.Parallel()

	got := FallbackQuestions("Neon Nights", 25)
	require.Len(t, got, 25)

	assert.Equal(t, "How would you rate the overall energy and atmosphere of Neon Nights?", got[0].Text)
	for i, q := range got {
		assert.Equal(t, i, q.Order)
		assert.NotEmpty(t, q.Text)
		if q.Type == model.TypeLikert {
			assert.Equal(t, model.LikertScale, q.Options)
		}
	}
}

func TestFallbackQuestions_Truncated(t *testing.T) {
	t.Parallel()

	got := FallbackQuestions("Neon Nights", 10)
	require.Len(t, got, 10)

	// The required questions fill the set before any optional ones.
	for _, q := range got {
		assert.True(t, q.Required, "expected required question, got %q", q.Text)
	}
	for i, q := range got {
		assert.Equal(t, i, q.Order)
	}
}

func TestFallbackQuestions_Defaults(t *testing.T) {
	t.Parallel()

	got := FallbackQuestions("", 0)
	require.Len(t, got, 25)
	assert.Contains(t, got[0].Text, "this event")
}
