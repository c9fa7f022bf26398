package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	t.Run("plan", func(t *testing.T) {
		r := Defaults(PhasePlan)
		assert.Equal(t, 10, r.Constraints.MinQuestions)
		assert.Equal(t, 25, r.Constraints.MaxQuestions)
		assert.Equal(t, 4, r.Constraints.MustHaveWeight)
		assert.Equal(t, 2, r.Constraints.InterestedWeight)
		assert.Contains(t, r.ForbiddenPatterns, "net promoter")
		assert.Contains(t, r.AllowedCategories, "motivation")
	})

	t.Run("pulse", func(t *testing.T) {
		r := Defaults(PhasePulse)
		assert.Equal(t, 3, r.Constraints.MinQuestions)
		assert.Equal(t, 7, r.Constraints.MaxQuestions)
	})

	t.Run("playback allows satisfaction questions", func(t *testing.T) {
		r := Defaults(PhasePlayback)
		assert.Empty(t, r.ForbiddenPatterns)
		assert.Contains(t, r.AllowedCategories, "satisfaction")
	})
}

func TestTargetCount(t *testing.T) {
	t.Parallel()

	c := Defaults(PhasePlan).Constraints

	// 3 must-have + 2 interested = 12+4 = 16
	assert.Equal(t, 16, c.TargetCount(3, 2))
	// Below minimum clamps up.
	assert.Equal(t, 10, c.TargetCount(1, 1))
	// Above maximum clamps down.
	assert.Equal(t, 25, c.TargetCount(6, 5))
	// No goals at all still produces the minimum.
	assert.Equal(t, 10, c.TargetCount(0, 0))
}

func TestLoadOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
constraints:
  max_questions: 20
extra_forbidden:
  - "thoughts on our sponsors"
`), 0o644))

	r, err := Load(PhasePlan, path)
	require.NoError(t, err)
	assert.Equal(t, 20, r.Constraints.MaxQuestions)
	assert.Equal(t, 10, r.Constraints.MinQuestions)
	assert.Contains(t, r.ForbiddenPatterns, "thoughts on our sponsors")
	assert.Contains(t, r.ForbiddenPatterns, "net promoter")
}

func TestLoadOverride_InvalidRange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
constraints:
  min_questions: 30
`), 0o644))

	_, err := Load(PhasePlan, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_questions")
}

func TestForbiddenPatternEngine(t *testing.T) {
	t.Parallel()

	engine := NewForbiddenPatternEngine(Defaults(PhasePlan).ForbiddenPatterns)

	tests := []struct {
		name    string
		text    string
		blocked bool
	}{
		{"nps phrasing", "How likely are you to recommend this event to a friend?", true},
		{"case insensitive", "WOULD YOU RECOMMEND us?", true},
		{"embedded mid sentence", "After the show, what was the highlight for you?", true},
		{"forward looking question", "What are you most excited to see at Neon Nights?", false},
		{"empty text", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.blocked, engine.Forbidden(tt.text))
		})
	}

	pattern, ok := engine.Match("Rate your satisfaction with parking")
	assert.True(t, ok)
	assert.Equal(t, "rate your satisfaction", pattern)
}
