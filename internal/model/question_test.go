package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want QuestionType
	}{
		{"text", TypeText},
		{"textarea", TypeTextarea},
		{"single-select", TypeSingleSelect},
		{"Single-select", TypeSingleSelect},
		{"single_select", TypeSingleSelect},
		{"singleselect", TypeSingleSelect},
		{"multi-select", TypeMultiSelect},
		{"MULTI_SELECT", TypeMultiSelect},
		{"likert", TypeLikert},
		{"  likert  ", TypeLikert},
		{"dropdown", TypeText},
		{"", TypeText},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CoerceType(tc.raw), "raw %q", tc.raw)
	}
}

func TestRequiresOptions(t *testing.T) {
	t.Parallel()

	assert.True(t, TypeSingleSelect.RequiresOptions())
	assert.True(t, TypeMultiSelect.RequiresOptions())
	assert.True(t, TypeLikert.RequiresOptions())
	assert.False(t, TypeText.RequiresOptions())
	assert.False(t, TypeTextarea.RequiresOptions())
}

func TestFlattenSections(t *testing.T) {
	t.Parallel()

	t.Run("preserves section order", func(t *testing.T) {
		t.Parallel()
		sections := []Section{
			{Name: "Experience", Questions: []Question{
				{Text: "How was the sound?", Type: TypeLikert},
				{Text: "Which sets did you catch?", Type: TypeMultiSelect},
			}},
			{Name: "Logistics", Questions: []Question{
				{Text: "How did you get to the venue?", Type: TypeSingleSelect},
			}},
		}

		flat := FlattenSections(sections)
		assert.Len(t, flat, 3)
		assert.Equal(t, "How was the sound?", flat[0].Text)
		assert.Equal(t, "How did you get to the venue?", flat[2].Text)
	})

	t.Run("empty sections yield nil", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, FlattenSections(nil))
		assert.Nil(t, FlattenSections([]Section{{Name: "Empty"}}))
	})
}

func TestLikertScale(t *testing.T) {
	t.Parallel()

	assert.Len(t, LikertScale, 5)
	assert.Equal(t, "Strongly Disagree", LikertScale[0])
	assert.Equal(t, "Strongly Agree", LikertScale[4])
}
