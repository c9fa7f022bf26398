package universal

import (
	"testing"

	"github.com/panorama-labs/survey-engine/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSelect(t *testing.T) {
	t.Parallel()

	t.Run("contact questions always included", func(t *testing.T) {
		qs := Select(nil)
		assert.Len(t, qs, 3)
		assert.Equal(t, "First Name", qs[0].Text)
		assert.Equal(t, -10, qs[0].Order)
		assert.True(t, qs[0].Required)
		assert.Equal(t, "Email Address", qs[2].Text)
	})

	t.Run("optional questions follow flags", func(t *testing.T) {
		qs := Select(map[string]bool{KeyAgeBracket: true, KeyOccupation: true})
		assert.Len(t, qs, 5)

		age := qs[3]
		assert.Equal(t, "Age bracket", age.Text)
		assert.Equal(t, model.TypeSingleSelect, age.Type)
		assert.Equal(t, []string{"18-24", "25-34", "35-44", "45-54", "55-64", "65+"}, age.Options)
		assert.Equal(t, -4, age.Order)
	})

	t.Run("orders are all negative and ascending", func(t *testing.T) {
		qs := Select(map[string]bool{
			KeyPhone: true, KeyHomeBase: true, KeyCurrentLocation: true,
			KeyAgeBracket: true, KeyOccupation: true,
		})
		assert.Len(t, qs, 8)
		for i, q := range qs {
			assert.Negative(t, q.Order)
			if i > 0 {
				assert.Greater(t, q.Order, qs[i-1].Order)
			}
		}
	})
}

func TestTexts(t *testing.T) {
	t.Parallel()

	texts := Texts()
	assert.Len(t, texts, 8)
	assert.Contains(t, texts, "Where do you currently live?")
}

func TestIsDemographic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"email question", "What is your email address?", true},
		{"age phrasing", "Which age group do you belong to?", true},
		{"location phrasing", "Where do you live these days?", true},
		{"known false positive on name", "What is the name of the artist you most want to see?", true},
		{"known false positive on stage containing age", "Which stage are you most excited about?", true},
		{"clean question", "Which artists would you like to see on the lineup?", false},
		{"spending question", "How much do you plan to spend on merch?", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDemographic(tt.text))
		})
	}
}
