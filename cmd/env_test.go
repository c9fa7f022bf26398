package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/panorama-labs/survey-engine/internal/config"
	"github.com/panorama-labs/survey-engine/internal/rules"
)

func TestApplySurveyBounds(t *testing.T) {
	base := rules.Defaults(rules.PhasePlan)

	t.Run("zero config keeps rule defaults", func(t *testing.T) {
		got := applySurveyBounds(base, config.SurveyConfig{})
		assert.Equal(t, base.Constraints.MinQuestions, got.Constraints.MinQuestions)
		assert.Equal(t, base.Constraints.MaxQuestions, got.Constraints.MaxQuestions)
	})

	t.Run("config bounds override rule defaults", func(t *testing.T) {
		got := applySurveyBounds(base, config.SurveyConfig{MinQuestions: 12, MaxQuestions: 20})
		assert.Equal(t, 12, got.Constraints.MinQuestions)
		assert.Equal(t, 20, got.Constraints.MaxQuestions)
	})

	t.Run("fixed count mode pins the clamp", func(t *testing.T) {
		got := applySurveyBounds(base, config.SurveyConfig{MinQuestions: 25, MaxQuestions: 25})
		assert.Equal(t, 25, got.Constraints.ClampTarget(10))
		assert.Equal(t, 25, got.Constraints.ClampTarget(40))
	})
}
