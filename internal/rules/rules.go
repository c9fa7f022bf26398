// Package rules holds the generation constraints and forbidden pattern
// engine that keep surveys phase-appropriate.
package rules

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Phase identifies which stage of the event lifecycle a survey targets.
type Phase string

const (
	PhasePlan     Phase = "plan"
	PhasePulse    Phase = "pulse"
	PhasePlayback Phase = "playback"
)

// Valid reports whether p names a known phase.
func (p Phase) Valid() bool {
	switch p {
	case PhasePlan, PhasePulse, PhasePlayback:
		return true
	}
	return false
}

// Constraints bound the size and shape of a generated question set.
type Constraints struct {
	MinQuestions     int `yaml:"min_questions"`
	MaxQuestions     int `yaml:"max_questions"`
	MustHaveWeight   int `yaml:"must_have_weight"`
	InterestedWeight int `yaml:"interested_weight"`
	MaxMustHaveGoals int `yaml:"max_must_have_goals"`
}

// Rules is the full rule set for one phase: sizing constraints, question
// categories the generator may draw from, and text patterns it must avoid.
type Rules struct {
	Phase             Phase       `yaml:"phase"`
	Constraints       Constraints `yaml:"constraints"`
	AllowedCategories []string    `yaml:"allowed_categories"`
	ForbiddenPatterns []string    `yaml:"forbidden_patterns"`
}

// preEventForbidden lists satisfaction and feedback phrasings that only make
// sense after an event has happened. Matching is case-insensitive substring,
// so a pattern like "would you recommend" also blocks questions that embed
// the phrase mid-sentence.
var preEventForbidden = []string{
	"how likely are you to recommend",
	"would you recommend",
	"net promoter",
	"how satisfied were you",
	"how satisfied are you with",
	"rate your satisfaction",
	"overall satisfaction",
	"what did you like most",
	"what did you like least",
	"what did you enjoy",
	"what could be improved",
	"what would you change",
	"what was the highlight",
	"what was your favorite",
	"what disappointed you",
	"how was your experience",
	"how would you rate the event",
	"did the event meet your expectations",
	"was the event worth",
}

var preEventCategories = []string{
	"motivation",
	"expectations",
	"preferences",
	"planning",
	"spending_intent",
	"social_context",
	"discovery",
	"demographics_extended",
}

// Defaults returns the built-in rule set for a phase.
func Defaults(phase Phase) Rules {
	switch phase {
	case PhasePulse:
		return Rules{
			Phase: PhasePulse,
			Constraints: Constraints{
				MinQuestions:     3,
				MaxQuestions:     7,
				MustHaveWeight:   1,
				InterestedWeight: 1,
				MaxMustHaveGoals: 3,
			},
			AllowedCategories: []string{"live_experience", "logistics", "realtime_need"},
			ForbiddenPatterns: []string{"net promoter", "would you recommend"},
		}
	case PhasePlayback:
		return Rules{
			Phase: PhasePlayback,
			Constraints: Constraints{
				MinQuestions:     10,
				MaxQuestions:     25,
				MustHaveWeight:   4,
				InterestedWeight: 2,
				MaxMustHaveGoals: 3,
			},
			AllowedCategories: []string{"satisfaction", "highlights", "improvement", "loyalty"},
		}
	default:
		return Rules{
			Phase: PhasePlan,
			Constraints: Constraints{
				MinQuestions:     10,
				MaxQuestions:     25,
				MustHaveWeight:   4,
				InterestedWeight: 2,
				MaxMustHaveGoals: 3,
			},
			AllowedCategories: preEventCategories,
			ForbiddenPatterns: preEventForbidden,
		}
	}
}

// Load returns the rules for phase, applying overrides from the YAML file at
// path when it is non-empty. Missing override fields keep their defaults.
func Load(phase Phase, path string) (Rules, error) {
	r := Defaults(phase)
	if path == "" {
		return r, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, eris.Wrap(err, "rules: read override file")
	}

	var override struct {
		Constraints       *Constraints `yaml:"constraints"`
		AllowedCategories []string     `yaml:"allowed_categories"`
		ForbiddenPatterns []string     `yaml:"forbidden_patterns"`
		ExtraForbidden    []string     `yaml:"extra_forbidden"`
	}
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Rules{}, eris.Wrap(err, "rules: parse override file")
	}

	if override.Constraints != nil {
		c := *override.Constraints
		if c.MinQuestions > 0 {
			r.Constraints.MinQuestions = c.MinQuestions
		}
		if c.MaxQuestions > 0 {
			r.Constraints.MaxQuestions = c.MaxQuestions
		}
		if c.MustHaveWeight > 0 {
			r.Constraints.MustHaveWeight = c.MustHaveWeight
		}
		if c.InterestedWeight > 0 {
			r.Constraints.InterestedWeight = c.InterestedWeight
		}
		if c.MaxMustHaveGoals > 0 {
			r.Constraints.MaxMustHaveGoals = c.MaxMustHaveGoals
		}
	}
	if len(override.AllowedCategories) > 0 {
		r.AllowedCategories = override.AllowedCategories
	}
	if len(override.ForbiddenPatterns) > 0 {
		r.ForbiddenPatterns = override.ForbiddenPatterns
	}
	r.ForbiddenPatterns = append(r.ForbiddenPatterns, override.ExtraForbidden...)

	if r.Constraints.MinQuestions > r.Constraints.MaxQuestions {
		return Rules{}, eris.Errorf("rules: min_questions %d exceeds max_questions %d",
			r.Constraints.MinQuestions, r.Constraints.MaxQuestions)
	}

	return r, nil
}

// ClampTarget bounds a computed question target to the configured range.
func (c Constraints) ClampTarget(n int) int {
	if n < c.MinQuestions {
		return c.MinQuestions
	}
	if n > c.MaxQuestions {
		return c.MaxQuestions
	}
	return n
}

// TargetCount computes the question target from goal bucket sizes:
// each must-have goal earns MustHaveWeight questions and each interested
// goal earns InterestedWeight, clamped to the configured range.
func (c Constraints) TargetCount(mustHave, interested int) int {
	return c.ClampTarget(mustHave*c.MustHaveWeight + interested*c.InterestedWeight)
}
