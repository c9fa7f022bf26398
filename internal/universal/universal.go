// Package universal holds the contact and demographic questions that are
// prepended to every survey. They carry negative order values so generated
// questions can always start at order 0.
package universal

import (
	"strings"

	"github.com/panorama-labs/survey-engine/internal/model"
)

// Keys for the universal question set, in presentation order.
const (
	KeyFirstName       = "first_name"
	KeyLastName        = "last_name"
	KeyEmail           = "email"
	KeyPhone           = "phone"
	KeyHomeBase        = "home_base"
	KeyCurrentLocation = "current_location"
	KeyAgeBracket      = "age_bracket"
	KeyOccupation      = "occupation"
)

var questions = map[string]model.Question{
	KeyFirstName: {
		Text:     "First Name",
		Type:     model.TypeText,
		Required: true,
		Order:    -10,
	},
	KeyLastName: {
		Text:     "Last Name",
		Type:     model.TypeText,
		Required: true,
		Order:    -9,
	},
	KeyEmail: {
		Text:     "Email Address",
		Type:     model.TypeText,
		Required: true,
		Order:    -8,
	},
	KeyPhone: {
		Text:     "Phone Number",
		Type:     model.TypeText,
		Required: false,
		Order:    -7,
	},
	KeyHomeBase: {
		Text:     "Where is your home base / where did you grow up?",
		Type:     model.TypeText,
		Required: false,
		Order:    -6,
	},
	KeyCurrentLocation: {
		Text:     "Where do you currently live?",
		Type:     model.TypeText,
		Required: false,
		Order:    -5,
	},
	KeyAgeBracket: {
		Text:     "Age bracket",
		Type:     model.TypeSingleSelect,
		Options:  []string{"18-24", "25-34", "35-44", "45-54", "55-64", "65+"},
		Required: false,
		Order:    -4,
	},
	KeyOccupation: {
		Text:     "Occupation / Field of Work",
		Type:     model.TypeText,
		Required: false,
		Order:    -3,
	},
}

// requiredKeys are always included regardless of configuration.
var requiredKeys = []string{KeyFirstName, KeyLastName, KeyEmail}

// optionalKeys are included only when enabled in the survey configuration.
var optionalKeys = []string{KeyPhone, KeyHomeBase, KeyCurrentLocation, KeyAgeBracket, KeyOccupation}

// Texts returns every universal question text, for generated-question
// deduplication.
func Texts() []string {
	out := make([]string, 0, len(questions))
	for _, key := range append(append([]string{}, requiredKeys...), optionalKeys...) {
		out = append(out, questions[key].Text)
	}
	return out
}

// Select returns the universal questions for a survey: the three contact
// questions always, plus any optional question enabled in flags.
func Select(flags map[string]bool) []model.Question {
	out := make([]model.Question, 0, len(requiredKeys)+len(optionalKeys))
	for _, key := range requiredKeys {
		out = append(out, clone(questions[key]))
	}
	for _, key := range optionalKeys {
		if flags[key] {
			out = append(out, clone(questions[key]))
		}
	}
	return out
}

func clone(q model.Question) model.Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}

// demographicKeywords flag generated questions that duplicate the universal
// set in intent rather than exact wording.
var demographicKeywords = []string{
	"name",
	"email",
	"phone",
	"age",
	"location",
	"occupation",
	"demographic",
	"where did you grow up",
	"where do you live",
	"home base",
	"grow up",
	"currently live",
}

// IsDemographic reports whether a generated question's text overlaps the
// universal demographic territory. This is a plain case-insensitive
// substring check and is knowingly overinclusive: a question like "name of
// the artist you most want to see" gets dropped too. Do not tighten the
// matching here without product sign-off.
func IsDemographic(text string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range demographicKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
