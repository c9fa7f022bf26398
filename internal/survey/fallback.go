package survey

import (
	"fmt"
	"strings"

	"github.com/panorama-labs/survey-engine/internal/model"
)

// fallbackEntry is one question of the static degraded-mode set.
type fallbackEntry struct {
	text     string // %s is substituted with the event name where present
	qType    model.QuestionType
	options  []string
	required bool
}

// fallbackSet is the hardcoded survey returned when generation cannot
// produce anything usable. It covers event experience, lineup, venue
// logistics, communication, sustainability, and post-event engagement.
// Deliberately not passed through the normalizer: it is a complete,
// already-ordered artifact.
var fallbackSet = []fallbackEntry{
	{text: "How would you rate the overall energy and atmosphere of %s?", qType: model.TypeLikert, required: true},
	{text: "Did %s meet your expectations?", qType: model.TypeLikert, required: true},
	{text: "How would you rate the overall event experience?", qType: model.TypeSingleSelect,
		options: []string{"Excellent", "Very Good", "Good", "Fair", "Poor"}, required: true},
	{text: "What was the highlight of your experience?", qType: model.TypeTextarea},
	{text: "How would you describe the overall event flow and pacing?", qType: model.TypeLikert},

	{text: "How would you rate the sound quality across different stages?", qType: model.TypeLikert, required: true},
	{text: "How satisfied were you with the diversity of artists and genres?", qType: model.TypeLikert, required: true},
	{text: "Which aspects of the music lineup did you enjoy most?", qType: model.TypeMultiSelect,
		options: []string{"Headliner performances", "Supporting acts", "Genre diversity", "Stage production", "Sound quality", "Artist discovery"}},
	{text: "How would you rate the stage setup and visual production?", qType: model.TypeLikert},
	{text: "Were there any scheduling conflicts that affected your experience?", qType: model.TypeText},

	{text: "How accessible was the venue for people with mobility needs?", qType: model.TypeLikert},
	{text: "How would you rate the cleanliness and maintenance of facilities?", qType: model.TypeLikert, required: true},
	{text: "How would you rate the entry and exit process?", qType: model.TypeSingleSelect,
		options: []string{"Very Smooth", "Smooth", "Average", "Difficult", "Very Difficult"}},
	{text: "Which amenities were most important to your experience?", qType: model.TypeMultiSelect,
		options: []string{"Food & Beverage", "Restrooms", "First Aid", "Water stations", "Charging stations", "Seating areas"}},
	{text: "How safe did you feel throughout the event?", qType: model.TypeLikert, required: true},

	{text: "How clear and helpful was the pre-event communication?", qType: model.TypeLikert, required: true},
	{text: "Did you find the event schedule easy to access and understand?", qType: model.TypeLikert},
	{text: "How would you rate the event's social media presence and updates?", qType: model.TypeLikert},
	{text: "What information would have been helpful to know before the event?", qType: model.TypeTextarea},

	{text: "How would you rate the event's commitment to sustainability?", qType: model.TypeLikert},
	{text: "Did you feel the event was inclusive and welcoming to all attendees?", qType: model.TypeLikert, required: true},
	{text: "Which sustainability practices did you notice?", qType: model.TypeMultiSelect,
		options: []string{"Recycling programs", "Compostable materials", "Water refill stations", "Public transport options", "Carbon offset initiatives", "None"}},
	{text: "How would you rate the event's diversity and representation?", qType: model.TypeLikert},

	{text: "How likely are you to attend future events by this organizer?", qType: model.TypeLikert, required: true},
	{text: "Would you share your experience on social media?", qType: model.TypeSingleSelect,
		options: []string{"Definitely", "Probably", "Maybe", "Probably Not", "Definitely Not"}},
}

// FallbackQuestions returns the static question set, sized to target.
// When target is smaller than the full set, required questions are kept
// first and the remainder fills from the optional questions in definition
// order. Orders are reassigned sequentially from 0 either way.
func FallbackQuestions(eventName string, target int) []model.Question {
	if eventName == "" {
		eventName = "this event"
	}

	build := func(e fallbackEntry) model.Question {
		text := e.text
		if strings.Contains(text, "%s") {
			text = fmt.Sprintf(text, eventName)
		}
		opts := e.options
		if e.qType == model.TypeLikert {
			opts = append([]string(nil), model.LikertScale...)
		} else {
			opts = append([]string(nil), opts...)
		}
		return model.Question{Text: text, Type: e.qType, Options: opts, Required: e.required}
	}

	var selected []fallbackEntry
	if target >= len(fallbackSet) || target <= 0 {
		selected = fallbackSet
	} else {
		for _, e := range fallbackSet {
			if e.required {
				selected = append(selected, e)
			}
		}
		for _, e := range fallbackSet {
			if len(selected) >= target {
				break
			}
			if !e.required {
				selected = append(selected, e)
			}
		}
		if len(selected) > target {
			selected = selected[:target]
		}
	}

	out := make([]model.Question, 0, len(selected))
	for i, e := range selected {
		q := build(e)
		q.Order = i
		out = append(out, q)
	}
	return out
}
