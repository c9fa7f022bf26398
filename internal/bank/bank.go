// Package bank holds the expert-authored question template catalog used as
// inspiration material for the generator prompt. Templates use {event_name}
// as a placeholder for the event's name.
package bank

import (
	"fmt"
	"strings"

	"github.com/panorama-labs/survey-engine/internal/model"
)

// Entry is one curated question template.
type Entry struct {
	ID       string
	Template string
	Type     model.QuestionType
	Options  []string
	Category string
	Required bool
}

// Categories the bank is organized into.
var Categories = []string{
	"expectations",
	"preferences",
	"registration",
	"accessibility",
	"lineup_interest",
	"pricing",
	"logistics",
	"marketing",
}

var catalog = []Entry{
	// Required questions, always included in every survey.
	{
		ID:       "req_accessibility",
		Template: "Do you have any accessibility requirements we should know about for {event_name}?",
		Type:     model.TypeTextarea,
		Category: "accessibility",
		Required: true,
	},
	{
		ID:       "req_catch_all",
		Template: "Is there anything else you'd like us to know about your expectations for {event_name}?",
		Type:     model.TypeTextarea,
		Category: "expectations",
		Required: true,
	},

	{
		ID:       "exp_001",
		Template: "What are you most hoping to experience at {event_name}?",
		Type:     model.TypeMultiSelect,
		Options:  []string{"Live music performances", "Discovering new artists", "Social atmosphere", "Food and drinks", "Meeting like-minded people", "Unique venue experience"},
		Category: "expectations",
	},
	{
		ID:       "exp_002",
		Template: "How important is it that {event_name} delivers a unique experience compared to other events?",
		Type:     model.TypeLikert,
		Options:  []string{"Not Important", "Slightly Important", "Moderately Important", "Very Important", "Extremely Important"},
		Category: "expectations",
	},

	{
		ID:       "pref_001",
		Template: "What type of music or performances would you most like to see at {event_name}?",
		Type:     model.TypeMultiSelect,
		Options:  []string{"Electronic/DJ", "Live bands", "Acoustic/Singer-songwriter", "Hip-hop/R&B", "Rock/Alternative", "Pop", "Jazz/Blues", "World music"},
		Category: "preferences",
	},
	{
		ID:       "pref_002",
		Template: "What is your preferred event format?",
		Type:     model.TypeSingleSelect,
		Options:  []string{"Single day event", "Multi-day festival", "Evening only", "All-day event", "No preference"},
		Category: "preferences",
	},

	{
		ID:       "reg_001",
		Template: "What motivated you to register interest in {event_name}?",
		Type:     model.TypeMultiSelect,
		Options:  []string{"The lineup/artists", "The venue", "Recommendation from friends", "Previous positive experience", "Social media buzz", "Value for money", "Unique concept"},
		Category: "registration",
	},
	{
		ID:       "reg_002",
		Template: "How likely are you to attend {event_name} if tickets become available?",
		Type:     model.TypeLikert,
		Options:  []string{"Very Unlikely", "Unlikely", "Neutral", "Likely", "Very Likely"},
		Category: "registration",
	},

	{
		ID:       "acc_001",
		Template: "Which accessibility features are important to you for {event_name}?",
		Type:     model.TypeMultiSelect,
		Options:  []string{"Wheelchair access", "Accessible viewing areas", "Accessible toilets", "Quiet/low sensory spaces", "Sign language interpretation", "Hearing loops", "None needed"},
		Category: "accessibility",
	},
	{
		ID:       "acc_002",
		Template: "Do you have any dietary requirements we should consider for food offerings?",
		Type:     model.TypeMultiSelect,
		Options:  []string{"Vegetarian", "Vegan", "Gluten-free", "Halal", "Kosher", "Nut allergies", "Other allergies", "No specific requirements"},
		Category: "accessibility",
	},

	{
		ID:       "line_001",
		Template: "How important is it that the lineup features well-known headliners?",
		Type:     model.TypeLikert,
		Options:  []string{"Not Important", "Slightly Important", "Moderately Important", "Very Important", "Extremely Important"},
		Category: "lineup_interest",
	},
	{
		ID:       "line_002",
		Template: "How interested are you in discovering new/emerging artists at {event_name}?",
		Type:     model.TypeLikert,
		Options:  []string{"Not Interested", "Slightly Interested", "Moderately Interested", "Very Interested", "Extremely Interested"},
		Category: "lineup_interest",
	},

	{
		ID:       "price_001",
		Template: "What price range would you consider reasonable for {event_name}?",
		Type:     model.TypeSingleSelect,
		Options:  []string{"Under $50", "$50-$100", "$100-$150", "$150-$200", "$200-$300", "Over $300"},
		Category: "pricing",
	},
	{
		ID:       "price_002",
		Template: "Which ticket type would you be most interested in?",
		Type:     model.TypeSingleSelect,
		Options:  []string{"General admission", "Early bird discount", "VIP/Premium", "Group discount", "Payment plan option"},
		Category: "pricing",
	},

	{
		ID:       "log_001",
		Template: "Which days of the week work best for you to attend {event_name}?",
		Type:     model.TypeMultiSelect,
		Options:  []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
		Category: "logistics",
	},
	{
		ID:       "log_002",
		Template: "How will you most likely travel to {event_name}?",
		Type:     model.TypeSingleSelect,
		Options:  []string{"Drive and park", "Public transport", "Taxi/Rideshare", "Walk/Cycle", "Shuttle service if available", "Undecided"},
		Category: "logistics",
	},

	{
		ID:       "mkt_001",
		Template: "How did you first hear about {event_name}?",
		Type:     model.TypeSingleSelect,
		Options:  []string{"Instagram", "Facebook", "TikTok", "Friend/Word of mouth", "Email newsletter", "Website search", "Poster/Flyer", "Radio", "Other"},
		Category: "marketing",
	},
	{
		ID:       "mkt_002",
		Template: "What information would be most helpful to know before deciding to attend {event_name}?",
		Type:     model.TypeMultiSelect,
		Options:  []string{"Full lineup announcement", "Ticket prices", "Venue details", "Schedule/Timetable", "Food and drink options", "Parking/Transport info", "What to bring/not bring"},
		Category: "marketing",
	},
}

// All returns a copy of the full catalog.
func All() []Entry {
	return append([]Entry(nil), catalog...)
}

// ByCategory returns the catalog entries for one category.
func ByCategory(category string) []Entry {
	var out []Entry
	for _, e := range catalog {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// RequiredEntries returns the templates that appear in every survey.
func RequiredEntries() []Entry {
	var out []Entry
	for _, e := range catalog {
		if e.Required {
			out = append(out, e)
		}
	}
	return out
}

// Render resolves the {event_name} placeholder and returns a Question.
func (e Entry) Render(eventName string) model.Question {
	return model.Question{
		Text:     strings.ReplaceAll(e.Template, "{event_name}", eventName),
		Type:     e.Type,
		Options:  append([]string(nil), e.Options...),
		Required: e.Required,
	}
}

// FormatForPrompt renders bank entries as prompt inspiration lines.
func FormatForPrompt(entries []Entry, eventName string) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		q := e.Render(eventName)
		fmt.Fprintf(&b, "- [%s] %s (%s)", e.Category, q.Text, e.Type)
		if len(e.Options) > 0 {
			fmt.Fprintf(&b, " Options: %s", strings.Join(e.Options, ", "))
		}
	}
	return b.String()
}
