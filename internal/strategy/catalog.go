// Package strategy maps abstract survey goals to concrete question
// generation strategies. Strategy templates carry placeholder tokens
// ({{EVENT_NAME}}, {{LINEUP_ARTISTS}}, ...) that the generator is told to
// copy verbatim; Resolve substitutes real event data afterwards so the model
// can never hallucinate a lineup or a price.
package strategy

import (
	"github.com/panorama-labs/survey-engine/internal/model"
)

// Placeholder tokens understood by Resolve.
const (
	TokenEventName    = "{{EVENT_NAME}}"
	TokenLineup       = "{{LINEUP_ARTISTS}}"
	TokenHeadliner    = "{{HEADLINER}}"
	TokenPricingTiers = "{{PRICING_TIERS}}"
	TokenVIPPerks     = "{{VIP_PERKS}}"
	TokenBarBrands    = "{{BAR_BRANDS}}"
	TokenVenue        = "{{VENUE}}"
	TokenEventDate    = "{{EVENT_DATE}}"
)

// TokenKind distinguishes tokens substituted into question text from tokens
// that expand into option lists.
type TokenKind int

const (
	KindText TokenKind = iota
	KindOptions
)

// Tokens is the placeholder registry: token to the kind of substitution it
// receives.
var Tokens = map[string]TokenKind{
	TokenEventName:    KindText,
	TokenLineup:       KindOptions,
	TokenHeadliner:    KindText,
	TokenPricingTiers: KindOptions,
	TokenVIPPerks:     KindText,
	TokenBarBrands:    KindOptions,
	TokenVenue:        KindText,
	TokenEventDate:    KindText,
}

// Strategy is one question-generation recipe within a goal.
type Strategy struct {
	ID           string
	Purpose      string
	RequiresData string // empty when the strategy needs no extracted data
	Template     model.Question
}

// Goal groups strategies serving one survey goal.
type Goal struct {
	ID           string
	Description  string
	RelevantData []string
	Strategies   []Strategy
}

var goals = []Goal{
	{
		ID:           "lineup_perception",
		Description:  "Understand attendee perception of the lineup",
		RelevantData: []string{"lineup", "headliner"},
		Strategies: []Strategy{
			{
				ID:           "artist_excitement",
				Purpose:      "Which specific artists drive excitement",
				RequiresData: "lineup",
				Template: model.Question{
					Text:    "Which artists are you most excited to see at {{EVENT_NAME}}?",
					Type:    model.TypeMultiSelect,
					Options: []string{TokenLineup, "All equally excited", "Other"},
				},
			},
			{
				ID:           "headliner_influence",
				Purpose:      "Measure headliner's impact on attendance decision",
				RequiresData: "headliner",
				Template: model.Question{
					Text:    "How much did {{HEADLINER}} headlining influence your decision to attend {{EVENT_NAME}}?",
					Type:    model.TypeLikert,
					Options: []string{"Not at all", "Slightly", "Moderately", "Significantly", "It was the main reason"},
				},
			},
			{
				ID:      "discovery_balance",
				Purpose: "Preference for known vs new artists",
				Template: model.Question{
					Text:    "At {{EVENT_NAME}}, what's more important to you?",
					Type:    model.TypeSingleSelect,
					Options: []string{"Seeing artists I already love", "Discovering new artists", "A good mix of both"},
				},
			},
			{
				ID:      "lineup_match",
				Purpose: "How well lineup matches taste",
				Template: model.Question{
					Text:    "How well does the announced lineup for {{EVENT_NAME}} match your music taste?",
					Type:    model.TypeLikert,
					Options: []string{"Not at all", "Slightly", "Moderately", "Very well", "Perfectly"},
				},
			},
		},
	},
	{
		ID:           "pricing_perception",
		Description:  "Understand price sensitivity and value perception",
		RelevantData: []string{"pricing_tiers", "vip_info"},
		Strategies: []Strategy{
			{
				ID:           "tier_preference",
				Purpose:      "Which ticket tier appeals most",
				RequiresData: "pricing_tiers",
				Template: model.Question{
					Text:    "Which ticket option best fits your needs for {{EVENT_NAME}}?",
					Type:    model.TypeSingleSelect,
					Options: []string{TokenPricingTiers, "Undecided"},
				},
			},
			{
				ID:           "vip_appeal",
				Purpose:      "Interest in VIP/premium experience",
				RequiresData: "vip_info",
				Template: model.Question{
					Text:    "VIP tickets for {{EVENT_NAME}} include {{VIP_PERKS}}. How appealing is this to you?",
					Type:    model.TypeLikert,
					Options: []string{"Not appealing", "Slightly appealing", "Moderately appealing", "Very appealing", "Extremely appealing"},
				},
			},
			{
				ID:      "price_barrier",
				Purpose: "Is price a barrier to attendance",
				Template: model.Question{
					Text:    "How does ticket pricing affect your decision to attend {{EVENT_NAME}}?",
					Type:    model.TypeSingleSelect,
					Options: []string{"Price doesn't affect my decision", "I'd attend if reasonably priced", "Price is a major factor", "I'm waiting for discounts/deals"},
				},
			},
			{
				ID:      "value_perception",
				Purpose: "Perceived value for money",
				Template: model.Question{
					Text:    "Based on what you know about {{EVENT_NAME}}, how would you rate the expected value for money?",
					Type:    model.TypeLikert,
					Options: []string{"Very poor value", "Poor value", "Fair value", "Good value", "Excellent value"},
				},
			},
		},
	},
	{
		ID:           "food_beverage_interest",
		Description:  "F&B expectations and preferences",
		RelevantData: []string{"bar_partners"},
		Strategies: []Strategy{
			{
				ID:           "brand_interest",
				Purpose:      "Interest in specific beverage partners",
				RequiresData: "bar_partners",
				Template: model.Question{
					Text:    "We're partnering with beverage brands for {{EVENT_NAME}}. Which interest you most?",
					Type:    model.TypeMultiSelect,
					Options: []string{TokenBarBrands, "None of these", "Other"},
				},
			},
			{
				ID:      "food_importance",
				Purpose: "How important is food quality",
				Template: model.Question{
					Text:    "How important is the food and drink offering to your {{EVENT_NAME}} experience?",
					Type:    model.TypeLikert,
					Options: []string{"Not important", "Slightly important", "Moderately important", "Very important", "Extremely important"},
				},
			},
			{
				ID:      "dietary_needs",
				Purpose: "Dietary requirements",
				Template: model.Question{
					Text:    "Do you have any dietary requirements we should consider for {{EVENT_NAME}}?",
					Type:    model.TypeMultiSelect,
					Options: []string{"Vegetarian", "Vegan", "Gluten-free", "Halal", "Kosher", "Nut allergy", "Other allergies", "No specific requirements"},
				},
			},
			{
				ID:      "spending_expectation",
				Purpose: "Expected F&B spend",
				Template: model.Question{
					Text:    "Approximately how much do you expect to spend on food and drinks at {{EVENT_NAME}}?",
					Type:    model.TypeSingleSelect,
					Options: []string{"Under $20", "$20-$50", "$50-$100", "$100-$150", "Over $150"},
				},
			},
		},
	},
	{
		ID:           "logistics_planning",
		Description:  "Transport, timing, and logistical preferences",
		RelevantData: []string{"venue", "date"},
		Strategies: []Strategy{
			{
				ID:           "transport_method",
				Purpose:      "How attendees will travel",
				RequiresData: "venue",
				Template: model.Question{
					Text:    "How are you planning to travel to {{VENUE}} for {{EVENT_NAME}}?",
					Type:    model.TypeSingleSelect,
					Options: []string{"Drive and park", "Public transport", "Taxi/Rideshare", "Walk/Cycle", "Shuttle service if available", "Undecided"},
				},
			},
			{
				ID:      "arrival_time",
				Purpose: "When they plan to arrive",
				Template: model.Question{
					Text:    "When do you plan to arrive at {{EVENT_NAME}}?",
					Type:    model.TypeSingleSelect,
					Options: []string{"As early as possible", "In time for specific acts", "Whenever I can make it", "Haven't decided yet"},
				},
			},
			{
				ID:      "group_size",
				Purpose: "Who they're attending with",
				Template: model.Question{
					Text:    "Who are you planning to attend {{EVENT_NAME}} with?",
					Type:    model.TypeSingleSelect,
					Options: []string{"By myself", "With a partner", "Small group (3-5)", "Large group (6+)", "Meeting friends there"},
				},
			},
			{
				ID:      "day_preference",
				Purpose: "Preferred day if multi-day",
				Template: model.Question{
					Text:    "Which days work best for you to attend {{EVENT_NAME}}?",
					Type:    model.TypeMultiSelect,
					Options: []string{"Friday", "Saturday", "Sunday", "Any day works", "Weekday if available"},
				},
			},
		},
	},
	{
		ID:          "marketing_effectiveness",
		Description: "How they heard about the event and information needs",
		Strategies: []Strategy{
			{
				ID:      "discovery_channel",
				Purpose: "How they found out about the event",
				Template: model.Question{
					Text:    "How did you first hear about {{EVENT_NAME}}?",
					Type:    model.TypeSingleSelect,
					Options: []string{"Instagram", "Facebook", "TikTok", "Friend/Word of mouth", "Email newsletter", "Website search", "Poster/Flyer", "Radio", "Other"},
				},
			},
			{
				ID:      "information_needs",
				Purpose: "What info would help their decision",
				Template: model.Question{
					Text:    "What information would be most helpful before deciding to attend {{EVENT_NAME}}?",
					Type:    model.TypeMultiSelect,
					Options: []string{"Full lineup announcement", "Ticket prices", "Venue details", "Schedule/Timetable", "Food and drink options", "Parking/Transport info", "What to bring"},
				},
			},
			{
				ID:      "social_sharing",
				Purpose: "Likelihood to share/promote",
				Template: model.Question{
					Text:    "How likely are you to share {{EVENT_NAME}} with friends or on social media?",
					Type:    model.TypeLikert,
					Options: []string{"Very unlikely", "Unlikely", "Neutral", "Likely", "Very likely"},
				},
			},
			{
				ID:      "registration_motivation",
				Purpose: "Why they registered interest",
				Template: model.Question{
					Text:    "What motivated you to register interest in {{EVENT_NAME}}?",
					Type:    model.TypeMultiSelect,
					Options: []string{"The lineup/artists", "The venue", "Friend recommendation", "Social media buzz", "Value for money", "Unique concept", "Previous experience with organizer"},
				},
			},
		},
	},
	{
		ID:          "attendee_expectations",
		Description: "What attendees hope to experience",
		Strategies: []Strategy{
			{
				ID:      "experience_hopes",
				Purpose: "What they're most looking forward to",
				Template: model.Question{
					Text:    "What are you most looking forward to at {{EVENT_NAME}}?",
					Type:    model.TypeMultiSelect,
					Options: []string{"Live music performances", "Discovering new artists", "Social atmosphere", "Food and drinks", "Meeting like-minded people", "The venue experience", "Other"},
				},
			},
			{
				ID:      "excitement_level",
				Purpose: "Overall excitement level",
				Template: model.Question{
					Text:    "How excited are you about attending {{EVENT_NAME}}?",
					Type:    model.TypeLikert,
					Options: []string{"Not excited", "Slightly excited", "Moderately excited", "Very excited", "Extremely excited"},
				},
			},
			{
				ID:      "success_criteria",
				Purpose: "What would make it a success for them",
				Template: model.Question{
					Text: "What would make {{EVENT_NAME}} a great experience for you?",
					Type: model.TypeTextarea,
				},
			},
			{
				ID:      "unique_experience",
				Purpose: "Importance of unique experience",
				Template: model.Question{
					Text:    "How important is it that {{EVENT_NAME}} delivers a unique experience compared to other events?",
					Type:    model.TypeLikert,
					Options: []string{"Not important", "Slightly important", "Moderately important", "Very important", "Extremely important"},
				},
			},
		},
	},
	{
		ID:           "accessibility_needs",
		Description:  "Accessibility requirements and needs",
		RelevantData: []string{"venue"},
		Strategies: []Strategy{
			{
				ID:      "accessibility_features",
				Purpose: "Which accessibility features are needed",
				Template: model.Question{
					Text:    "Which accessibility features are important to you for {{EVENT_NAME}}?",
					Type:    model.TypeMultiSelect,
					Options: []string{"Wheelchair access", "Accessible viewing areas", "Accessible toilets", "Quiet/low sensory spaces", "Sign language interpretation", "Hearing loops", "None needed"},
				},
			},
			{
				ID:      "accessibility_requirements",
				Purpose: "Open-ended accessibility needs",
				Template: model.Question{
					Text: "Do you have any accessibility requirements we should know about for {{EVENT_NAME}}?",
					Type: model.TypeTextarea,
				},
			},
			{
				ID:           "venue_accessibility_concern",
				Purpose:      "Concerns about venue accessibility",
				RequiresData: "venue",
				Template: model.Question{
					Text:    "Do you have any concerns about accessibility at {{VENUE}}?",
					Type:    model.TypeSingleSelect,
					Options: []string{"No concerns", "Some concerns - please contact me", "Prefer not to say"},
				},
			},
			{
				ID:      "companion_needs",
				Purpose: "Carer/companion ticket needs",
				Template: model.Question{
					Text:    "Will you need a companion/carer ticket for {{EVENT_NAME}}?",
					Type:    model.TypeSingleSelect,
					Options: []string{"Yes", "No", "Maybe - need more information"},
				},
			},
		},
	},
}

// GoalIDs returns every known goal identifier in catalog order.
func GoalIDs() []string {
	ids := make([]string, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	return ids
}

// ForGoal returns the strategies for one goal.
func ForGoal(id string) (Goal, bool) {
	for _, g := range goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}

// Applicable selects up to maxStrategies for a goal, preferring strategies
// whose required data is available, then data-free strategies, then the
// remainder as padding.
func Applicable(goalID string, available map[string]bool, maxStrategies int) []Strategy {
	g, ok := ForGoal(goalID)
	if !ok {
		return nil
	}

	picked := make(map[string]bool)
	var out []Strategy
	add := func(s Strategy) {
		if !picked[s.ID] {
			picked[s.ID] = true
			out = append(out, s)
		}
	}

	for _, s := range g.Strategies {
		if s.RequiresData != "" && available[s.RequiresData] {
			add(s)
		}
	}
	for _, s := range g.Strategies {
		if s.RequiresData == "" {
			add(s)
		}
	}
	if len(out) < maxStrategies {
		for _, s := range g.Strategies {
			add(s)
			if len(out) >= maxStrategies {
				break
			}
		}
	}

	if len(out) > maxStrategies {
		out = out[:maxStrategies]
	}
	return out
}
