package strategy

import (
	"fmt"
	"strings"

	"github.com/panorama-labs/survey-engine/internal/model"
)

// Facts is the real event data available for token substitution.
type Facts struct {
	EventName    string
	EventDate    string
	Venue        string
	Lineup       []string
	Headliner    string
	PricingTiers []string
	VIPPerks     []string
	BarBrands    []string
}

// FactsFrom builds substitution facts from a merged extraction record plus
// user-supplied details the extractor does not cover (date, bar partners).
// The headliner is the first-ranked lineup artist.
func FactsFrom(eventName, eventDate string, data model.ExtractedEventData, barBrands []string) Facts {
	f := Facts{
		EventName: eventName,
		EventDate: eventDate,
		Venue:     data.Venue,
		BarBrands: barBrands,
	}
	for _, a := range data.Lineup {
		f.Lineup = append(f.Lineup, a.Name)
	}
	if len(f.Lineup) > 0 {
		f.Headliner = f.Lineup[0]
	}
	for _, t := range data.PricingTiers {
		label := t.Name
		if t.Price != "" {
			// Price strings carry their own currency symbol.
			label = fmt.Sprintf("%s - %s", t.Name, t.Price)
		}
		f.PricingTiers = append(f.PricingTiers, label)
	}
	if data.VIP.Enabled {
		f.VIPPerks = append(f.VIPPerks, data.VIP.Included...)
	}
	return f
}

// Available maps strategy data requirements to whether the facts satisfy them.
func (f Facts) Available() map[string]bool {
	return map[string]bool{
		"lineup":        len(f.Lineup) > 0,
		"headliner":     f.Headliner != "",
		"pricing_tiers": len(f.PricingTiers) > 0,
		"vip_info":      len(f.VIPPerks) > 0,
		"bar_partners":  len(f.BarBrands) > 0,
		"venue":         f.Venue != "",
		"date":          f.EventDate != "",
	}
}

// textValue returns the substitution for a text token, or "" when the fact
// is missing.
func (f Facts) textValue(token string) string {
	switch token {
	case TokenEventName:
		return f.EventName
	case TokenHeadliner:
		return f.Headliner
	case TokenVenue:
		return f.Venue
	case TokenEventDate:
		return f.EventDate
	case TokenVIPPerks:
		return strings.Join(f.VIPPerks, ", ")
	}
	return ""
}

// optionValues returns the expansion for an options token.
func (f Facts) optionValues(token string) []string {
	switch token {
	case TokenLineup:
		return f.Lineup
	case TokenPricingTiers:
		return f.PricingTiers
	case TokenBarBrands:
		return f.BarBrands
	}
	return nil
}

// Resolve substitutes placeholder tokens in a question with real facts.
// Text tokens are replaced in the question text; option tokens expand in
// place into the option list. Returns ok=false when a token has no backing
// data, meaning the question must be dropped rather than shipped with a
// dangling marker.
func Resolve(q model.Question, f Facts) (model.Question, bool) {
	for token, kind := range Tokens {
		if kind != KindText || !strings.Contains(q.Text, token) {
			continue
		}
		val := f.textValue(token)
		if val == "" {
			return model.Question{}, false
		}
		q.Text = strings.ReplaceAll(q.Text, token, val)
	}
	// A leftover marker means the model misplaced a token.
	if strings.Contains(q.Text, "{{") {
		return model.Question{}, false
	}

	if len(q.Options) > 0 {
		resolved := make([]string, 0, len(q.Options))
		for _, opt := range q.Options {
			kind, isToken := Tokens[opt]
			if !isToken {
				resolved = append(resolved, opt)
				continue
			}
			if kind != KindOptions {
				return model.Question{}, false
			}
			vals := f.optionValues(opt)
			if len(vals) == 0 {
				return model.Question{}, false
			}
			resolved = append(resolved, vals...)
		}
		q.Options = resolved
	}

	return q, true
}

// ResolveAll resolves tokens across a question list, dropping questions whose
// tokens cannot be backed by data.
func ResolveAll(qs []model.Question, f Facts) []model.Question {
	out := make([]model.Question, 0, len(qs))
	for _, q := range qs {
		if resolved, ok := Resolve(q, f); ok {
			out = append(out, resolved)
		}
	}
	return out
}
