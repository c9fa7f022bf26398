package strategy

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// GoalLabel renders a goal identifier as a human-readable heading.
func GoalLabel(goalID string) string {
	return titleCaser.String(strings.ReplaceAll(goalID, "_", " "))
}

// FormatForPrompt renders the selected strategies per goal bucket into the
// instruction block of the generation prompt. Must-have goals ask for
// mustHaveCount questions each, interested goals for interestedCount.
func FormatForPrompt(selected map[string][]Strategy, facts Facts, mustHave, interested []string, mustHaveCount, interestedCount int) string {
	var b strings.Builder
	b.WriteString("QUESTION STRATEGIES TO IMPLEMENT:\n\n")
	b.WriteString("Use placeholder tokens exactly as shown. The system will replace them with real data.\n\n")

	divider := strings.Repeat("=", 50)

	writeBucket := func(heading string, goalIDs []string, perGoal int) {
		if len(goalIDs) == 0 {
			return
		}
		b.WriteString(divider + "\n")
		b.WriteString(heading + "\n")
		b.WriteString(divider + "\n")

		for _, goalID := range goalIDs {
			fmt.Fprintf(&b, "\n### GOAL: %s\n", GoalLabel(goalID))
			fmt.Fprintf(&b, "Generate %d questions using these strategies:\n\n", perGoal)

			strategies := selected[goalID]
			if len(strategies) > perGoal {
				strategies = strategies[:perGoal]
			}
			for i, s := range strategies {
				fmt.Fprintf(&b, "%d. PURPOSE: %s\n", i+1, s.Purpose)
				fmt.Fprintf(&b, "   TEMPLATE: %q\n", s.Template.Text)
				fmt.Fprintf(&b, "   TYPE: %s\n", s.Template.Type)
				if len(s.Template.Options) > 0 {
					fmt.Fprintf(&b, "   OPTIONS: [%s]\n", strings.Join(s.Template.Options, ", "))
				}
				b.WriteString("\n")
			}
		}
	}

	writeBucket(fmt.Sprintf("MUST HAVE GOALS (generate %d questions per goal)", mustHaveCount), mustHave, mustHaveCount)
	writeBucket(fmt.Sprintf("INTERESTED TO KNOW (generate %d questions per goal)", interestedCount), interested, interestedCount)

	b.WriteString(divider + "\n")
	b.WriteString("AVAILABLE EVENT DATA (for reference)\n")
	b.WriteString(divider + "\n")

	if len(facts.Lineup) > 0 {
		preview := facts.Lineup
		suffix := ""
		if len(preview) > 5 {
			preview = preview[:5]
			suffix = "..."
		}
		fmt.Fprintf(&b, "LINEUP_ARTISTS: %s%s\n", strings.Join(preview, ", "), suffix)
	}
	if facts.Headliner != "" {
		fmt.Fprintf(&b, "HEADLINER: %s\n", facts.Headliner)
	}
	if len(facts.PricingTiers) > 0 {
		fmt.Fprintf(&b, "PRICING_TIERS: %s\n", strings.Join(facts.PricingTiers, ", "))
	}
	if len(facts.VIPPerks) > 0 {
		preview := facts.VIPPerks
		suffix := ""
		if len(preview) > 3 {
			preview = preview[:3]
			suffix = "..."
		}
		fmt.Fprintf(&b, "VIP_PERKS: %s%s\n", strings.Join(preview, ", "), suffix)
	}
	if len(facts.BarBrands) > 0 {
		fmt.Fprintf(&b, "BAR_BRANDS: %s\n", strings.Join(facts.BarBrands, ", "))
	}
	if facts.Venue != "" {
		fmt.Fprintf(&b, "VENUE: %s\n", facts.Venue)
	}

	return b.String()
}
