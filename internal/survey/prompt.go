package survey

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/panorama-labs/survey-engine/internal/bank"
	"github.com/panorama-labs/survey-engine/internal/model"
	"github.com/panorama-labs/survey-engine/internal/rules"
	"github.com/panorama-labs/survey-engine/internal/strategy"
	"github.com/panorama-labs/survey-engine/internal/universal"
)

const generationSystemPrompt = `You are an expert event survey designer. You create concise, engaging survey questions that event organizers use to understand their attendees before an event.

You always respond with a single valid JSON object and nothing else. The object has a "sections" key: a list of sections, each with "section_name" and "questions". Each question has "question_text", "question_type" (one of: text, textarea, single-select, multi-select, likert), "options" (list of strings, or null for text/textarea), and "required" (boolean).`

const generationPromptTemplate = `Create a survey for the following event.

EVENT DETAILS:
- Event type: %s
- Event name: %s
- Audience: %s
- Timing: %s
- Additional context: %s

THE ORGANIZER WANTS TO LEARN ABOUT:
%s

QUESTION BUDGET:
- Generate %d questions per must-have goal and %d per interested goal.
- Total questions: %d. Group them into themed sections.

%s

INSPIRATION (adapt freely, do not copy verbatim):
%s

DO NOT generate questions resembling any of these patterns:
%s

The following questions are automatically included in every survey. Do not create questions similar to these:
%s

Respond with JSON only.`

const validationSystemPrompt = `You are a quality assurance expert for survey question generation. Analyze questions and provide structured validation feedback in JSON format.`

const validationPromptTemplate = `Review the generated survey questions below against the organizer's goals.

ORGANIZER FOCUS AREAS:
%s

GOAL COVERAGE REQUIREMENTS:
- Every must-have goal needs at least %d questions.
- Every interested goal needs at least %d questions.

GENERATED QUESTIONS:
%s

Respond with a JSON object: {"validation_passed": boolean, "refinement_instructions": string}. Set validation_passed to false only when coverage requirements are not met or questions clearly miss the organizer's goals; refinement_instructions must then describe the specific fixes needed.`

const refinementSystemPrompt = `You are a survey question refinement expert. Improve questions based on validation feedback. Always respond with valid JSON only.`

const refinementPromptTemplate = `Refine the survey questions below according to the validation feedback.

ORIGINAL QUESTIONS:
%s

VALIDATION FEEDBACK:
%s

REFINEMENT INSTRUCTIONS:
%s

ORGANIZER FOCUS AREAS:
%s

Respond with the complete corrected survey as a JSON object with the same "sections" structure as the original. Include every question, not only the changed ones.`

// PromptBuilder assembles the prompts for the three-call generation
// sequence from the rule set, the question bank, and strategy selections.
type PromptBuilder struct {
	rules     rules.Rules
	forbidden *rules.ForbiddenPatternEngine
	bank      []bank.Entry
}

func NewPromptBuilder(r rules.Rules, bankEntries []bank.Entry) *PromptBuilder {
	return &PromptBuilder{
		rules:     r,
		forbidden: rules.NewForbiddenPatternEngine(r.ForbiddenPatterns),
		bank:      bankEntries,
	}
}

// Forbidden exposes the builder's pattern engine for reuse by the
// normalizer, so prompt and filter always agree on the same rule set.
func (p *PromptBuilder) Forbidden() *rules.ForbiddenPatternEngine {
	return p.forbidden
}

// BuildGeneration renders the call #1 prompt. It includes the goal buckets
// with quotas, the forbidden patterns, bank excerpts as inspiration, the
// universal question texts as a do-not-duplicate list, and any strategy
// block with resolved event facts.
func (p *PromptBuilder) BuildGeneration(sc model.SurveyContext, analysis model.ContextAnalysis, facts strategy.Facts) string {
	focus := analysis.FocusAreas
	if len(focus) == 0 {
		focus = []string{"General event feedback"}
	}

	strategyBlock := ""
	if goalIDs := knownGoals(sc.Goals); len(goalIDs.must)+len(goalIDs.interested) > 0 {
		selected := map[string][]strategy.Strategy{}
		avail := facts.Available()
		for _, id := range append(append([]string{}, goalIDs.must...), goalIDs.interested...) {
			selected[id] = strategy.Applicable(id, avail, p.rules.Constraints.MustHaveWeight)
		}
		strategyBlock = strategy.FormatForPrompt(selected, facts,
			goalIDs.must, goalIDs.interested,
			p.rules.Constraints.MustHaveWeight, p.rules.Constraints.InterestedWeight)
	}

	return fmt.Sprintf(generationPromptTemplate,
		orDefault(analysis.EventType, "Music Festival"),
		orDefault(analysis.EventName, "Untitled Event"),
		orDefault(analysis.Audience, "Attendees"),
		orDefault(analysis.Timing, "Not specified"),
		orDefault(analysis.AdditionalContext, "None"),
		bulletList(focus),
		p.rules.Constraints.MustHaveWeight,
		p.rules.Constraints.InterestedWeight,
		analysis.TargetCount,
		strategyBlock,
		bank.FormatForPrompt(p.bank, orDefault(analysis.EventName, "the event")),
		bulletList(p.forbidden.Patterns()),
		numberedList(universal.Texts()),
	)
}

// BuildValidation renders the call #2 prompt around the generated sections.
func (p *PromptBuilder) BuildValidation(sections []model.Section, analysis model.ContextAnalysis) string {
	focus := analysis.FocusAreas
	if len(focus) == 0 {
		focus = []string{"General event feedback"}
	}
	encoded, _ := json.MarshalIndent(map[string][]model.Section{"sections": sections}, "", "  ")
	return fmt.Sprintf(validationPromptTemplate,
		bulletList(focus),
		p.rules.Constraints.MustHaveWeight,
		p.rules.Constraints.InterestedWeight,
		string(encoded),
	)
}

// BuildRefinement renders the call #3 prompt from the original output and
// the validator's feedback.
func (p *PromptBuilder) BuildRefinement(sections []model.Section, verdict model.ValidationResult, analysis model.ContextAnalysis) string {
	focus := analysis.FocusAreas
	if len(focus) == 0 {
		focus = []string{"General event feedback"}
	}
	instructions := verdict.RefinementInstructions
	if instructions == "" {
		instructions = "Fix any issues identified in the validation feedback."
	}
	questionsJSON, _ := json.MarshalIndent(map[string][]model.Section{"sections": sections}, "", "  ")
	verdictJSON, _ := json.MarshalIndent(verdict, "", "  ")
	return fmt.Sprintf(refinementPromptTemplate,
		string(questionsJSON),
		string(verdictJSON),
		instructions,
		bulletList(focus),
	)
}

type goalIDBuckets struct {
	must       []string
	interested []string
}

// knownGoals filters the goal buckets down to identifiers present in the
// strategy catalog. Free-text goals still shape the prompt through focus
// areas; only recognized IDs get strategy blocks.
func knownGoals(g model.GoalBuckets) goalIDBuckets {
	var out goalIDBuckets
	for _, id := range g.MustHave {
		if _, ok := strategy.ForGoal(normalizeGoalID(id)); ok {
			out.must = append(out.must, normalizeGoalID(id))
		}
	}
	for _, id := range g.Interested {
		if _, ok := strategy.ForGoal(normalizeGoalID(id)); ok {
			out.interested = append(out.interested, normalizeGoalID(id))
		}
	}
	return out
}

func normalizeGoalID(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func bulletList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- " + item)
	}
	return b.String()
}

func numberedList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, item)
	}
	return b.String()
}
