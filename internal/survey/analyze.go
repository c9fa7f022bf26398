// Package survey implements the question generation pipeline: context
// analysis, prompt construction, the three-call LLM sequence, and
// deterministic response normalization.
package survey

import (
	"regexp"
	"strings"

	"github.com/panorama-labs/survey-engine/internal/model"
	"github.com/panorama-labs/survey-engine/internal/rules"
)

// focusSplitRe matches the delimiters users put between goals: commas,
// semicolons, newlines, and bullet markers.
var focusSplitRe = regexp.MustCompile(`[,;\n\-•*]`)

// sentinel values meaning "the user left this blank".
var emptySentinels = map[string]bool{
	"":                 true,
	"none":             true,
	"not specified":    true,
	"general feedback": true,
}

// Analyzer derives a ContextAnalysis from raw survey context. Pure
// computation, no I/O.
type Analyzer struct {
	constraints rules.Constraints
}

func NewAnalyzer(c rules.Constraints) *Analyzer {
	return &Analyzer{constraints: c}
}

// Analyze extracts focus areas from the goal buckets and learning
// objectives, and computes the target question count from bucket sizes.
// Missing or empty fields default rather than fail. The not-important
// bucket contributes nothing to the target. additional_context is advisory
// text for the prompt only and is never parsed into focus areas.
func (a *Analyzer) Analyze(sc model.SurveyContext) model.ContextAnalysis {
	var focus []string
	focus = append(focus, splitFocusItems(strings.Join(sc.Goals.MustHave, ", "))...)
	focus = append(focus, splitFocusItems(strings.Join(sc.Goals.Interested, ", "))...)
	focus = append(focus, splitFocusItems(sc.LearningObjectives)...)

	return model.ContextAnalysis{
		FocusAreas:        dedupeOrdered(focus),
		TargetCount:       a.constraints.TargetCount(len(sc.Goals.MustHave), len(sc.Goals.Interested)),
		EventType:         sc.EventType,
		EventName:         sc.EventName,
		Audience:          sc.Audience,
		Timing:            sc.Timing,
		AdditionalContext: sc.AdditionalContext,
	}
}

// splitFocusItems breaks a free-text field into candidate focus areas,
// dropping blanks, sentinels, and fragments too short to mean anything.
func splitFocusItems(raw string) []string {
	if emptySentinels[strings.ToLower(strings.TrimSpace(raw))] {
		return nil
	}
	var out []string
	for _, item := range focusSplitRe.Split(raw, -1) {
		item = strings.TrimSpace(item)
		if len(item) > 3 {
			out = append(out, item)
		}
	}
	return out
}

// dedupeOrdered removes case-insensitive duplicates, keeping first-seen
// order and original casing.
func dedupeOrdered(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
