package rules

import "strings"

// ForbiddenPatternEngine checks question text against a phase's forbidden
// phrasings. Matching is case-insensitive substring match, which trades a
// small false-positive risk (a pattern embedded in an otherwise fine
// question) for never missing a banned phrasing.
type ForbiddenPatternEngine struct {
	patterns []string
}

// NewForbiddenPatternEngine builds an engine over the given patterns.
// Patterns are lowercased once at construction.
func NewForbiddenPatternEngine(patterns []string) *ForbiddenPatternEngine {
	lowered := make([]string, len(patterns))
	for i, p := range patterns {
		lowered[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return &ForbiddenPatternEngine{patterns: lowered}
}

// Match returns the first forbidden pattern contained in text, if any.
func (e *ForbiddenPatternEngine) Match(text string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, p := range e.patterns {
		if p != "" && strings.Contains(lowered, p) {
			return p, true
		}
	}
	return "", false
}

// Forbidden reports whether text contains any forbidden pattern.
func (e *ForbiddenPatternEngine) Forbidden(text string) bool {
	_, ok := e.Match(text)
	return ok
}

// Patterns returns the engine's lowercased pattern list, for prompt building.
func (e *ForbiddenPatternEngine) Patterns() []string {
	return e.patterns
}
