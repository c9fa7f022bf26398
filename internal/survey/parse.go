package survey

import (
	"encoding/json"
	"strings"

	"github.com/panorama-labs/survey-engine/internal/model"
)

// ParseKind tags the shape a generation response parsed into.
type ParseKind int

const (
	// ParseUnparseable means no question structure could be recovered.
	ParseUnparseable ParseKind = iota
	// ParseSections means the response carried the sections structure.
	ParseSections
	// ParseFlatList means the response was a legacy flat question list.
	ParseFlatList
)

// ParseResult is the tagged outcome of parsing a generation response.
// Exactly one of Sections/Questions is populated, matching Kind.
type ParseResult struct {
	Kind      ParseKind
	Sections  []model.Section
	Questions []model.Question
}

// Flatten returns the parsed questions as a single ordered list.
func (r ParseResult) Flatten() []model.Question {
	switch r.Kind {
	case ParseSections:
		return model.FlattenSections(r.Sections)
	case ParseFlatList:
		return r.Questions
	}
	return nil
}

// rawQuestion tolerates malformed fields: a non-list options value decodes
// to nil instead of failing the whole response.
type rawQuestion struct {
	Text     string          `json:"question_text"`
	Type     string          `json:"question_type"`
	Options  json.RawMessage `json:"options"`
	Required bool            `json:"required"`
}

func (r rawQuestion) toQuestion() model.Question {
	q := model.Question{
		Text:     r.Text,
		Type:     model.QuestionType(r.Type),
		Required: r.Required,
	}
	if len(r.Options) > 0 {
		var opts []string
		if err := json.Unmarshal(r.Options, &opts); err == nil {
			q.Options = opts
		}
	}
	return q
}

type rawSection struct {
	Name      string        `json:"section_name"`
	Questions []rawQuestion `json:"questions"`
}

type rawEnvelope struct {
	Sections  []rawSection  `json:"sections"`
	Questions []rawQuestion `json:"questions"`
}

// ParseGeneration parses an LLM generation response into its tagged shape.
// Accepted forms, in order: an object with "sections", an object with a
// flat "questions" list, a bare JSON array of questions. Markdown fences
// and prose around the JSON are stripped first. Anything else is
// Unparseable.
func ParseGeneration(content string) ParseResult {
	cleaned := cleanJSON(content)
	if cleaned == "" {
		return ParseResult{Kind: ParseUnparseable}
	}

	if strings.HasPrefix(cleaned, "[") {
		var raw []rawQuestion
		if err := json.Unmarshal([]byte(cleaned), &raw); err != nil || len(raw) == 0 {
			return ParseResult{Kind: ParseUnparseable}
		}
		return ParseResult{Kind: ParseFlatList, Questions: convertQuestions(raw)}
	}

	var env rawEnvelope
	if err := json.Unmarshal([]byte(cleaned), &env); err != nil {
		return ParseResult{Kind: ParseUnparseable}
	}

	if len(env.Sections) > 0 {
		sections := make([]model.Section, 0, len(env.Sections))
		for _, s := range env.Sections {
			sections = append(sections, model.Section{
				Name:      s.Name,
				Questions: convertQuestions(s.Questions),
			})
		}
		return ParseResult{Kind: ParseSections, Sections: sections}
	}
	if len(env.Questions) > 0 {
		return ParseResult{Kind: ParseFlatList, Questions: convertQuestions(env.Questions)}
	}

	return ParseResult{Kind: ParseUnparseable}
}

func convertQuestions(raw []rawQuestion) []model.Question {
	out := make([]model.Question, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.toQuestion())
	}
	return out
}

// ParseValidation parses the call #2 verdict. Any parse failure or missing
// field yields a passing verdict; the judge failing to respond must never
// block the pipeline.
func ParseValidation(content string) model.ValidationResult {
	cleaned := cleanJSON(content)
	if cleaned == "" {
		return model.ValidationResult{Passed: true}
	}

	var raw struct {
		Passed       *bool  `json:"validation_passed"`
		Instructions string `json:"refinement_instructions"`
	}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil || raw.Passed == nil {
		return model.ValidationResult{Passed: true}
	}
	return model.ValidationResult{
		Passed:                 *raw.Passed,
		RefinementInstructions: raw.Instructions,
	}
}

// cleanJSON strips markdown code fences and surrounding prose, returning
// the outermost JSON object or array embedded in the text.
func cleanJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx >= 0 {
			content = content[:idx]
		}
		content = strings.TrimSpace(content)
	}

	objStart := strings.Index(content, "{")
	arrStart := strings.Index(content, "[")
	if arrStart >= 0 && (objStart < 0 || arrStart < objStart) {
		if end := strings.LastIndex(content, "]"); end > arrStart {
			return content[arrStart : end+1]
		}
	}
	if objStart >= 0 {
		if end := strings.LastIndex(content, "}"); end > objStart {
			return content[objStart : end+1]
		}
	}
	return ""
}
