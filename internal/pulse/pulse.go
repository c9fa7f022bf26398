// Package pulse generates short mid-event surveys delivered over Instagram
// DM. A pulse survey is a single LLM call producing 3 to 7 questions
// restricted to text and single-select types.
package pulse

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/panorama-labs/survey-engine/internal/model"
	"github.com/panorama-labs/survey-engine/pkg/anthropic"
)

const (
	minQuestions = 3
	maxQuestions = 7
)

const systemPrompt = `You write ultra-short mid-event pulse surveys delivered as Instagram DMs. Questions must be answerable in seconds on a phone: short text answers or a single tap.

Respond with a single valid JSON object: {"questions": [{"question_text": string, "question_type": "text" | "single-select", "options": [string] or null, "required": boolean}]}. Generate between 3 and 7 questions, nothing else.`

const promptTemplate = `Write a pulse survey for an event happening right now.

EVENT DETAILS:
- Event type: %s
- Event name: %s
- Goals: %s
- Learning objectives: %s
- Audience: %s
- Timing: %s
- Additional context: %s

Keep every question about the live experience: the current set, queues, sound, bar, vibe. No email addresses, no demographics, nothing that needs a keyboard essay.

Respond with JSON only.`

// Generator produces pulse surveys with one LLM call.
type Generator struct {
	llm   anthropic.Client
	model string
}

func NewGenerator(llm anthropic.Client, modelName string) *Generator {
	return &Generator{llm: llm, model: modelName}
}

func ptr(f float64) *float64 { return &f }

// Generate returns 3-7 pulse questions. Any LLM failure degrades to the
// static fallback; under-length responses are topped up from it and
// over-length responses truncated.
func (g *Generator) Generate(ctx context.Context, sc model.SurveyContext) []model.Question {
	goals := strings.Join(append(append([]string{}, sc.Goals.MustHave...), sc.Goals.Interested...), ", ")
	if goals == "" {
		goals = "Gather feedback"
	}

	prompt := fmt.Sprintf(promptTemplate,
		orDefault(sc.EventType, "Music Festival"),
		orDefault(sc.EventName, "Untitled Event"),
		goals,
		orDefault(sc.LearningObjectives, "General feedback"),
		orDefault(sc.Audience, "Attendees"),
		orDefault(sc.Timing, "Not specified"),
		orDefault(sc.AdditionalContext, "None"),
	)

	resp, err := g.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       g.model,
		MaxTokens:   2000,
		System:      anthropic.BuildCachedSystemBlocks(systemPrompt),
		Messages:    []anthropic.Message{{Role: "user", Content: prompt}},
		Temperature: ptr(0.7),
	})
	if err != nil {
		zap.L().Warn("pulse: generation call failed, using fallback", zap.Error(err))
		return Fallback(sc.EventName)
	}
	resp.Usage.LogCost(g.model, "pulse generation")

	questions := parse(resp.Text())
	if len(questions) == 0 {
		zap.L().Warn("pulse: unparseable generation output, using fallback")
		return Fallback(sc.EventName)
	}
	return enforceBounds(questions, sc.EventName)
}

func parse(content string) []model.Question {
	content = strings.TrimSpace(content)
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil
	}

	var env struct {
		Questions []struct {
			Text     string          `json:"question_text"`
			Type     string          `json:"question_type"`
			Options  json.RawMessage `json:"options"`
			Required bool            `json:"required"`
		} `json:"questions"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &env); err != nil {
		return nil
	}

	var out []model.Question
	for _, raw := range env.Questions {
		text := strings.TrimSpace(raw.Text)
		if text == "" {
			continue
		}

		qType := model.CoerceType(raw.Type)
		var options []string
		if qType == model.TypeSingleSelect {
			if err := json.Unmarshal(raw.Options, &options); err != nil || len(options) == 0 {
				qType = model.TypeText
				options = nil
			}
		} else if qType != model.TypeText {
			// Pulse surveys allow only text and single-select.
			qType = model.TypeText
			options = nil
		}

		out = append(out, model.Question{
			Text:     text,
			Type:     qType,
			Options:  options,
			Required: raw.Required,
			Order:    len(out),
		})
	}
	return out
}

// enforceBounds tops up short sets from the fallback and caps long ones.
func enforceBounds(questions []model.Question, eventName string) []model.Question {
	if len(questions) < minQuestions {
		for _, fb := range Fallback(eventName) {
			if len(questions) >= minQuestions {
				break
			}
			fb.Order = len(questions)
			questions = append(questions, fb)
		}
	}
	if len(questions) > maxQuestions {
		questions = questions[:maxQuestions]
	}
	return questions
}

// Fallback is the static pulse survey used when generation fails.
func Fallback(eventName string) []model.Question {
	if eventName == "" {
		eventName = "this event"
	}
	return []model.Question{
		{
			Text:     fmt.Sprintf("How would you rate your overall experience at %s?", eventName),
			Type:     model.TypeSingleSelect,
			Options:  []string{"Excellent", "Very Good", "Good", "Fair", "Poor"},
			Required: true,
			Order:    0,
		},
		{
			Text:  "What was your favorite part of the event?",
			Type:  model.TypeText,
			Order: 1,
		},
		{
			Text:     "Would you attend this event again?",
			Type:     model.TypeSingleSelect,
			Options:  []string{"Definitely", "Probably", "Maybe", "Probably Not", "Definitely Not"},
			Required: true,
			Order:    2,
		},
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
