package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/panorama-labs/survey-engine/internal/model"
	"github.com/panorama-labs/survey-engine/pkg/anthropic"
)

const extractionSystemPrompt = `You are an event data extraction assistant. You read raw web page content for a live music or festival event and return structured facts as JSON.

Return ONLY a JSON object with this exact shape:
{
  "description": "2-4 sentence event description, or null",
  "venue": "venue name and location, or null",
  "lineup": [{"name": "Artist Name", "rank": 1}],
  "pricing_tiers": [{"name": "Tier Name", "price": "$99.00"}],
  "vip_info": {"enabled": false, "tiers": [], "included": []}
}

Rules:
- rank 1 is the headliner; number support acts in billing order.
- pricing_tiers covers TICKET prices only. Do NOT include drink, beverage, or bar pricing of any kind.
- Use null for fields the page does not state. Never invent data.
- Prices keep their currency symbol, formatted to two decimals where a number is given.`

const extractionPromptTemplate = `Extract event data from this page content.

URL: %s

PAGE CONTENT:
%s`

// llmExtraction mirrors the JSON shape the extraction prompt asks for.
type llmExtraction struct {
	Description  *string             `json:"description"`
	Venue        *string             `json:"venue"`
	Lineup       []model.Artist      `json:"lineup"`
	PricingTiers []model.PricingTier `json:"pricing_tiers"`
	VIP          *model.VIPInfo      `json:"vip_info"`
}

// LLMExtractor runs the model-based extraction pass over cleaned page text.
type LLMExtractor struct {
	llm   anthropic.Client
	model string
}

func NewLLMExtractor(llm anthropic.Client, modelName string) *LLMExtractor {
	return &LLMExtractor{llm: llm, model: modelName}
}

// Extract sends cleaned page content to the model and parses the result.
// Content should already be length-capped by CleanHTML.
func (e *LLMExtractor) Extract(ctx context.Context, pageURL, content string) (model.ExtractedEventData, error) {
	var out model.ExtractedEventData
	if strings.TrimSpace(content) == "" {
		return out, nil
	}

	temp := 0.0
	resp, err := e.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       e.model,
		MaxTokens:   2000,
		System:      anthropic.BuildCachedSystemBlocks(extractionSystemPrompt),
		Messages:    []anthropic.Message{{Role: "user", Content: fmt.Sprintf(extractionPromptTemplate, pageURL, content)}},
		Temperature: &temp,
	})
	if err != nil {
		return out, eris.Wrap(err, "extract: llm extraction call")
	}

	var parsed llmExtraction
	if err := json.Unmarshal([]byte(cleanJSONObject(resp.Text())), &parsed); err != nil {
		return out, eris.Wrap(err, "extract: parse llm extraction")
	}

	if parsed.Description != nil {
		out.Description = strings.TrimSpace(*parsed.Description)
	}
	if parsed.Venue != nil {
		out.Venue = strings.TrimSpace(*parsed.Venue)
	}
	out.Lineup = parsed.Lineup
	out.PricingTiers = parsed.PricingTiers
	if parsed.VIP != nil {
		out.VIP = *parsed.VIP
	}
	out.SourceURL = pageURL
	return out, nil
}

// cleanJSONObject strips code fences and leading prose, keeping the
// outermost JSON object.
func cleanJSONObject(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
