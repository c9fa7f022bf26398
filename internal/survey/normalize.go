package survey

import (
	"strings"

	"github.com/panorama-labs/survey-engine/internal/model"
	"github.com/panorama-labs/survey-engine/internal/rules"
	"github.com/panorama-labs/survey-engine/internal/universal"
	"go.uber.org/zap"
)

// Normalizer turns raw generated questions into a clean ordered list.
// It is deterministic and idempotent: running it over its own output
// changes nothing.
type Normalizer struct {
	forbidden      *rules.ForbiddenPatternEngine
	universalTexts map[string]bool
}

func NewNormalizer(forbidden *rules.ForbiddenPatternEngine) *Normalizer {
	texts := make(map[string]bool)
	for _, t := range universal.Texts() {
		texts[strings.ToLower(t)] = true
	}
	return &Normalizer{forbidden: forbidden, universalTexts: texts}
}

// Normalize applies the drop/coerce sequence to each candidate in order:
// empty text, universal duplicate, demographic keyword, and forbidden
// pattern checks drop the question; then the type is coerced to the closed
// enum, option-requiring types without options are demoted to text, likert
// options are forced to the canonical scale, and surviving questions are
// renumbered from 0. Survival order is the only ordering.
func (n *Normalizer) Normalize(candidates []model.Question) []model.Question {
	out := make([]model.Question, 0, len(candidates))

	for _, q := range candidates {
		text := strings.TrimSpace(q.Text)
		if text == "" {
			continue
		}
		if n.universalTexts[strings.ToLower(text)] {
			zap.L().Debug("normalize: dropped universal duplicate", zap.String("text", text))
			continue
		}
		if universal.IsDemographic(text) {
			zap.L().Debug("normalize: dropped demographic question", zap.String("text", text))
			continue
		}
		if pattern, hit := n.forbidden.Match(text); hit {
			zap.L().Debug("normalize: dropped forbidden question",
				zap.String("text", text), zap.String("pattern", pattern))
			continue
		}

		qType := model.CoerceType(string(q.Type))
		options := q.Options
		if qType.RequiresOptions() {
			if len(options) == 0 {
				qType = model.TypeText
				options = nil
			} else if qType == model.TypeLikert {
				options = append([]string(nil), model.LikertScale...)
			}
		} else {
			options = nil
		}

		out = append(out, model.Question{
			Text:     text,
			Type:     qType,
			Options:  options,
			Required: q.Required,
			Order:    len(out),
		})
	}

	return out
}
