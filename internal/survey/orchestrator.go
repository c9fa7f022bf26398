package survey

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/panorama-labs/survey-engine/internal/bank"
	"github.com/panorama-labs/survey-engine/internal/model"
	"github.com/panorama-labs/survey-engine/internal/rules"
	"github.com/panorama-labs/survey-engine/internal/strategy"
	"github.com/panorama-labs/survey-engine/pkg/anthropic"
)

// Outcome reports how a question set was produced. Degraded modes are
// ordinary results, not errors.
type Outcome int

const (
	// OutcomeGenerated means the set came from call #1 (validation passed
	// or was skipped).
	OutcomeGenerated Outcome = iota
	// OutcomeRefined means the set went through the call #3 rewrite.
	OutcomeRefined
	// OutcomeFallback means generation failed and the static set was used.
	OutcomeFallback
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRefined:
		return "refined"
	case OutcomeFallback:
		return "fallback"
	}
	return "generated"
}

// genState tracks progress through the generation sequence.
type genState int

const (
	stateAnalyzed genState = iota
	stateGenerated
	stateValidated
	stateRefined
	stateNormalized
)

// Result is the outcome of one generation request.
type Result struct {
	Questions []model.Question
	Outcome   Outcome
	Analysis  model.ContextAnalysis
	Usage     anthropic.TokenUsage
}

// Generator runs the three-call generation sequence: generate, validate,
// and conditionally refine, followed by deterministic normalization and
// placeholder resolution. The calls are strictly sequential; none is
// retried. Every degraded path lands on a usable question set.
type Generator struct {
	llm        anthropic.Client
	model      string
	analyzer   *Analyzer
	prompts    *PromptBuilder
	normalizer *Normalizer
}

func NewGenerator(llm anthropic.Client, modelName string, r rules.Rules, bankEntries []bank.Entry) *Generator {
	prompts := NewPromptBuilder(r, bankEntries)
	return &Generator{
		llm:        llm,
		model:      modelName,
		analyzer:   NewAnalyzer(r.Constraints),
		prompts:    prompts,
		normalizer: NewNormalizer(prompts.Forbidden()),
	}
}

func ptr(f float64) *float64 { return &f }

// Generate produces a question set for the given context. LLM failures at
// any stage degrade (fallback set, skipped validation, kept original) and
// never surface as errors; only malformed caller input errors out.
func (g *Generator) Generate(ctx context.Context, sc model.SurveyContext, facts strategy.Facts) (*Result, error) {
	if sc.EventName == "" && sc.Goals.Empty() && sc.LearningObjectives == "" {
		return nil, eris.New("survey: context has no event name, goals, or objectives")
	}

	result := &Result{}
	state := stateAnalyzed

	analysis := g.analyzer.Analyze(sc)
	result.Analysis = analysis

	// Call #1: generate.
	genText, err := g.call(ctx, result, "generation", generationSystemPrompt,
		g.prompts.BuildGeneration(sc, analysis, facts), 8192, 0.7)
	parsed := ParseGeneration(genText)
	if err != nil || parsed.Kind == ParseUnparseable {
		if err != nil {
			zap.L().Warn("survey: generation call failed, using fallback", zap.Error(err))
		} else {
			zap.L().Warn("survey: unparseable generation output, using fallback")
		}
		result.Questions = FallbackQuestions(sc.EventName, analysis.TargetCount)
		result.Outcome = OutcomeFallback
		return result, nil
	}
	state = stateGenerated
	result.Outcome = OutcomeGenerated

	sections := parsed.Sections
	if parsed.Kind == ParseFlatList {
		sections = []model.Section{{Name: "Survey Questions", Questions: parsed.Questions}}
	}

	// Call #2: validate. Failures pass the verdict open.
	valText, err := g.call(ctx, result, "validation", validationSystemPrompt,
		g.prompts.BuildValidation(sections, analysis), 2000, 0.3)
	verdict := model.ValidationResult{Passed: true}
	if err != nil {
		zap.L().Warn("survey: validation call failed, passing open", zap.Error(err))
	} else {
		verdict = ParseValidation(valText)
	}
	state = stateValidated

	// Call #3: refine, only on an explicit failed verdict. A refinement
	// that fails to parse keeps the pre-refinement set.
	if !verdict.Passed {
		refText, err := g.call(ctx, result, "refinement", refinementSystemPrompt,
			g.prompts.BuildRefinement(sections, verdict, analysis), 8192, 0.5)
		if err != nil {
			zap.L().Warn("survey: refinement call failed, keeping original", zap.Error(err))
		} else if refined := ParseGeneration(refText); refined.Kind != ParseUnparseable {
			if refined.Kind == ParseFlatList {
				sections = []model.Section{{Name: "Survey Questions", Questions: refined.Questions}}
			} else {
				sections = refined.Sections
			}
			result.Outcome = OutcomeRefined
			state = stateRefined
		} else {
			zap.L().Warn("survey: unparseable refinement output, keeping original")
		}
	}

	flat := model.FlattenSections(sections)
	resolved := strategy.ResolveAll(flat, facts)
	result.Questions = g.normalizer.Normalize(resolved)
	state = stateNormalized

	result.Usage.LogCost(g.model, "survey generation")
	zap.L().Info("survey: generation complete",
		zap.String("outcome", result.Outcome.String()),
		zap.Int("questions", len(result.Questions)),
		zap.Int("target", analysis.TargetCount),
		zap.Int("final_state", int(state)))

	return result, nil
}

// call issues one LLM request and accumulates token usage on the result.
func (g *Generator) call(ctx context.Context, result *Result, phase, system, user string, maxTokens int64, temperature float64) (string, error) {
	resp, err := g.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       g.model,
		MaxTokens:   maxTokens,
		System:      anthropic.BuildCachedSystemBlocks(system),
		Messages:    []anthropic.Message{{Role: "user", Content: user}},
		Temperature: ptr(temperature),
	})
	if err != nil {
		return "", eris.Wrap(err, "survey: "+phase+" call")
	}
	result.Usage.Add(resp.Usage)
	return resp.Text(), nil
}
