package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/panorama-labs/survey-engine/internal/cache"
	"github.com/panorama-labs/survey-engine/internal/model"
	"github.com/panorama-labs/survey-engine/internal/strategy"
	"github.com/panorama-labs/survey-engine/internal/universal"
)

var (
	genEventName    string
	genEventType    string
	genEventDate    string
	genMustHave     []string
	genInterested   []string
	genNotImportant []string
	genObjectives   string
	genAudience     string
	genTiming       string
	genExtra        string
	genURLs         []string
	genBarBrands    []string
	genUniversal    []string
	genSave         bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a survey question set for an event",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		gen, err := initGenerator()
		if err != nil {
			return err
		}

		sc := model.SurveyContext{
			EventType: genEventType,
			EventName: genEventName,
			Goals: model.GoalBuckets{
				MustHave:     genMustHave,
				Interested:   genInterested,
				NotImportant: genNotImportant,
			},
			LearningObjectives: genObjectives,
			Audience:           genAudience,
			Timing:             genTiming,
			AdditionalContext:  genExtra,
		}

		// Event facts from page extraction back question placeholders.
		var eventData model.ExtractedEventData
		if len(genURLs) > 0 {
			svc, err := initExtraction(cache.NewMemory())
			if err != nil {
				return err
			}
			eventData, err = svc.ExtractFromURLs(ctx, genURLs)
			if err != nil {
				return eris.Wrap(err, "extract event data")
			}
		}
		facts := strategy.FactsFrom(genEventName, genEventDate, eventData, genBarBrands)

		result, err := gen.Generate(ctx, sc, facts)
		if err != nil {
			return eris.Wrap(err, "generate survey")
		}

		flags := make(map[string]bool, len(genUniversal))
		for _, key := range genUniversal {
			flags[key] = true
		}
		questions := append(universal.Select(flags), result.Questions...)

		zap.L().Info("survey generated",
			zap.String("event", genEventName),
			zap.String("outcome", result.Outcome.String()),
			zap.Int("questions", len(questions)),
		)

		if genSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			rec, err := st.SaveQuestionSet(ctx, genEventName, cfg.Survey.Phase, result.Outcome.String(), questions)
			if err != nil {
				return eris.Wrap(err, "save question set")
			}
			zap.L().Info("question set saved", zap.String("id", rec.ID))
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Outcome   string           `json:"outcome"`
			Questions []model.Question `json:"questions"`
		}{result.Outcome.String(), questions})
	},
}

func init() {
	generateCmd.Flags().StringVar(&genEventName, "event", "", "event name")
	generateCmd.Flags().StringVar(&genEventType, "event-type", "", "event type (festival, concert, ...)")
	generateCmd.Flags().StringVar(&genEventDate, "event-date", "", "event date")
	generateCmd.Flags().StringSliceVar(&genMustHave, "must-have", nil, "must-have goals")
	generateCmd.Flags().StringSliceVar(&genInterested, "interested", nil, "interested goals")
	generateCmd.Flags().StringSliceVar(&genNotImportant, "not-important", nil, "not-important goals")
	generateCmd.Flags().StringVar(&genObjectives, "objectives", "", "learning objectives")
	generateCmd.Flags().StringVar(&genAudience, "audience", "", "audience description")
	generateCmd.Flags().StringVar(&genTiming, "timing", "", "survey timing")
	generateCmd.Flags().StringVar(&genExtra, "context", "", "additional context (advisory only)")
	generateCmd.Flags().StringSliceVar(&genURLs, "url", nil, "event page URLs to extract facts from")
	generateCmd.Flags().StringSliceVar(&genBarBrands, "bar-brand", nil, "bar brands served at the event")
	generateCmd.Flags().StringSliceVar(&genUniversal, "universal", nil, "optional universal questions to include (phone, home_base, current_location, age_bracket, occupation)")
	generateCmd.Flags().BoolVar(&genSave, "save", false, "persist the generated question set")
	rootCmd.AddCommand(generateCmd)
}
