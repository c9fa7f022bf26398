package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/panorama-labs/survey-engine/internal/model"
	"github.com/panorama-labs/survey-engine/internal/pulse"
	anthropicpkg "github.com/panorama-labs/survey-engine/pkg/anthropic"
)

var (
	pulseEventName string
	pulseGoals     []string
	pulseAudience  string
)

var pulseCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Generate a short DM-style pulse survey",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Anthropic.Key == "" {
			return eris.New("SURVEY_ANTHROPIC_KEY is required")
		}

		gen := pulse.NewGenerator(anthropicpkg.NewClient(cfg.Anthropic.Key), cfg.Anthropic.HaikuModel)
		questions := gen.Generate(cmd.Context(), model.SurveyContext{
			EventName: pulseEventName,
			Goals:     model.GoalBuckets{MustHave: pulseGoals},
			Audience:  pulseAudience,
		})

		zap.L().Info("pulse survey generated",
			zap.String("event", pulseEventName),
			zap.Int("questions", len(questions)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(questions)
	},
}

func init() {
	pulseCmd.Flags().StringVar(&pulseEventName, "event", "", "event name")
	pulseCmd.Flags().StringSliceVar(&pulseGoals, "goal", nil, "pulse survey goals")
	pulseCmd.Flags().StringVar(&pulseAudience, "audience", "", "audience description")
	rootCmd.AddCommand(pulseCmd)
}
