package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/panorama-labs/survey-engine/internal/rules"
)

var goalsCmd = &cobra.Command{
	Use:   "goals [phase]",
	Short: "List goal templates for a survey phase (plan, pulse, playback)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		phase := rules.PhasePlan
		if len(args) > 0 {
			phase = rules.Phase(args[0])
		}
		if !phase.Valid() {
			return eris.Errorf("unknown phase %q", string(phase))
		}

		out := struct {
			Phase     string               `json:"phase"`
			Info      rules.PhaseInfo      `json:"info"`
			Templates []rules.GoalTemplate `json:"templates"`
		}{string(phase), rules.Info(phase), rules.GoalTemplates(phase)}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	rootCmd.AddCommand(goalsCmd)
}
