package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/panorama-labs/survey-engine/internal/bank"
	"github.com/panorama-labs/survey-engine/pkg/notion"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Question bank operations",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the embedded question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(bank.All())
	},
}

var bankSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Merge curated questions from the Notion bank database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Notion.Token == "" || cfg.Notion.BankDB == "" {
			return eris.New("SURVEY_NOTION_TOKEN and SURVEY_NOTION_BANK_DB are required")
		}

		client := notion.NewClient(cfg.Notion.Token)
		extra, err := bank.SyncFromNotion(cmd.Context(), client, cfg.Notion.BankDB)
		if err != nil {
			return eris.Wrap(err, "sync question bank")
		}

		merged := bank.Merged(extra)
		zap.L().Info("question bank synced",
			zap.Int("notion_entries", len(extra)),
			zap.Int("total_entries", len(merged)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(merged)
	},
}

func init() {
	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankSyncCmd)
	rootCmd.AddCommand(bankCmd)
}
