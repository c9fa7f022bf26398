package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/panorama-labs/survey-engine/internal/cache"
	"github.com/panorama-labs/survey-engine/internal/merge"
)

var (
	extractURLs []string
	extractSave bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured event data from one or more URLs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if len(extractURLs) == 0 {
			return eris.New("at least one --url is required")
		}

		svc, err := initExtraction(cache.NewMemory())
		if err != nil {
			return err
		}

		data, err := svc.ExtractFromURLs(ctx, extractURLs)
		if err != nil {
			return eris.Wrap(err, "extract event data")
		}

		zap.L().Info("extraction complete",
			zap.Int("urls", len(extractURLs)),
			zap.Bool("has_data", data.HasData()),
		)

		if extractSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.SetCachedExtraction(ctx, merge.URLSetKey(extractURLs), data, cfg.Merge.CacheTTL()); err != nil {
				return eris.Wrap(err, "save extraction")
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	},
}

func init() {
	extractCmd.Flags().StringSliceVar(&extractURLs, "url", nil, "event page URLs")
	extractCmd.Flags().BoolVar(&extractSave, "save", false, "persist the merged extraction")
	rootCmd.AddCommand(extractCmd)
}
