package bank

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/panorama-labs/survey-engine/internal/model"
	"github.com/panorama-labs/survey-engine/pkg/notion"
)

// SyncFromNotion pulls additional question templates from a Notion database
// maintained by the research team. Rows missing a question text are skipped.
// Expected columns: Question (title), Category (select), Type (select),
// Options (rich text, comma-separated), Required (checkbox).
func SyncFromNotion(ctx context.Context, client notion.Client, dbID string) ([]Entry, error) {
	pages, err := notion.QueryAll(ctx, client, dbID, nil)
	if err != nil {
		return nil, eris.Wrap(err, "bank: query notion database")
	}

	var entries []Entry
	for _, page := range pages {
		text := notion.Title(page, "Question")
		if strings.TrimSpace(text) == "" {
			zap.L().Warn("bank: skipping notion row without question text",
				zap.String("page_id", string(page.ID)))
			continue
		}

		entry := Entry{
			ID:       "notion_" + string(page.ID),
			Template: text,
			Type:     model.CoerceType(notion.Select(page, "Type")),
			Category: notion.Select(page, "Category"),
			Required: notion.Checkbox(page, "Required"),
		}
		if raw := notion.RichText(page, "Options"); raw != "" {
			for _, opt := range strings.Split(raw, ",") {
				if opt = strings.TrimSpace(opt); opt != "" {
					entry.Options = append(entry.Options, opt)
				}
			}
		}
		if entry.Category == "" {
			entry.Category = "expectations"
		}
		entries = append(entries, entry)
	}

	zap.L().Info("bank: synced question templates from notion",
		zap.Int("count", len(entries)))
	return entries, nil
}

// Merged returns the static catalog plus extra entries, dropping extras whose
// rendered text duplicates a static template case-insensitively.
func Merged(extra []Entry) []Entry {
	seen := make(map[string]bool, len(catalog))
	for _, e := range catalog {
		seen[strings.ToLower(e.Template)] = true
	}

	out := All()
	for _, e := range extra {
		key := strings.ToLower(e.Template)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}
