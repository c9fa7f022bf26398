package notion

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
)

// QueryAll fetches all pages from a Notion database, handling pagination.
// Rate limiting is enforced by the Client (3 req/s by default).
func QueryAll(ctx context.Context, c Client, dbID string, filter *notionapi.DatabaseQueryRequest) ([]notionapi.Page, error) {
	var all []notionapi.Page

	req := &notionapi.DatabaseQueryRequest{}
	if filter != nil {
		req.Filter = filter.Filter
		req.Sorts = filter.Sorts
		req.PageSize = filter.PageSize
	}

	for {
		resp, err := c.QueryDatabase(ctx, dbID, req)
		if err != nil {
			return nil, eris.Wrap(err, "notion: query all page")
		}

		all = append(all, resp.Results...)

		if !resp.HasMore {
			break
		}
		req = &notionapi.DatabaseQueryRequest{StartCursor: resp.NextCursor}
		if filter != nil {
			req.Filter = filter.Filter
			req.Sorts = filter.Sorts
			req.PageSize = filter.PageSize
		}
	}

	return all, nil
}

// Title extracts the plain-text title property from a page, or "" when absent.
func Title(page notionapi.Page, prop string) string {
	p, ok := page.Properties[prop]
	if !ok {
		return ""
	}
	title, ok := p.(*notionapi.TitleProperty)
	if !ok || len(title.Title) == 0 {
		return ""
	}
	return title.Title[0].PlainText
}

// RichText extracts a plain-text rich text property from a page, or "" when absent.
func RichText(page notionapi.Page, prop string) string {
	p, ok := page.Properties[prop]
	if !ok {
		return ""
	}
	rt, ok := p.(*notionapi.RichTextProperty)
	if !ok || len(rt.RichText) == 0 {
		return ""
	}
	return rt.RichText[0].PlainText
}

// Select extracts a select property's option name, or "" when absent.
func Select(page notionapi.Page, prop string) string {
	p, ok := page.Properties[prop]
	if !ok {
		return ""
	}
	sel, ok := p.(*notionapi.SelectProperty)
	if !ok {
		return ""
	}
	return sel.Select.Name
}

// Checkbox extracts a checkbox property, or false when absent.
func Checkbox(page notionapi.Page, prop string) bool {
	p, ok := page.Properties[prop]
	if !ok {
		return false
	}
	cb, ok := p.(*notionapi.CheckboxProperty)
	if !ok {
		return false
	}
	return cb.Checkbox
}
