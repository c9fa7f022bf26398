package notion

import (
	"context"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	pages [][]notionapi.Page
	calls int
}

func (f *fakeClient) QueryDatabase(_ context.Context, _ string, _ *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	batch := f.pages[f.calls]
	f.calls++
	return &notionapi.DatabaseQueryResponse{
		Results:    batch,
		HasMore:    f.calls < len(f.pages),
		NextCursor: notionapi.Cursor("next"),
	}, nil
}

func (f *fakeClient) CreatePage(_ context.Context, _ *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	return &notionapi.Page{}, nil
}

func TestQueryAll_Pagination(t *testing.T) {
	t.Parallel()

	fake := &fakeClient{pages: [][]notionapi.Page{
		{{ID: "a"}, {ID: "b"}},
		{{ID: "c"}},
	}}

	all, err := QueryAll(context.Background(), fake, "db-id", nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 2, fake.calls)
}

func TestPropertyHelpers(t *testing.T) {
	t.Parallel()

	page := notionapi.Page{
		Properties: notionapi.Properties{
			"Question": &notionapi.TitleProperty{
				Title: []notionapi.RichText{{PlainText: "What brings you to {event_name}?"}},
			},
			"Category": &notionapi.SelectProperty{
				Select: notionapi.Option{Name: "motivation"},
			},
			"Required": &notionapi.CheckboxProperty{Checkbox: true},
			"Options": &notionapi.RichTextProperty{
				RichText: []notionapi.RichText{{PlainText: "Music, Food, Friends"}},
			},
		},
	}

	assert.Equal(t, "What brings you to {event_name}?", Title(page, "Question"))
	assert.Equal(t, "motivation", Select(page, "Category"))
	assert.True(t, Checkbox(page, "Required"))
	assert.Equal(t, "Music, Food, Friends", RichText(page, "Options"))

	assert.Empty(t, Title(page, "Missing"))
	assert.False(t, Checkbox(page, "Missing"))
}
