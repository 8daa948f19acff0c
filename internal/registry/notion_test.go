package registry

import (
	"context"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNotion returns a fixed page set for any query.
type fakeNotion struct {
	pages []notionapi.Page
	err   error
}

func (f *fakeNotion) QueryDatabase(_ context.Context, _ string, _ *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &notionapi.DatabaseQueryResponse{Results: f.pages}, nil
}

func memberPage(id, name, email, role string, capacity float64) notionapi.Page {
	return notionapi.Page{
		ID: notionapi.ObjectID(id),
		Properties: notionapi.Properties{
			"Name": &notionapi.TitleProperty{
				Title: []notionapi.RichText{{PlainText: name}},
			},
			"Email": &notionapi.EmailProperty{Email: email},
			"Role": &notionapi.SelectProperty{
				Select: notionapi.Option{Name: role},
			},
			"Capacity": &notionapi.NumberProperty{Number: capacity},
		},
	}
}

func TestLoadNotionRoster(t *testing.T) {
	client := &fakeNotion{pages: []notionapi.Page{
		memberPage("p1", "Priya Nair", "priya@company.co", "Senior AE", 30),
		memberPage("p2", "Arjun Sharma", "arjun@company.co", "SDR", 60),
		memberPage("p3", "Vikram Sethi", "vikram@company.co", "Senior AE", 30),
	}}

	roster, err := LoadNotionRoster(context.Background(), client, "db-1")
	require.NoError(t, err)

	require.Len(t, roster["Senior AE"], 2)
	assert.Equal(t, "Priya Nair", roster["Senior AE"][0].Name)
	assert.Equal(t, "Vikram Sethi", roster["Senior AE"][1].Name)
	assert.Equal(t, 30, roster["Senior AE"][0].Capacity)
	require.Len(t, roster["SDR"], 1)
	assert.Equal(t, "arjun@company.co", roster["SDR"][0].Email)
}

func TestLoadNotionRoster_SkipsMalformedPages(t *testing.T) {
	missingRole := notionapi.Page{
		ID: "p-bad",
		Properties: notionapi.Properties{
			"Name": &notionapi.TitleProperty{
				Title: []notionapi.RichText{{PlainText: "No Role"}},
			},
		},
	}
	client := &fakeNotion{pages: []notionapi.Page{
		missingRole,
		memberPage("p1", "Tara Singh", "tara@company.co", "AE", 50),
	}}

	roster, err := LoadNotionRoster(context.Background(), client, "db-1")
	require.NoError(t, err)
	assert.Len(t, roster, 1)
	assert.Len(t, roster["AE"], 1)
}

func TestLoadNotionRoster_Empty(t *testing.T) {
	client := &fakeNotion{}

	_, err := LoadNotionRoster(context.Background(), client, "db-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestLoadNotionRoster_QueryError(t *testing.T) {
	client := &fakeNotion{err: eris.New("api down")}

	_, err := LoadNotionRoster(context.Background(), client, "db-1")
	require.Error(t, err)
}
