package taxonomy

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/wp-migrate/models"
)

func post(slug, title string, terms ...models.TermRef) models.ContentItem {
	return models.ContentItem{
		ID:     slug,
		Title:  title,
		Slug:   slug,
		Type:   models.TypePost,
		Status: models.StatusPublish,
		Terms:  terms,
	}
}

func cat(nicename, name string) models.TermRef {
	return models.TermRef{Domain: models.DomainCategory, Nicename: nicename, Name: name}
}

func tag(nicename, name string) models.TermRef {
	return models.TermRef{Domain: models.DomainTag, Nicename: nicename, Name: name}
}

func TestExtractSinglePost(t *testing.T) {
	ix := Extract([]models.ContentItem{post("intro", "Intro", cat("tips", "Tips"))})

	want := Indexes{
		Categories: []models.TaxonomyEntry{{Slug: "tips", Name: "Tips", Count: 1}},
		Tags:       []models.TaxonomyEntry{},
		Posts: []models.PostTaxonomyRecord{
			{Title: "Intro", Slug: "intro", Categories: []string{"tips"}, Tags: []string{}},
		},
	}
	if diff := cmp.Diff(want, ix); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, ix.Validate())
}

func TestExtractSkipsUnpublishedAndPages(t *testing.T) {
	draft := post("wip", "WIP", cat("drafts", "Drafts"))
	draft.Status = "draft"
	page := post("about", "About", cat("site", "Site"))
	page.Type = models.TypePage
	untitled := post("untitled", "", cat("ghost", "Ghost"))

	ix := Extract([]models.ContentItem{draft, page, untitled, post("intro", "Intro")})

	assert.Empty(t, ix.Categories)
	assert.Empty(t, ix.Tags)
	require.Len(t, ix.Posts, 1)
	assert.Equal(t, "intro", ix.Posts[0].Slug)
	assert.NotNil(t, ix.Posts[0].Categories)
	assert.NotNil(t, ix.Posts[0].Tags)
}

func TestExtractOrderingAndNames(t *testing.T) {
	items := []models.ContentItem{
		post("a", "A", cat("gear", "Gear"), tag("sun", "Sun")),
		post("b", "B", cat("tips", "Tips"), tag("sun", "Sunlight")),
		post("c", "C", cat("tips", "Tips & Tricks"), cat("travel", "Travel")),
		post("d", "D", cat("gear", "Gear")),
		post("e", "E", cat("travel", "Travel"), cat("tips", "Tips"),
			models.TermRef{Domain: "nav_menu", Nicename: "main", Name: "Main"}),
	}

	ix := Extract(items)

	want := []models.TaxonomyEntry{
		{Slug: "tips", Name: "Tips", Count: 3},
		{Slug: "gear", Name: "Gear", Count: 2},
		{Slug: "travel", Name: "Travel", Count: 2},
	}
	if diff := cmp.Diff(want, ix.Categories); diff != "" {
		t.Errorf("Categories mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []models.TaxonomyEntry{{Slug: "sun", Name: "Sunlight", Count: 2}}, ix.Tags)
	assert.Equal(t, []string{"travel", "tips"}, ix.Posts[4].Categories)
	require.NoError(t, ix.Validate())
}

func TestExtractKeepsDuplicateAssociations(t *testing.T) {
	ix := Extract([]models.ContentItem{post("a", "A", cat("tips", "Tips"), cat("tips", "Tips"))})

	assert.Equal(t, 2, ix.Categories[0].Count)
	assert.Equal(t, []string{"tips", "tips"}, ix.Posts[0].Categories)
	assert.NoError(t, ix.Validate())
}

func TestExtractDoesNotMutateInput(t *testing.T) {
	items := []models.ContentItem{post("a", "A", cat("tips", "Tips"))}
	snapshot := []models.ContentItem{post("a", "A", cat("tips", "Tips"))}

	first := Extract(items)
	second := Extract(items)

	assert.Equal(t, snapshot, items)
	assert.Equal(t, first, second)
}

func TestValidateDetectsDrift(t *testing.T) {
	ix := Extract([]models.ContentItem{post("a", "A", cat("tips", "Tips"), tag("sun", "Sun"))})
	ix.Categories[0].Count = 5
	ix.Posts[0].Tags = append(ix.Posts[0].Tags, "moon")

	err := ix.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `category "tips": count 5, referenced 1 times`)
	assert.Contains(t, err.Error(), `post "a" references unknown tag "moon"`)
}

func TestTop(t *testing.T) {
	entries := []models.TaxonomyEntry{{Slug: "a", Count: 3}, {Slug: "b", Count: 2}, {Slug: "c", Count: 1}}

	assert.Len(t, Top(entries, 2), 2)
	assert.Len(t, Top(entries, 10), 3)
	assert.Empty(t, Top(entries, -1))
	assert.Empty(t, Top(nil, 5))
}

func TestPrintTop(t *testing.T) {
	var buf bytes.Buffer
	PrintTop(&buf, "Top categories", []models.TaxonomyEntry{
		{Slug: "tips", Name: "Tips", Count: 3},
		{Slug: "gear", Name: "Gear", Count: 1},
	}, 1)

	out := buf.String()
	assert.Contains(t, strings.ToLower(out), "top categories")
	assert.Contains(t, out, "Tips")
	assert.NotContains(t, out, "Gear")
}
