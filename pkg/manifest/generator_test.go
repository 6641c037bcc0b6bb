package manifest

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/wp-migrate/models"
	"github.com/dtnitsch/wp-migrate/pkg/storage"
	"github.com/dtnitsch/wp-migrate/pkg/taxonomy"
)

var fixedTime = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func scenarioIndexes() taxonomy.Indexes {
	return taxonomy.Extract([]models.ContentItem{{
		ID:     "1",
		Title:  "Intro",
		Slug:   "intro",
		Type:   models.TypePost,
		Status: models.StatusPublish,
		Terms:  []models.TermRef{{Domain: models.DomainCategory, Nicename: "tips", Name: "Tips & Tricks"}},
	}})
}

func TestWriteTaxonomy(t *testing.T) {
	s := storage.NewMemory()

	paths, err := WriteTaxonomy(s, "data", scenarioIndexes(), fixedTime)
	require.NoError(t, err)
	assert.Equal(t, []string{"data/categories.json", "data/tags.json", "data/post-taxonomies.json"}, paths)

	raw, err := s.ReadFile("data/categories.json")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"name": "Tips & Tricks"`)
	assert.Contains(t, string(raw), "\n  \"categories\": [")

	var cats CategoryIndex
	require.NoError(t, json.Unmarshal(raw, &cats))
	assert.Equal(t, []models.TaxonomyEntry{{Slug: "tips", Name: "Tips & Tricks", Count: 1}}, cats.Categories)
	assert.Equal(t, 1, cats.TotalCategories)
	assert.Equal(t, "2025-06-01T09:30:00Z", cats.GeneratedAt)

	rawTags, err := s.ReadFile("data/tags.json")
	require.NoError(t, err)
	assert.Contains(t, string(rawTags), `"tags": []`)

	rawPosts, err := s.ReadFile("data/post-taxonomies.json")
	require.NoError(t, err)
	assert.Contains(t, string(rawPosts), `"tags": []`)
	assert.NotContains(t, string(rawPosts), "null")
}

func TestWriteTaxonomyEmpty(t *testing.T) {
	s := storage.NewMemory()
	_, err := WriteTaxonomy(s, "data", taxonomy.Indexes{}, fixedTime)
	require.NoError(t, err)

	for _, p := range TaxonomyPaths("data") {
		raw, err := s.ReadFile(p)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "null", p)
	}
}

func TestWriteTaxonomyIdempotentModuloTimestamp(t *testing.T) {
	s := storage.NewMemory()
	ix := scenarioIndexes()

	_, err := WriteTaxonomy(s, "data", ix, fixedTime)
	require.NoError(t, err)
	first, err := LoadPostTaxonomies(s, "data")
	require.NoError(t, err)

	_, err = WriteTaxonomy(s, "data", ix, fixedTime.Add(time.Hour))
	require.NoError(t, err)
	second, err := LoadPostTaxonomies(s, "data")
	require.NoError(t, err)

	assert.NotEqual(t, first.GeneratedAt, second.GeneratedAt)
	first.GeneratedAt, second.GeneratedAt = "", ""
	assert.Equal(t, first, second)
}

func TestLoadPostTaxonomies(t *testing.T) {
	s := storage.NewMemory()
	_, err := WriteTaxonomy(s, "data", scenarioIndexes(), fixedTime)
	require.NoError(t, err)

	idx, err := LoadPostTaxonomies(s, "data")
	require.NoError(t, err)
	assert.Equal(t, 1, idx.TotalPosts)
	assert.Equal(t, []models.PostTaxonomyRecord{
		{Title: "Intro", Slug: "intro", Categories: []string{"tips"}, Tags: []string{}},
	}, idx.Posts)
}

func TestLoadPostTaxonomiesErrors(t *testing.T) {
	s := storage.NewMemory()
	_, err := LoadPostTaxonomies(s, "data")
	assert.Error(t, err)

	require.NoError(t, s.SaveFile("data/post-taxonomies.json", []byte("{not json")))
	_, err = LoadPostTaxonomies(s, "data")
	assert.Error(t, err)

	require.NoError(t, s.SaveFile("data/post-taxonomies.json", []byte(`{"posts":[{"slug":"a","categories":null}]}`)))
	idx, err := LoadPostTaxonomies(s, "data")
	require.NoError(t, err)
	assert.NotNil(t, idx.Posts[0].Categories)
	assert.NotNil(t, idx.Posts[0].Tags)
}

func TestBuildURLList(t *testing.T) {
	list := BuildURLList(
		[]models.MigratedContentRecord{{File: "intro.mdx", Slug: "intro", Title: "Intro"}},
		[]models.MigratedContentRecord{{File: "about.mdx", Slug: "about", Title: "About"}},
		"/blog/", "/",
	)
	assert.Equal(t, []URLEntry{
		{Type: models.TypePost, Title: "Intro", URL: "/blog/intro", File: "intro.mdx"},
		{Type: models.TypePage, Title: "About", URL: "/about", File: "about.mdx"},
	}, list)
}

func TestWriteReport(t *testing.T) {
	s := storage.NewMemory()
	report := VerificationReport{
		ReconciliationResult: models.ReconciliationResult{
			Original: models.Counts{Posts: 1, Total: 1},
			Missing:  []models.MissingItem{},
			Extra:    []models.ExtraItem{{Type: "post", Title: "Bar", Slug: "bar", File: "bar.mdx"}},
			Errors:   []string{},
		},
		Readiness:        models.Readiness{CountsMatch: true},
		XMLPath:          "../wp-export/site.xml",
		VerificationDate: Timestamp(fixedTime),
	}
	require.NoError(t, WriteReport(s, "migration-verification-report.json", report))

	raw, err := s.ReadFile("migration-verification-report.json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"original", "migrated", "missing", "extra", "errors", "readiness", "xmlPath", "verificationDate"} {
		assert.Contains(t, decoded, key)
	}
	assert.NotContains(t, decoded, "runId")
	assert.Len(t, decoded["extra"], 1)
}

func TestWriteRelated(t *testing.T) {
	s := storage.NewMemory()
	path, err := WriteRelated(s, "data", nil, fixedTime)
	require.NoError(t, err)
	assert.Equal(t, "data/related-posts.json", path)

	raw, err := s.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"posts": []`)
	assert.Contains(t, string(raw), `"totalPosts": 0`)
}
