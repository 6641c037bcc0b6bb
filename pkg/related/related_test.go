package related

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/wp-migrate/models"
	"github.com/dtnitsch/wp-migrate/pkg/storage"
)

func rec(slug string, cats ...string) models.PostTaxonomyRecord {
	if cats == nil {
		cats = []string{}
	}
	return models.PostTaxonomyRecord{Slug: slug, Title: "Title " + slug, Categories: cats, Tags: []string{}}
}

func slugs(recs []models.PostTaxonomyRecord) []string {
	var out []string
	for _, r := range recs {
		out = append(out, r.Slug)
	}
	return out
}

func TestSelect(t *testing.T) {
	posts := []models.PostTaxonomyRecord{
		rec("a", "tips"),
		rec("b", "gear"),
		rec("c", "tips", "gear"),
		rec("d"),
		rec("e", "travel"),
	}

	got := Select(posts, 5)

	assert.Equal(t, []string{"c"}, slugs(got["a"]))
	assert.Equal(t, []string{"c"}, slugs(got["b"]))
	assert.Equal(t, []string{"a", "b"}, slugs(got["c"]))
	assert.NotContains(t, got, "d")
	assert.NotContains(t, got, "e")
}

func TestSelectLimit(t *testing.T) {
	var posts []models.PostTaxonomyRecord
	for _, s := range []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7"} {
		posts = append(posts, rec(s, "tips"))
	}

	got := Select(posts, 5)
	assert.Equal(t, []string{"p2", "p3", "p4", "p5", "p6"}, slugs(got["p1"]))
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, slugs(got["p7"]))
}

func TestBuild(t *testing.T) {
	s := storage.NewMemory()
	require.NoError(t, s.SaveFile("content/blog/b.mdx",
		[]byte("---\ntitle: B\n---\n## Heading\n\nShort **body**.\n")))
	require.NoError(t, s.SaveFile("content/blog/c.mdx", []byte("---\ntitle: [broken\n---\n")))

	posts := []models.PostTaxonomyRecord{rec("a", "tips"), rec("b", "tips"), rec("c", "tips"), rec("z")}
	opts := Options{Dir: "content/blog", Ext: ".mdx", Limit: 5, ExcerptLength: 120, DefaultExcerpt: "Read more."}

	sets := Build(slog.New(slog.NewTextHandler(io.Discard, nil)), s, posts, opts)
	require.Len(t, sets, 3)
	assert.Equal(t, "a", sets[0].Slug)

	related := sets[0].Related
	require.Len(t, related, 2)
	assert.Equal(t, models.RelatedPost{Slug: "b", Title: "Title b", Categories: []string{"tips"}, Excerpt: "Heading Short body."}, related[0])
	assert.Equal(t, "Read more.", related[1].Excerpt)

	// a has no file: default excerpt
	assert.Equal(t, "Read more.", sets[1].Related[0].Excerpt)
}
