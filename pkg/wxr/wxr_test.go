package wxr

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/wp-migrate/models"
)

const sampleExport = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"
	xmlns:content="http://purl.org/rss/1.0/modules/content/"
	xmlns:wp="http://wordpress.org/export/1.2/">
<channel>
	<title>Photo Symphony</title>
	<wp:category><wp:category_nicename>tips</wp:category_nicename></wp:category>
	<item>
		<title>Intro</title>
		<pubDate>Mon, 01 Jan 2024 10:00:00 +0000</pubDate>
		<wp:post_id>11</wp:post_id>
		<wp:post_name><![CDATA[intro]]></wp:post_name>
		<wp:post_type>post</wp:post_type>
		<wp:status>publish</wp:status>
		<category domain="category" nicename="tips"><![CDATA[Tips]]></category>
		<category domain="post_tag" nicename="light"><![CDATA[Light]]></category>
	</item>
	<item>
		<title>Work in progress</title>
		<wp:post_id>12</wp:post_id>
		<wp:post_name>wip</wp:post_name>
		<wp:post_type>post</wp:post_type>
		<wp:status>draft</wp:status>
	</item>
	<item>
		<title>About</title>
		<wp:post_id>13</wp:post_id>
		<wp:post_name>about</wp:post_name>
		<wp:post_type>page</wp:post_type>
		<wp:status>publish</wp:status>
	</item>
	<item>
		<title></title>
		<wp:post_id>14</wp:post_id>
		<wp:post_name>untitled</wp:post_name>
		<wp:post_type>post</wp:post_type>
		<wp:status>publish</wp:status>
	</item>
	<item>
		<title>logo.png</title>
		<wp:post_id>15</wp:post_id>
		<wp:post_name>logo</wp:post_name>
		<wp:post_type>attachment</wp:post_type>
		<wp:status>inherit</wp:status>
	</item>
</channel>
</rss>`

func TestParsePublishedOnly(t *testing.T) {
	items, err := Parse([]byte(sampleExport))
	require.NoError(t, err)

	want := []models.ContentItem{
		{
			ID:          "11",
			Title:       "Intro",
			Slug:        "intro",
			Type:        models.TypePost,
			Status:      models.StatusPublish,
			PublishedAt: "Mon, 01 Jan 2024 10:00:00 +0000",
			Terms: []models.TermRef{
				{Domain: models.DomainCategory, Nicename: "tips", Name: "Tips"},
				{Domain: models.DomainTag, Nicename: "light", Name: "Light"},
			},
		},
		{
			ID:     "13",
			Title:  "About",
			Slug:   "about",
			Type:   models.TypePage,
			Status: models.StatusPublish,
			Terms:  []models.TermRef{},
		},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAllKeepsEveryItem(t *testing.T) {
	items, err := ParseAll([]byte(sampleExport))
	require.NoError(t, err)
	require.Len(t, items, 5)

	assert.Equal(t, "draft", items[1].Status)
	assert.Equal(t, "", items[3].Title)
	assert.Equal(t, "attachment", items[4].Type)
	// channel-level <wp:category> must not leak into items
	for _, item := range items[1:] {
		assert.Empty(t, item.Terms)
	}
}

func TestParseEmptyChannel(t *testing.T) {
	items, err := Parse([]byte(`<rss><channel></channel></rss>`))
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unclosed document", `<rss><channel><item><title>broken`},
		{"mismatched tags", `<rss><channel></item></channel></rss>`},
		{"empty input", ``},
		{"wrong root", `<feed><channel/></feed>`},
		{"no channel", `<rss version="2.0"></rss>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Nil(t, items)

			var pe *ParseError
			assert.True(t, errors.As(err, &pe), "Parse() error = %T, want *ParseError", err)
		})
	}
}

func TestSummarize(t *testing.T) {
	items, err := ParseAll([]byte(sampleExport))
	require.NoError(t, err)

	st := Summarize(items)
	assert.Equal(t, 5, st.Items)
	assert.Equal(t, 2, st.Published)
	assert.Equal(t, 3, st.ByType[models.TypePost])
	assert.Equal(t, 1, st.ByType[models.TypePage])
	assert.Equal(t, 3, st.ByStatus[models.StatusPublish])
}
