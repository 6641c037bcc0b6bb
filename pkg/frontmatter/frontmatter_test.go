package frontmatter

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `---
title: "Golden Hour Tips"
date: 2024-01-05
layout: post
author:
  name: Dana
  site: https://example.com
excerpt: Light matters.
---

# Golden hour

Body with --- inside a line.
`

func TestParseKnownAndExtra(t *testing.T) {
	doc, err := Parse(sample)
	require.NoError(t, err)

	fm := doc.FrontMatter
	assert.Equal(t, "Golden Hour Tips", fm.Title)
	assert.Equal(t, "2024-01-05", fm.Date)
	assert.Equal(t, "Light matters.", fm.Excerpt)
	assert.Nil(t, fm.Slug)
	assert.Nil(t, fm.Categories)
	assert.Nil(t, fm.Tags)

	require.Len(t, fm.Extra, 2)
	assert.Equal(t, "layout", fm.Extra[0].Key)
	assert.Equal(t, "author", fm.Extra[1].Key)

	assert.Equal(t, "\n# Golden hour\n\nBody with --- inside a line.\n", doc.Body)
}

func TestParseSlugAndLists(t *testing.T) {
	doc, err := Parse("---\nslug: foo\ncategories: [tips, gear]\ntags: single\n---\nbody")
	require.NoError(t, err)

	require.NotNil(t, doc.FrontMatter.Slug)
	assert.Equal(t, "foo", *doc.FrontMatter.Slug)
	assert.Equal(t, []string{"tips", "gear"}, doc.FrontMatter.Categories)
	assert.Equal(t, []string{"single"}, doc.FrontMatter.Tags)
	assert.Equal(t, "body", doc.Body)
}

func TestParseNullValues(t *testing.T) {
	doc, err := Parse("---\ntitle:\nslug: ~\ntags:\n---\n")
	require.NoError(t, err)

	assert.Equal(t, "", doc.FrontMatter.Title)
	assert.Nil(t, doc.FrontMatter.Slug)
	assert.Equal(t, []string{}, doc.FrontMatter.Tags)
}

func TestParseWithoutFrontMatter(t *testing.T) {
	text := "# Just markdown\n\nNo header here.\n"
	doc, err := Parse(text)
	require.NoError(t, err)

	assert.Equal(t, text, doc.Body)
	assert.Equal(t, "", doc.FrontMatter.Title)

	out, err := doc.String()
	require.NoError(t, err)
	assert.Equal(t, text, out)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"unterminated", "---\ntitle: x\nbody without end\n"},
		{"invalid yaml", "---\ntitle: [unclosed\n---\n"},
		{"not a mapping", "---\n- a\n- b\n---\n"},
		{"title is a list", "---\ntitle:\n  - a\n---\n"},
		{"categories is a mapping", "---\ncategories:\n  a: b\n---\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			assert.Error(t, err)
		})
	}

	_, err := Parse("---\ntitle: x\n")
	assert.True(t, errors.Is(err, ErrUnterminated))
}

func TestSetTaxonomyRoundTrip(t *testing.T) {
	doc, err := Parse(sample)
	require.NoError(t, err)

	doc.SetTaxonomy([]string{"tips", "light"}, []string{})
	out, err := doc.String()
	require.NoError(t, err)

	again, err := Parse(out)
	require.NoError(t, err)

	assert.Equal(t, []string{"tips", "light"}, again.FrontMatter.Categories)
	assert.Equal(t, []string{}, again.FrontMatter.Tags)
	assert.Equal(t, "Golden Hour Tips", again.FrontMatter.Title)
	assert.Equal(t, "2024-01-05", again.FrontMatter.Date)
	assert.Equal(t, doc.Body, again.Body)

	require.Len(t, again.FrontMatter.Extra, 2)
	assert.Equal(t, "author", again.FrontMatter.Extra[1].Key)
	assert.Contains(t, out, "site: https://example.com")

	// original keys keep their order; new keys follow
	order := []string{"title:", "date:", "layout:", "author:", "excerpt:", "categories:", "tags:"}
	last := -1
	for _, key := range order {
		idx := strings.Index(out, "\n"+key)
		require.Greater(t, idx, last, "key %s out of order in:\n%s", key, out)
		last = idx
	}
	assert.Contains(t, out, "tags: []")
}

func TestSetTaxonomyReplacesExisting(t *testing.T) {
	doc, err := Parse("---\ntitle: Intro\ncategories:\n  - old\ntags: [x]\n---\nBody\n")
	require.NoError(t, err)

	doc.SetTaxonomy([]string{"tips"}, []string{"light", "sun"})
	out, err := doc.String()
	require.NoError(t, err)

	again, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"tips"}, again.FrontMatter.Categories)
	assert.Equal(t, []string{"light", "sun"}, again.FrontMatter.Tags)
	assert.Equal(t, "Body\n", again.Body)
	assert.NotContains(t, out, "old")
}

func TestStringUnchangedKeepsStyle(t *testing.T) {
	doc, err := Parse("---\ntitle: 'Quoted'\nslug: intro\n---\nBody\n")
	require.NoError(t, err)

	out, err := doc.String()
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: 'Quoted'\nslug: intro\n---\nBody\n", out)
}

func TestStringAddsFrontMatterToBareFile(t *testing.T) {
	doc, err := Parse("Body only\n")
	require.NoError(t, err)

	doc.SetTaxonomy([]string{"tips"}, nil)
	out, err := doc.String()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "---\n"))
	assert.True(t, strings.HasSuffix(out, "---\nBody only\n"))

	again, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"tips"}, again.FrontMatter.Categories)
	assert.Equal(t, []string{}, again.FrontMatter.Tags)
}
