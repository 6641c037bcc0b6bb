// Package manifest writes and reads the JSON data files the site consumes.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dtnitsch/wp-migrate/models"
	"github.com/dtnitsch/wp-migrate/pkg/storage"
	"github.com/dtnitsch/wp-migrate/pkg/taxonomy"
)

// Timestamp formats a generation time the way every data file records it.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// TaxonomyPaths returns the three taxonomy data files under dataDir.
func TaxonomyPaths(dataDir string) []string {
	return []string{
		filepath.Join(dataDir, CategoriesName),
		filepath.Join(dataDir, TagsName),
		filepath.Join(dataDir, PostTaxonomiesName),
	}
}

// WriteTaxonomy writes categories.json, tags.json and post-taxonomies.json,
// overwriting previous runs. Returns the paths written.
func WriteTaxonomy(s *storage.Storage, dataDir string, ix taxonomy.Indexes, now time.Time) ([]string, error) {
	generatedAt := Timestamp(now)
	paths := TaxonomyPaths(dataDir)

	docs := []any{
		CategoryIndex{
			Categories:      nonNilEntries(ix.Categories),
			TotalCategories: len(ix.Categories),
			GeneratedAt:     generatedAt,
		},
		TagIndex{
			Tags:        nonNilEntries(ix.Tags),
			TotalTags:   len(ix.Tags),
			GeneratedAt: generatedAt,
		},
		PostTaxonomyIndex{
			Posts:       nonNilPosts(ix.Posts),
			TotalPosts:  len(ix.Posts),
			GeneratedAt: generatedAt,
		},
	}

	for i, doc := range docs {
		if err := saveJSON(s, paths[i], doc); err != nil {
			return paths[:i], err
		}
	}
	return paths, nil
}

// LoadPostTaxonomies reads post-taxonomies.json back.
func LoadPostTaxonomies(s *storage.Storage, dataDir string) (PostTaxonomyIndex, error) {
	var idx PostTaxonomyIndex
	path := filepath.Join(dataDir, PostTaxonomiesName)
	data, err := s.ReadFile(path)
	if err != nil {
		return idx, err
	}
	if err := json.Unmarshal(data, &idx); err != nil {
		return idx, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	for i := range idx.Posts {
		if idx.Posts[i].Categories == nil {
			idx.Posts[i].Categories = []string{}
		}
		if idx.Posts[i].Tags == nil {
			idx.Posts[i].Tags = []string{}
		}
	}
	return idx, nil
}

// WriteReport writes the detailed verification report.
func WriteReport(s *storage.Storage, path string, report VerificationReport) error {
	return saveJSON(s, path, report)
}

// BuildURLList maps migrated records to the URLs the site will serve:
// posts under blogPrefix, pages under pagePrefix.
func BuildURLList(posts, pages []models.MigratedContentRecord, blogPrefix, pagePrefix string) []URLEntry {
	list := make([]URLEntry, 0, len(posts)+len(pages))
	for _, p := range posts {
		list = append(list, URLEntry{Type: models.TypePost, Title: p.Title, URL: blogPrefix + p.Slug, File: p.File})
	}
	for _, p := range pages {
		list = append(list, URLEntry{Type: models.TypePage, Title: p.Title, URL: pagePrefix + p.Slug, File: p.File})
	}
	return list
}

// WriteURLList writes the URL verification list.
func WriteURLList(s *storage.Storage, path string, list []URLEntry) error {
	if list == nil {
		list = []URLEntry{}
	}
	return saveJSON(s, path, list)
}

// WriteRelated writes related-posts.json.
func WriteRelated(s *storage.Storage, dataDir string, sets []models.RelatedSet, now time.Time) (string, error) {
	if sets == nil {
		sets = []models.RelatedSet{}
	}
	path := filepath.Join(dataDir, RelatedPostsName)
	idx := RelatedIndex{Posts: sets, TotalPosts: len(sets), GeneratedAt: Timestamp(now)}
	return path, saveJSON(s, path, idx)
}

// saveJSON writes v with two-space indentation, leaving &, < and > unescaped.
func saveJSON(s *storage.Storage, path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error marshalling %s: %w", path, err)
	}
	if err := s.SaveFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("error saving %s: %w", path, err)
	}
	return nil
}

func nonNilEntries(in []models.TaxonomyEntry) []models.TaxonomyEntry {
	if in == nil {
		return []models.TaxonomyEntry{}
	}
	return in
}

func nonNilPosts(in []models.PostTaxonomyRecord) []models.PostTaxonomyRecord {
	if in == nil {
		return []models.PostTaxonomyRecord{}
	}
	return in
}
