// Package related suggests posts that share a category.
package related

import (
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/dtnitsch/wp-migrate/models"
	"github.com/dtnitsch/wp-migrate/pkg/excerpt"
	"github.com/dtnitsch/wp-migrate/pkg/frontmatter"
	"github.com/dtnitsch/wp-migrate/pkg/storage"
)

// Options controls selection and excerpt generation.
type Options struct {
	Dir            string // directory holding post files
	Ext            string
	Limit          int
	ExcerptLength  int
	DefaultExcerpt string
}

// Select returns, for each post, up to limit other posts sharing at least one
// category, in mapping order. Posts with no categories or no matches are
// left out.
func Select(posts []models.PostTaxonomyRecord, limit int) map[string][]models.PostTaxonomyRecord {
	out := map[string][]models.PostTaxonomyRecord{}
	for _, p := range posts {
		if len(p.Categories) == 0 {
			continue
		}
		var picks []models.PostTaxonomyRecord
		for _, other := range posts {
			if len(picks) >= limit {
				break
			}
			if other.Slug == p.Slug {
				continue
			}
			if sharesCategory(p.Categories, other.Categories) {
				picks = append(picks, other)
			}
		}
		if len(picks) > 0 {
			out[p.Slug] = picks
		}
	}
	return out
}

func sharesCategory(a, b []string) bool {
	for _, c := range b {
		if slices.Contains(a, c) {
			return true
		}
	}
	return false
}

// Build selects related posts and attaches an excerpt of each one's body.
// Sets follow mapping order.
func Build(logger *slog.Logger, store *storage.Storage, posts []models.PostTaxonomyRecord, opts Options) []models.RelatedSet {
	selected := Select(posts, opts.Limit)
	excerpts := map[string]string{}
	done := map[string]bool{}

	sets := []models.RelatedSet{}
	for _, p := range posts {
		picks, ok := selected[p.Slug]
		if !ok || done[p.Slug] {
			continue
		}
		done[p.Slug] = true

		set := models.RelatedSet{Slug: p.Slug, Related: make([]models.RelatedPost, 0, len(picks))}
		for _, r := range picks {
			text, cached := excerpts[r.Slug]
			if !cached {
				text = postExcerpt(logger, store, r.Slug, opts)
				excerpts[r.Slug] = text
			}
			set.Related = append(set.Related, models.RelatedPost{
				Slug:       r.Slug,
				Title:      r.Title,
				Categories: r.Categories,
				Excerpt:    text,
			})
		}
		sets = append(sets, set)
	}
	return sets
}

func postExcerpt(logger *slog.Logger, store *storage.Storage, slug string, opts Options) string {
	path := filepath.Join(opts.Dir, slug+opts.Ext)
	data, err := store.ReadFile(path)
	if err != nil {
		logger.Debug("Using default excerpt", "file", path, "error", err)
		return opts.DefaultExcerpt
	}
	doc, err := frontmatter.Parse(string(data))
	if err != nil {
		logger.Warn("Using default excerpt", "file", path, "error", err)
		return opts.DefaultExcerpt
	}
	return excerpt.Generate(doc.Body, opts.ExcerptLength)
}
