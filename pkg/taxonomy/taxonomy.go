// Package taxonomy builds category and tag indexes from export items.
package taxonomy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dtnitsch/wp-migrate/models"
)

// Indexes is the result of one extraction.
type Indexes struct {
	Categories []models.TaxonomyEntry
	Tags       []models.TaxonomyEntry
	Posts      []models.PostTaxonomyRecord
}

// Extract folds the items into category and tag indexes and per-post records.
// Only published posts contribute. Callers should pass the output of
// wxr.Parse; anything unpublished is skipped here too.
//
// Entries are ordered by count descending, ties by first appearance.
// Posts keep export order.
func Extract(items []models.ContentItem) Indexes {
	cats := newIndex()
	tags := newIndex()
	posts := make([]models.PostTaxonomyRecord, 0, len(items))

	for _, item := range items {
		if item.Type != models.TypePost || !item.IsPublished() {
			continue
		}
		rec := models.PostTaxonomyRecord{
			Title:      item.Title,
			Slug:       item.Slug,
			Categories: []string{},
			Tags:       []string{},
		}
		for _, term := range item.Terms {
			switch term.Domain {
			case models.DomainCategory:
				cats.add(term)
				rec.Categories = append(rec.Categories, term.Nicename)
			case models.DomainTag:
				tags.add(term)
				rec.Tags = append(rec.Tags, term.Nicename)
			}
		}
		posts = append(posts, rec)
	}

	return Indexes{
		Categories: cats.ranked(),
		Tags:       tags.ranked(),
		Posts:      posts,
	}
}

// index accumulates entries for one domain. It never escapes Extract.
type index struct {
	order   []string
	entries map[string]models.TaxonomyEntry
}

func newIndex() *index {
	return &index{entries: map[string]models.TaxonomyEntry{}}
}

// add counts one association; the latest name wins.
func (ix *index) add(term models.TermRef) {
	e, seen := ix.entries[term.Nicename]
	if !seen {
		ix.order = append(ix.order, term.Nicename)
	}
	ix.entries[term.Nicename] = models.TaxonomyEntry{
		Slug:  term.Nicename,
		Name:  term.Name,
		Count: e.Count + 1,
	}
}

func (ix *index) ranked() []models.TaxonomyEntry {
	out := make([]models.TaxonomyEntry, 0, len(ix.order))
	for _, slug := range ix.order {
		out = append(out, ix.entries[slug])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Validate checks that every slug referenced by a post has an entry and
// that every entry's count matches the number of references.
func (ix Indexes) Validate() error {
	var errs []error
	errs = append(errs, check("category", ix.Categories, ix.Posts, func(p models.PostTaxonomyRecord) []string { return p.Categories })...)
	errs = append(errs, check("tag", ix.Tags, ix.Posts, func(p models.PostTaxonomyRecord) []string { return p.Tags })...)
	return errors.Join(errs...)
}

func check(kind string, entries []models.TaxonomyEntry, posts []models.PostTaxonomyRecord, slugs func(models.PostTaxonomyRecord) []string) []error {
	refs := map[string]int{}
	for _, p := range posts {
		for _, s := range slugs(p) {
			refs[s]++
		}
	}

	var errs []error
	known := make(map[string]bool, len(entries))
	for _, e := range entries {
		known[e.Slug] = true
		if refs[e.Slug] != e.Count {
			errs = append(errs, fmt.Errorf("%s %q: count %d, referenced %d times", kind, e.Slug, e.Count, refs[e.Slug]))
		}
	}
	for _, p := range posts {
		for _, s := range slugs(p) {
			if !known[s] {
				errs = append(errs, fmt.Errorf("post %q references unknown %s %q", p.Slug, kind, s))
			}
		}
	}
	return errs
}
