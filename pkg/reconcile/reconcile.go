// Package reconcile compares an export against migrated content.
package reconcile

import (
	"github.com/dtnitsch/wp-migrate/models"
)

// Reconcile matches published source items against migrated records of the
// same type. Missing and extra are computed by two independent scans, so one
// migrated file may satisfy several source items and vice versa.
func Reconcile(source []models.ContentItem, migrated []models.MigratedContentRecord, scanErrors []string) models.ReconciliationResult {
	res := models.ReconciliationResult{
		Missing: []models.MissingItem{},
		Extra:   []models.ExtraItem{},
		Errors:  append([]string{}, scanErrors...),
	}

	srcPosts, srcPages := splitSource(source)
	migPosts, migPages := splitMigrated(migrated)

	res.Original = counts(len(srcPosts), len(srcPages))
	res.Migrated = counts(len(migPosts), len(migPages))

	res.Missing = append(res.Missing, missing(srcPosts, migPosts)...)
	res.Missing = append(res.Missing, missing(srcPages, migPages)...)
	res.Extra = append(res.Extra, extra(migPosts, srcPosts)...)
	res.Extra = append(res.Extra, extra(migPages, srcPages)...)
	return res
}

// Matches reports whether a migrated record corresponds to a source item:
// by declared slug, then filename slug, then exact title.
func Matches(m models.MigratedContentRecord, s models.ContentItem) bool {
	if m.DeclaredSlug != nil && *m.DeclaredSlug != "" && *m.DeclaredSlug == s.Slug {
		return true
	}
	if m.Slug == s.Slug {
		return true
	}
	return m.Title != "" && m.Title == s.Title
}

func missing(source []models.ContentItem, migrated []models.MigratedContentRecord) []models.MissingItem {
	var out []models.MissingItem
	for _, s := range source {
		found := false
		for _, m := range migrated {
			if Matches(m, s) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, models.MissingItem{Type: s.Type, Title: s.Title, Slug: s.Slug, ID: s.ID})
		}
	}
	return out
}

func extra(migrated []models.MigratedContentRecord, source []models.ContentItem) []models.ExtraItem {
	var out []models.ExtraItem
	for _, m := range migrated {
		found := false
		for _, s := range source {
			if Matches(m, s) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, models.ExtraItem{Type: m.Type, Title: m.Title, Slug: m.Slug, File: m.File})
		}
	}
	return out
}

func splitSource(items []models.ContentItem) (posts, pages []models.ContentItem) {
	for _, item := range items {
		if !item.IsPublished() {
			continue
		}
		switch item.Type {
		case models.TypePost:
			posts = append(posts, item)
		case models.TypePage:
			pages = append(pages, item)
		}
	}
	return posts, pages
}

func splitMigrated(records []models.MigratedContentRecord) (posts, pages []models.MigratedContentRecord) {
	for _, r := range records {
		switch r.Type {
		case models.TypePost:
			posts = append(posts, r)
		case models.TypePage:
			pages = append(pages, r)
		}
	}
	return posts, pages
}

func counts(posts, pages int) models.Counts {
	return models.Counts{Posts: posts, Pages: pages, Total: posts + pages}
}

// Assess derives the deployment decision from a result.
func Assess(res models.ReconciliationResult) models.Readiness {
	r := models.Readiness{
		CountsMatch: res.Original.Total == res.Migrated.Total,
		NoMissing:   len(res.Missing) == 0,
		NoErrors:    len(res.Errors) == 0,
	}
	r.Ready = r.CountsMatch && r.NoMissing && r.NoErrors
	return r
}

// MatchRate is the migrated total as a percentage of the original total.
func MatchRate(res models.ReconciliationResult) float64 {
	if res.Original.Total == 0 {
		return 0
	}
	return float64(res.Migrated.Total) / float64(res.Original.Total) * 100
}

// SourceByType returns the published posts and pages that reconciliation
// counts, for reporting.
func SourceByType(items []models.ContentItem) (posts, pages []models.ContentItem) {
	posts, pages = splitSource(items)
	if posts == nil {
		posts = []models.ContentItem{}
	}
	if pages == nil {
		pages = []models.ContentItem{}
	}
	return posts, pages
}
