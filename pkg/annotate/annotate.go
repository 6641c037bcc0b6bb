// Package annotate writes taxonomy assignments into migrated post files.
package annotate

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dtnitsch/wp-migrate/models"
	"github.com/dtnitsch/wp-migrate/pkg/frontmatter"
	"github.com/dtnitsch/wp-migrate/pkg/storage"
)

// Result counts what happened to each post record.
type Result struct {
	Updated  int
	Skipped  int // no file for the slug
	Failed   int
	Failures []string
}

// Apply sets categories and tags on <dir>/<slug><ext> for every record whose
// file exists. Bodies and unknown front matter keys are preserved. A failure
// on one file does not stop the others.
func Apply(logger *slog.Logger, store *storage.Storage, dir, ext string, records []models.PostTaxonomyRecord) Result {
	res := Result{Failures: []string{}}
	for _, rec := range records {
		path := filepath.Join(dir, rec.Slug+ext)
		if !store.HasFile(path) {
			res.Skipped++
			continue
		}
		if err := annotateFile(store, path, rec); err != nil {
			logger.Warn("Failed to annotate content file", "file", path, "error", err)
			res.Failed++
			res.Failures = append(res.Failures, fmt.Sprintf("%s: %v", filepath.Base(path), err))
			continue
		}
		res.Updated++
	}
	return res
}

func annotateFile(store *storage.Storage, path string, rec models.PostTaxonomyRecord) error {
	data, err := store.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := frontmatter.Parse(string(data))
	if err != nil {
		return err
	}
	doc.SetTaxonomy(rec.Categories, rec.Tags)
	out, err := doc.String()
	if err != nil {
		return err
	}
	return store.SaveFile(path, []byte(out))
}
