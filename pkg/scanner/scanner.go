// Package scanner inventories migrated content files.
package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/dtnitsch/wp-migrate/models"
	"github.com/dtnitsch/wp-migrate/pkg/frontmatter"
	"github.com/dtnitsch/wp-migrate/pkg/storage"
)

// Result of scanning one content directory.
type Result struct {
	Records []models.MigratedContentRecord
	// Documents holds the parsed file for each record, keyed by file name.
	Documents map[string]*frontmatter.Document
	Errors    []string
}

// Scan reads every file in dir whose name matches pattern. A missing
// directory yields an empty result. Files that cannot be read or parsed are
// reported in Errors and left out of Records.
func Scan(store *storage.Storage, dir, pattern, contentType string) (Result, error) {
	res := Result{
		Records:   []models.MigratedContentRecord{},
		Documents: map[string]*frontmatter.Document{},
		Errors:    []string{},
	}
	if !doublestar.ValidatePattern(pattern) {
		return res, fmt.Errorf("invalid content pattern %q", pattern)
	}

	entries, err := store.ListDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return res, nil
		}
		return res, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir {
			continue
		}
		if ok, _ := doublestar.Match(pattern, entry.Name); !ok {
			continue
		}

		doc, err := readDocument(store, filepath.Join(dir, entry.Name))
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Error reading %s: %v", entry.Name, err))
			continue
		}

		fm := doc.FrontMatter
		res.Records = append(res.Records, models.MigratedContentRecord{
			File:         entry.Name,
			Slug:         strings.TrimSuffix(entry.Name, filepath.Ext(entry.Name)),
			Title:        fm.Title,
			Date:         fm.Date,
			DeclaredSlug: fm.Slug,
			Type:         contentType,
		})
		res.Documents[entry.Name] = doc
	}
	return res, nil
}

func readDocument(store *storage.Storage, path string) (*frontmatter.Document, error) {
	data, err := store.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return frontmatter.Parse(string(data))
}
