package common

import (
	"fmt"

	"github.com/dtnitsch/wp-migrate/models"
	"github.com/dtnitsch/wp-migrate/pkg/wxr"
)

// Export is a located and parsed WordPress export.
type Export struct {
	Path      string
	SHA256    string
	Items     []models.ContentItem // every item, any status
	Published []models.ContentItem
}

// LoadExport locates, reads and parses the export. Nothing is written.
func (e *Env) LoadExport() (*Export, error) {
	path, err := wxr.Locate(e.Store, e.Config.ExportDir, e.Config.FallbackExport)
	if err != nil {
		return nil, err
	}
	e.Logger.Info("Using export", "path", path)

	data, err := e.Store.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	items, err := wxr.ParseAll(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &Export{
		Path:      path,
		SHA256:    ContentHash(data),
		Items:     items,
		Published: wxr.Published(items),
	}, nil
}
