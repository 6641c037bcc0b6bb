package wxr

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dtnitsch/wp-migrate/pkg/storage"
)

// ErrExportNotFound is returned when no export file can be located.
var ErrExportNotFound = errors.New("WordPress XML export file not found")

// Locate picks the most recently modified .xml file in dir, falling back to
// the fixed path when the directory is missing or holds no XML.
func Locate(store *storage.Storage, dir, fallback string) (string, error) {
	if entries, err := store.ListDir(dir); err == nil {
		if name, ok := newestXML(entries); ok {
			return filepath.Join(dir, name), nil
		}
	}
	if fallback != "" && store.HasFile(fallback) {
		return fallback, nil
	}
	return "", ErrExportNotFound
}

// newestXML returns the name of the newest .xml entry; ties go to the
// lexically first name.
func newestXML(entries []storage.FileStats) (string, bool) {
	var xmls []storage.FileStats
	for _, e := range entries {
		if !e.IsDir && strings.EqualFold(filepath.Ext(e.Name), ".xml") {
			xmls = append(xmls, e)
		}
	}
	if len(xmls) == 0 {
		return "", false
	}
	sort.SliceStable(xmls, func(i, j int) bool {
		if xmls[i].ModTime.Equal(xmls[j].ModTime) {
			return xmls[i].Name < xmls[j].Name
		}
		return xmls[i].ModTime.After(xmls[j].ModTime)
	})
	return xmls[0].Name, true
}
