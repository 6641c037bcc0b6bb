// Package storage is the single filesystem gateway for every pass.
// Real runs use the host filesystem; tests swap in an in-memory one.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// FS is the subset of billy the passes need.
type FS interface {
	billy.Basic
	billy.Dir
}

// Storage reads and writes content, export and data files.
type Storage struct {
	fs FS
}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	Name      string
	SizeBytes int64
	ModTime   time.Time
	IsDir     bool
}

// New wraps an arbitrary billy filesystem.
func New(fs FS) *Storage {
	return &Storage{fs: fs}
}

// NewOS returns storage over the host filesystem. Relative paths resolve
// against the working directory, so "../wp-export" behaves as expected.
func NewOS() *Storage {
	return New(osfs.Default)
}

// NewMemory returns storage over an empty in-memory filesystem.
func NewMemory() *Storage {
	return New(memfs.New())
}

// SaveFile writes content to filePath, creating parent directories.
func (s *Storage) SaveFile(filePath string, content []byte) error {
	if dir := filepath.Dir(filePath); dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := util.WriteFile(s.fs, filePath, content, 0o644); err != nil {
		return fmt.Errorf("failed to save %s: %w", filePath, err)
	}
	return nil
}

func (s *Storage) ReadFile(filePath string) ([]byte, error) {
	data, err := util.ReadFile(s.fs, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return data, nil
}

// HasFile reports whether a regular file exists at fn.
func (s *Storage) HasFile(fn string) bool {
	info, err := s.fs.Stat(fn)
	return err == nil && !info.IsDir()
}

// HasDir reports whether a directory exists at dir.
func (s *Storage) HasDir(dir string) bool {
	info, err := s.fs.Stat(dir)
	return err == nil && info.IsDir()
}

// GetFileStats returns metadata about a file without reading it.
func (s *Storage) GetFileStats(filePath string) (*FileStats, error) {
	info, err := s.fs.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", filePath, err)
	}
	return toStats(info), nil
}

// ListDir returns the entries of dir sorted by name.
// A missing directory yields an error matching os.ErrNotExist.
func (s *Storage) ListDir(dir string) ([]FileStats, error) {
	info, err := s.fs.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to list %s: %w", dir, errNotDir)
	}

	infos, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	entries := make([]FileStats, 0, len(infos))
	for _, fi := range infos {
		entries = append(entries, *toStats(fi))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

var errNotDir = errors.New("not a directory")

func toStats(info os.FileInfo) *FileStats {
	return &FileStats{
		Name:      info.Name(),
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
		IsDir:     info.IsDir(),
	}
}
