// Package models defines data structures for configuration, export content and migration results.
package models

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read when present and no --config flag is given.
const DefaultConfigFile = "wp-migrate.yaml"

// Config holds the well-known paths the passes read and write.
// Every field has a default so the tool runs with no config file at all.
type Config struct {
	ExportDir      string `yaml:"export_dir"`
	FallbackExport string `yaml:"fallback_export"`

	BlogDir        string `yaml:"blog_dir"`
	PagesDir       string `yaml:"pages_dir"`
	ContentPattern string `yaml:"content_pattern"` // doublestar pattern, matched against file names

	DataDir        string `yaml:"data_dir"`
	ReportPath     string `yaml:"report_path"`
	URLListPath    string `yaml:"url_list_path"`
	LedgerPath     string `yaml:"ledger_path"`
	BlogURLPrefix  string `yaml:"blog_url_prefix"`
	PageURLPrefix  string `yaml:"page_url_prefix"`
	DefaultExcerpt string `yaml:"default_excerpt"`

	RelatedLimit  int `yaml:"related_limit"`
	ExcerptLength int `yaml:"excerpt_length"`
}

// DefaultConfig returns the conventional layout: the export lives next to the
// site directory, content and data files inside it.
func DefaultConfig() Config {
	return Config{
		ExportDir:      "../wp-export",
		FallbackExport: "../wp-export/wordpress-export.xml",
		BlogDir:        "content/blog",
		PagesDir:       "content/pages",
		ContentPattern: "*.mdx",
		DataDir:        "data",
		ReportPath:     "migration-verification-report.json",
		URLListPath:    "url-verification-list.json",
		LedgerPath:     "data/wp-migrate.db",
		BlogURLPrefix:  "/blog/",
		PageURLPrefix:  "/",
		DefaultExcerpt: "Read the full article for more.",
		RelatedLimit:   5,
		ExcerptLength:  120,
	}
}

// ContentExt returns the file extension implied by ContentPattern ("*.mdx" -> ".mdx").
func (c Config) ContentExt() string {
	for i := len(c.ContentPattern) - 1; i >= 0; i-- {
		switch c.ContentPattern[i] {
		case '.':
			return c.ContentPattern[i:]
		case '*', '/', '}', ']':
			return ""
		}
	}
	return ""
}

// LoadConfig reads a YAML config file over the defaults.
// A missing file is only an error when required is true.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// fillDefaults restores defaults for keys a config file set to their zero value.
func (c *Config) fillDefaults() {
	d := DefaultConfig()
	if c.ExportDir == "" {
		c.ExportDir = d.ExportDir
	}
	if c.FallbackExport == "" {
		c.FallbackExport = d.FallbackExport
	}
	if c.BlogDir == "" {
		c.BlogDir = d.BlogDir
	}
	if c.PagesDir == "" {
		c.PagesDir = d.PagesDir
	}
	if c.ContentPattern == "" {
		c.ContentPattern = d.ContentPattern
	}
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.ReportPath == "" {
		c.ReportPath = d.ReportPath
	}
	if c.URLListPath == "" {
		c.URLListPath = d.URLListPath
	}
	if c.LedgerPath == "" {
		c.LedgerPath = d.LedgerPath
	}
	if c.BlogURLPrefix == "" {
		c.BlogURLPrefix = d.BlogURLPrefix
	}
	if c.PageURLPrefix == "" {
		c.PageURLPrefix = d.PageURLPrefix
	}
	if c.DefaultExcerpt == "" {
		c.DefaultExcerpt = d.DefaultExcerpt
	}
	if c.RelatedLimit <= 0 {
		c.RelatedLimit = d.RelatedLimit
	}
	if c.ExcerptLength <= 0 {
		c.ExcerptLength = d.ExcerptLength
	}
}
