package models

// Content types as they appear in wp:post_type.
const (
	TypePost = "post"
	TypePage = "page"
)

// StatusPublish is the only wp:status that reaches the indexes.
const StatusPublish = "publish"

// Taxonomy domains as they appear on <category domain="...">.
const (
	DomainCategory = "category"
	DomainTag      = "post_tag"
)

// TermRef is one category/tag association on an export item.
type TermRef struct {
	Domain   string `json:"domain"`
	Nicename string `json:"nicename"`
	Name     string `json:"name"`
}

// ContentItem is a single <item> of a WordPress export.
type ContentItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	PublishedAt string    `json:"date"`
	Terms       []TermRef `json:"-"`
}

// IsPublished reports whether the item is published and addressable.
func (c ContentItem) IsPublished() bool {
	return c.Status == StatusPublish && c.Title != "" && c.Slug != ""
}

// MigratedContentRecord describes one migrated content file.
type MigratedContentRecord struct {
	File         string  `json:"file"`
	Slug         string  `json:"slug"` // file name without extension
	Title        string  `json:"title"`
	Date         string  `json:"date"`
	DeclaredSlug *string `json:"declaredSlug,omitempty"`
	Type         string  `json:"type"`
}
