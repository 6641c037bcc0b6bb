package manifest

import "github.com/dtnitsch/wp-migrate/models"

// Data file names, relative to the configured data directory.
const (
	CategoriesName     = "categories.json"
	TagsName           = "tags.json"
	PostTaxonomiesName = "post-taxonomies.json"
	RelatedPostsName   = "related-posts.json"
)

// CategoryIndex is the shape of categories.json.
type CategoryIndex struct {
	Categories      []models.TaxonomyEntry `json:"categories"`
	TotalCategories int                    `json:"totalCategories"`
	GeneratedAt     string                 `json:"generatedAt"`
}

// TagIndex is the shape of tags.json.
type TagIndex struct {
	Tags        []models.TaxonomyEntry `json:"tags"`
	TotalTags   int                    `json:"totalTags"`
	GeneratedAt string                 `json:"generatedAt"`
}

// PostTaxonomyIndex is the shape of post-taxonomies.json.
type PostTaxonomyIndex struct {
	Posts       []models.PostTaxonomyRecord `json:"posts"`
	TotalPosts  int                         `json:"totalPosts"`
	GeneratedAt string                      `json:"generatedAt"`
}

// RelatedIndex is the shape of related-posts.json.
type RelatedIndex struct {
	Posts       []models.RelatedSet `json:"posts"`
	TotalPosts  int                 `json:"totalPosts"`
	GeneratedAt string              `json:"generatedAt"`
}

// VerificationReport is the detailed reconciliation report.
type VerificationReport struct {
	models.ReconciliationResult
	Readiness        models.Readiness               `json:"readiness"`
	MatchRate        float64                        `json:"matchRate"`
	OriginalPosts    []models.ContentItem           `json:"originalPosts"`
	OriginalPages    []models.ContentItem           `json:"originalPages"`
	MigratedPosts    []models.MigratedContentRecord `json:"migratedPosts"`
	MigratedPages    []models.MigratedContentRecord `json:"migratedPages"`
	XMLPath          string                         `json:"xmlPath"`
	RunID            string                         `json:"runId,omitempty"`
	VerificationDate string                         `json:"verificationDate"`
}

// URLEntry is one line of the URL verification list.
type URLEntry struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	URL   string `json:"url"`
	File  string `json:"file"`
}
