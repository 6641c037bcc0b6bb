package models

// TaxonomyEntry is one distinct category or tag with the number of published posts using it.
type TaxonomyEntry struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PostTaxonomyRecord maps a published post to the term slugs attached to it,
// in the order they appear in the export.
type PostTaxonomyRecord struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}
