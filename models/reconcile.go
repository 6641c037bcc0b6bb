package models

// Counts tallies content by type.
type Counts struct {
	Posts int `json:"posts"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}

// MissingItem is a source item with no migrated counterpart.
type MissingItem struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	ID    string `json:"id"`
}

// ExtraItem is a migrated file with no source counterpart.
type ExtraItem struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	File  string `json:"file"`
}

// ReconciliationResult is the outcome of comparing an export against migrated content.
type ReconciliationResult struct {
	Original Counts        `json:"original"`
	Migrated Counts        `json:"migrated"`
	Missing  []MissingItem `json:"missing"`
	Extra    []ExtraItem   `json:"extra"`
	Errors   []string      `json:"errors"`
}

// Readiness breaks the deployment decision into its independent conditions.
type Readiness struct {
	CountsMatch bool `json:"countsMatch"`
	NoMissing   bool `json:"noMissing"`
	NoErrors    bool `json:"noErrors"`
	Ready       bool `json:"ready"`
}
