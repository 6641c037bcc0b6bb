package models

// RelatedPost is a post suggested alongside another one.
type RelatedPost struct {
	Slug       string   `json:"slug"`
	Title      string   `json:"title"`
	Categories []string `json:"categories"`
	Excerpt    string   `json:"excerpt"`
}

// RelatedSet lists the suggestions for one post.
type RelatedSet struct {
	Slug    string        `json:"slug"`
	Related []RelatedPost `json:"related"`
}
