package taxonomy

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dtnitsch/wp-migrate/models"
)

// Top returns the first n entries of an already ranked list.
func Top(entries []models.TaxonomyEntry, n int) []models.TaxonomyEntry {
	if n < 0 {
		n = 0
	}
	if len(entries) < n {
		n = len(entries)
	}
	return entries[:n]
}

// PrintTop renders the top n entries as a numbered table.
func PrintTop(w io.Writer, title string, entries []models.TaxonomyEntry, n int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"#", "Name", "Slug", "Posts"})
	for i, e := range Top(entries, n) {
		t.AppendRow(table.Row{i + 1, e.Name, e.Slug, e.Count})
	}
	t.Render()
}
