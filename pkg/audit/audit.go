// Package audit inventories migrated content before deployment.
package audit

import (
	"fmt"
	"io"

	"github.com/dtnitsch/wp-migrate/models"
	"github.com/dtnitsch/wp-migrate/pkg/scanner"
	"github.com/dtnitsch/wp-migrate/pkg/storage"
)

// Placeholders shown for absent front matter values.
const (
	NoTitle  = "NO TITLE"
	NoDate   = "NO DATE"
	NoStatus = "NO STATUS"
)

const samplePosts = 5

// Options locates the content directories and their public URLs.
type Options struct {
	BlogDir       string
	PagesDir      string
	Pattern       string
	BlogURLPrefix string
	PageURLPrefix string
}

// Entry is one audited file.
type Entry struct {
	Type   string `json:"type"`
	File   string `json:"file"`
	Slug   string `json:"slug"`
	Title  string `json:"title"`
	Date   string `json:"date"`
	Status string `json:"status"`
	URL    string `json:"url"`
}

// Report is the result of an audit.
type Report struct {
	Posts         []Entry  `json:"posts"`
	Pages         []Entry  `json:"pages"`
	Errors        []string `json:"errors"`
	MissingTitles []string `json:"missingTitles"`
	MissingDates  []string `json:"missingDates"`
}

// Checklist is the pre-deployment checklist.
type Checklist struct {
	PostsMigrated bool `json:"postsMigrated"`
	PagesMigrated bool `json:"pagesMigrated"`
	NoFileErrors  bool `json:"noFileErrors"`
	AllTitled     bool `json:"allTitled"`
	AllDated      bool `json:"allDated"`
}

// Run audits the blog and pages directories.
func Run(store *storage.Storage, opts Options) (Report, error) {
	r := Report{
		Posts:         []Entry{},
		Pages:         []Entry{},
		Errors:        []string{},
		MissingTitles: []string{},
		MissingDates:  []string{},
	}

	dirs := []struct {
		dir, typ, prefix string
		into             *[]Entry
	}{
		{opts.BlogDir, models.TypePost, opts.BlogURLPrefix, &r.Posts},
		{opts.PagesDir, models.TypePage, opts.PageURLPrefix, &r.Pages},
	}
	for _, d := range dirs {
		res, err := scanner.Scan(store, d.dir, opts.Pattern, d.typ)
		if err != nil {
			return r, err
		}
		r.Errors = append(r.Errors, res.Errors...)
		for _, rec := range res.Records {
			e := Entry{
				Type:   d.typ,
				File:   rec.File,
				Slug:   rec.Slug,
				Title:  orPlaceholder(rec.Title, NoTitle),
				Date:   orPlaceholder(rec.Date, NoDate),
				Status: NoStatus,
				URL:    d.prefix + rec.Slug,
			}
			if doc := res.Documents[rec.File]; doc != nil {
				e.Status = orPlaceholder(doc.FrontMatter.Status, NoStatus)
			}
			*d.into = append(*d.into, e)
		}
	}

	for _, e := range append(append([]Entry{}, r.Posts...), r.Pages...) {
		if e.Title == NoTitle {
			r.MissingTitles = append(r.MissingTitles, e.File)
		}
		if e.Date == NoDate {
			r.MissingDates = append(r.MissingDates, e.File)
		}
	}
	return r, nil
}

func orPlaceholder(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v
}

// Checklist evaluates the pre-deployment checklist.
func (r Report) Checklist() Checklist {
	return Checklist{
		PostsMigrated: len(r.Posts) > 0,
		PagesMigrated: len(r.Pages) > 0,
		NoFileErrors:  len(r.Errors) == 0,
		AllTitled:     len(r.MissingTitles) == 0,
		AllDated:      len(r.MissingDates) == 0,
	}
}

// Ready requires at least one post and no file errors. Missing titles, dates
// and pages are reported but do not block.
func (r Report) Ready() bool {
	return len(r.Posts) > 0 && len(r.Errors) == 0
}

// Print writes the human-readable audit summary.
func Print(w io.Writer, r Report) {
	fmt.Fprintln(w, "MIGRATION AUDIT RESULTS")
	fmt.Fprintf(w, "Blog posts: %d\n", len(r.Posts))
	fmt.Fprintf(w, "Pages: %d\n", len(r.Pages))
	fmt.Fprintf(w, "Total content: %d\n", len(r.Posts)+len(r.Pages))
	fmt.Fprintf(w, "Errors: %d\n", len(r.Errors))

	printList(w, "ERRORS FOUND", r.Errors)
	printList(w, "FILES MISSING TITLES", r.MissingTitles)
	printList(w, "FILES MISSING DATES", r.MissingDates)

	fmt.Fprintln(w, "\nSAMPLE BLOG POSTS:")
	for i, p := range r.Posts {
		if i == samplePosts {
			fmt.Fprintf(w, "  ... and %d more posts\n", len(r.Posts)-samplePosts)
			break
		}
		fmt.Fprintf(w, "  %s (%s) -> %s\n", p.Title, p.Date, p.URL)
	}

	if len(r.Pages) > 0 {
		fmt.Fprintln(w, "\nPAGES:")
		for _, p := range r.Pages {
			fmt.Fprintf(w, "  %s -> %s\n", p.Title, p.URL)
		}
	}

	c := r.Checklist()
	fmt.Fprintln(w, "\nPRE-DEPLOYMENT CHECKLIST:")
	fmt.Fprintf(w, "  [%s] Blog posts migrated\n", mark(c.PostsMigrated))
	fmt.Fprintf(w, "  [%s] Pages migrated\n", mark(c.PagesMigrated))
	fmt.Fprintf(w, "  [%s] No file errors\n", mark(c.NoFileErrors))
	fmt.Fprintf(w, "  [%s] All files have titles\n", mark(c.AllTitled))
	fmt.Fprintf(w, "  [%s] All files have dates\n", mark(c.AllDated))
	fmt.Fprintf(w, "\nReady for deployment: %s\n", yesNo(r.Ready()))
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

func mark(ok bool) string {
	if ok {
		return "x"
	}
	return " "
}

func yesNo(ok bool) string {
	if ok {
		return "YES"
	}
	return "NO"
}
