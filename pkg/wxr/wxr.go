// Package wxr reads WordPress eXtended RSS exports.
package wxr

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/dtnitsch/wp-migrate/models"
)

// ParseError reports an export that cannot be read as a WXR document.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid WordPress export: %s: %v", e.Reason, e.Err)
	}
	return "invalid WordPress export: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse returns the published items of an export, in document order.
// Items without a title or slug are dropped.
func Parse(data []byte) ([]models.ContentItem, error) {
	all, err := ParseAll(data)
	if err != nil {
		return nil, err
	}
	return Published(all), nil
}

// Published keeps the items that are published and addressable.
func Published(items []models.ContentItem) []models.ContentItem {
	out := make([]models.ContentItem, 0, len(items))
	for _, item := range items {
		if item.IsPublished() {
			out = append(out, item)
		}
	}
	return out
}

// ParseAll returns every item of an export regardless of status.
func ParseAll(data []byte) ([]models.ContentItem, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &ParseError{Reason: "malformed XML", Err: err}
	}

	root := doc.Root()
	if root == nil || root.Tag != "rss" {
		return nil, &ParseError{Reason: "missing rss root element"}
	}
	channel := root.SelectElement("channel")
	if channel == nil {
		return nil, &ParseError{Reason: "missing channel element"}
	}

	elements := channel.SelectElements("item")
	items := make([]models.ContentItem, 0, len(elements))
	for _, el := range elements {
		items = append(items, readItem(el))
	}
	return items, nil
}

func readItem(el *etree.Element) models.ContentItem {
	item := models.ContentItem{
		ID:          childText(el, "wp:post_id"),
		Title:       childText(el, "title"),
		Slug:        childText(el, "wp:post_name"),
		Type:        childText(el, "wp:post_type"),
		Status:      childText(el, "wp:status"),
		PublishedAt: childText(el, "pubDate"),
		Terms:       []models.TermRef{},
	}

	for _, cat := range el.SelectElements("category") {
		// <wp:category> only appears on the channel, but stay strict.
		if cat.Space != "" {
			continue
		}
		item.Terms = append(item.Terms, models.TermRef{
			Domain:   cat.SelectAttrValue("domain", ""),
			Nicename: cat.SelectAttrValue("nicename", ""),
			Name:     strings.TrimSpace(cat.Text()),
		})
	}
	return item
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// Stats summarises an export for console output.
type Stats struct {
	Items     int
	Published int
	ByType    map[string]int
	ByStatus  map[string]int
}

// Summarize counts items by type and status.
func Summarize(items []models.ContentItem) Stats {
	st := Stats{
		Items:    len(items),
		ByType:   map[string]int{},
		ByStatus: map[string]int{},
	}
	for _, item := range items {
		st.ByType[item.Type]++
		st.ByStatus[item.Status]++
		if item.IsPublished() {
			st.Published++
		}
	}
	return st
}
