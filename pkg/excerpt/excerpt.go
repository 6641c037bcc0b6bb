// Package excerpt turns a markdown/MDX body into a short plain-text summary.
package excerpt

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	headerRe     = regexp.MustCompile(`#{1,6}\s+`)
	boldRe       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe     = regexp.MustCompile(`\*(.*?)\*`)
	linkRe       = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)
	inlineCodeRe = regexp.MustCompile("`(.*?)`")
	spaceRe      = regexp.MustCompile(`\s+`)
)

// PlainText strips embedded HTML and markdown syntax and collapses whitespace.
func PlainText(body string) string {
	text := stripHTML(body)
	text = headerRe.ReplaceAllString(text, "")
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = linkRe.ReplaceAllString(text, "$1")
	text = inlineCodeRe.ReplaceAllString(text, "$1")
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Generate returns at most maxLength characters of plain text. Longer text
// is cut after the last sentence end when that falls past 60% of the limit,
// otherwise at the last word boundary with "..." appended.
func Generate(body string, maxLength int) string {
	text := []rune(PlainText(body))
	if len(text) <= maxLength {
		return string(text)
	}

	truncated := text[:maxLength]
	end := lastIndexAny(truncated, ".!?")
	if float64(end) > float64(maxLength)*0.6 {
		return string(truncated[:end+1])
	}

	if space := lastIndexAny(truncated, " "); space >= 0 {
		return string(truncated[:space]) + "..."
	}
	return string(truncated) + "..."
}

func stripHTML(body string) string {
	if !strings.ContainsRune(body, '<') {
		return body
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return body
	}
	doc.Find("script, style").Remove()
	return doc.Text()
}

func lastIndexAny(s []rune, chars string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if strings.ContainsRune(chars, s[i]) {
			return i
		}
	}
	return -1
}
