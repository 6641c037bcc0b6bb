// Package frontmatter reads and writes the YAML block at the top of a
// content file. Known fields are typed; everything else passes through
// untouched, in its original order and style.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrUnterminated is returned when the opening delimiter has no closing line.
var ErrUnterminated = errors.New("front matter block is not terminated")

// Field is a key the typed struct does not know about.
type Field struct {
	Key   string
	Value *yaml.Node
}

// FrontMatter is the typed view of a front matter block.
// A nil Slug means the key is absent; nil Categories/Tags mean the same.
type FrontMatter struct {
	Title      string
	Date       string
	Excerpt    string
	Status     string
	Slug       *string
	Categories []string
	Tags       []string
	Extra      []Field
}

// Document is a parsed content file.
type Document struct {
	FrontMatter FrontMatter
	Body        string

	hasBlock bool
	order    []string
	raw      map[string]*yaml.Node
	orig     FrontMatter
}

// known keys in the order new ones are appended
var knownKeys = []string{"title", "date", "slug", "excerpt", "status", "categories", "tags"}

// Parse splits text into front matter and body. Text without a leading
// delimiter line has empty front matter and is all body.
func Parse(text string) (*Document, error) {
	block, body, found, err := split(text)
	if err != nil {
		return nil, err
	}

	doc := &Document{Body: body, hasBlock: found, raw: map[string]*yaml.Node{}}
	if !found || strings.TrimSpace(block) == "" {
		return doc, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(block), &root); err != nil {
		return nil, fmt.Errorf("invalid front matter: %w", err)
	}
	if len(root.Content) == 0 {
		return doc, nil
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("invalid front matter: expected a mapping, got %s", kindName(mapping.Kind))
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i].Value, mapping.Content[i+1]
		if err := doc.assign(key, value); err != nil {
			return nil, fmt.Errorf("invalid front matter field %q: %w", key, err)
		}
	}
	doc.orig = doc.FrontMatter.clone()
	return doc, nil
}

func (d *Document) assign(key string, value *yaml.Node) error {
	if _, seen := d.raw[key]; !seen && !d.hasExtra(key) {
		d.order = append(d.order, key)
	}

	fm := &d.FrontMatter
	var err error
	switch key {
	case "title":
		fm.Title, err = scalar(value)
	case "date":
		fm.Date, err = scalar(value)
	case "excerpt":
		fm.Excerpt, err = scalar(value)
	case "status":
		fm.Status, err = scalar(value)
	case "slug":
		var s string
		if s, err = scalar(value); err == nil && !isNull(value) {
			fm.Slug = &s
		}
	case "categories":
		fm.Categories, err = sequence(value)
	case "tags":
		fm.Tags, err = sequence(value)
	default:
		for i := range fm.Extra {
			if fm.Extra[i].Key == key {
				fm.Extra[i].Value = value
				return nil
			}
		}
		fm.Extra = append(fm.Extra, Field{Key: key, Value: value})
		return nil
	}
	if err != nil {
		return err
	}
	d.raw[key] = value
	return nil
}

func (d *Document) hasExtra(key string) bool {
	for _, f := range d.FrontMatter.Extra {
		if f.Key == key {
			return true
		}
	}
	return false
}

// SetTaxonomy replaces the categories and tags of the document.
func (d *Document) SetTaxonomy(categories, tags []string) {
	d.FrontMatter.Categories = append([]string{}, categories...)
	d.FrontMatter.Tags = append([]string{}, tags...)
}

// String re-serialises the document. Unchanged values keep their original
// style; keys keep their original order and new keys are appended.
func (d *Document) String() (string, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	emitted := map[string]bool{}
	for _, key := range d.order {
		value, ok, err := d.valueNode(key)
		if err != nil {
			return "", err
		}
		if ok {
			mapping.Content = append(mapping.Content, keyNode(key), value)
		}
		emitted[key] = true
	}
	for _, key := range knownKeys {
		if emitted[key] {
			continue
		}
		value, ok, err := d.valueNode(key)
		if err != nil {
			return "", err
		}
		if ok {
			mapping.Content = append(mapping.Content, keyNode(key), value)
		}
	}

	if len(mapping.Content) == 0 {
		if d.hasBlock {
			return delimiter + "\n" + delimiter + "\n" + d.Body, nil
		}
		return d.Body, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(mapping); err != nil {
		return "", fmt.Errorf("failed to encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode front matter: %w", err)
	}

	var out strings.Builder
	out.WriteString(delimiter + "\n")
	out.Write(buf.Bytes())
	out.WriteString(delimiter + "\n")
	out.WriteString(d.Body)
	return out.String(), nil
}

// valueNode returns the node to emit for key, or false when the key is absent.
func (d *Document) valueNode(key string) (*yaml.Node, bool, error) {
	fm, orig := d.FrontMatter, d.orig
	raw, hadRaw := d.raw[key]

	switch key {
	case "title":
		return scalarField(fm.Title, orig.Title, raw, hadRaw)
	case "date":
		return scalarField(fm.Date, orig.Date, raw, hadRaw)
	case "excerpt":
		return scalarField(fm.Excerpt, orig.Excerpt, raw, hadRaw)
	case "status":
		return scalarField(fm.Status, orig.Status, raw, hadRaw)
	case "slug":
		if fm.Slug == nil {
			return nil, false, nil
		}
		if hadRaw && orig.Slug != nil && *orig.Slug == *fm.Slug {
			return raw, true, nil
		}
		return encode(*fm.Slug)
	case "categories":
		return sequenceField(fm.Categories, orig.Categories, raw, hadRaw)
	case "tags":
		return sequenceField(fm.Tags, orig.Tags, raw, hadRaw)
	}

	for _, f := range fm.Extra {
		if f.Key == key {
			return f.Value, f.Value != nil, nil
		}
	}
	return nil, false, nil
}

func scalarField(cur, orig string, raw *yaml.Node, hadRaw bool) (*yaml.Node, bool, error) {
	if hadRaw && cur == orig {
		return raw, true, nil
	}
	if !hadRaw && cur == "" {
		return nil, false, nil
	}
	return encode(cur)
}

func sequenceField(cur, orig []string, raw *yaml.Node, hadRaw bool) (*yaml.Node, bool, error) {
	if cur == nil {
		return nil, false, nil
	}
	if hadRaw && slices.Equal(cur, orig) {
		return raw, true, nil
	}
	return encode(cur)
}

func encode(v any) (*yaml.Node, bool, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, false, fmt.Errorf("failed to encode front matter value: %w", err)
	}
	return &n, true, nil
}

func keyNode(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}

func scalar(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("expected a scalar, got %s", kindName(n.Kind))
	}
	if isNull(n) {
		return "", nil
	}
	return n.Value, nil
}

func sequence(n *yaml.Node) ([]string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if isNull(n) {
			return []string{}, nil
		}
		return []string{n.Value}, nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			s, err := scalar(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a list, got %s", kindName(n.Kind))
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "document"
}

func (fm FrontMatter) clone() FrontMatter {
	c := fm
	if fm.Slug != nil {
		s := *fm.Slug
		c.Slug = &s
	}
	c.Categories = slices.Clone(fm.Categories)
	c.Tags = slices.Clone(fm.Tags)
	c.Extra = slices.Clone(fm.Extra)
	return c
}

// split separates the front matter block from the body.
func split(text string) (block, body string, found bool, err error) {
	first := nextLine(text)
	if !isDelimiter(first) {
		return "", text, false, nil
	}
	for offset := len(first); offset < len(text); {
		line := nextLine(text[offset:])
		if isDelimiter(line) {
			return text[len(first):offset], text[offset+len(line):], true, nil
		}
		offset += len(line)
	}
	return "", "", false, ErrUnterminated
}

func nextLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i+1]
	}
	return s
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r\n") == delimiter
}
