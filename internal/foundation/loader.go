// Package foundation loads the always-applied base rules that open every
// composed prompt. Rules live in markdown files: each heading starts a
// section and each list item or paragraph beneath it becomes one rule.
package foundation

import (
	"bytes"
	"cmp"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Section is a titled group of rules.
type Section struct {
	Heading string   `json:"heading"`
	Items   []string `json:"items"`
}

// Render formats the section as a markdown heading followed by one
// bullet per rule.
func (s Section) Render() string {
	var sb strings.Builder
	sb.WriteString("## ")
	sb.WriteString(s.Heading)
	for _, item := range s.Items {
		sb.WriteString("\n- ")
		sb.WriteString(item)
	}
	return sb.String()
}

// Render joins rendered sections with a blank line between them.
func Render(sections []Section) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		parts = append(parts, s.Render())
	}
	return strings.Join(parts, "\n\n")
}

// Loader reads foundation files from a directory.
type Loader struct {
	dir string
}

// NewLoader creates a loader for dir. An empty dir means "use the
// embedded defaults".
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load returns the sections defined by the markdown files in the loader's
// directory. When the directory is unset, missing, or yields no sections,
// the embedded defaults are returned instead.
func (l *Loader) Load() ([]Section, error) {
	if l.dir == "" {
		return Default(), nil
	}

	info, err := os.Stat(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read foundation dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("foundation path %s is not a directory", l.dir)
	}

	sections, err := LoadFS(os.DirFS(l.dir))
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return Default(), nil
	}
	return sections, nil
}

// frontmatter is the optional YAML header of a foundation file.
type frontmatter struct {
	Order    int    `yaml:"order"`
	Title    string `yaml:"title"`
	Disabled bool   `yaml:"disabled"`
}

type file struct {
	name string
	meta frontmatter
	body []byte
}

// LoadFS parses every top-level .md file in fsys. Files are ordered by
// their frontmatter order, then by name; disabled files are skipped.
func LoadFS(fsys fs.FS) ([]Section, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read foundation dir: %w", err)
	}

	var files []file
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("read foundation %s: %w", e.Name(), err)
		}
		raw, body := splitFrontmatter(data)
		var meta frontmatter
		if raw != nil {
			if err := yaml.Unmarshal(raw, &meta); err != nil {
				return nil, fmt.Errorf("parse frontmatter in %s: %w", e.Name(), err)
			}
		}
		if meta.Disabled {
			continue
		}
		files = append(files, file{name: e.Name(), meta: meta, body: body})
	}

	slices.SortFunc(files, func(a, b file) int {
		if c := cmp.Compare(a.meta.Order, b.meta.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	var sections []Section
	for _, f := range files {
		title := f.meta.Title
		if title == "" {
			title = titleFromName(f.name)
		}
		sections = append(sections, parseSections(f.body, title)...)
	}
	return sections, nil
}

// splitFrontmatter separates a leading "---" delimited YAML block from
// the markdown body. It returns a nil header when there is none.
func splitFrontmatter(data []byte) ([]byte, []byte) {
	if !bytes.HasPrefix(data, []byte("---")) {
		return nil, data
	}

	rest := bytes.TrimLeft(data[3:], " \t")
	switch {
	case bytes.HasPrefix(rest, []byte("\n")):
		rest = rest[1:]
	case bytes.HasPrefix(rest, []byte("\r\n")):
		rest = rest[2:]
	default:
		return nil, data
	}

	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, data
	}
	header := rest[:end]
	body := bytes.TrimLeft(rest[end+4:], "\r\n")
	return header, body
}

// parseSections walks the top-level blocks of a markdown document. Rules
// that appear before the first heading are collected under title.
func parseSections(src []byte, title string) []Section {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var sections []Section
	current := Section{Heading: title}
	flush := func() {
		if len(current.Items) > 0 {
			sections = append(sections, current)
		}
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			flush()
			current = Section{Heading: inlineText(node, src)}
		case *ast.List:
			current.Items = append(current.Items, listItems(node, src)...)
		case *ast.Paragraph:
			if s := inlineText(node, src); s != "" {
				current.Items = append(current.Items, s)
			}
		}
	}
	flush()
	return sections
}

// listItems returns the text of each item in list. Nested lists are
// flattened into separate items following their parent.
func listItems(list *ast.List, src []byte) []string {
	var items []string
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		if s := inlineText(li, src); s != "" {
			items = append(items, s)
		}
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			if nested, ok := c.(*ast.List); ok {
				items = append(items, listItems(nested, src)...)
			}
		}
	}
	return items
}

// inlineText concatenates the text under n, skipping nested lists.
// Soft line breaks become spaces.
func inlineText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if c != n && c.Kind() == ast.KindList {
			return ast.WalkSkipChildren, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(sb.String()), " ")
}

// titleFromName derives a heading from a file name such as
// "10-core_rules.md" ("Core rules").
func titleFromName(name string) string {
	base := strings.TrimSuffix(path.Base(name), ".md")
	base = strings.TrimLeft(base, "0123456789-_ ")
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	base = strings.TrimSpace(base)
	if base == "" {
		return "Rules"
	}
	return strings.ToUpper(base[:1]) + base[1:]
}
