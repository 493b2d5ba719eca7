// Package elements is the static registry of selectable prompt fragments.
// Elements are grouped into three fixed categories (format, style,
// grammar), defined at process start, and never edited by users.
package elements

import "fmt"

// Category groups related elements.
type Category string

const (
	CategoryFormat  Category = "format"
	CategoryStyle   Category = "style"
	CategoryGrammar Category = "grammar"
)

// Categories returns the element categories in composition order.
func Categories() []Category {
	return []Category{CategoryFormat, CategoryStyle, CategoryGrammar}
}

// Title returns the section heading used for a category.
func (c Category) Title() string {
	switch c {
	case CategoryFormat:
		return "Format"
	case CategoryStyle:
		return "Style"
	case CategoryGrammar:
		return "Grammar"
	default:
		return string(c)
	}
}

// Element is a named, categorized prompt fragment.
type Element struct {
	Key         string   `json:"key"`
	Category    Category `json:"category"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Instruction string   `json:"instruction"`
}

// Catalog is a read-only registry of elements. Keys are unique across
// all categories.
type Catalog struct {
	byCategory map[Category][]Element
	byKey      map[string]Element
	order      map[string]int // definition order within the element's category
}

// NewCatalog builds a catalog from elements in definition order. It
// panics on an empty or duplicate key or an unknown category, since the
// catalog is fixed at compile time and a bad entry is a programming error.
func NewCatalog(elems ...Element) *Catalog {
	c := &Catalog{
		byCategory: make(map[Category][]Element),
		byKey:      make(map[string]Element, len(elems)),
		order:      make(map[string]int, len(elems)),
	}
	for _, e := range elems {
		if e.Key == "" {
			panic("elements: empty key")
		}
		if _, dup := c.byKey[e.Key]; dup {
			panic(fmt.Sprintf("elements: duplicate key %q", e.Key))
		}
		switch e.Category {
		case CategoryFormat, CategoryStyle, CategoryGrammar:
		default:
			panic(fmt.Sprintf("elements: key %q has unknown category %q", e.Key, e.Category))
		}
		c.order[e.Key] = len(c.byCategory[e.Category])
		c.byCategory[e.Category] = append(c.byCategory[e.Category], e)
		c.byKey[e.Key] = e
	}
	return c
}

// Get returns the elements of a category in definition order. The
// returned slice is a copy.
func (c *Catalog) Get(cat Category) []Element {
	src := c.byCategory[cat]
	out := make([]Element, len(src))
	copy(out, src)
	return out
}

// Lookup returns the element with the given key.
func (c *Catalog) Lookup(key string) (Element, bool) {
	e, ok := c.byKey[key]
	return e, ok
}

// Has reports whether key names a catalog element.
func (c *Catalog) Has(key string) bool {
	_, ok := c.byKey[key]
	return ok
}

// Position returns the definition index of key within its category, or
// -1 when key is not in the catalog.
func (c *Catalog) Position(key string) int {
	if i, ok := c.order[key]; ok {
		return i
	}
	return -1
}

// Len returns the total number of elements.
func (c *Catalog) Len() int {
	return len(c.byKey)
}
