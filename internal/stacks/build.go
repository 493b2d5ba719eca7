package stacks

import (
	"slices"
	"strings"

	"github.com/nugget/voicenote/internal/elements"
)

// CustomRefPrefix marks a selection that refers to a library preset
// rather than a catalog element, as in "custom:<id>".
const CustomRefPrefix = "custom:"

// RefResolver looks up the instruction text for a custom reference id.
// The id is the part after [CustomRefPrefix].
type RefResolver interface {
	ResolveRef(id string) (string, bool)
}

// RefResolverFunc adapts a function to [RefResolver].
type RefResolverFunc func(id string) (string, bool)

// ResolveRef calls f(id).
func (f RefResolverFunc) ResolveRef(id string) (string, bool) {
	return f(id)
}

// IsCustomRef reports whether key is a custom reference with a non-empty
// id.
func IsCustomRef(key string) bool {
	id, ok := strings.CutPrefix(key, CustomRefPrefix)
	return ok && id != ""
}

// BuildPrompt composes the instruction text for a selection of element
// keys. Sections appear in category order (Format, Style, Grammar), each
// as a heading line followed by one instruction per line, with a blank
// line between sections. Within a section, elements follow catalog
// definition order, so the result does not depend on the order of keys.
//
// Keys that are neither catalog elements nor custom references are
// ignored. Custom references are resolved through refs (which may be nil)
// and appended to the Style section in sorted order; unresolvable
// references are ignored.
func BuildPrompt(cat *elements.Catalog, keys []string, refs RefResolver) string {
	selected := make(map[string]bool, len(keys))
	var customRefs []string
	for _, k := range keys {
		if selected[k] {
			continue
		}
		selected[k] = true
		if !cat.Has(k) && IsCustomRef(k) {
			customRefs = append(customRefs, k)
		}
	}
	slices.Sort(customRefs)

	var sections []string
	for _, c := range elements.Categories() {
		var lines []string
		for _, e := range cat.Get(c) {
			if selected[e.Key] && e.Instruction != "" {
				lines = append(lines, e.Instruction)
			}
		}
		if c == elements.CategoryStyle && refs != nil {
			for _, ref := range customRefs {
				text, ok := refs.ResolveRef(strings.TrimPrefix(ref, CustomRefPrefix))
				if ok && strings.TrimSpace(text) != "" {
					lines = append(lines, strings.TrimSpace(text))
				}
			}
		}
		if len(lines) == 0 {
			continue
		}
		sections = append(sections, "## "+c.Title()+"\n"+strings.Join(lines, "\n"))
	}
	return strings.Join(sections, "\n\n")
}
