package main

import (
	"fmt"
	"slices"

	"github.com/nugget/voicenote/internal/elements"
)

func runElements(a *app, out *output, args []string) error {
	cats := elements.Categories()
	if len(args) > 1 {
		return usage("elements [format|style|grammar]")
	}
	if len(args) == 1 {
		cat := elements.Category(args[0])
		if !slices.Contains(cats, cat) {
			return fmt.Errorf("unknown element category: %s", args[0])
		}
		cats = []elements.Category{cat}
	}

	if out.json() {
		var all []elements.Element
		for _, cat := range cats {
			all = append(all, a.catalog.Get(cat)...)
		}
		return out.encode(all)
	}

	for i, cat := range cats {
		if i > 0 {
			out.println()
		}
		out.println(cat.Title())
		for _, e := range a.catalog.Get(cat) {
			out.printf("  %-20s %s\n", e.Key, e.Description)
		}
	}
	return nil
}
