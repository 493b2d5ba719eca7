package foundation

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed defaults/*.md
var defaultFiles embed.FS

var defaultSections = sync.OnceValue(func() []Section {
	sub, err := fs.Sub(defaultFiles, "defaults")
	if err != nil {
		panic("foundation: " + err.Error())
	}
	sections, err := LoadFS(sub)
	if err != nil {
		panic("foundation: embedded defaults: " + err.Error())
	}
	if len(sections) == 0 {
		panic("foundation: embedded defaults define no sections")
	}
	return sections
})

// Default returns the shipped foundation sections. The result is a copy
// and may be modified by the caller.
func Default() []Section {
	src := defaultSections()
	out := make([]Section, len(src))
	for i, s := range src {
		out[i] = Section{Heading: s.Heading, Items: append([]string(nil), s.Items...)}
	}
	return out
}

// DefaultFiles exposes the embedded markdown so `voicenote init` can
// write editable copies into the user's foundation directory.
func DefaultFiles() fs.FS {
	sub, err := fs.Sub(defaultFiles, "defaults")
	if err != nil {
		panic("foundation: " + err.Error())
	}
	return sub
}
