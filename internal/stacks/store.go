// Package stacks persists named, reusable selections of prompt elements
// and composes element selections into instruction text.
package stacks

import (
	"cmp"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/nugget/voicenote/internal/elements"
	"github.com/nugget/voicenote/internal/store"
)

// Stack is a named selection of element keys. Elements may include
// custom references ("custom:<id>").
type Stack struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Elements    []string `json:"elements"`
}

// Store holds the saved stacks. All public methods are safe for
// concurrent use.
type Store struct {
	path    string
	catalog *elements.Catalog
	refs    RefResolver
	logger  *slog.Logger

	mu     sync.Mutex
	stacks map[string]Stack
}

// Open loads the stacks persisted at path. A missing file yields an empty
// store and an empty path keeps the store in memory only. refs resolves
// custom references in BuildPromptFromElements and may be nil.
func Open(path string, catalog *elements.Catalog, refs RefResolver, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		path:    path,
		catalog: catalog,
		refs:    refs,
		logger:  logger,
		stacks:  make(map[string]Stack),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory stacks with the persisted ones.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}

	var saved []Stack
	found, err := store.ReadFile(s.path, &saved)
	if err != nil {
		return err
	}

	loaded := make(map[string]Stack, len(saved))
	if found {
		for _, st := range saved {
			if st.Name == "" {
				s.logger.Warn("dropping stack without a name", "path", s.path)
				continue
			}
			if _, dup := loaded[st.Name]; dup {
				s.logger.Warn("duplicate stack name, keeping the last", "name", st.Name)
			}
			st.Elements = s.normalize(st.Name, st.Elements)
			loaded[st.Name] = st
		}
	}

	s.mu.Lock()
	s.stacks = loaded
	s.mu.Unlock()

	s.logger.Debug("prompt stacks loaded", "path", s.path, "count", len(loaded))
	return nil
}

// normalize drops unknown keys and duplicates and orders the rest: catalog
// elements by category and definition order, then custom references
// sorted.
func (s *Store) normalize(name string, keys []string) []string {
	rank := make(map[elements.Category]int)
	for i, c := range elements.Categories() {
		rank[c] = i
	}

	seen := make(map[string]bool, len(keys))
	var known []elements.Element
	var refs []string
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		if e, ok := s.catalog.Lookup(k); ok {
			known = append(known, e)
			continue
		}
		if IsCustomRef(k) {
			refs = append(refs, k)
			continue
		}
		s.logger.Warn("dropping unknown element from stack", "stack", name, "key", k)
	}

	slices.SortFunc(known, func(a, b elements.Element) int {
		if c := cmp.Compare(rank[a.Category], rank[b.Category]); c != 0 {
			return c
		}
		return cmp.Compare(s.catalog.Position(a.Key), s.catalog.Position(b.Key))
	})
	slices.Sort(refs)

	out := make([]string, 0, len(known)+len(refs))
	for _, e := range known {
		out = append(out, e.Key)
	}
	return append(out, refs...)
}

// GetAllStacks returns every stack sorted by name.
func (s *Store) GetAllStacks() []Stack {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedStacks(s.stacks)
}

// Get returns the stack with the given name.
func (s *Store) Get(name string) (Stack, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stacks[name]
	if ok {
		st.Elements = slices.Clone(st.Elements)
	}
	return st, ok
}

func sortedStacks(m map[string]Stack) []Stack {
	out := make([]Stack, 0, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		st := m[name]
		st.Elements = slices.Clone(st.Elements)
		out = append(out, st)
	}
	return out
}

// SaveCustomStack stores st, replacing any stack with the same name.
// Unknown element keys are dropped. It returns the stack as stored.
func (s *Store) SaveCustomStack(st Stack) (Stack, error) {
	if strings.TrimSpace(st.Name) == "" {
		return Stack{}, &store.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	st.Elements = s.normalize(st.Name, st.Elements)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := maps.Clone(s.stacks)
	next[st.Name] = st
	if err := s.save(next); err != nil {
		return Stack{}, err
	}
	s.stacks = next

	s.logger.Info("prompt stack saved", "name", st.Name, "elements", len(st.Elements))
	st.Elements = slices.Clone(st.Elements)
	return st, nil
}

// DeleteStack removes the named stack. It does nothing when no such stack
// exists.
func (s *Store) DeleteStack(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stacks[name]; !ok {
		return nil
	}
	next := maps.Clone(s.stacks)
	delete(next, name)
	if err := s.save(next); err != nil {
		return err
	}
	s.stacks = next

	s.logger.Info("prompt stack deleted", "name", name)
	return nil
}

func (s *Store) save(m map[string]Stack) error {
	if s.path == "" {
		return nil
	}
	return store.WriteFile(s.path, sortedStacks(m))
}

// BuildPromptFromElements composes keys with the store's catalog and
// reference resolver. See [BuildPrompt].
func (s *Store) BuildPromptFromElements(keys []string) string {
	return BuildPrompt(s.catalog, keys, s.refs)
}

// Export returns the named stack as an indented JSON document suitable
// for sharing.
func (s *Store) Export(name string) ([]byte, error) {
	st, ok := s.Get(name)
	if !ok {
		return nil, &store.NotFoundError{Kind: "stack", ID: name}
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode stack %q: %w", name, err)
	}
	return append(data, '\n'), nil
}

// Import parses a stack document produced by Export (or written by hand)
// and saves it.
func (s *Store) Import(data []byte) (Stack, error) {
	var st Stack
	if err := store.Decode(data, &st); err != nil {
		return Stack{}, &store.ValidationError{Field: "stack", Reason: err.Error()}
	}
	return s.SaveCustomStack(st)
}
