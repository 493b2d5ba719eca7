package library

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/nugget/voicenote/internal/store"
)

// document is the on-disk shape of the library.
type document struct {
	Overlays  map[string]Overlay `json:"overlays"`
	Custom    []record           `json:"custom"`
	Favorites map[string]int     `json:"favorites"`
}

// state is the in-memory library state. It is replaced wholesale on each
// successful commit and never mutated after publication.
type state struct {
	overlays  map[string]Overlay
	custom    []record
	favorites map[string]int
}

func (st *state) clone() *state {
	return &state{
		overlays:  maps.Clone(st.overlays),
		custom:    slices.Clone(st.custom),
		favorites: maps.Clone(st.favorites),
	}
}

func (st *state) document() document {
	doc := document{
		Overlays:  st.overlays,
		Custom:    st.custom,
		Favorites: st.favorites,
	}
	if doc.Custom == nil {
		doc.Custom = []record{}
	}
	return doc
}

func (st *state) customIndex(id string) int {
	return slices.IndexFunc(st.custom, func(r record) bool { return r.ID == id })
}

// Library is the prompt preset store. All public methods are safe for
// concurrent use.
type Library struct {
	path   string
	logger *slog.Logger

	builtins   []Config
	builtinIdx map[string]int

	mu    sync.Mutex
	state *state
}

// Open loads the library persisted at path. A missing file yields an
// empty library. An empty path keeps the library in memory only.
func Open(path string, logger *slog.Logger) (*Library, error) {
	if logger == nil {
		logger = slog.Default()
	}

	l := &Library{
		path:       path,
		logger:     logger,
		builtins:   Builtins(),
		builtinIdx: make(map[string]int, len(builtins)),
		state: &state{
			overlays:  make(map[string]Overlay),
			favorites: make(map[string]int),
		},
	}
	for i, c := range l.builtins {
		l.builtinIdx[c.ID] = i
	}

	if path == "" {
		return l, nil
	}

	var doc document
	found, err := store.ReadFile(path, &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return l, nil
	}

	st, dirty, err := l.normalize(doc)
	if err != nil {
		return nil, err
	}
	if dirty {
		if err := l.save(st); err != nil {
			return nil, err
		}
	}
	l.state = st

	logger.Debug("prompt library loaded",
		"path", path,
		"overlays", len(st.overlays),
		"custom", len(st.custom),
		"favorites", len(st.favorites),
	)
	return l, nil
}

// normalize turns a decoded document into valid state, dropping or
// defaulting what it cannot use. dirty reports whether the result differs
// from the document in a way that should be written back (generated ids).
func (l *Library) normalize(doc document) (*state, bool, error) {
	st := &state{
		overlays:  make(map[string]Overlay, len(doc.Overlays)),
		favorites: make(map[string]int, len(doc.Favorites)),
	}
	dirty := false

	for id, o := range doc.Overlays {
		if !l.isBuiltin(id) {
			l.logger.Warn("dropping overlay for unknown builtin", "id", id)
			continue
		}
		clean := o.sanitize()
		if clean != o {
			l.logger.Warn("dropping invalid overlay fields", "id", id)
		}
		if clean.IsEmpty() {
			continue
		}
		st.overlays[id] = clean
	}

	seen := make(map[string]bool, len(doc.Custom))
	for _, r := range doc.Custom {
		if r.ID == "" {
			id, err := newID()
			if err != nil {
				return nil, false, err
			}
			r.ID = id
			dirty = true
			l.logger.Info("assigned id to custom prompt", "id", r.ID, "name", r.Name)
		}
		if l.isBuiltin(r.ID) || seen[r.ID] {
			l.logger.Warn("dropping custom prompt with duplicate id", "id", r.ID, "name", r.Name)
			continue
		}
		if strings.TrimSpace(r.Name) == "" {
			r.Name = r.ID
		}
		if !r.Category.Valid() {
			r.Category = CategoryCustom
		}
		if !r.Formality.Valid() {
			l.logger.Warn("ignoring unknown formality", "id", r.ID, "formality", r.Formality)
			r.Formality = FormalityUnset
		}
		if !r.Verbosity.Valid() {
			l.logger.Warn("ignoring unknown verbosity", "id", r.ID, "verbosity", r.Verbosity)
			r.Verbosity = VerbosityUnset
		}
		seen[r.ID] = true
		st.custom = append(st.custom, r)
	}

	for id, order := range doc.Favorites {
		if !l.isBuiltin(id) && !seen[id] {
			l.logger.Debug("ignoring favorite for unknown prompt", "id", id)
			continue
		}
		st.favorites[id] = order
	}

	return st, dirty, nil
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}

func (l *Library) isBuiltin(id string) bool {
	_, ok := l.builtinIdx[id]
	return ok
}

func (l *Library) save(st *state) error {
	if l.path == "" {
		return nil
	}
	return store.WriteFile(l.path, st.document())
}

// commit applies mutate to a copy of the current state, persists the
// copy, and only then publishes it. On any error the published state is
// left untouched. Callers must hold l.mu.
func (l *Library) commit(mutate func(st *state) error) error {
	next := l.state.clone()
	if err := mutate(next); err != nil {
		return err
	}
	if err := l.save(next); err != nil {
		return err
	}
	l.state = next
	return nil
}

// resolve returns the flat view of id against st.
func (l *Library) resolve(st *state, id string) (Config, bool) {
	var c Config
	if i, ok := l.builtinIdx[id]; ok {
		c = l.builtins[i]
		if o, ok := st.overlays[id]; ok {
			c = o.apply(c)
			c.IsModified = true
		}
	} else if i := st.customIndex(id); i >= 0 {
		c = st.custom[i].config()
	} else {
		return Config{}, false
	}
	if order, ok := st.favorites[id]; ok {
		c.IsFavorite = true
		c.FavoriteOrder = order
	}
	return c, true
}

func (l *Library) all(st *state) []Config {
	out := make([]Config, 0, len(l.builtins)+len(st.custom))
	for _, b := range l.builtins {
		c, _ := l.resolve(st, b.ID)
		out = append(out, c)
	}
	for _, r := range st.custom {
		c, _ := l.resolve(st, r.ID)
		out = append(out, c)
	}
	return out
}

// GetAll returns every preset: builtins in definition order with overlays
// applied, then custom presets in creation order.
func (l *Library) GetAll() []Config {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.all(l.state)
}

// Get returns the preset with the given id. The second result is false
// when no such preset exists.
func (l *Library) Get(id string) (Config, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.resolve(l.state, id)
}

// Search returns presets whose name, description or instruction contains
// text, ignoring case. A blank query returns everything.
func (l *Library) Search(text string) []Config {
	all := l.GetAll()
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return all
	}

	var out []Config
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Description), q) ||
			strings.Contains(strings.ToLower(c.Instruction), q) {
			out = append(out, c)
		}
	}
	return out
}

// CreateCustom stores a new custom preset and returns it as stored. An
// empty ID is replaced by a generated one; an empty category becomes
// [CategoryCustom]. Derived fields on cfg are ignored.
func (l *Library) CreateCustom(cfg Config) (Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.createLocked(cfg)
}

func (l *Library) createLocked(cfg Config) (Config, error) {
	cfg.Name = strings.TrimSpace(cfg.Name)
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	if cfg.Category == "" {
		cfg.Category = CategoryCustom
	}
	if cfg.ID == "" {
		id, err := newID()
		if err != nil {
			return Config{}, err
		}
		cfg.ID = id
	} else if _, exists := l.resolve(l.state, cfg.ID); exists {
		return Config{}, &store.ValidationError{Field: "id", Reason: fmt.Sprintf("%q is already in use", cfg.ID)}
	}

	r := toRecord(cfg)
	err := l.commit(func(st *state) error {
		st.custom = append(st.custom, r)
		return nil
	})
	if err != nil {
		return Config{}, err
	}

	l.logger.Info("custom prompt created", "id", r.ID, "name", r.Name)
	return r.config(), nil
}

// UpdateCustom replaces the stored fields of an existing custom preset.
// Favorite membership is unaffected.
func (l *Library) UpdateCustom(cfg Config) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.isBuiltin(cfg.ID) {
		return &store.InvalidOperationError{Op: "update", ID: cfg.ID, Reason: "builtin prompts are changed with ModifyBuiltin"}
	}
	i := l.state.customIndex(cfg.ID)
	if i < 0 {
		return &store.NotFoundError{Kind: "prompt", ID: cfg.ID}
	}
	cfg.Name = strings.TrimSpace(cfg.Name)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if cfg.Category == "" {
		cfg.Category = CategoryCustom
	}

	err := l.commit(func(st *state) error {
		st.custom[i] = toRecord(cfg)
		return nil
	})
	if err != nil {
		return err
	}
	l.logger.Info("custom prompt updated", "id", cfg.ID)
	return nil
}

// DeleteCustom removes a custom preset and its favorite entry.
func (l *Library) DeleteCustom(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.isBuiltin(id) {
		return &store.InvalidOperationError{Op: "delete", ID: id, Reason: "builtin prompts can only be reset"}
	}
	i := l.state.customIndex(id)
	if i < 0 {
		return &store.NotFoundError{Kind: "prompt", ID: id}
	}

	err := l.commit(func(st *state) error {
		st.custom = slices.Delete(st.custom, i, i+1)
		delete(st.favorites, id)
		return nil
	})
	if err != nil {
		return err
	}
	l.logger.Info("custom prompt deleted", "id", id)
	return nil
}

// ModifyBuiltin merges the non-nil fields of o into the overlay recorded
// for builtin id. Fields not set in o keep their current value.
func (l *Library) ModifyBuiltin(id string, o Overlay) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.isBuiltin(id) {
		return &store.NotFoundError{Kind: "builtin prompt", ID: id}
	}
	if err := o.validate(); err != nil {
		return err
	}

	err := l.commit(func(st *state) error {
		st.overlays[id] = st.overlays[id].merge(o)
		return nil
	})
	if err != nil {
		return err
	}
	l.logger.Info("builtin prompt modified", "id", id)
	return nil
}

// ResetBuiltin discards the overlay for builtin id. It does nothing when
// no overlay is recorded.
func (l *Library) ResetBuiltin(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.isBuiltin(id) {
		return &store.NotFoundError{Kind: "builtin prompt", ID: id}
	}
	if _, ok := l.state.overlays[id]; !ok {
		return nil
	}

	err := l.commit(func(st *state) error {
		delete(st.overlays, id)
		return nil
	})
	if err != nil {
		return err
	}
	l.logger.Info("builtin prompt reset", "id", id)
	return nil
}

// Clone copies the resolved fields of sourceID into a new custom preset.
// An empty newName becomes "<source name> (copy)".
func (l *Library) Clone(sourceID, newName string) (Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	src, ok := l.resolve(l.state, sourceID)
	if !ok {
		return Config{}, &store.NotFoundError{Kind: "prompt", ID: sourceID}
	}
	if strings.TrimSpace(newName) == "" {
		newName = src.Name + " (copy)"
	}

	cfg := Config{
		Name:                 newName,
		Description:          src.Description,
		Category:             src.Category,
		Instruction:          src.Instruction,
		Adherence:            src.Adherence,
		Formality:            src.Formality,
		Verbosity:            src.Verbosity,
		UseBusinessSignature: src.UseBusinessSignature,
		SignOff:              src.SignOff,
	}
	return l.createLocked(cfg)
}
