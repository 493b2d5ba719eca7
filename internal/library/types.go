// Package library is the CRUD store of prompt presets. It holds the
// builtin presets shipped with the program, non-destructive overlays
// recorded against those builtins, user-created custom presets, and the
// favorites set with its ordering.
//
// Builtin templates are never modified in place. Edits to a builtin are
// stored as a sparse [Overlay] keyed by id and merged on read, so a reset
// always restores the shipped text. Custom presets carry their values
// directly and can be deleted outright.
package library

import "slices"

// Category groups presets for browsing.
type Category string

const (
	CategoryGeneral       Category = "general"
	CategoryWork          Category = "work"
	CategoryDocumentation Category = "documentation"
	CategoryLists         Category = "lists"
	CategoryCreative      Category = "creative"
	CategoryCustom        Category = "custom"
)

var categories = []Category{
	CategoryGeneral,
	CategoryWork,
	CategoryDocumentation,
	CategoryLists,
	CategoryCreative,
	CategoryCustom,
}

// Categories returns the valid preset categories in display order.
func Categories() []Category {
	return slices.Clone(categories)
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return slices.Contains(categories, c)
}

// Formality is a tone level. The empty value means "not set" and, on a
// preset, defers to the global setting.
type Formality string

const (
	FormalityUnset        Formality = ""
	FormalityCasual       Formality = "casual"
	FormalityNeutral      Formality = "neutral"
	FormalityProfessional Formality = "professional"
)

var formalities = []Formality{FormalityCasual, FormalityNeutral, FormalityProfessional}

// Formalities returns the settable formality levels.
func Formalities() []Formality {
	return slices.Clone(formalities)
}

// Valid reports whether f is a known level or unset.
func (f Formality) Valid() bool {
	return f == FormalityUnset || slices.Contains(formalities, f)
}

// Verbosity is a verbosity-reduction level. The empty value means "not
// set"; VerbosityNone is an explicit choice of no reduction.
type Verbosity string

const (
	VerbosityUnset   Verbosity = ""
	VerbosityNone    Verbosity = "none"
	VerbosityMinimum Verbosity = "minimum"
	VerbosityShort   Verbosity = "short"
	VerbosityMedium  Verbosity = "medium"
	VerbosityMaximum Verbosity = "maximum"
)

var verbosities = []Verbosity{VerbosityNone, VerbosityMinimum, VerbosityShort, VerbosityMedium, VerbosityMaximum}

// Verbosities returns the settable verbosity levels.
func Verbosities() []Verbosity {
	return slices.Clone(verbosities)
}

// Valid reports whether v is a known level or unset.
func (v Verbosity) Valid() bool {
	return v == VerbosityUnset || slices.Contains(verbosities, v)
}

// Config is a resolved prompt preset: for a builtin, the template with any
// overlay applied; for a custom preset, its stored value. The Is* fields
// and FavoriteOrder are derived on read and ignored on write.
type Config struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Instruction string   `json:"instruction"`
	Adherence   string   `json:"adherence,omitempty"`

	Formality            Formality `json:"formality,omitempty"`
	Verbosity            Verbosity `json:"verbosity,omitempty"`
	UseBusinessSignature bool      `json:"use_business_signature,omitempty"`
	SignOff              bool      `json:"sign_off,omitempty"`

	IsBuiltin     bool `json:"is_builtin"`
	IsModified    bool `json:"is_modified"`
	IsFavorite    bool `json:"is_favorite"`
	FavoriteOrder int  `json:"favorite_order"`
}

// record is the persisted shape of a custom preset.
type record struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description,omitempty"`
	Category             Category  `json:"category,omitempty"`
	Instruction          string    `json:"instruction,omitempty"`
	Adherence            string    `json:"adherence,omitempty"`
	Formality            Formality `json:"formality,omitempty"`
	Verbosity            Verbosity `json:"verbosity,omitempty"`
	UseBusinessSignature bool      `json:"use_business_signature,omitempty"`
	SignOff              bool      `json:"sign_off,omitempty"`
}

func toRecord(c Config) record {
	return record{
		ID:                   c.ID,
		Name:                 c.Name,
		Description:          c.Description,
		Category:             c.Category,
		Instruction:          c.Instruction,
		Adherence:            c.Adherence,
		Formality:            c.Formality,
		Verbosity:            c.Verbosity,
		UseBusinessSignature: c.UseBusinessSignature,
		SignOff:              c.SignOff,
	}
}

func (r record) config() Config {
	return Config{
		ID:                   r.ID,
		Name:                 r.Name,
		Description:          r.Description,
		Category:             r.Category,
		Instruction:          r.Instruction,
		Adherence:            r.Adherence,
		Formality:            r.Formality,
		Verbosity:            r.Verbosity,
		UseBusinessSignature: r.UseBusinessSignature,
		SignOff:              r.SignOff,
	}
}
