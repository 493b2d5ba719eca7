package library

import (
	"strings"

	"github.com/nugget/voicenote/internal/store"
)

// Overlay is a sparse set of field overrides for a builtin preset. A nil
// field is not overridden. A non-nil pointer to the zero value is an
// explicit override (for example, Formality set to "" clears a builtin's
// formality so the global setting applies).
type Overlay struct {
	Name                 *string    `json:"name,omitempty"`
	Description          *string    `json:"description,omitempty"`
	Category             *Category  `json:"category,omitempty"`
	Instruction          *string    `json:"instruction,omitempty"`
	Adherence            *string    `json:"adherence,omitempty"`
	Formality            *Formality `json:"formality,omitempty"`
	Verbosity            *Verbosity `json:"verbosity,omitempty"`
	UseBusinessSignature *bool      `json:"use_business_signature,omitempty"`
	SignOff              *bool      `json:"sign_off,omitempty"`
}

// Ptr returns a pointer to v. It keeps Overlay literals readable:
//
//	library.Overlay{Instruction: library.Ptr("Write a haiku.")}
func Ptr[T any](v T) *T {
	return &v
}

// IsEmpty reports whether the overlay overrides nothing.
func (o Overlay) IsEmpty() bool {
	return o == Overlay{}
}

// merge returns o with every non-nil field of patch applied on top.
func (o Overlay) merge(patch Overlay) Overlay {
	if patch.Name != nil {
		o.Name = patch.Name
	}
	if patch.Description != nil {
		o.Description = patch.Description
	}
	if patch.Category != nil {
		o.Category = patch.Category
	}
	if patch.Instruction != nil {
		o.Instruction = patch.Instruction
	}
	if patch.Adherence != nil {
		o.Adherence = patch.Adherence
	}
	if patch.Formality != nil {
		o.Formality = patch.Formality
	}
	if patch.Verbosity != nil {
		o.Verbosity = patch.Verbosity
	}
	if patch.UseBusinessSignature != nil {
		o.UseBusinessSignature = patch.UseBusinessSignature
	}
	if patch.SignOff != nil {
		o.SignOff = patch.SignOff
	}
	return o
}

// apply returns base with the overlay's fields substituted.
func (o Overlay) apply(base Config) Config {
	if o.Name != nil {
		base.Name = *o.Name
	}
	if o.Description != nil {
		base.Description = *o.Description
	}
	if o.Category != nil {
		base.Category = *o.Category
	}
	if o.Instruction != nil {
		base.Instruction = *o.Instruction
	}
	if o.Adherence != nil {
		base.Adherence = *o.Adherence
	}
	if o.Formality != nil {
		base.Formality = *o.Formality
	}
	if o.Verbosity != nil {
		base.Verbosity = *o.Verbosity
	}
	if o.UseBusinessSignature != nil {
		base.UseBusinessSignature = *o.UseBusinessSignature
	}
	if o.SignOff != nil {
		base.SignOff = *o.SignOff
	}
	return base
}

// validate rejects overrides that would produce an invalid preset.
func (o Overlay) validate() error {
	if o.Name != nil && strings.TrimSpace(*o.Name) == "" {
		return &store.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if o.Category != nil && !o.Category.Valid() {
		return &store.ValidationError{Field: "category", Reason: "unknown category " + string(*o.Category)}
	}
	if o.Formality != nil && !o.Formality.Valid() {
		return &store.ValidationError{Field: "formality", Reason: "unknown level " + string(*o.Formality)}
	}
	if o.Verbosity != nil && !o.Verbosity.Valid() {
		return &store.ValidationError{Field: "verbosity", Reason: "unknown level " + string(*o.Verbosity)}
	}
	return nil
}

// sanitize drops overrides that fail validation. Used when loading a
// hand-edited document, where bad values default rather than error.
func (o Overlay) sanitize() Overlay {
	if o.Name != nil && strings.TrimSpace(*o.Name) == "" {
		o.Name = nil
	}
	if o.Category != nil && !o.Category.Valid() {
		o.Category = nil
	}
	if o.Formality != nil && !o.Formality.Valid() {
		o.Formality = nil
	}
	if o.Verbosity != nil && !o.Verbosity.Valid() {
		o.Verbosity = nil
	}
	return o
}

// validateConfig checks the user-editable fields of a custom preset.
func validateConfig(c Config) error {
	if strings.TrimSpace(c.Name) == "" {
		return &store.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if c.Category != "" && !c.Category.Valid() {
		return &store.ValidationError{Field: "category", Reason: "unknown category " + string(c.Category)}
	}
	if !c.Formality.Valid() {
		return &store.ValidationError{Field: "formality", Reason: "unknown level " + string(c.Formality)}
	}
	if !c.Verbosity.Valid() {
		return &store.ValidationError{Field: "verbosity", Reason: "unknown level " + string(c.Verbosity)}
	}
	return nil
}
