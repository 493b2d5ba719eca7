package library

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nugget/voicenote/internal/store"
)

// portable is the exchange shape of a single preset. Key carries the id
// the preset had where it was exported; it is informational on import.
type portable struct {
	Name        string   `json:"name"`
	Key         string   `json:"key"`
	Description string   `json:"description"`
	Instruction string   `json:"instruction"`
	Adherence   string   `json:"adherence"`
	Category    Category `json:"category"`

	Formality            Formality `json:"formality,omitempty"`
	Verbosity            Verbosity `json:"verbosity,omitempty"`
	UseBusinessSignature bool      `json:"use_business_signature,omitempty"`
	SignOff              bool      `json:"sign_off,omitempty"`
}

// Export renders the resolved preset id as a standalone JSON document
// suitable for [Library.Import] in another library.
func (l *Library) Export(id string) ([]byte, error) {
	c, ok := l.Get(id)
	if !ok {
		return nil, &store.NotFoundError{Kind: "prompt", ID: id}
	}
	category := c.Category
	if category == "" {
		category = CategoryCustom
	}
	data, err := json.MarshalIndent(portable{
		Name:                 c.Name,
		Key:                  c.ID,
		Description:          c.Description,
		Instruction:          c.Instruction,
		Adherence:            c.Adherence,
		Category:             category,
		Formality:            c.Formality,
		Verbosity:            c.Verbosity,
		UseBusinessSignature: c.UseBusinessSignature,
		SignOff:              c.SignOff,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode prompt %q: %w", id, err)
	}
	return append(data, '\n'), nil
}

// Import parses a preset document produced by Export (or written by hand)
// and stores it as a new custom preset with a fresh id. The document must
// carry both name and key.
func (l *Library) Import(data []byte) (Config, error) {
	var p portable
	if err := store.Decode(data, &p); err != nil {
		return Config{}, &store.ValidationError{Field: "prompt", Reason: err.Error()}
	}
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Key) == "" {
		return Config{}, &store.ValidationError{Field: "prompt", Reason: "document needs both name and key"}
	}
	return l.CreateCustom(Config{
		Name:                 p.Name,
		Description:          p.Description,
		Category:             p.Category,
		Instruction:          p.Instruction,
		Adherence:            p.Adherence,
		Formality:            p.Formality,
		Verbosity:            p.Verbosity,
		UseBusinessSignature: p.UseBusinessSignature,
		SignOff:              p.SignOff,
	})
}
