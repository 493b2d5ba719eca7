// Package compose assembles the final instruction string sent to the
// transcription-cleanup model.
//
// The assembly order is fixed because later parts refine earlier ones:
//
//  1. foundation rules
//  2. verbatim directive (and nothing else) in verbatim mode
//  3. format: the infer directive, or the preset's instruction and adherence
//  4. tone
//  5. verbosity
//  6. style elements
//  7. writing sample
//  8. enhancement flags
//
// Verbatim mode skips every later step, the writing sample and
// enhancement flags included: the output must reproduce the dictation as
// spoken, and style mimicry or added summaries and markup would rewrite it.
//
// For tone and verbosity, a preset's own setting wins over the global
// one, and an unset global renders nothing. Composition never fails;
// references that cannot be resolved are left out.
package compose

import (
	"slices"
	"strings"

	"github.com/nugget/voicenote/internal/elements"
	"github.com/nugget/voicenote/internal/foundation"
	"github.com/nugget/voicenote/internal/library"
	"github.com/nugget/voicenote/internal/prompts"
	"github.com/nugget/voicenote/internal/stacks"
)

// PresetSource resolves preset ids. *library.Library satisfies it.
type PresetSource interface {
	Get(id string) (library.Config, bool)
}

// Engine composes prompts against a fixed catalog and preset source.
type Engine struct {
	catalog *elements.Catalog
	presets PresetSource
}

// New creates an engine. presets may be nil, in which case no preset or
// custom reference resolves.
func New(catalog *elements.Catalog, presets PresetSource) *Engine {
	return &Engine{catalog: catalog, presets: presets}
}

// RefResolver returns a resolver for "custom:<id>" style references that
// yields the referenced preset's instruction.
func (e *Engine) RefResolver() stacks.RefResolver {
	return stacks.RefResolverFunc(func(id string) (string, bool) {
		if e.presets == nil {
			return "", false
		}
		c, ok := e.presets.Get(id)
		if !ok {
			return "", false
		}
		return c.Instruction, true
	})
}

// ResolvePreset returns the preset named by s.FormatPreset, or nil for
// the general and verbatim sentinels and for unknown ids.
func (e *Engine) ResolvePreset(s Settings) *library.Config {
	switch s.FormatPreset {
	case "", PresetGeneral, PresetVerbatim:
		return nil
	}
	if e.presets == nil {
		return nil
	}
	c, ok := e.presets.Get(s.FormatPreset)
	if !ok {
		return nil
	}
	return &c
}

// Compose resolves s.FormatPreset and builds the final prompt.
func (e *Engine) Compose(sections []foundation.Section, s Settings) string {
	return e.BuildFinalPrompt(sections, e.ResolvePreset(s), s)
}

// Preview renders the prompt a preset would produce with the given
// settings, as if it were the selected format and format inference were
// off.
func (e *Engine) Preview(sections []foundation.Section, cfg library.Config, s Settings) string {
	s.FormatPreset = cfg.ID
	s.PromptInferFormat = false
	return e.BuildFinalPrompt(sections, &cfg, s)
}

// BuildFinalPrompt assembles the prompt from already resolved inputs.
// preset may be nil. Empty sections fall back to the default foundation
// rules, so the result is never empty.
func (e *Engine) BuildFinalPrompt(sections []foundation.Section, preset *library.Config, s Settings) string {
	if len(sections) == 0 {
		sections = foundation.Default()
	}
	parts := []string{foundation.Render(sections)}

	if s.FormatPreset == PresetVerbatim {
		parts = append(parts, prompts.VerbatimPrompt())
		return strings.Join(parts, "\n\n")
	}

	if s.PromptInferFormat {
		parts = append(parts, prompts.InferFormatPrompt())
	} else if preset != nil {
		parts = appendNonEmpty(parts, formatSection(preset, s))
	}

	parts = appendNonEmpty(parts, prompts.ToneDirective(string(effectiveFormality(preset, s))))
	parts = appendNonEmpty(parts, prompts.VerbosityDirective(string(effectiveVerbosity(preset, s))))
	parts = appendNonEmpty(parts, stacks.BuildPrompt(e.catalog, slices.Clone(s.SelectedStyles), e.RefResolver()))
	parts = appendNonEmpty(parts, prompts.WritingSamplePrompt(strings.TrimSpace(s.WritingSample)))

	var flags []string
	for _, en := range enhancements {
		if en.Enabled(s) {
			flags = append(flags, en.Directive)
		}
	}
	parts = appendNonEmpty(parts, strings.Join(flags, "\n"))

	return strings.Join(parts, "\n\n")
}

func formatSection(p *library.Config, s Settings) string {
	out := prompts.FormatPrompt(p.Name, strings.TrimSpace(p.Instruction), strings.TrimSpace(p.Adherence))
	if !p.SignOff {
		return out
	}
	sig := s.PersonalSignature
	if p.UseBusinessSignature {
		sig = s.BusinessSignature
	}
	sigText := prompts.SignaturePrompt(strings.TrimSpace(sig))
	if sigText == "" {
		return out
	}
	if out == "" {
		return sigText
	}
	return out + "\n\n" + sigText
}

func effectiveFormality(p *library.Config, s Settings) library.Formality {
	if p != nil && p.Formality != library.FormalityUnset {
		return p.Formality
	}
	return s.FormalityLevel
}

func effectiveVerbosity(p *library.Config, s Settings) library.Verbosity {
	if p != nil && p.Verbosity != library.VerbosityUnset {
		return p.Verbosity
	}
	return s.VerbosityReduction
}

func appendNonEmpty(parts []string, s string) []string {
	if s == "" {
		return parts
	}
	return append(parts, s)
}
