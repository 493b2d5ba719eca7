package compose

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/nugget/voicenote/internal/library"
	"github.com/nugget/voicenote/internal/prompts"
	"github.com/nugget/voicenote/internal/store"
)

// Sentinel values for Settings.FormatPreset that do not name a preset.
const (
	PresetGeneral  = "general"
	PresetVerbatim = "verbatim"
)

// Settings is the global style configuration owned by the surrounding
// application. The engine only reads it.
type Settings struct {
	FormatPreset       string            `json:"format_preset"`
	FormalityLevel     library.Formality `json:"formality_level"`
	VerbosityReduction library.Verbosity `json:"verbosity_reduction"`
	SelectedStyles     []string          `json:"selected_styles"`
	WritingSample      string            `json:"writing_sample"`
	PromptInferFormat  bool              `json:"prompt_infer_format"`

	MarkdownOutput         bool `json:"markdown_output"`
	AddSummary             bool `json:"add_summary"`
	ExpandAcronyms         bool `json:"expand_acronyms"`
	PreserveTechnicalTerms bool `json:"preserve_technical_terms"`

	BusinessSignature string `json:"business_signature"`
	PersonalSignature string `json:"personal_signature"`
}

// DefaultSettings returns the settings of a fresh install: general
// cleanup, neutral tone, no verbosity reduction, nothing else enabled.
func DefaultSettings() Settings {
	return Settings{
		FormatPreset:       PresetGeneral,
		FormalityLevel:     library.FormalityNeutral,
		VerbosityReduction: library.VerbosityNone,
	}
}

// Enhancement is an optional flag that appends fixed directive text.
type Enhancement struct {
	Key       string
	Directive string
	enabled   func(Settings) bool
	set       func(*Settings, bool)
}

// Enabled reports whether the flag is on in s.
func (e Enhancement) Enabled(s Settings) bool {
	return e.enabled(s)
}

// enhancements lists the flags in registration order, which is also the
// order their directives are emitted in.
var enhancements = []Enhancement{
	{
		Key:       "markdown_output",
		Directive: prompts.MarkdownOutputDirective,
		enabled:   func(s Settings) bool { return s.MarkdownOutput },
		set:       func(s *Settings, v bool) { s.MarkdownOutput = v },
	},
	{
		Key:       "add_summary",
		Directive: prompts.AddSummaryDirective,
		enabled:   func(s Settings) bool { return s.AddSummary },
		set:       func(s *Settings, v bool) { s.AddSummary = v },
	},
	{
		Key:       "expand_acronyms",
		Directive: prompts.ExpandAcronymsDirective,
		enabled:   func(s Settings) bool { return s.ExpandAcronyms },
		set:       func(s *Settings, v bool) { s.ExpandAcronyms = v },
	},
	{
		Key:       "preserve_technical_terms",
		Directive: prompts.PreserveTechnicalTermsDirective,
		enabled:   func(s Settings) bool { return s.PreserveTechnicalTerms },
		set:       func(s *Settings, v bool) { s.PreserveTechnicalTerms = v },
	},
}

// Enhancements returns the enhancement flags in registration order.
func Enhancements() []Enhancement {
	return slices.Clone(enhancements)
}

// Setting keys accepted by ParseSetting, in display order.
const (
	KeyFormatPreset      = "format_preset"
	KeyFormality         = "formality_level"
	KeyVerbosity         = "verbosity_reduction"
	KeySelectedStyles    = "selected_styles"
	KeyWritingSample     = "writing_sample"
	KeyInferFormat       = "prompt_infer_format"
	KeyBusinessSignature = "business_signature"
	KeyPersonalSignature = "personal_signature"
)

// SettingKeys returns every key ParseSetting accepts.
func SettingKeys() []string {
	keys := []string{
		KeyFormatPreset,
		KeyFormality,
		KeyVerbosity,
		KeySelectedStyles,
		KeyWritingSample,
		KeyInferFormat,
	}
	for _, e := range enhancements {
		keys = append(keys, e.Key)
	}
	return append(keys, KeyBusinessSignature, KeyPersonalSignature)
}

// ParseSetting validates value and stores it in the field named by key.
// Selected styles are a comma-separated list. Booleans accept the forms
// understood by strconv.ParseBool.
func ParseSetting(s *Settings, key, value string) error {
	switch key {
	case KeyFormatPreset:
		value = strings.TrimSpace(value)
		if value == "" {
			value = PresetGeneral
		}
		s.FormatPreset = value
	case KeyFormality:
		f := library.Formality(strings.TrimSpace(value))
		if f == library.FormalityUnset || !f.Valid() {
			return &store.ValidationError{Field: key, Reason: fmt.Sprintf("unknown level %q", value)}
		}
		s.FormalityLevel = f
	case KeyVerbosity:
		v := library.Verbosity(strings.TrimSpace(value))
		if v == library.VerbosityUnset || !v.Valid() {
			return &store.ValidationError{Field: key, Reason: fmt.Sprintf("unknown level %q", value)}
		}
		s.VerbosityReduction = v
	case KeySelectedStyles:
		s.SelectedStyles = splitList(value)
	case KeyWritingSample:
		s.WritingSample = value
	case KeyInferFormat:
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		s.PromptInferFormat = b
	case KeyBusinessSignature:
		s.BusinessSignature = value
	case KeyPersonalSignature:
		s.PersonalSignature = value
	default:
		i := slices.IndexFunc(enhancements, func(e Enhancement) bool { return e.Key == key })
		if i < 0 {
			return &store.ValidationError{Field: "key", Reason: fmt.Sprintf("unknown setting %q", key)}
		}
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		enhancements[i].set(s, b)
	}
	return nil
}

// Values returns s as the string form ParseSetting accepts, keyed by
// setting name.
func (s Settings) Values() map[string]string {
	m := map[string]string{
		KeyFormatPreset:      s.FormatPreset,
		KeyFormality:         string(s.FormalityLevel),
		KeyVerbosity:         string(s.VerbosityReduction),
		KeySelectedStyles:    strings.Join(s.SelectedStyles, ","),
		KeyWritingSample:     s.WritingSample,
		KeyInferFormat:       strconv.FormatBool(s.PromptInferFormat),
		KeyBusinessSignature: s.BusinessSignature,
		KeyPersonalSignature: s.PersonalSignature,
	}
	for _, e := range enhancements {
		m[e.Key] = strconv.FormatBool(e.Enabled(s))
	}
	return m
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, &store.ValidationError{Field: key, Reason: fmt.Sprintf("%q is not a boolean", value)}
	}
	return b, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
