package prompts

// verbatimDirective replaces every formatting instruction when the user
// asks for a minimal-touch cleanup.
const verbatimDirective = `## Verbatim Mode

Make only the minimum changes needed for the text to read correctly:
remove filler words and fix punctuation, capitalization and obvious
transcription errors. Keep the speaker's own words, sentence order and
structure. Do not reformat, summarize or restyle the text.`

// inferFormatDirective asks the model to pick a structure itself instead
// of applying a fixed format.
const inferFormatDirective = `## Format

Infer the most appropriate format from the content itself. If the
dictation is clearly an email, a list, meeting notes or documentation,
structure it that way; otherwise use clean paragraphs. Do not apply a
fixed template.`

// VerbatimPrompt returns the directive for verbatim mode.
func VerbatimPrompt() string {
	return verbatimDirective
}

// InferFormatPrompt returns the directive that lets the model choose the
// output structure.
func InferFormatPrompt() string {
	return inferFormatDirective
}

// FormatPrompt renders a preset's instruction and adherence rules under a
// format heading. Empty parts are omitted; when both are empty the result
// is empty.
func FormatPrompt(name, instruction, adherence string) string {
	if instruction == "" && adherence == "" {
		return ""
	}
	out := "## Format"
	if name != "" {
		out += ": " + name
	}
	if instruction != "" {
		out += "\n\n" + instruction
	}
	if adherence != "" {
		out += "\n\n" + adherence
	}
	return out
}

// SignaturePrompt returns the directive that ends the output with the
// given signature block. Blank signatures render nothing.
func SignaturePrompt(signature string) string {
	if signature == "" {
		return ""
	}
	return "End the text with this signature, exactly as written:\n\n" + signature
}
