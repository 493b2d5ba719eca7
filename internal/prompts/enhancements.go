package prompts

// Directive text for the optional enhancement flags.
const (
	MarkdownOutputDirective         = "Format the output using Markdown syntax where it helps readability."
	AddSummaryDirective             = "Begin the output with a one or two sentence summary of the content."
	ExpandAcronymsDirective         = "Expand acronyms and abbreviations on first use."
	PreserveTechnicalTermsDirective = "Keep technical terms, product names and code identifiers exactly as spoken, even if they look like errors."
)
