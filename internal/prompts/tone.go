package prompts

// ToneDirective returns the single-sentence directive for a formality
// level. "neutral" and unknown levels render nothing.
func ToneDirective(level string) string {
	switch level {
	case "casual":
		return "Use a casual, conversational tone, as if writing to a friend."
	case "professional":
		return "Use a professional, polished tone suitable for business communication."
	default:
		return ""
	}
}

// VerbosityDirective returns the directive for a verbosity-reduction
// level. "none" and unknown levels render nothing.
func VerbosityDirective(level string) string {
	switch level {
	case "minimum":
		return "Tighten the text slightly by removing obvious redundancy."
	case "short":
		return "Make the text noticeably shorter, keeping only the essential points."
	case "medium":
		return "Reduce the text substantially, condensing it to its main points."
	case "maximum":
		return "Reduce the text to the shortest form that still conveys the key information."
	default:
		return ""
	}
}
