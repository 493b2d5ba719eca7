package prompts

import "fmt"

// writingSampleTemplate wraps a user-provided writing sample. The single
// format verb receives the sample text.
const writingSampleTemplate = `## Writing Sample

The text between the markers below is a sample of the user's own writing.
Match its tone, vocabulary and sentence structure. Do not copy its content
into the output.

--- BEGIN WRITING SAMPLE ---
%s
--- END WRITING SAMPLE ---`

// WritingSamplePrompt returns the reference block for sample. A blank
// sample renders nothing.
func WritingSamplePrompt(sample string) string {
	if sample == "" {
		return ""
	}
	return fmt.Sprintf(writingSampleTemplate, sample)
}
