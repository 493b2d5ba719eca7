// Package prompts contains the fixed directive text used when composing a
// cleanup prompt for the transcription model.
//
// Prompt text is Go code rather than config files because it is program logic:
// several directives interpolate user-supplied text, and keeping them here
// lets tests pin the exact wording the composition engine relies on.
// User-editable instructions (presets, elements, foundation rules) live in
// their own packages; this package holds only what the engine itself adds.
//
// Convention: each directive family gets its own file (mode.go, tone.go,
// sample.go) with an exported function that accepts the dynamic parts and
// returns the fully interpolated directive string.
package prompts
