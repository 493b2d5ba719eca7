package library

// builtins is the shipped preset template set in display order. The
// entries are never mutated; Builtins hands out copies.
var builtins = []Config{
	{
		ID:          "ai_prompt",
		Name:        "AI Prompt",
		Description: "Turn dictation into a prompt for an AI assistant",
		Category:    CategoryGeneral,
		Instruction: "Rewrite the dictation as a clear, well-organized prompt for an AI assistant. State the task first, then the context and constraints.",
		Adherence:   "Keep every requirement the speaker stated. Do not answer the prompt yourself.",
	},
	{
		ID:          "quick_note",
		Name:        "Quick Note",
		Description: "A short note to self",
		Category:    CategoryGeneral,
		Instruction: "Format the dictation as a brief personal note.",
		Verbosity:   VerbosityShort,
	},
	{
		ID:          "email",
		Name:        "Email",
		Description: "A ready-to-send email",
		Category:    CategoryWork,
		Instruction: "Format the dictation as an email with a greeting, a body organized into short paragraphs, and a closing.",
		Adherence:   "Do not invent recipients, dates or commitments the speaker did not mention.",
		SignOff:     true,
	},
	{
		ID:          "meeting_agenda",
		Name:        "Meeting Agenda",
		Description: "Agenda for an upcoming meeting",
		Category:    CategoryWork,
		Instruction: "Format the dictation as a meeting agenda: a title, the objective, then numbered agenda items with owners and time allocations where mentioned.",
		Formality:   FormalityProfessional,
	},
	{
		ID:          "meeting_minutes",
		Name:        "Meeting Minutes",
		Description: "Record of a meeting that took place",
		Category:    CategoryWork,
		Instruction: "Format the dictation as meeting minutes with sections for attendees, discussion points, decisions and action items.",
		Adherence:   "Every action item must name an owner if one was mentioned.",
		Formality:   FormalityProfessional,
	},
	{
		ID:          "status_update",
		Name:        "Status Update",
		Description: "Progress report for a team or manager",
		Category:    CategoryWork,
		Instruction: "Format the dictation as a status update with sections for progress, next steps and blockers.",
		Formality:   FormalityProfessional,
		Verbosity:   VerbosityMedium,
	},
	{
		ID:          "documentation",
		Name:        "Documentation",
		Description: "Technical documentation",
		Category:    CategoryDocumentation,
		Instruction: "Rewrite the dictation as technical documentation with a short overview followed by clearly headed sections.",
		Adherence:   "Keep commands, paths, identifiers and version numbers exactly as spoken.",
	},
	{
		ID:          "readme",
		Name:        "README",
		Description: "Project README file",
		Category:    CategoryDocumentation,
		Instruction: "Format the dictation as a project README with a title, a one-paragraph summary, and sections for installation, usage and configuration as applicable.",
	},
	{
		ID:          "todo",
		Name:        "To-Do List",
		Description: "Actionable task list",
		Category:    CategoryLists,
		Instruction: "Extract every task from the dictation and format them as a checklist, one task per line, each starting with a verb.",
		Verbosity:   VerbosityMaximum,
	},
	{
		ID:          "shopping_list",
		Name:        "Shopping List",
		Description: "Items to buy",
		Category:    CategoryLists,
		Instruction: "Format the dictation as a shopping list, one item per line with quantities where mentioned, grouped by store section.",
	},
	{
		ID:          "bullet_summary",
		Name:        "Bullet Summary",
		Description: "Key points at a glance",
		Category:    CategoryLists,
		Instruction: "Summarize the dictation as a short list of key points.",
		Verbosity:   VerbosityMedium,
	},
	{
		ID:          "social_post",
		Name:        "Social Media Post",
		Description: "Post for social media",
		Category:    CategoryCreative,
		Instruction: "Rewrite the dictation as an engaging social media post. Open with a hook and end with a call to action if one fits.",
		Formality:   FormalityCasual,
	},
	{
		ID:          "blog_post",
		Name:        "Blog Post",
		Description: "Long-form blog article",
		Category:    CategoryCreative,
		Instruction: "Rewrite the dictation as a blog post with a title, an introduction, subheaded body sections and a conclusion.",
	},
}

// Builtins returns a copy of the shipped preset templates with IsBuiltin
// set. Overlays are not applied.
func Builtins() []Config {
	out := make([]Config, len(builtins))
	for i, c := range builtins {
		c.IsBuiltin = true
		out[i] = c
	}
	return out
}
