package elements

var defaultCatalog = NewCatalog(
	// Format
	Element{
		Key:         "bullet_points",
		Category:    CategoryFormat,
		Name:        "Bullet Points",
		Description: "Break content into bullet points",
		Instruction: "Organize the content as a bulleted list, one idea per bullet.",
	},
	Element{
		Key:         "numbered_list",
		Category:    CategoryFormat,
		Name:        "Numbered List",
		Description: "Sequential numbered items",
		Instruction: "Present sequential steps or ranked items as a numbered list.",
	},
	Element{
		Key:         "paragraphs",
		Category:    CategoryFormat,
		Name:        "Paragraphs",
		Description: "Flowing prose with paragraph breaks",
		Instruction: "Write in well-formed paragraphs, starting a new paragraph at each change of topic.",
	},
	Element{
		Key:         "headings",
		Category:    CategoryFormat,
		Name:        "Section Headings",
		Description: "Group content under headings",
		Instruction: "Group related content under short descriptive headings.",
	},
	Element{
		Key:         "table",
		Category:    CategoryFormat,
		Name:        "Table",
		Description: "Tabulate comparable data",
		Instruction: "Where the content compares items across the same attributes, present it as a table.",
	},
	Element{
		Key:         "qa_pairs",
		Category:    CategoryFormat,
		Name:        "Q&A",
		Description: "Question and answer pairs",
		Instruction: "Structure the content as question and answer pairs.",
	},

	// Style
	Element{
		Key:         "concise",
		Category:    CategoryStyle,
		Name:        "Concise",
		Description: "Short and to the point",
		Instruction: "Be concise. Remove redundancy and keep sentences short.",
	},
	Element{
		Key:         "detailed",
		Category:    CategoryStyle,
		Name:        "Detailed",
		Description: "Keep all the detail",
		Instruction: "Preserve every detail the speaker mentioned, expanding shorthand into complete sentences.",
	},
	Element{
		Key:         "plain_language",
		Category:    CategoryStyle,
		Name:        "Plain Language",
		Description: "Simple words, short sentences",
		Instruction: "Use plain language: common words, short sentences, no jargon.",
	},
	Element{
		Key:         "technical",
		Category:    CategoryStyle,
		Name:        "Technical",
		Description: "Precise technical register",
		Instruction: "Use precise technical terminology and keep identifiers, commands and version numbers exact.",
	},
	Element{
		Key:         "persuasive",
		Category:    CategoryStyle,
		Name:        "Persuasive",
		Description: "Make a case",
		Instruction: "Frame the content persuasively, leading with the strongest point.",
	},
	Element{
		Key:         "storytelling",
		Category:    CategoryStyle,
		Name:        "Storytelling",
		Description: "Narrative flow",
		Instruction: "Give the content a narrative flow with a clear beginning, middle and end.",
	},
	Element{
		Key:         "friendly",
		Category:    CategoryStyle,
		Name:        "Friendly",
		Description: "Warm and approachable",
		Instruction: "Keep the writing warm and approachable.",
	},
	Element{
		Key:         "academic",
		Category:    CategoryStyle,
		Name:        "Academic",
		Description: "Formal scholarly register",
		Instruction: "Write in a formal academic register with careful, hedged claims.",
	},

	// Grammar
	Element{
		Key:         "fix_grammar",
		Category:    CategoryGrammar,
		Name:        "Fix Grammar",
		Description: "Correct grammatical errors",
		Instruction: "Correct grammatical errors without changing the meaning.",
	},
	Element{
		Key:         "fix_punctuation",
		Category:    CategoryGrammar,
		Name:        "Fix Punctuation",
		Description: "Add and correct punctuation",
		Instruction: "Add missing punctuation and correct misplaced punctuation.",
	},
	Element{
		Key:         "active_voice",
		Category:    CategoryGrammar,
		Name:        "Active Voice",
		Description: "Prefer active constructions",
		Instruction: "Prefer the active voice over the passive voice.",
	},
	Element{
		Key:         "oxford_comma",
		Category:    CategoryGrammar,
		Name:        "Oxford Comma",
		Description: "Serial comma in lists",
		Instruction: "Use the serial (Oxford) comma in lists of three or more items.",
	},
	Element{
		Key:         "british_spelling",
		Category:    CategoryGrammar,
		Name:        "British Spelling",
		Description: "UK spelling conventions",
		Instruction: "Use British English spelling.",
	},
	Element{
		Key:         "american_spelling",
		Category:    CategoryGrammar,
		Name:        "American Spelling",
		Description: "US spelling conventions",
		Instruction: "Use American English spelling.",
	},
)

// Default returns the shipped element catalog.
func Default() *Catalog {
	return defaultCatalog
}
