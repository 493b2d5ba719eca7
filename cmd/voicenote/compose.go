package main

import (
	"context"
	"fmt"

	"github.com/nugget/voicenote/internal/compose"
	"github.com/nugget/voicenote/internal/config"
	"github.com/nugget/voicenote/internal/store"
)

// runCompose prints the prompt for the stored settings. key=value
// arguments override individual settings for this run only, unless -save
// is given, in which case the resulting settings are persisted. With
// "preview <id>" the named preset is rendered as though it were selected.
func runCompose(ctx context.Context, a *app, out *output, args []string) error {
	var previewID string
	if len(args) > 0 && args[0] == "preview" {
		if len(args) < 2 {
			return usage("compose preview <id> [-save] [key=value...]")
		}
		previewID = args[1]
		args = args[2:]
	}

	s, err := a.settings.Load()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	var save bool
	for _, arg := range args {
		if arg == "-save" || arg == "--save" {
			save = true
			continue
		}
		key, value, err := splitField(arg)
		if err != nil {
			return err
		}
		if err := compose.ParseSetting(&s, key, value); err != nil {
			return err
		}
	}
	if save {
		if err := a.settings.Save(s); err != nil {
			return err
		}
	}

	sections, err := a.foundation.Load()
	if err != nil {
		return fmt.Errorf("load foundation rules: %w", err)
	}

	var prompt string
	if previewID != "" {
		p, ok := a.library.Get(previewID)
		if !ok {
			return withSuggestion(&store.NotFoundError{Kind: "prompt", ID: previewID}, previewID, promptIDs(a.library))
		}
		prompt = a.engine.Preview(sections, p, s)
	} else {
		prompt = a.engine.Compose(sections, s)
	}

	a.logger.Log(ctx, config.LevelTrace, "prompt composed",
		"format_preset", s.FormatPreset,
		"chars", len(prompt),
		"saved", save,
		"prompt", prompt)

	if out.json() {
		return out.encode(map[string]any{
			"format_preset": s.FormatPreset,
			"prompt":        prompt,
		})
	}
	out.println(prompt)
	return nil
}
