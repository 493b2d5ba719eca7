package main

import (
	"fmt"

	"github.com/nugget/voicenote/internal/compose"
)

func runSettings(a *app, out *output, args []string) error {
	action := "show"
	var rest []string
	if len(args) > 0 {
		action, rest = args[0], args[1:]
	}

	switch action {
	case "show":
		cfg, err := a.settings.Load()
		if err != nil {
			return err
		}
		return printSettings(out, cfg)
	case "get":
		if len(rest) != 1 {
			return usage("settings get <key>")
		}
		value, stored, err := a.settings.Value(rest[0])
		if err != nil {
			return err
		}
		if out.json() {
			return out.encode(map[string]any{"key": rest[0], "value": value, "stored": stored})
		}
		out.println(value)
		return nil
	case "set":
		if len(rest) != 2 {
			return usage("settings set <key> <value>")
		}
		return a.settings.Set(rest[0], rest[1])
	case "unset":
		if len(rest) != 1 {
			return usage("settings unset <key>")
		}
		return a.settings.Unset(rest[0])
	case "reset":
		if err := a.settings.Reset(); err != nil {
			return err
		}
		a.logger.Info("settings reset to defaults")
		return nil
	default:
		return fmt.Errorf("unknown settings action: %s", action)
	}
}

func printSettings(out *output, cfg compose.Settings) error {
	values := cfg.Values()
	if out.json() {
		return out.encode(values)
	}
	for _, key := range compose.SettingKeys() {
		out.printf("%-26s %s\n", key, values[key])
	}
	return nil
}
