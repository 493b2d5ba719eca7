package main

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/nugget/voicenote/internal/library"
	"github.com/nugget/voicenote/internal/store"
)

func runPrompts(a *app, out *output, args []string) error {
	if len(args) == 0 {
		return usage("prompts <list|favorites|show|search|create|update|delete|modify|reset|favorite|unfavorite|reorder|clone|export|import>")
	}
	err := promptAction(a, out, args[0], args[1:])
	if len(args) > 1 {
		err = withSuggestion(err, args[1], promptIDs(a.library))
	}
	return err
}

func promptAction(a *app, out *output, action string, rest []string) error {
	switch action {
	case "list":
		return printPrompts(out, a.library.GetAll())
	case "favorites":
		return printPrompts(out, a.library.GetFavorites())
	case "search":
		return printPrompts(out, a.library.Search(strings.Join(rest, " ")))
	case "show":
		if len(rest) != 1 {
			return usage("prompts show <id>")
		}
		c, ok := a.library.Get(rest[0])
		if !ok {
			return &store.NotFoundError{Kind: "prompt", ID: rest[0]}
		}
		return printPrompt(out, c)
	case "create":
		var c library.Config
		if err := applyConfigFields(&c, rest); err != nil {
			return err
		}
		created, err := a.library.CreateCustom(c)
		if err != nil {
			return err
		}
		return printPrompt(out, created)
	case "update":
		if len(rest) < 1 {
			return usage("prompts update <id> key=value...")
		}
		c, ok := a.library.Get(rest[0])
		if !ok {
			return &store.NotFoundError{Kind: "prompt", ID: rest[0]}
		}
		if err := applyConfigFields(&c, rest[1:]); err != nil {
			return err
		}
		return a.library.UpdateCustom(c)
	case "delete":
		if len(rest) != 1 {
			return usage("prompts delete <id>")
		}
		return a.library.DeleteCustom(rest[0])
	case "modify":
		if len(rest) < 2 {
			return usage("prompts modify <builtin-id> key=value...")
		}
		o, err := parseOverlay(rest[1:])
		if err != nil {
			return err
		}
		return a.library.ModifyBuiltin(rest[0], o)
	case "reset":
		if len(rest) != 1 {
			return usage("prompts reset <builtin-id>")
		}
		return a.library.ResetBuiltin(rest[0])
	case "favorite":
		if len(rest) != 1 {
			return usage("prompts favorite <id>")
		}
		return a.library.AddFavorite(rest[0])
	case "unfavorite":
		if len(rest) != 1 {
			return usage("prompts unfavorite <id>")
		}
		return a.library.RemoveFavorite(rest[0])
	case "reorder":
		if len(rest) == 0 {
			return usage("prompts reorder <id>...")
		}
		return a.library.ReorderFavorites(rest)
	case "clone":
		if len(rest) < 1 || len(rest) > 2 {
			return usage("prompts clone <id> [name]")
		}
		var name string
		if len(rest) == 2 {
			name = rest[1]
		}
		c, err := a.library.Clone(rest[0], name)
		if err != nil {
			return err
		}
		return printPrompt(out, c)
	case "export":
		if len(rest) != 1 {
			return usage("prompts export <id>")
		}
		data, err := a.library.Export(rest[0])
		if err != nil {
			return err
		}
		_, err = out.w.Write(data)
		return err
	case "import":
		if len(rest) != 1 {
			return usage("prompts import <file>")
		}
		data, err := os.ReadFile(rest[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", rest[0], err)
		}
		c, err := a.library.Import(data)
		if err != nil {
			return err
		}
		return printPrompt(out, c)
	default:
		return fmt.Errorf("unknown prompts action: %s", action)
	}
}

func printPrompts(out *output, cs []library.Config) error {
	if out.json() {
		if cs == nil {
			cs = []library.Config{}
		}
		return out.encode(cs)
	}
	for _, c := range cs {
		out.printf("%-24s %-14s %s%s\n", c.ID, c.Category, c.Name, promptFlags(c))
	}
	return nil
}

func promptFlags(c library.Config) string {
	var flags []string
	if c.IsBuiltin {
		flags = append(flags, "builtin")
	}
	if c.IsModified {
		flags = append(flags, "modified")
	}
	if c.IsFavorite {
		flags = append(flags, "favorite")
	}
	if len(flags) == 0 {
		return ""
	}
	return " [" + strings.Join(flags, ",") + "]"
}

func printPrompt(out *output, c library.Config) error {
	if out.json() {
		return out.encode(c)
	}
	out.printf("id:          %s%s\n", c.ID, promptFlags(c))
	out.printf("name:        %s\n", c.Name)
	out.printf("category:    %s\n", c.Category)
	if c.Description != "" {
		out.printf("description: %s\n", c.Description)
	}
	if c.Formality != library.FormalityUnset {
		out.printf("formality:   %s\n", c.Formality)
	}
	if c.Verbosity != library.VerbosityUnset {
		out.printf("verbosity:   %s\n", c.Verbosity)
	}
	if c.SignOff {
		sig := "personal"
		if c.UseBusinessSignature {
			sig = "business"
		}
		out.printf("signature:   %s\n", sig)
	}
	out.println()
	out.println(c.Instruction)
	if c.Adherence != "" {
		out.println()
		out.println(c.Adherence)
	}
	return nil
}

// splitField parses a key=value argument.
func splitField(arg string) (string, string, error) {
	key, value, ok := strings.Cut(arg, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("expected key=value, got %q", arg)
	}
	return strings.TrimSpace(key), value, nil
}

func applyConfigFields(c *library.Config, args []string) error {
	for _, arg := range args {
		key, value, err := splitField(arg)
		if err != nil {
			return err
		}
		switch key {
		case "id":
			c.ID = value
		case "name":
			c.Name = value
		case "description":
			c.Description = value
		case "category":
			if c.Category, err = fieldValue(key, value, library.Categories()); err != nil {
				return err
			}
		case "instruction":
			c.Instruction = value
		case "adherence":
			c.Adherence = value
		case "formality":
			if c.Formality, err = fieldValue(key, value, library.Formalities()); err != nil {
				return err
			}
		case "verbosity":
			if c.Verbosity, err = fieldValue(key, value, library.Verbosities()); err != nil {
				return err
			}
		case "sign_off":
			if c.SignOff, err = strconv.ParseBool(value); err != nil {
				return fmt.Errorf("sign_off: %w", err)
			}
		case "use_business_signature":
			if c.UseBusinessSignature, err = strconv.ParseBool(value); err != nil {
				return fmt.Errorf("use_business_signature: %w", err)
			}
		default:
			return fmt.Errorf("unknown prompt field: %s", key)
		}
	}
	return nil
}

func parseOverlay(args []string) (library.Overlay, error) {
	var o library.Overlay
	for _, arg := range args {
		key, value, err := splitField(arg)
		if err != nil {
			return o, err
		}
		switch key {
		case "name":
			o.Name = library.Ptr(value)
		case "description":
			o.Description = library.Ptr(value)
		case "category":
			v, err := fieldValue(key, value, library.Categories())
			if err != nil {
				return o, err
			}
			o.Category = library.Ptr(v)
		case "instruction":
			o.Instruction = library.Ptr(value)
		case "adherence":
			o.Adherence = library.Ptr(value)
		case "formality":
			v, err := fieldValue(key, value, library.Formalities())
			if err != nil {
				return o, err
			}
			o.Formality = library.Ptr(v)
		case "verbosity":
			v, err := fieldValue(key, value, library.Verbosities())
			if err != nil {
				return o, err
			}
			o.Verbosity = library.Ptr(v)
		case "sign_off", "use_business_signature":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return o, fmt.Errorf("%s: %w", key, err)
			}
			if key == "sign_off" {
				o.SignOff = &b
			} else {
				o.UseBusinessSignature = &b
			}
		default:
			return o, fmt.Errorf("unknown prompt field: %s", key)
		}
	}
	return o, nil
}

// fieldValue converts an enumerated prompt field. The empty string is
// accepted and clears the field; the library rejects it where required.
func fieldValue[T ~string](key, value string, valid []T) (T, error) {
	v := T(value)
	if v != "" && !slices.Contains(valid, v) {
		return v, &store.ValidationError{
			Field:  key,
			Reason: fmt.Sprintf("%q is not one of %s", value, joinValues(valid)),
		}
	}
	return v, nil
}

func joinValues[T ~string](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
