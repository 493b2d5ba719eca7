package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/nugget/voicenote/internal/stacks"
	"github.com/nugget/voicenote/internal/store"
)

func runStacks(a *app, out *output, args []string) error {
	if len(args) == 0 {
		return usage("stacks <list|show|save|delete|build|export|import>")
	}
	action, rest := args[0], args[1:]

	switch action {
	case "list":
		all := a.stacks.GetAllStacks()
		if out.json() {
			return out.encode(all)
		}
		for _, st := range all {
			out.printf("%-24s %s\n", st.Name, strings.Join(st.Elements, ","))
		}
		return nil
	case "show":
		if len(rest) != 1 {
			return usage("stacks show <name>")
		}
		st, ok := a.stacks.Get(rest[0])
		if !ok {
			return withSuggestion(&store.NotFoundError{Kind: "stack", ID: rest[0]}, rest[0], stackNames(a.stacks))
		}
		if out.json() {
			return out.encode(st)
		}
		out.printf("name:        %s\n", st.Name)
		if st.Description != "" {
			out.printf("description: %s\n", st.Description)
		}
		out.printf("elements:    %s\n", strings.Join(st.Elements, ", "))
		return nil
	case "save":
		if len(rest) < 1 {
			return usage("stacks save <name> [element...] [description=text]")
		}
		st := stacks.Stack{Name: rest[0]}
		for _, arg := range rest[1:] {
			if desc, ok := strings.CutPrefix(arg, "description="); ok {
				st.Description = desc
				continue
			}
			st.Elements = append(st.Elements, arg)
		}
		_, err := a.stacks.SaveCustomStack(st)
		return err
	case "delete":
		if len(rest) != 1 {
			return usage("stacks delete <name>")
		}
		return a.stacks.DeleteStack(rest[0])
	case "build":
		keys := rest
		if len(rest) == 1 {
			if st, ok := a.stacks.Get(rest[0]); ok {
				keys = st.Elements
			}
		}
		if text := a.stacks.BuildPromptFromElements(keys); text != "" {
			out.println(text)
		}
		return nil
	case "export":
		if len(rest) != 1 {
			return usage("stacks export <name>")
		}
		data, err := a.stacks.Export(rest[0])
		if err != nil {
			return withSuggestion(err, rest[0], stackNames(a.stacks))
		}
		_, err = out.w.Write(data)
		return err
	case "import":
		if len(rest) != 1 {
			return usage("stacks import <file>")
		}
		data, err := os.ReadFile(rest[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", rest[0], err)
		}
		st, err := a.stacks.Import(data)
		if err != nil {
			return err
		}
		a.logger.Info("stack imported", "name", st.Name, "file", rest[0])
		return nil
	default:
		return fmt.Errorf("unknown stacks action: %s", action)
	}
}
