// Voicenote manages the prompts used to clean up dictated text and
// composes the final instruction sent to the cleanup model.
//
// It keeps a library of prompt presets (shipped builtins, edits layered
// over them, and user-created prompts), named stacks of style elements,
// and the global style settings. The compose command prints the prompt
// that a transcription job would use. Configuration is loaded from a
// single YAML file discovered automatically (see
// [config.DefaultSearchPaths]); without one, built-in defaults apply.
//
// Usage:
//
//	voicenote init [dir]          Write an example config and foundation rules
//	voicenote prompts <action>    Manage prompt presets and favorites
//	voicenote stacks <action>     Manage saved element stacks
//	voicenote elements [category] List selectable elements
//	voicenote settings <action>   Show or change the global style settings
//	voicenote compose [key=value] Print the composed prompt
//	voicenote version             Print version and build information
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nugget/voicenote/internal/buildinfo"
	"github.com/nugget/voicenote/internal/config"
	"github.com/nugget/voicenote/internal/library"
)

// main is intentionally minimal. It constructs the OS-level environment
// (context, stdio, argv) and delegates immediately to [run] so the whole
// command can be driven from tests.
func main() {
	ctx := context.Background()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		if isUsage(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// run is the real entry point for the voicenote command. Command output
// goes to stdout; structured logs go to stderr. args is os.Args[1:].
//
// Arguments are parsed by hand rather than with the flag package so that
// run carries no global state and tests can call it in parallel.
func run(ctx context.Context, stdout io.Writer, stderr io.Writer, args []string) error {
	var configPath string
	var outputFmt string // "text" (default) or "json"
	var command string
	var cmdArgs []string

	for i := 0; i < len(args); i++ {
		switch {
		case command != "":
			// Everything after the command belongs to it.
			cmdArgs = append(cmdArgs, args[i])
		case args[i] == "-config" && i+1 < len(args):
			configPath = args[i+1]
			i++ // skip the value
		case strings.HasPrefix(args[i], "-config="):
			configPath = strings.TrimPrefix(args[i], "-config=")
		case (args[i] == "-o" || args[i] == "--output") && i+1 < len(args):
			outputFmt = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-o="):
			outputFmt = strings.TrimPrefix(args[i], "-o=")
		case strings.HasPrefix(args[i], "--output="):
			outputFmt = strings.TrimPrefix(args[i], "--output=")
		case args[i] == "-h" || args[i] == "-help" || args[i] == "--help":
			return printUsage(stdout)
		case !strings.HasPrefix(args[i], "-"):
			command = args[i]
		default:
			return fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	// Default to human-readable text output.
	if outputFmt == "" {
		outputFmt = "text"
	}
	if outputFmt != "text" && outputFmt != "json" {
		return fmt.Errorf("unknown output format: %q (expected text or json)", outputFmt)
	}
	out := &output{w: stdout, format: outputFmt}

	switch command {
	case "init":
		dir := "."
		if len(cmdArgs) > 0 {
			dir = cmdArgs[0]
		}
		return runInit(stdout, dir)
	case "version":
		return runVersion(stdout, outputFmt)
	case "":
		return printUsage(stdout)
	case "prompts", "stacks", "elements", "settings", "compose":
	default:
		return fmt.Errorf("unknown command: %s", command)
	}

	a, err := openApp(configPath, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	switch command {
	case "prompts":
		return runPrompts(a, out, cmdArgs)
	case "stacks":
		return runStacks(a, out, cmdArgs)
	case "elements":
		return runElements(a, out, cmdArgs)
	case "settings":
		return runSettings(a, out, cmdArgs)
	default:
		return runCompose(ctx, a, out, cmdArgs)
	}
}

// runVersion prints build metadata in the requested output format.
func runVersion(w io.Writer, outputFmt string) error {
	info := buildinfo.Info()
	if outputFmt == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	fmt.Fprintln(w, buildinfo.String())
	// Print fields in a stable order for human readability.
	for _, k := range []string{"version", "git_commit", "git_branch", "build_time", "go_version", "os", "arch"} {
		if v, ok := info[k]; ok {
			fmt.Fprintf(w, "  %-12s %s\n", k+":", v)
		}
	}
	return nil
}

// printUsage writes the top-level help text to w. It is called when
// voicenote is invoked with no arguments, or with -h / --help.
func printUsage(w io.Writer) error {
	fmt.Fprintln(w, "voicenote - prompt presets and composition for dictation cleanup")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: voicenote [flags] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  init [dir]            Write example config and foundation rules (default: .)")
	fmt.Fprintln(w, "  prompts <action>      list, favorites, show, search, create, update, delete,")
	fmt.Fprintln(w, "                        modify, reset, favorite, unfavorite, reorder, clone,")
	fmt.Fprintln(w, "                        export, import")
	fmt.Fprintln(w, "  stacks <action>       list, show, save, delete, build, export, import")
	fmt.Fprintln(w, "  elements [category]   List format, style and grammar elements")
	fmt.Fprintln(w, "  settings <action>     show, get <key>, set <key> <value>, unset <key>, reset")
	fmt.Fprintln(w, "  compose [key=value]   Print the composed prompt (-save keeps the overrides)")
	fmt.Fprintln(w, "  version               Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -config <path>    Path to config file (default: auto-discover)")
	fmt.Fprintln(w, "  -o, --output fmt  Output format: text (default) or json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Prompt fields:")
	fmt.Fprintf(w, "  category   %s\n", joinValues(library.Categories()))
	fmt.Fprintf(w, "  formality  %s\n", joinValues(library.Formalities()))
	fmt.Fprintf(w, "  verbosity  %s\n", joinValues(library.Verbosities()))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config search order:")
	for _, p := range config.DefaultSearchPaths() {
		fmt.Fprintf(w, "  %s\n", p)
	}
	return nil
}

func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: config.ReplaceLogLevelNames,
	}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// loadConfig locates and parses the YAML configuration file. If explicit
// is non-empty, that exact path is used (and must exist). Otherwise,
// [config.FindConfig] searches the default locations, and when nothing is
// found the built-in defaults are used. Returns the parsed config and the
// path that was loaded ("" for defaults).
func loadConfig(explicit string) (*config.Config, string, error) {
	cfgPath, err := config.FindConfig(explicit)
	if err != nil {
		if explicit != "" {
			return nil, "", err
		}
		return config.Default(), "", nil
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, cfgPath, fmt.Errorf("load config %s: %w", cfgPath, err)
	}

	return cfg, cfgPath, nil
}

// usageError marks errors caused by malformed command arguments.
type usageError struct {
	usage string
}

func (e *usageError) Error() string {
	return "usage: voicenote " + e.usage
}

func usage(format string, a ...any) error {
	return &usageError{usage: fmt.Sprintf(format, a...)}
}

// isUsage reports whether err came from malformed arguments. main exits
// with status 2 for these, matching the flag package.
func isUsage(err error) bool {
	var u *usageError
	return errors.As(err, &u)
}
