package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nugget/voicenote/internal/defaults"
	"github.com/nugget/voicenote/internal/foundation"
)

// runInit writes an example config and editable copies of the built-in
// foundation rules into dir. Existing files are never overwritten.
func runInit(w io.Writer, dir string) error {
	fmt.Fprintf(w, "Initializing voicenote configuration in %s\n", dir)

	foundationDir := filepath.Join(dir, "foundation")
	if err := os.MkdirAll(foundationDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", foundationDir, err)
	}

	configPath := filepath.Join(dir, "config.yaml")
	if err := writeIfMissing(w, configPath, defaults.ConfigYAML, 0o600); err != nil {
		return err
	}

	files := foundation.DefaultFiles()
	err := fs.WalkDir(files, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}

		content, err := fs.ReadFile(files, path)
		if err != nil {
			return fmt.Errorf("read embedded %s: %w", path, err)
		}

		destPath := filepath.Join(foundationDir, d.Name())
		return writeIfMissing(w, destPath, content, 0o644)
	})
	if err != nil {
		return fmt.Errorf("install foundation rules: %w", err)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Point foundation_dir in config.yaml at the foundation directory to use your edited rules.")
	return nil
}

// writeIfMissing writes content to path only if the file does not already
// exist, so init never overwrites user customizations. The outcome is
// reported to w.
func writeIfMissing(w io.Writer, path string, content []byte, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "  - %s (exists, skipping)\n", path)
		return nil
	}
	if err := os.WriteFile(path, content, perm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(w, "  ✓ %s\n", path)
	return nil
}
