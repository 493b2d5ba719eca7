package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type doc struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func TestReadFile_Missing(t *testing.T) {
	var d doc
	found, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"), &d)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if found {
		t.Error("ReadFile() found = true for missing file")
	}
}

func TestReadFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte("  \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var d doc
	found, err := ReadFile(path, &d)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if found {
		t.Error("ReadFile() found = true for whitespace-only file")
	}
}

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.json")
	in := doc{Name: "dictation", Items: []string{"a", "b"}}

	if err := WriteFile(path, in); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	var out doc
	found, err := ReadFile(path, &out)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !found {
		t.Fatal("ReadFile() found = false after write")
	}
	if out.Name != in.Name || len(out.Items) != 2 || out.Items[1] != "b" {
		t.Errorf("ReadFile() = %+v, want %+v", out, in)
	}

	// No temp files should be left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestWriteFile_Indented(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := WriteFile(path, doc{Name: "x"}); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n  \"name\": \"x\"") {
		t.Errorf("output not indented:\n%s", data)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("output should end with a newline")
	}
}

func TestWriteFile_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Parent "directory" is a regular file, so MkdirAll fails.
	err := WriteFile(filepath.Join(blocker, "doc.json"), doc{})
	if err == nil {
		t.Fatal("WriteFile() should fail when parent is a file")
	}
	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("error = %T, want *StorageError", err)
	}
	if se.Op != "write" {
		t.Errorf("Op = %q, want write", se.Op)
	}
	if se.Unwrap() == nil {
		t.Error("StorageError should wrap the underlying error")
	}
}

func TestDecode_Lenient(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "strict", raw: `{"name": "n", "items": ["a"]}`},
		{name: "trailing comma", raw: `{"name": "n", "items": ["a",],}`},
		{name: "hjson comments", raw: "{\n  # hand edited\n  name: n\n  items: [\"a\"]\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d doc
			if err := Decode([]byte(tt.raw), &d); err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if d.Name != "n" {
				t.Errorf("Name = %q, want %q", d.Name, "n")
			}
			if len(d.Items) != 1 || d.Items[0] != "a" {
				t.Errorf("Items = %v, want [a]", d.Items)
			}
		})
	}
}

func TestDecode_RejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "binary", raw: "\x00\x01garbage{{{"},
		{name: "prose", raw: "this is not a document"},
		{name: "bare scalar", raw: "42"},
		{name: "unsalvageable braces", raw: "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := doc{Name: "untouched"}
			if err := Decode([]byte(tt.raw), &d); err == nil {
				t.Errorf("Decode(%q) accepted garbage as %+v", tt.raw, d)
			}
		})
	}
}

func TestReadFile_GarbageIsStorageError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte("\x00\x01garbage{{{"), 0o644); err != nil {
		t.Fatal(err)
	}

	var d doc
	ok, err := ReadFile(path, &d)
	var se *StorageError
	if !errors.As(err, &se) || se.Op != "decode" {
		t.Fatalf("ReadFile() = %v, %v; want decode StorageError", ok, err)
	}
}

func TestDecode_UnknownFieldsIgnored(t *testing.T) {
	var d doc
	if err := Decode([]byte(`{"name": "n", "future_field": 42}`), &d); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if d.Name != "n" {
		t.Errorf("Name = %q, want n", d.Name)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&ValidationError{Field: "name", Reason: "must not be empty"}, "invalid name: must not be empty"},
		{&NotFoundError{Kind: "prompt", ID: "x"}, `prompt "x" not found`},
		{&InvalidOperationError{Op: "delete", ID: "email", Reason: "builtin prompts can only be reset"}, `cannot delete "email": builtin prompts can only be reset`},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
