package stacks

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nugget/voicenote/internal/elements"
	"github.com/nugget/voicenote/internal/store"
)

func testCatalog() *elements.Catalog {
	return elements.NewCatalog(
		elements.Element{Key: "format_y", Category: elements.CategoryFormat, Instruction: "Use bullets."},
		elements.Element{Key: "format_z", Category: elements.CategoryFormat, Instruction: "Use headings."},
		elements.Element{Key: "style_b", Category: elements.CategoryStyle, Instruction: "Be brief."},
		elements.Element{Key: "style_a", Category: elements.CategoryStyle, Instruction: "Be friendly."},
		elements.Element{Key: "grammar_x", Category: elements.CategoryGrammar, Instruction: "Fix grammar."},
	)
}

func testRefs() RefResolver {
	return RefResolverFunc(func(id string) (string, bool) {
		switch id {
		case "pirate":
			return "Talk like a pirate.", true
		case "blank":
			return "   ", true
		}
		return "", false
	})
}

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompt_stacks.json")
	s, err := Open(path, testCatalog(), testRefs(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Open(%q): %v", path, err)
	}
	return s, path
}

func TestBuildPrompt(t *testing.T) {
	cat := testCatalog()

	tests := []struct {
		name string
		keys []string
		want string
	}{
		{
			name: "sections in category order",
			keys: []string{"grammar_x", "format_y"},
			want: "## Format\nUse bullets.\n\n## Grammar\nFix grammar.",
		},
		{
			name: "definition order within section",
			keys: []string{"style_a", "style_b"},
			want: "## Style\nBe brief.\nBe friendly.",
		},
		{
			name: "unknown keys dropped",
			keys: []string{"nope", "format_z", "custom:ghost"},
			want: "## Format\nUse headings.",
		},
		{
			name: "custom refs join style",
			keys: []string{"custom:pirate", "style_a", "custom:blank"},
			want: "## Style\nBe friendly.\nTalk like a pirate.",
		},
		{
			name: "custom ref alone creates style section",
			keys: []string{"grammar_x", "custom:pirate"},
			want: "## Style\nTalk like a pirate.\n\n## Grammar\nFix grammar.",
		},
		{
			name: "duplicates collapse",
			keys: []string{"format_y", "format_y"},
			want: "## Format\nUse bullets.",
		},
		{
			name: "nothing selected",
			keys: nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildPrompt(cat, tt.keys, testRefs()); got != tt.want {
				t.Errorf("BuildPrompt(%v) =\n%q\nwant\n%q", tt.keys, got, tt.want)
			}
		})
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	cat := testCatalog()

	a := BuildPrompt(cat, []string{"grammar_x", "format_y"}, nil)
	b := BuildPrompt(cat, []string{"grammar_x", "format_y"}, nil)
	c := BuildPrompt(cat, []string{"format_y", "grammar_x"}, nil)
	if a != b {
		t.Errorf("repeated calls differ:\n%q\n%q", a, b)
	}
	if a != c {
		t.Errorf("input order changed output:\n%q\n%q", a, c)
	}

	r1 := BuildPrompt(cat, []string{"custom:pirate", "custom:blank", "style_b"}, testRefs())
	r2 := BuildPrompt(cat, []string{"style_b", "custom:blank", "custom:pirate"}, testRefs())
	if r1 != r2 {
		t.Errorf("custom ref order changed output:\n%q\n%q", r1, r2)
	}
}

func TestBuildPrompt_NilResolverDropsRefs(t *testing.T) {
	got := BuildPrompt(testCatalog(), []string{"custom:pirate"}, nil)
	if got != "" {
		t.Errorf("BuildPrompt() = %q, want empty", got)
	}
}

func TestIsCustomRef(t *testing.T) {
	tests := map[string]bool{
		"custom:abc": true,
		"custom:":    false,
		"custom":     false,
		"concise":    false,
	}
	for key, want := range tests {
		if got := IsCustomRef(key); got != want {
			t.Errorf("IsCustomRef(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestSaveCustomStack_RoundTrip(t *testing.T) {
	s, path := testStore(t)

	st := Stack{Name: "Morning", Description: "daily notes", Elements: []string{"format_y", "style_b", "grammar_x"}}
	saved, err := s.SaveCustomStack(st)
	if err != nil {
		t.Fatalf("SaveCustomStack() error: %v", err)
	}
	if !reflect.DeepEqual(saved, st) {
		t.Errorf("saved = %+v, want %+v", saved, st)
	}

	reloaded, err := Open(path, testCatalog(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	all := reloaded.GetAllStacks()
	if len(all) != 1 || !reflect.DeepEqual(all[0], st) {
		t.Errorf("GetAllStacks() = %+v, want [%+v]", all, st)
	}
}

func TestSaveCustomStack_Normalizes(t *testing.T) {
	s, _ := testStore(t)

	saved, err := s.SaveCustomStack(Stack{
		Name:     "Mixed",
		Elements: []string{"grammar_x", "custom:pirate", "bogus", "style_a", "format_z", "style_a", "format_y"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"format_y", "format_z", "style_a", "grammar_x", "custom:pirate"}
	if !reflect.DeepEqual(saved.Elements, want) {
		t.Errorf("Elements = %v, want %v", saved.Elements, want)
	}
}

func TestSaveCustomStack_Overwrite(t *testing.T) {
	s, _ := testStore(t)

	if _, err := s.SaveCustomStack(Stack{Name: "A", Elements: []string{"format_y"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveCustomStack(Stack{Name: "A", Elements: []string{"grammar_x"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveCustomStack(Stack{Name: "a", Elements: []string{"style_a"}}); err != nil {
		t.Fatal(err)
	}

	all := s.GetAllStacks()
	if len(all) != 2 {
		t.Fatalf("GetAllStacks() = %+v, want 2 stacks (names are case-sensitive)", all)
	}
	if all[0].Name != "A" || !reflect.DeepEqual(all[0].Elements, []string{"grammar_x"}) {
		t.Errorf("A = %+v, want overwritten", all[0])
	}
}

func TestSaveCustomStack_EmptyName(t *testing.T) {
	s, path := testStore(t)

	var verr *store.ValidationError
	if _, err := s.SaveCustomStack(Stack{Name: "  "}); !errors.As(err, &verr) {
		t.Fatalf("SaveCustomStack() error = %v, want ValidationError", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("rejected save wrote the stacks file")
	}
}

func TestGetAllStacks_SortedByName(t *testing.T) {
	s, _ := testStore(t)
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		if _, err := s.SaveCustomStack(Stack{Name: name}); err != nil {
			t.Fatal(err)
		}
	}

	var got []string
	for _, st := range s.GetAllStacks() {
		got = append(got, st.Name)
	}
	if want := []string{"alpha", "bravo", "charlie"}; !reflect.DeepEqual(got, want) {
		t.Errorf("names = %v, want %v", got, want)
	}
}

func TestDeleteStack(t *testing.T) {
	s, path := testStore(t)

	if err := s.DeleteStack("absent"); err != nil {
		t.Fatalf("DeleteStack(absent) error: %v", err)
	}
	if _, err := s.SaveCustomStack(Stack{Name: "gone"}); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteStack("gone"); err != nil {
		t.Fatalf("DeleteStack() error: %v", err)
	}

	reloaded, err := Open(path, testCatalog(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := reloaded.Get("gone"); ok {
		t.Error("deleted stack still present after reload")
	}
}

func TestOpen_DropsInvalidKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt_stacks.json")
	doc := `[
  {"name": "Keep", "elements": ["retired_element", "grammar_x", "format_y"], "future_field": true},
  {"description": "no name"},
  {"name": "Bare"},
]`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path, testCatalog(), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	all := s.GetAllStacks()
	if len(all) != 2 {
		t.Fatalf("GetAllStacks() = %+v, want Bare and Keep", all)
	}
	keep, _ := s.Get("Keep")
	if want := []string{"format_y", "grammar_x"}; !reflect.DeepEqual(keep.Elements, want) {
		t.Errorf("Keep.Elements = %v, want %v", keep.Elements, want)
	}
}

func TestStorageFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s, err := Open(filepath.Join(dir, "prompt_stacks.json"), testCatalog(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dir, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	var serr *store.StorageError
	if _, err := s.SaveCustomStack(Stack{Name: "x"}); !errors.As(err, &serr) {
		t.Fatalf("SaveCustomStack() error = %v, want StorageError", err)
	}
	if len(s.GetAllStacks()) != 0 {
		t.Error("failed save changed in-memory state")
	}
}

func TestExportImport(t *testing.T) {
	s, _ := testStore(t)
	orig := Stack{Name: "Share", Description: "to share", Elements: []string{"format_y", "custom:pirate"}}
	if _, err := s.SaveCustomStack(orig); err != nil {
		t.Fatal(err)
	}

	data, err := s.Export("Share")
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if !strings.Contains(string(data), `"name": "Share"`) {
		t.Errorf("Export() = %s", data)
	}

	other, _ := testStore(t)
	got, err := other.Import(data)
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if !reflect.DeepEqual(got, orig) {
		t.Errorf("Import() = %+v, want %+v", got, orig)
	}

	var notFound *store.NotFoundError
	if _, err := s.Export("missing"); !errors.As(err, &notFound) {
		t.Errorf("Export(missing) error = %v, want NotFoundError", err)
	}
}

func TestImport_Rejects(t *testing.T) {
	s, _ := testStore(t)

	tests := []struct {
		name string
		data string
	}{
		{"no name", `{"elements": ["format_y"]}`},
		{"not a document", `<<<>>>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verr *store.ValidationError
			if _, err := s.Import([]byte(tt.data)); !errors.As(err, &verr) {
				t.Errorf("Import(%s) error = %v, want ValidationError", tt.data, err)
			}
		})
	}
}

func TestBuildPromptFromElements(t *testing.T) {
	s, _ := testStore(t)

	got := s.BuildPromptFromElements([]string{"custom:pirate", "format_y"})
	want := "## Format\nUse bullets.\n\n## Style\nTalk like a pirate."
	if got != want {
		t.Errorf("BuildPromptFromElements() = %q, want %q", got, want)
	}
}
