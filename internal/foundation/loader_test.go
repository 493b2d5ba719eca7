package foundation

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"
)

func TestSplitFrontmatter(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantHeader string
		wantBody   string
	}{
		{
			name:     "no frontmatter",
			raw:      "# Hello\n\n- one",
			wantBody: "# Hello\n\n- one",
		},
		{
			name:       "order and title",
			raw:        "---\norder: 5\ntitle: Basics\n---\n- one",
			wantHeader: "order: 5\ntitle: Basics",
			wantBody:   "- one",
		},
		{
			name:     "no closing delimiter",
			raw:      "---\norder: 5\n- one",
			wantBody: "---\norder: 5\n- one",
		},
		{
			name:     "dashes without newline",
			raw:      "---order: 5\n---\n- one",
			wantBody: "---order: 5\n---\n- one",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body := splitFrontmatter([]byte(tt.raw))
			if string(header) != tt.wantHeader {
				t.Errorf("header = %q, want %q", header, tt.wantHeader)
			}
			if string(body) != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestParseSections(t *testing.T) {
	src := `Lead paragraph
spanning two lines.

# Cleanup

- Remove **filler** words
- Fix ` + "`code`" + ` spans
  - nested rule

## Empty heading

# Output

Return only the text.
`
	got := parseSections([]byte(src), "Intro")
	want := []Section{
		{Heading: "Intro", Items: []string{"Lead paragraph spanning two lines."}},
		{Heading: "Cleanup", Items: []string{"Remove filler words", "Fix code spans", "nested rule"}},
		{Heading: "Output", Items: []string{"Return only the text."}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseSections() =\n%#v\nwant\n%#v", got, want)
	}
}

func TestLoadFS_OrderAndDisabled(t *testing.T) {
	fsys := fstest.MapFS{
		"a.md":      {Data: []byte("---\norder: 20\n---\n# Second\n- b")},
		"b.md":      {Data: []byte("---\norder: 10\n---\n# First\n- a")},
		"c.md":      {Data: []byte("---\ndisabled: true\n---\n# Hidden\n- x")},
		"d.md":      {Data: []byte("---\norder: 20\ntitle: Third\n---\n- c")},
		"notes.txt": {Data: []byte("# Ignored\n- y")},
	}

	got, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS() error: %v", err)
	}
	want := []Section{
		{Heading: "First", Items: []string{"a"}},
		{Heading: "Second", Items: []string{"b"}},
		{Heading: "Third", Items: []string{"c"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadFS() = %#v, want %#v", got, want)
	}
}

func TestLoadFS_BadFrontmatter(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.md": {Data: []byte("---\norder: [\n---\n- a")},
	}
	if _, err := LoadFS(fsys); err == nil {
		t.Error("LoadFS() should fail on malformed frontmatter")
	}
}

func TestLoader_FallsBackToDefault(t *testing.T) {
	empty := t.TempDir()
	tests := []struct {
		name string
		dir  string
	}{
		{"unset", ""},
		{"missing", filepath.Join(empty, "nope")},
		{"no markdown", empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewLoader(tt.dir).Load()
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if !reflect.DeepEqual(got, Default()) {
				t.Errorf("Load() = %v, want defaults", got)
			}
		})
	}
}

func TestLoader_ReadsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "01-house_style.md"), []byte("- Use metric units."), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewLoader(dir).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := []Section{{Heading: "House style", Items: []string{"Use metric units."}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %#v, want %#v", got, want)
	}
}

func TestDefault(t *testing.T) {
	got := Default()
	if len(got) == 0 {
		t.Fatal("Default() returned no sections")
	}
	for _, s := range got {
		if s.Heading == "" || len(s.Items) == 0 {
			t.Errorf("default section %+v is incomplete", s)
		}
	}

	got[0].Items[0] = "mutated"
	if Default()[0].Items[0] == "mutated" {
		t.Error("Default() shares backing arrays")
	}
}

func TestRender(t *testing.T) {
	sections := []Section{
		{Heading: "Cleanup", Items: []string{"Remove filler words"}},
		{Heading: "Output", Items: []string{"Text only", "No fences"}},
	}
	want := "## Cleanup\n- Remove filler words\n\n## Output\n- Text only\n- No fences"
	if got := Render(sections); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}
