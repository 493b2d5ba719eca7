package elements

import "testing"

func TestDefault_KeysUniqueAndCategorized(t *testing.T) {
	c := Default()

	total := 0
	for _, cat := range Categories() {
		elems := c.Get(cat)
		if len(elems) == 0 {
			t.Errorf("category %s has no elements", cat)
		}
		for _, e := range elems {
			if e.Category != cat {
				t.Errorf("element %s listed under %s has category %s", e.Key, cat, e.Category)
			}
			if e.Instruction == "" {
				t.Errorf("element %s has empty instruction", e.Key)
			}
		}
		total += len(elems)
	}
	if total != c.Len() {
		t.Errorf("sum of categories = %d, Len() = %d", total, c.Len())
	}
}

func TestGet_DefinitionOrder(t *testing.T) {
	c := NewCatalog(
		Element{Key: "b", Category: CategoryStyle, Instruction: "B"},
		Element{Key: "a", Category: CategoryStyle, Instruction: "A"},
		Element{Key: "f", Category: CategoryFormat, Instruction: "F"},
	)

	got := c.Get(CategoryStyle)
	if len(got) != 2 || got[0].Key != "b" || got[1].Key != "a" {
		t.Errorf("Get(style) = %v, want [b a]", got)
	}
	if c.Position("a") != 1 {
		t.Errorf("Position(a) = %d, want 1", c.Position("a"))
	}
	if c.Position("f") != 0 {
		t.Errorf("Position(f) = %d, want 0", c.Position("f"))
	}
	if c.Position("missing") != -1 {
		t.Errorf("Position(missing) = %d, want -1", c.Position("missing"))
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	c := NewCatalog(Element{Key: "x", Category: CategoryGrammar, Instruction: "X"})

	got := c.Get(CategoryGrammar)
	got[0].Instruction = "mutated"

	e, _ := c.Lookup("x")
	if e.Instruction != "X" {
		t.Errorf("catalog mutated through Get(): instruction = %q", e.Instruction)
	}
}

func TestLookup(t *testing.T) {
	c := Default()

	e, ok := c.Lookup("fix_grammar")
	if !ok {
		t.Fatal("Lookup(fix_grammar) not found")
	}
	if e.Category != CategoryGrammar {
		t.Errorf("category = %s, want grammar", e.Category)
	}
	if _, ok := c.Lookup("custom:abc"); ok {
		t.Error("Lookup(custom:abc) should miss")
	}
	if !c.Has("bullet_points") {
		t.Error("Has(bullet_points) = false")
	}
}

func TestNewCatalog_Panics(t *testing.T) {
	tests := []struct {
		name  string
		elems []Element
	}{
		{"duplicate key across categories", []Element{
			{Key: "dup", Category: CategoryFormat},
			{Key: "dup", Category: CategoryStyle},
		}},
		{"empty key", []Element{{Key: "", Category: CategoryFormat}}},
		{"unknown category", []Element{{Key: "x", Category: "tone"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("NewCatalog() should panic")
				}
			}()
			NewCatalog(tt.elems...)
		})
	}
}

func TestCategoryTitle(t *testing.T) {
	if got := CategoryGrammar.Title(); got != "Grammar" {
		t.Errorf("Title() = %q, want Grammar", got)
	}
	if got := Category("other").Title(); got != "other" {
		t.Errorf("Title() = %q, want other", got)
	}
}
