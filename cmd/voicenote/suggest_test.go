package main

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nugget/voicenote/internal/store"
)

func TestClosest(t *testing.T) {
	candidates := []string{"email", "meeting_agenda", "meeting_minutes", "todo"}

	tests := []struct {
		input string
		want  string
	}{
		{"emial", "email"},
		{"meeting_minute", "meeting_minutes"},
		{"EMAIL", ""}, // exact match ignoring case is not a correction
		{"xyzzy", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := closest(tt.input, candidates); got != tt.want {
				t.Errorf("closest(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWithSuggestion(t *testing.T) {
	candidates := []string{"email", "todo"}

	err := withSuggestion(&store.NotFoundError{Kind: "prompt", ID: "emial"}, "emial", candidates)
	if !strings.Contains(err.Error(), `did you mean "email"?`) {
		t.Errorf("error = %q, want suggestion", err)
	}
	var nf *store.NotFoundError
	if !errors.As(err, &nf) {
		t.Error("suggestion hid the NotFoundError")
	}

	other := fmt.Errorf("disk full")
	if got := withSuggestion(other, "emial", candidates); got != other {
		t.Errorf("non-not-found error changed: %v", got)
	}
	if got := withSuggestion(nil, "emial", candidates); got != nil {
		t.Errorf("nil error became %v", got)
	}
}

func TestPrompts_ShowSuggests(t *testing.T) {
	cfg := testConfig(t)

	_, err := runCmd(t, cfg, "prompts", "show", "emial")
	if err == nil || !strings.Contains(err.Error(), `"email"`) {
		t.Errorf("show typo error = %v, want suggestion", err)
	}
}
