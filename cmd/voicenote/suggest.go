package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/nugget/voicenote/internal/library"
	"github.com/nugget/voicenote/internal/stacks"
	"github.com/nugget/voicenote/internal/store"
)

// suggestThreshold is the minimum Jaro-Winkler similarity for a
// candidate to be offered as a correction.
const suggestThreshold = 0.85

// closest returns the candidate most similar to input, or "" when none
// reaches suggestThreshold. Comparison ignores case.
func closest(input string, candidates []string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}
	var best string
	var bestScore float64
	for _, c := range candidates {
		score := matchr.JaroWinkler(input, strings.ToLower(c), false)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < suggestThreshold || strings.EqualFold(best, input) {
		return ""
	}
	return best
}

// withSuggestion annotates a not-found error with the closest candidate.
// The original error stays reachable through errors.As.
func withSuggestion(err error, input string, candidates []string) error {
	var nf *store.NotFoundError
	if !errors.As(err, &nf) {
		return err
	}
	if s := closest(input, candidates); s != "" {
		return fmt.Errorf("%w (did you mean %q?)", err, s)
	}
	return err
}

func promptIDs(lib *library.Library) []string {
	all := lib.GetAll()
	ids := make([]string, len(all))
	for i, c := range all {
		ids[i] = c.ID
	}
	return ids
}

func stackNames(st *stacks.Store) []string {
	all := st.GetAllStacks()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	return names
}
