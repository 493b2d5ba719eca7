package library

import (
	"cmp"
	"slices"

	"github.com/nugget/voicenote/internal/store"
)

// favoriteStep is the gap left between consecutive favorite orders so an
// entry can later be placed between two others without renumbering.
const favoriteStep = 10

// AddFavorite marks id as a favorite at the end of the favorites order.
// Adding an existing favorite leaves its order unchanged.
func (l *Library) AddFavorite(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.resolve(l.state, id); !ok {
		return &store.NotFoundError{Kind: "prompt", ID: id}
	}
	if _, ok := l.state.favorites[id]; ok {
		return nil
	}

	order := 0
	if len(l.state.favorites) > 0 {
		order = maxOrder(l.state.favorites) + favoriteStep
	}

	err := l.commit(func(st *state) error {
		st.favorites[id] = order
		return nil
	})
	if err != nil {
		return err
	}
	l.logger.Debug("favorite added", "id", id, "order", order)
	return nil
}

// RemoveFavorite clears the favorite mark on id. It does nothing when id
// is not a favorite.
func (l *Library) RemoveFavorite(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.state.favorites[id]; !ok {
		return nil
	}

	err := l.commit(func(st *state) error {
		delete(st.favorites, id)
		return nil
	})
	if err != nil {
		return err
	}
	l.logger.Debug("favorite removed", "id", id)
	return nil
}

// GetFavorites returns the favorite presets in ascending favorite order.
// Equal orders fall back to id so the result is stable.
func (l *Library) GetFavorites() []Config {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Config, 0, len(l.state.favorites))
	for id := range l.state.favorites {
		if c, ok := l.resolve(l.state, id); ok {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b Config) int {
		if c := cmp.Compare(a.FavoriteOrder, b.FavoriteOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// ReorderFavorites renumbers favorites so the listed ids come first, in
// the given order. Favorites not listed follow in their current order.
// Every id must already be a favorite.
func (l *Library) ReorderFavorites(ids []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	listed := make(map[string]bool, len(ids))
	var sequence []string
	for _, id := range ids {
		if _, ok := l.state.favorites[id]; !ok {
			return &store.NotFoundError{Kind: "favorite", ID: id}
		}
		if !listed[id] {
			listed[id] = true
			sequence = append(sequence, id)
		}
	}

	var rest []string
	for id := range l.state.favorites {
		if !listed[id] {
			rest = append(rest, id)
		}
	}
	slices.SortFunc(rest, func(a, b string) int {
		if c := cmp.Compare(l.state.favorites[a], l.state.favorites[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	sequence = append(sequence, rest...)
	err := l.commit(func(st *state) error {
		for i, id := range sequence {
			st.favorites[id] = i * favoriteStep
		}
		return nil
	})
	if err != nil {
		return err
	}
	l.logger.Debug("favorites reordered", "count", len(sequence))
	return nil
}

func maxOrder(favorites map[string]int) int {
	first := true
	var m int
	for _, order := range favorites {
		if first || order > m {
			m = order
			first = false
		}
	}
	return m
}
