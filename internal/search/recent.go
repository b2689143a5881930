package search

import (
	"strings"

	"nfc4care/internal/storage"
)

// Recent is the persisted list of the most recent distinct search strings,
// most recent first.
type Recent struct {
	store *storage.Store
	max   int
}

func NewRecent(store *storage.Store, max int) *Recent {
	if max <= 0 {
		max = 5
	}
	return &Recent{store: store, max: max}
}

// Add records an executed search. Duplicates move to the front; the list is
// capped at max entries.
func (r *Recent) Add(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	list := r.List()
	out := make([]string, 0, len(list)+1)
	out = append(out, query)
	for _, q := range list {
		if q != query {
			out = append(out, q)
		}
	}
	if len(out) > r.max {
		out = out[:r.max]
	}

	return r.store.SetJSON(storage.KeyRecentSearches, out)
}

// List returns the recent searches, most recent first. A missing or corrupt
// entry yields an empty list.
func (r *Recent) List() []string {
	var list []string
	if err := r.store.GetJSON(storage.KeyRecentSearches, &list); err != nil {
		return nil
	}
	return list
}

// Clear forgets all recent searches.
func (r *Recent) Clear() error {
	return r.store.Remove(storage.KeyRecentSearches)
}
