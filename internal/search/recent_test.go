package search

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfc4care/internal/storage"
)

func recentForTest(t *testing.T) (*Recent, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return NewRecent(store, 5), store
}

func TestAddMostRecentFirst(t *testing.T) {
	r, _ := recentForTest(t)

	require.NoError(t, r.Add("dupont"))
	require.NoError(t, r.Add("martin"))
	require.NoError(t, r.Add("bernard"))

	assert.Equal(t, []string{"bernard", "martin", "dupont"}, r.List())
}

func TestDuplicateMovesToFront(t *testing.T) {
	r, _ := recentForTest(t)

	require.NoError(t, r.Add("dupont"))
	require.NoError(t, r.Add("martin"))
	require.NoError(t, r.Add("dupont"))

	assert.Equal(t, []string{"dupont", "martin"}, r.List())
}

func TestCappedAtMax(t *testing.T) {
	r, _ := recentForTest(t)

	for _, q := range []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"} {
		require.NoError(t, r.Add(q))
	}

	list := r.List()
	assert.Len(t, list, 5)
	assert.Equal(t, []string{"a7", "a6", "a5", "a4", "a3"}, list)
}

func TestEmptyQueryIgnored(t *testing.T) {
	r, _ := recentForTest(t)

	require.NoError(t, r.Add("   "))
	assert.Empty(t, r.List())
}

func TestPersisted(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	r1 := NewRecent(store, 5)
	require.NoError(t, r1.Add("dupont"))

	r2 := NewRecent(store, 5)
	assert.Equal(t, []string{"dupont"}, r2.List())
}

func TestClear(t *testing.T) {
	r, _ := recentForTest(t)

	require.NoError(t, r.Add("dupont"))
	require.NoError(t, r.Clear())
	assert.Empty(t, r.List())
}

func TestCorruptEntryYieldsEmpty(t *testing.T) {
	r, store := recentForTest(t)

	require.NoError(t, store.Set(storage.KeyRecentSearches, "{corrupt"))
	assert.Empty(t, r.List())
}
