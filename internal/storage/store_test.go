package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return s
}

func TestSetGetRemove(t *testing.T) {
	s := tempStore(t)

	_, ok := s.Get(KeyAuthToken)
	assert.False(t, ok)

	require.NoError(t, s.Set(KeyAuthToken, "tok"))
	v, ok := s.Get(KeyAuthToken)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	require.NoError(t, s.Remove(KeyAuthToken))
	_, ok = s.Get(KeyAuthToken)
	assert.False(t, ok)

	// removing again is a no-op
	require.NoError(t, s.Remove(KeyAuthToken))
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Set(KeyRecentSearches, `["dupont"]`))
	require.NoError(t, s1.Set(KeyAuthToken, "tok"))

	s2, err := Open(path)
	require.NoError(t, err)
	v, ok := s2.Get(KeyRecentSearches)
	assert.True(t, ok)
	assert.Equal(t, `["dupont"]`, v)
}

func TestDoctorSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	type snapshot struct {
		ID     int64  `json:"id"`
		Nom    string `json:"nom"`
		Prenom string `json:"prenom"`
		Role   string `json:"role"`
		Actif  bool   `json:"actif"`
	}
	original := snapshot{ID: 7, Nom: "Dubois", Prenom: "Martin", Role: "doctor", Actif: true}

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.SetJSON(KeyDoctorData, original))

	s2, err := Open(path)
	require.NoError(t, err)
	var restored snapshot
	require.NoError(t, s2.GetJSON(KeyDoctorData, &restored))
	assert.Equal(t, original, restored)
}

func TestCorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := Open(path)
	require.NoError(t, err)
	_, ok := s.Get(KeyAuthToken)
	assert.False(t, ok)
}

func TestGetJSONMissingKey(t *testing.T) {
	s := tempStore(t)
	var v []string
	assert.Error(t, s.GetJSON(KeyRecentSearches, &v))
}

func TestCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyAuthToken, "tok"))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
