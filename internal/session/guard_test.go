package session

import (
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfc4care/internal/storage"
)

func guardForTest(t *testing.T) (*Guard, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return NewGuard(store, 5, 15*time.Minute), store
}

func TestUnlockedByDefault(t *testing.T) {
	g, _ := guardForTest(t)
	assert.NoError(t, g.Check())
}

func TestLocksAfterThreshold(t *testing.T) {
	g, _ := guardForTest(t)

	for i := 0; i < 4; i++ {
		g.RecordFailure()
		assert.NoError(t, g.Check(), "attempt %d should not lock", i+1)
	}
	left := g.RecordFailure()
	assert.Equal(t, 0, left)

	err := g.Check()
	require.Error(t, err)

	var lockErr *LockoutError
	require.ErrorAs(t, err, &lockErr)
	assert.Greater(t, lockErr.Remaining, 14*time.Minute)
}

func TestRemainingAttemptsCountDown(t *testing.T) {
	g, _ := guardForTest(t)

	assert.Equal(t, 4, g.RecordFailure())
	assert.Equal(t, 3, g.RecordFailure())
	assert.Equal(t, 2, g.RecordFailure())
}

func TestLockoutSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	store1, err := storage.Open(path)
	require.NoError(t, err)
	g1 := NewGuard(store1, 5, 15*time.Minute)
	for i := 0; i < 5; i++ {
		g1.RecordFailure()
	}

	store2, err := storage.Open(path)
	require.NoError(t, err)
	g2 := NewGuard(store2, 5, 15*time.Minute)
	assert.Error(t, g2.Check())
}

func TestElapsedWindowResets(t *testing.T) {
	g, store := guardForTest(t)

	stale := time.Now().Add(-16 * time.Minute).UnixMilli()
	require.NoError(t, store.Set(storage.KeyLoginAttempts, "5"))
	require.NoError(t, store.Set(storage.KeyLastLoginAttempt, strconv.FormatInt(stale, 10)))

	assert.NoError(t, g.Check())

	// counter was reset, not just ignored
	_, ok := store.Get(storage.KeyLoginAttempts)
	assert.False(t, ok)
}

func TestResetClearsCounter(t *testing.T) {
	g, store := guardForTest(t)

	g.RecordFailure()
	g.RecordFailure()
	g.Reset()

	_, ok := store.Get(storage.KeyLoginAttempts)
	assert.False(t, ok)
	_, ok = store.Get(storage.KeyLastLoginAttempt)
	assert.False(t, ok)
}

func TestCorruptCounterResets(t *testing.T) {
	g, store := guardForTest(t)

	require.NoError(t, store.Set(storage.KeyLoginAttempts, "many"))
	require.NoError(t, store.Set(storage.KeyLastLoginAttempt, "yesterday"))

	assert.NoError(t, g.Check())
	_, ok := store.Get(storage.KeyLoginAttempts)
	assert.False(t, ok)
}
