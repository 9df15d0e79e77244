package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mushroom-doctor/internal/domain/entity"
	"mushroom-doctor/internal/domain/port"
)

func TestMemorySessionRepository_SaveFindDelete(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	_, ok, err := repo.Find(ctx, "chat:1")
	require.NoError(t, err)
	require.False(t, ok)

	s := entity.NewSession("chat:1", entity.LanguageEnglish)
	require.NoError(t, repo.Save(ctx, s))

	got, ok, err := repo.Find(ctx, "chat:1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Same(t, s, got)

	require.NoError(t, repo.Save(ctx, entity.NewSession("web:2", entity.LanguageEnglish)))
	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"chat:1", "web:2"}, keys)

	require.NoError(t, repo.Delete(ctx, "chat:1"))
	_, ok, _ = repo.Find(ctx, "chat:1")
	require.False(t, ok)

	keys, err = repo.Keys(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"web:2"}, keys)
}

func testPreferenceStore(t *testing.T, store port.PreferenceStore) {
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "chat:1", entity.PreferenceKeyLanguage)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "chat:1", entity.PreferenceKeyLanguage, "fil"))
	require.NoError(t, store.Set(ctx, "chat:1", entity.PreferenceKeyLanguage, "ilo"))
	require.NoError(t, store.Set(ctx, "chat:2", entity.PreferenceKeyLanguage, "en"))

	v, ok, err := store.Get(ctx, "chat:1", entity.PreferenceKeyLanguage)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "ilo", v)

	v, ok, err = store.Get(ctx, "chat:2", entity.PreferenceKeyLanguage)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "en", v)
}

func TestMemoryPreferenceStore(t *testing.T) {
	testPreferenceStore(t, NewMemoryPreferenceStore())
}

func TestSQLPreferenceStore_SQLite(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	defer store.Close()

	testPreferenceStore(t, store)
}

func TestSQLPreferenceStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	ctx := context.Background()

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "web:abc", entity.PreferenceKeyLanguage, "fil"))
	require.NoError(t, store.Close())

	store, err = OpenSQLite(path)
	require.NoError(t, err)
	defer store.Close()

	v, ok, err := store.Get(ctx, "web:abc", entity.PreferenceKeyLanguage)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "fil", v)
}

func TestRedisKey(t *testing.T) {
	require.Equal(t, "mushroom:prefs:chat:7:lang", redisKey("chat:7", entity.PreferenceKeyLanguage))
}
