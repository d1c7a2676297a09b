package planner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teachplan/teachplan/internal/utils"
)

func setupStore(t *testing.T) (*DiskvStore, *utils.MockClock, string) {
	dir := t.TempDir()
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)}
	return NewDiskvStore(dir, clock), clock, dir
}

func TestDiskvStore(t *testing.T) {
	t.Run("should round-trip the model under the fixed key", func(t *testing.T) {
		store, _, dir := setupStore(t)
		model := Bootstrap(sequentialIDs())
		model.Lessons = append(model.Lessons, Lesson{ID: "L1", Date: "2024-03-04", Title: "Fractions", StudentIDs: []string{"s1"}})

		// when
		require.NoError(t, store.Save(ctx, model))
		loaded, err := store.Load(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, model.Subjects, loaded.Subjects)
		assert.Equal(t, model.Students, loaded.Students)
		assert.Equal(t, model.Lessons, loaded.Lessons)

		_, err = os.Stat(filepath.Join(dir, StorageKey))
		assert.NoError(t, err, "blob is stored under the fixed key")
	})

	t.Run("should stamp lastSavedAt on every save", func(t *testing.T) {
		store, clock, _ := setupStore(t)

		require.NoError(t, store.Save(ctx, DataModel{}))
		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, clock.Now().Format(time.RFC3339), loaded.LastSavedAt)

		clock.SetNow(clock.Now().Add(time.Hour))
		require.NoError(t, store.Save(ctx, loaded))
		loaded, err = store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, clock.Now().Format(time.RFC3339), loaded.LastSavedAt)
	})

	t.Run("should report ErrNoSavedModel when nothing was saved", func(t *testing.T) {
		store, _, _ := setupStore(t)

		_, err := store.Load(ctx)

		assert.ErrorIs(t, err, ErrNoSavedModel)
	})

	t.Run("should surface a parse error for a corrupt blob", func(t *testing.T) {
		store, _, dir := setupStore(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, StorageKey), []byte("{not json"), 0o644))

		_, err := store.Load(ctx)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "could not parse")
	})
}

func TestLoadOrBootstrap(t *testing.T) {
	t.Run("should return the saved model when present", func(t *testing.T) {
		store, _, _ := setupStore(t)
		saved := Bootstrap(sequentialIDs())
		require.NoError(t, store.Save(ctx, saved))

		model := LoadOrBootstrap(ctx, store, sequentialIDs())

		assert.Equal(t, saved.Subjects, model.Subjects)
	})

	t.Run("should fall back to defaults when nothing is saved", func(t *testing.T) {
		store, _, _ := setupStore(t)

		model := LoadOrBootstrap(ctx, store, sequentialIDs())

		assert.Len(t, model.Subjects, 4)
		assert.Len(t, model.Students, 3)
		assert.Empty(t, model.Lessons)
	})

	t.Run("should fall back to defaults for a corrupt blob", func(t *testing.T) {
		store, _, dir := setupStore(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, StorageKey), []byte("garbage"), 0o644))

		model := LoadOrBootstrap(ctx, store, sequentialIDs())

		assert.Len(t, model.Subjects, 4)
	})
}
