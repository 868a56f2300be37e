package iocache

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/huangsam/capsule/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetManager restores the global manager between tests.
func resetManager(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	Manager = &StoreManager{}
	t.Cleanup(func() {
		CloseStore()
		initOnce = sync.Once{}
		closeOnce = sync.Once{}
		Manager = &StoreManager{}
	})
}

func TestInitStore(t *testing.T) {
	t.Run("sqlite file", func(t *testing.T) {
		resetManager(t)
		dbPath := filepath.Join(t.TempDir(), "analysis.db")

		require.NoError(t, InitStore(schema.SQLiteBackend, dbPath))
		require.NotNil(t, Manager.GetAnalysisStore())

		_, err := os.Stat(dbPath)
		assert.NoError(t, err)
	})

	t.Run("idempotent", func(t *testing.T) {
		resetManager(t)
		dbPath := filepath.Join(t.TempDir(), "analysis.db")

		require.NoError(t, InitStore(schema.SQLiteBackend, dbPath))
		first := Manager.GetAnalysisStore()
		require.NoError(t, InitStore(schema.MySQLBackend, "ignored"))
		assert.Same(t, first, Manager.GetAnalysisStore())
	})

	t.Run("concurrent", func(t *testing.T) {
		resetManager(t)
		dbPath := filepath.Join(t.TempDir(), "analysis.db")

		var wg sync.WaitGroup
		for range 8 {
			wg.Go(func() {
				assert.NoError(t, InitStore(schema.SQLiteBackend, dbPath))
			})
		}
		wg.Wait()
		assert.NotNil(t, Manager.GetAnalysisStore())
	})

	t.Run("empty backend leaves tracking off", func(t *testing.T) {
		resetManager(t)
		require.NoError(t, InitStore("", ""))
		assert.Nil(t, Manager.GetAnalysisStore())
	})

	t.Run("none backend is a no-op store", func(t *testing.T) {
		resetManager(t)
		require.NoError(t, InitStore(schema.NoneBackend, ""))
		store := Manager.GetAnalysisStore()
		require.NotNil(t, store)
		id, err := store.BeginAnalysis(fixedTime, "run", "p", nil)
		assert.NoError(t, err)
		assert.Zero(t, id)
	})

	t.Run("unsupported backend", func(t *testing.T) {
		resetManager(t)
		err := InitStore(schema.DatabaseBackend("oracle"), "")
		assert.ErrorContains(t, err, "failed to initialize analysis store")
		assert.Nil(t, Manager.GetAnalysisStore())
	})
}

func TestCloseStoreTwice(t *testing.T) {
	resetManager(t)
	require.NoError(t, InitStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "analysis.db")))
	CloseStore()
	CloseStore()
}

func TestClearAnalysis(t *testing.T) {
	t.Run("sqlite removes the file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "analysis.db")
		store, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		require.NoError(t, store.Close())

		require.NoError(t, ClearAnalysis(schema.SQLiteBackend, dbPath, ""))
		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("sqlite missing file is fine", func(t *testing.T) {
		assert.NoError(t, ClearAnalysis(schema.SQLiteBackend, filepath.Join(t.TempDir(), "nope.db"), ""))
	})

	t.Run("sqlite requires a path", func(t *testing.T) {
		assert.ErrorContains(t, ClearAnalysis(schema.SQLiteBackend, "", ""), "dbFilePath cannot be empty")
	})

	t.Run("none", func(t *testing.T) {
		assert.NoError(t, ClearAnalysis(schema.NoneBackend, "", ""))
	})

	t.Run("unsupported", func(t *testing.T) {
		assert.ErrorContains(t, ClearAnalysis(schema.DatabaseBackend("oracle"), "", ""), "unsupported analysis backend")
	})
}
