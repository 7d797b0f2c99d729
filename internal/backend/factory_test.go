package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pasika/internal/config"
)

func TestFromAppConfig(t *testing.T) {
	_, err := FromAppConfig(nil)
	assert.Error(t, err)

	_, err = FromAppConfig(&config.Config{DataBackend: "sheets"})
	assert.Error(t, err)

	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDBPath: "x.db", DatasetFile: "d.yaml"})
	require.NoError(t, err)
	assert.Equal(t, Config{Type: SQLiteBackend, SQLiteDBPath: "x.db", DatasetFile: "d.yaml"}, cfg)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Type: MemoryBackend}.Validate())
	assert.Error(t, Config{Type: SQLiteBackend}.Validate())
	assert.Error(t, Config{Type: "remote"}.Validate())
}

func TestCreateMemoryBackend(t *testing.T) {
	res, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: MemoryBackend})
	require.NoError(t, err)
	assert.Nil(t, res.Cleanup)

	ds, err := res.Source.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Apiaries(), 3)
}

func TestCreateMemoryBackendFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.yaml")
	doc := "apiaries:\n  - {id: 7, name: Test, location: Here, hive_count: 1, total_honey: 10, avg_per_hive: 10, status: dormant}\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	res, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: MemoryBackend, DatasetFile: path})
	require.NoError(t, err)
	ds, err := res.Source.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Apiaries(), 1)
	assert.Equal(t, "Test", ds.Apiaries()[0].Name)
}

func TestCreateSQLiteBackend(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "pasika.db")
	res, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: SQLiteBackend, SQLiteDBPath: dbPath})
	require.NoError(t, err)
	require.NotNil(t, res.Cleanup)
	t.Cleanup(func() { _ = res.Cleanup() })

	ds, err := res.Source.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Hives(), 5)
	assert.Len(t, ds.Tasks(), 5)
}

func TestCreateBackendRejectsInvalidType(t *testing.T) {
	_, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: "sheets"})
	assert.Error(t, err)
}
