package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlercore/sqler/catalog"
	"github.com/sqlercore/sqler/common"
	"github.com/sqlercore/sqler/model"
)

func TestLoad_EmptyDirectoryStartsWithNoSources(t *testing.T) {
	root := t.TempDir()

	c, err := catalog.Load(root, common.NoneLogger{})
	require.NoError(t, err)
	assert.Empty(t, c.Sources())

	assert.DirExists(t, filepath.Join(root, "cache"))
	assert.DirExists(t, filepath.Join(root, "logs"))
}

func TestPersistSources_RoundTrip(t *testing.T) {
	root := t.TempDir()

	c, err := catalog.Load(root, common.NoneLogger{})
	require.NoError(t, err)

	source, err := model.NewDataSource("local", model.SQLiteOptions{FilePath: "/tmp/x.db"})
	require.NoError(t, err)

	c.SourcesMut(func(sources *[]model.DataSource) {
		*sources = append(*sources, *source)
	})

	require.NoError(t, c.PersistSources())

	reopened, err := catalog.Load(root, common.NoneLogger{})
	require.NoError(t, err)

	got := reopened.Sources()
	require.Len(t, got, 1)
	assert.Equal(t, *source, got[0])
}

func TestLoad_CorruptedSourcesFileYieldsEmptyCatalog(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(root, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sources.db"), []byte("not valid ciphertext"), 0o600))

	c, err := catalog.Load(root, common.NoneLogger{})
	require.NoError(t, err)
	assert.Empty(t, c.Sources())
}

func TestTablesAndQueries_RoundTrip(t *testing.T) {
	root := t.TempDir()

	c, err := catalog.Load(root, common.NoneLogger{})
	require.NoError(t, err)

	source, err := model.NewDataSource("local", model.SQLiteOptions{FilePath: "/tmp/x.db"})
	require.NoError(t, err)

	rowCount := int64(5)
	tables := []model.TableInfo{{Name: "users", RowCount: &rowCount}}
	require.NoError(t, c.WriteTables(source.ID, tables))

	gotTables, err := c.Tables(source.ID)
	require.NoError(t, err)
	assert.Equal(t, tables, gotTables)

	queries := []model.SavedQuery{{Name: "top users", Body: "SELECT * FROM users"}}
	require.NoError(t, c.WriteQueries(source.ID, queries))

	gotQueries, err := c.Queries(source.ID)
	require.NoError(t, err)
	assert.Equal(t, queries, gotQueries)
}

func TestTables_MissingCacheReturnsEmptyList(t *testing.T) {
	root := t.TempDir()

	c, err := catalog.Load(root, common.NoneLogger{})
	require.NoError(t, err)

	source, err := model.NewDataSource("local", model.SQLiteOptions{FilePath: "/tmp/x.db"})
	require.NoError(t, err)

	tables, err := c.Tables(source.ID)
	require.NoError(t, err)
	assert.Empty(t, tables)
}
