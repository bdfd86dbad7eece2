package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/sqlercore/sqler/errs"
	"github.com/sqlercore/sqler/model"
)

// Tables reads the cached table list for id. A missing cache file returns
// an empty list rather than an error.
func (c *Catalog) Tables(id uuid.UUID) ([]model.TableInfo, error) {
	var tables []model.TableInfo
	if err := c.readCacheFile(id, tablesFileName, &tables); err != nil {
		return nil, err
	}

	return tables, nil
}

// WriteTables overwrites the cached table list for id.
func (c *Catalog) WriteTables(id uuid.UUID, tables []model.TableInfo) error {
	return c.writeCacheFile(id, tablesFileName, tables)
}

// Queries reads the saved queries for id. A missing cache file returns an
// empty list rather than an error.
func (c *Catalog) Queries(id uuid.UUID) ([]model.SavedQuery, error) {
	var queries []model.SavedQuery
	if err := c.readCacheFile(id, queriesFileName, &queries); err != nil {
		return nil, err
	}

	return queries, nil
}

// WriteQueries overwrites the saved queries for id.
func (c *Catalog) WriteQueries(id uuid.UUID, queries []model.SavedQuery) error {
	return c.writeCacheFile(id, queriesFileName, queries)
}

func (c *Catalog) readCacheFile(id uuid.UUID, fileName string, dst any) error {
	path := filepath.Join(c.sourceCacheDir(id.String()), fileName)

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return errs.NewIoError("reading cache file failed", err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return errs.NewSerializationError("parsing cache file failed", err)
	}

	return nil
}

func (c *Catalog) writeCacheFile(id uuid.UUID, fileName string, value any) error {
	dir := c.sourceCacheDir(id.String())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errs.NewDirectoryNotFoundError("creating source cache directory failed", err)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return errs.NewSerializationError("encoding cache file failed", err)
	}

	return atomicWrite(filepath.Join(dir, fileName), data, 0o600)
}
