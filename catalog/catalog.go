// Package catalog holds the authenticated-encrypted list of data-source
// definitions plus the per-source plaintext cache files, guarded by a
// single readers-writer lock, grounded on the uschtwill-beads
// credential-encryption pattern generalized from a per-peer password field
// to a whole-catalog snapshot, and on the atomic-rename write discipline in
// that same repo's autoflush.go.
package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/sqlercore/sqler/common"
	"github.com/sqlercore/sqler/errs"
	"github.com/sqlercore/sqler/model"
)

const (
	sourcesFileName = "sources.db"
	cacheDirName    = "cache"
	logsDirName     = "logs"
	tablesFileName  = "tables.json"
	queriesFileName = "queries.json"
)

// Catalog is the process-singleton in-memory view of the encrypted
// data-source list. All access is mediated by mu: readers proceed in
// parallel, writers are exclusive, and a write is never observed
// half-complete.
type Catalog struct {
	mu         sync.RWMutex
	sources    []model.DataSource
	root       string
	sourcesDB  string
	cacheDir   string
	logger     common.Logger
}

// DefaultRoot returns the default `.sqler` directory under the user's home.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errs.NewIoError("resolving user home directory failed", err)
	}

	return filepath.Join(home, ".sqler"), nil
}

// Load opens the catalog rooted at root (call DefaultRoot() for the
// standard location), creating the directory tree if missing. A corrupted
// or unreadable sources file yields an empty catalog rather than aborting:
// startup must never fail because of cache state.
func Load(root string, logger common.Logger) (*Catalog, error) {
	if logger == nil {
		logger = common.NoneLogger{}
	}

	c := &Catalog{
		root:      root,
		sourcesDB: filepath.Join(root, sourcesFileName),
		cacheDir:  filepath.Join(root, cacheDirName),
		logger:    logger,
	}

	if err := os.MkdirAll(c.cacheDir, 0o700); err != nil {
		return nil, errs.NewDirectoryNotFoundError("creating cache directory failed", err)
	}

	if err := os.MkdirAll(filepath.Join(root, logsDirName), 0o700); err != nil {
		return nil, errs.NewDirectoryNotFoundError("creating logs directory failed", err)
	}

	sources, err := c.readSources()
	if err != nil {
		logger.Warn("catalog: starting with an empty list, sources file could not be read")
		sources = nil
	}

	c.sources = sources

	return c, nil
}

func (c *Catalog) readSources() ([]model.DataSource, error) {
	raw, err := os.ReadFile(c.sourcesDB)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, errs.NewIoError("reading sources file failed", err)
	}

	plaintext, err := decrypt(raw)
	if err != nil {
		return nil, err
	}

	var sources []model.DataSource
	if err := json.Unmarshal(plaintext, &sources); err != nil {
		return nil, errs.NewSerializationError("parsing sources file failed", err)
	}

	return sources, nil
}

// Sources returns a snapshot copy of the current data-source list, safe to
// range over without holding any lock.
func (c *Catalog) Sources() []model.DataSource {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.DataSource, len(c.sources))
	copy(out, c.sources)

	return out
}

// SourcesMut runs fn with exclusive, mutable access to the in-memory
// source list; mutations are visible to subsequent Sources()/SourcesMut()
// calls but are not persisted to disk until PersistSources is called.
func (c *Catalog) SourcesMut(fn func(sources *[]model.DataSource)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fn(&c.sources)
}

// PersistSources serializes, encrypts, and atomically replaces the sources
// file with the current in-memory snapshot.
func (c *Catalog) PersistSources() error {
	c.mu.RLock()
	snapshot := make([]model.DataSource, len(c.sources))
	copy(snapshot, c.sources)
	c.mu.RUnlock()

	plaintext, err := json.Marshal(snapshot)
	if err != nil {
		return errs.NewSerializationError("encoding sources failed", err)
	}

	ciphertext, err := encrypt(plaintext)
	if err != nil {
		return err
	}

	return atomicWrite(c.sourcesDB, ciphertext, 0o600)
}

func atomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return errs.NewIoError("creating temp file failed", err)
	}

	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errs.NewIoError("writing temp file failed", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errs.NewIoError("closing temp file failed", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return errs.NewIoError("setting file permissions failed", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errs.NewIoError("renaming temp file failed", err)
	}

	return nil
}

func (c *Catalog) sourceCacheDir(id string) string {
	return filepath.Join(c.cacheDir, id)
}
