package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/hbnb/internal/codec"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// JSONFile persists durable records as one JSON object in a single file.
type JSONFile struct {
	path string
}

// NewJSONFile returns a persister for the file at path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the backing file path.
func (f *JSONFile) Path() string { return f.path }

// Load reads and splits the backing file. A missing file yields
// ErrStoreNotFound; content that is not a JSON object wraps ErrCorruptStore.
func (f *JSONFile) Load() ([]types.StoredRecord, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, types.ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	return codec.DecodeDocument(data)
}

// Store rewrites the backing file with records.
func (f *JSONFile) Store(records []types.StoredRecord) error {
	data, err := codec.EncodeDocument(records)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", f.path, err)
	}
	return writeFileAtomic(f.path, data)
}

// rename is swapped in tests to fail the final step of a write.
var rename = os.Rename

// writeFileAtomic writes data to path using the temp-file, fsync, rename
// pattern. On failure the previous file at path is left untouched.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
