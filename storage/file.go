package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mosaicdev/mosaic-registry/interfaces"
)

// FileStore keeps the deployment record in a single JSON file on the local
// file system. Every Save replaces the file wholesale.
type FileStore struct {
	path        string
	log         *slog.Logger
	locationURI string
}

// NewFileStore creates a store writing to path. A path naming an existing
// directory, or ending in a separator, gets DeploymentFileName appended.
// Nothing is created on disk until the first Save.
func NewFileStore(path string, log *slog.Logger) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("empty deployment file path")
	}
	if info, err := os.Stat(path); (err == nil && info.IsDir()) || os.IsPathSeparator(path[len(path)-1]) {
		path = filepath.Join(path, DeploymentFileName)
	}

	return &FileStore{
		path:        path,
		log:         log,
		locationURI: "file://" + path,
	}, nil
}

// Path returns the file the record is written to.
func (s *FileStore) Path() string {
	return s.path
}

// Save writes the record to a temporary file next to the target and renames
// it into place, so readers never observe a partially written record.
func (s *FileStore) Save(ctx context.Context, record *interfaces.DeploymentRecord) error {
	data, err := encodeRecord(record)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	s.log.Debug("Stored deployment record in file",
		slog.String("path", s.path),
		slog.String("address", record.Address.Hex()))
	return nil
}

// Load reads the record back. Returns ErrRecordNotFound if the file doesn't exist.
func (s *FileStore) Load(ctx context.Context) (*interfaces.DeploymentRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, interfaces.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return decodeRecord(data)
}

// Available checks that the target directory exists or can be created under
// its nearest existing ancestor.
func (s *FileStore) Available(ctx context.Context) bool {
	dir := filepath.Dir(s.path)
	for {
		info, err := os.Stat(dir)
		switch {
		case err == nil && info.IsDir():
			return true
		case err == nil:
			s.log.Debug("File store unavailable", "path", dir, "err", "not a directory")
			return false
		case !errors.Is(err, fs.ErrNotExist):
			s.log.Debug("File store unavailable", "err", err)
			return false
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

// Name returns a unique identifier for this store.
func (s *FileStore) Name() string {
	return fmt.Sprintf("file-%s", filepath.Base(s.path))
}

// LocationURI returns the URI that identifies this store.
func (s *FileStore) LocationURI() string {
	return s.locationURI
}
