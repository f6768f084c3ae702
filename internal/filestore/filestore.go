package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Stored describes an uploaded file.
type Stored struct {
	Path string `json:"path"`
	Ext  string `json:"ext"`
	Name string `json:"name"`
}

// Store persists uploaded payment attachments. File writes happen outside the
// database transaction, so Rollback is the compensating action when the
// surrounding transaction aborts.
type Store interface {
	Save(originalName string, r io.Reader) (*Stored, error)
	Rollback(path string) error
}

// DiskStore writes files under a base directory with generated names.
type DiskStore struct {
	BaseDir string
}

func NewDiskStore(baseDir string) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create base dir: %w", err)
	}
	return &DiskStore{BaseDir: baseDir}, nil
}

func (s *DiskStore) Save(originalName string, r io.Reader) (*Stored, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext
	path := filepath.Join(s.BaseDir, name)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("filestore: create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("filestore: write %s: %w", path, err)
	}
	return &Stored{Path: path, Ext: ext, Name: name}, nil
}

// Rollback removes a previously saved file. Missing files are not an error so
// the compensation stays idempotent.
func (s *DiskStore) Rollback(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("filestore: rollback %s: %w", path, err)
	}
	return nil
}
