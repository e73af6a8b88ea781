// Package storage implements the attachment file store on top of an afero
// filesystem, so tests run against an in-memory fs and production against
// a mounted volume.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/apperrors"
	"github.com/orbitcommerce/collab_backend/internal/core/ports/gateways"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// FileStore persists attachment bytes under an opaque, generated path.
type FileStore struct {
	fs         afero.Fs
	publicBase string
}

// NewFileStore creates a FileStore rooted at dir on the OS filesystem.
func NewFileStore(dir, publicBase string) *FileStore {
	base := afero.NewBasePathFs(afero.NewOsFs(), dir)
	return &FileStore{fs: base, publicBase: strings.TrimRight(publicBase, "/")}
}

// NewMemFileStore creates a FileStore backed by an in-memory filesystem.
func NewMemFileStore(publicBase string) *FileStore {
	return &FileStore{fs: afero.NewMemMapFs(), publicBase: strings.TrimRight(publicBase, "/")}
}

// Ensure FileStore implements the gateways.FileStore interface
var _ gateways.FileStore = (*FileStore)(nil)

// Save writes the bytes under a generated path and returns it. The original
// filename only contributes its extension; the path is otherwise opaque.
func (s *FileStore) Save(_ context.Context, data []byte, filename, _ string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	dir := time.Now().UTC().Format("2006/01/02")
	storagePath := path.Join(dir, uuid.NewString()+ext)

	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, storagePath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return storagePath, nil
}

// Get reads the bytes stored under path.
func (s *FileStore) Get(_ context.Context, storagePath string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, storagePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("stored file %s: %w", storagePath, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Delete removes the stored file. A missing file is a no-op.
func (s *FileStore) Delete(_ context.Context, storagePath string) error {
	if err := s.fs.Remove(storagePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// PublicURL maps a storage path to its download URL.
func (s *FileStore) PublicURL(storagePath string) string {
	return s.publicBase + "/" + storagePath
}
