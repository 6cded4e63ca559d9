package images

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store resolves and removes product image assets under a fixed media root.
// Image paths on product rows are stored relative to the root, e.g.
// "products/pen.png".
type Store struct {
	root string
}

// NewStore builds an image store rooted at the provided directory.
func NewStore(root string) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("media root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving media root: %w", err)
	}
	return &Store{root: abs}, nil
}

// Resolve maps a stored relative image path to an absolute filesystem path.
// Paths escaping the media root are rejected.
func (s *Store) Resolve(relPath string) (string, error) {
	cleaned := filepath.Clean(strings.TrimSpace(relPath))
	if cleaned == "." || cleaned == "" {
		return "", fmt.Errorf("image path is empty")
	}
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("image path %q escapes media root", relPath)
	}
	return filepath.Join(s.root, cleaned), nil
}

// Remove deletes the stored image file. A missing file is not an error: the
// caller uses this to clean up replaced images best-effort.
func (s *Store) Remove(relPath string) error {
	full, err := s.Resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing image %q: %w", relPath, err)
	}
	return nil
}

// Exists reports whether the stored image file is present on disk.
func (s *Store) Exists(relPath string) bool {
	full, err := s.Resolve(relPath)
	if err != nil {
		return false
	}
	_, err = os.Stat(full)
	return err == nil
}
