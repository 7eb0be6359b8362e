// Package storage manages the attachment root: the single directory where
// uploaded images live and from which they are served at /uploads.
package storage

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicPrefix is the URL prefix the attachment root is served under.
const PublicPrefix = "/uploads"

// Store persists attachment files under a single root directory.
type Store struct {
	root string
}

// New creates the root directory if needed and returns a Store over it.
func New(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", root, err)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute path of the attachment root.
func (s *Store) Root() string {
	return s.root
}

// Save writes data under a collision-resistant random name that keeps the
// given extension (".jpg" etc.) and returns the public locator for it.
func (s *Store) Save(data []byte, ext string) (string, error) {
	u := uuid.New()
	name := hex.EncodeToString(u[:]) + strings.ToLower(ext)
	if err := os.WriteFile(filepath.Join(s.root, name), data, 0o640); err != nil {
		return "", fmt.Errorf("failed to store %s: %w", name, err)
	}
	return PublicPrefix + "/" + name, nil
}

// Resolve maps a public locator back to an on-disk path. Locators that do
// not resolve strictly beneath the root are refused.
func (s *Store) Resolve(urlPath string) (string, error) {
	rel := strings.TrimPrefix(urlPath, PublicPrefix+"/")
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if !strings.HasPrefix(full, s.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("locator %q escapes the attachment root", urlPath)
	}
	return full, nil
}

// Remove deletes the file behind a public locator. A missing file is not an
// error; an escaping locator is refused and nothing is touched.
func (s *Store) Remove(urlPath string) error {
	full, err := s.Resolve(urlPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
