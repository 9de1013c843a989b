// Package storage persists uploaded place images on local disk.
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxImageSize caps uploads at 2 MiB.
const MaxImageSize = 2 << 20

var (
	ErrTooLarge = errors.New("image exceeds the 2MB size limit")
	ErrNotImage = errors.New("uploaded file is not an image")
)

// Store persists binary blobs and serves back relative paths.
type Store interface {
	Save(r io.Reader, originalName string) (string, error)
	Remove(relPath string) error
	URL(relPath string) string
}

// LocalStore writes images beneath a root directory. File names are derived
// from the content hash, so re-uploading identical bytes is idempotent.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, baseURL string) *LocalStore {
	return &LocalStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Save streams the upload to disk, enforcing the size cap and rejecting
// non-image content. Returns the relative path for storage in the database.
func (s *LocalStore) Save(r io.Reader, originalName string) (string, error) {
	// One extra byte past the cap detects oversize without buffering everything.
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxImageSize {
		return "", ErrTooLarge
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return "", ErrNotImage
	}

	sum := sha256.Sum256(data)
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}
	name := hex.EncodeToString(sum[:16]) + ext

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.root, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return name, nil
}

// Remove deletes a previously saved image. A missing file is not an error.
func (s *LocalStore) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.Base(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// URL resolves a stored relative path to the public URL clients can fetch.
func (s *LocalStore) URL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return s.baseURL + "/storage/places/" + filepath.Base(relPath)
}
