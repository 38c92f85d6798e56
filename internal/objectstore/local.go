// Package objectstore is a thin wrapper over a blob location for contract
// documents. The local-disk implementation mirrors the interface a cloud
// bucket adapter would satisfy; swapping backends is intentionally trivial.
package objectstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrObjectNotFound = errors.New("object not found")

type Store interface {
	// Save writes the document and returns its public path, e.g.
	// /contracts/<id>.pdf.
	Save(filename string, r io.Reader) (string, error)
	// Open resolves a public path back to a readable object.
	Open(publicPath string) (io.ReadCloser, error)
}

type LocalStore struct {
	root string // directory holding contract files
}

func NewLocalStore(mediaDir string) (*LocalStore, error) {
	root := filepath.Join(mediaDir, "contracts")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Save(filename string, r io.Reader) (string, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".pdf"
	}
	name := uuid.NewString() + ext
	f, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return "/contracts/" + name, nil
}

func (s *LocalStore) Open(publicPath string) (io.ReadCloser, error) {
	rel := strings.TrimPrefix(publicPath, "/contracts/")
	// Block traversal out of the contracts root
	if rel == "" || strings.Contains(rel, "..") || strings.Contains(rel, "\x00") {
		return nil, ErrObjectNotFound
	}
	clean := filepath.Clean(rel)
	if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return nil, ErrObjectNotFound
	}
	f, err := os.Open(filepath.Join(s.root, clean))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("open contract: %w", err)
	}
	return f, nil
}
