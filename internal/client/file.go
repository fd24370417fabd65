package client

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hotolab/exago-app/internal/results"
)

// FileLoader reads results documents from disk. When rooted at a
// directory, repository "github.com/org/repo" maps to
// <dir>/github.com/org/repo.json; when rooted at a file, that file
// answers for every repository.
type FileLoader struct {
	root  string
	isDir bool
}

// NewFileLoader returns a loader rooted at path.
func NewFileLoader(path string) (*FileLoader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("results path %q: %w", path, err)
	}
	return &FileLoader{root: filepath.Clean(path), isDir: info.IsDir()}, nil
}

// Load reads the document for repository.
func (f *FileLoader) Load(ctx context.Context, repository string) (*results.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := f.path(repository)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path) //nolint:gosec // path is confined to root
	if err != nil {
		return nil, err
	}
	defer file.Close() //nolint:errcheck // read-only

	doc, err := results.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Refresh re-reads the document; files have no analysis to rerun.
func (f *FileLoader) Refresh(ctx context.Context, repository string) (*results.Document, error) {
	return f.Load(ctx, repository)
}

// IsCached reports whether a document exists for repository.
func (f *FileLoader) IsCached(_ context.Context, repository string) (bool, error) {
	path, err := f.path(repository)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (f *FileLoader) path(repository string) (string, error) {
	if !f.isDir {
		return f.root, nil
	}
	rel := strings.Trim(repository, "/")
	if rel == "" {
		return "", fmt.Errorf("empty repository name")
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." || seg == "." || seg == "" {
			return "", fmt.Errorf("invalid repository name %q", repository)
		}
	}
	return filepath.Join(f.root, filepath.FromSlash(rel)+".json"), nil
}
