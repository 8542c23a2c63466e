// Package rootpath locates the project root directory and resolves
// page files beneath it. Discovery walks parent directories upward
// from the working directory until a marker file is found; the result
// is cached for the lifetime of the process.
package rootpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	// DefaultMarker is the file name that marks the project root.
	DefaultMarker = "go.mod"

	// DefaultPagesDir is the pages directory relative to the root.
	DefaultPagesDir = "pages"
)

var (
	// ErrRootNotFound is returned when no parent directory up to the
	// filesystem root contains the marker file.
	ErrRootNotFound = errors.New("project root not found")

	// ErrInvalidPage is returned when a page name is empty or tries to
	// escape the pages directory.
	ErrInvalidPage = errors.New("invalid page name")

	// ErrPageNotFound is returned when the resolved page file does not
	// exist.
	ErrPageNotFound = errors.New("page not found")
)

// Resolver discovers the project root once and answers path queries
// against it. The zero value is not usable; use NewResolver.
type Resolver struct {
	marker string
	pages  string

	once sync.Once
	root string
	err  error
}

// NewResolver creates a resolver using the given marker file name and
// pages directory. Empty arguments fall back to the defaults.
func NewResolver(marker, pagesDir string) *Resolver {
	if marker == "" {
		marker = DefaultMarker
	}
	if pagesDir == "" {
		pagesDir = DefaultPagesDir
	}
	return &Resolver{marker: marker, pages: pagesDir}
}

// Root returns the absolute project root directory. Discovery runs at
// most once per resolver; later calls return the cached result.
func (r *Resolver) Root() (string, error) {
	r.once.Do(r.discover)
	return r.root, r.err
}

func (r *Resolver) discover() {
	dir, err := os.Getwd()
	if err != nil {
		r.err = fmt.Errorf("resolve working directory: %w", err)
		return
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, r.marker)); err == nil {
			r.root = dir
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			r.err = fmt.Errorf("%w: no %s above %s", ErrRootNotFound, r.marker, dir)
			return
		}
		dir = parent
	}
}

// Join resolves parts relative to the project root.
func (r *Resolver) Join(parts ...string) (string, error) {
	root, err := r.Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{root}, parts...)...), nil
}

// Page resolves the named page file under the pages directory. The
// name must be a bare file name; separators and parent references are
// rejected. The file must exist.
func (r *Resolver) Page(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPage, name)
	}

	path, err := r.Join(r.pages, name)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrPageNotFound, name)
	}

	return path, nil
}

// defaultResolver backs the package-level helpers, giving the usual
// one-discovery-per-process behavior.
var defaultResolver = NewResolver(DefaultMarker, DefaultPagesDir)

// Root returns the process-wide project root.
func Root() (string, error) {
	return defaultResolver.Root()
}

// Page resolves a page file against the process-wide root.
func Page(name string) (string, error) {
	return defaultResolver.Page(name)
}
