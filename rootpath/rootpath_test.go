package rootpath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newProject lays out marker + pages under a temp dir and chdirs into
// the nested working directory.
func newProject(t *testing.T, marker string) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, marker), []byte{}, 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pages"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pages", "home.html"), []byte("<html/>"), 0o600))

	nested := filepath.Join(root, "internal", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)

	return root
}

func TestRootWalksUpToMarker(t *testing.T) {
	root := newProject(t, ".projectroot")

	r := NewResolver(".projectroot", "")
	got, err := r.Root()
	require.NoError(t, err)

	// temp dirs may traverse symlinks, compare resolved paths
	wantReal, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	gotReal, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, wantReal, gotReal)
}

func TestRootIsCached(t *testing.T) {
	newProject(t, ".projectroot")

	r := NewResolver(".projectroot", "")
	first, err := r.Root()
	require.NoError(t, err)

	// moving elsewhere must not change the cached result
	t.Chdir(t.TempDir())
	second, err := r.Root()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRootNotFound(t *testing.T) {
	t.Chdir(t.TempDir())

	r := NewResolver("definitely-not-a-marker-file", "")
	_, err := r.Root()
	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestJoin(t *testing.T) {
	newProject(t, ".projectroot")

	r := NewResolver(".projectroot", "")
	root, err := r.Root()
	require.NoError(t, err)

	p, err := r.Join("pages", "home.html")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "pages", "home.html"), p)
}

func TestPageResolvesExistingFile(t *testing.T) {
	newProject(t, ".projectroot")

	r := NewResolver(".projectroot", "pages")
	p, err := r.Page("home.html")
	require.NoError(t, err)
	assert.FileExists(t, p)
}

func TestPageRejectsTraversalAndMissing(t *testing.T) {
	newProject(t, ".projectroot")
	r := NewResolver(".projectroot", "pages")

	for _, name := range []string{"", "  ", "../secret", "sub/page.html", ".hidden"} {
		_, err := r.Page(name)
		assert.ErrorIs(t, err, ErrInvalidPage, "name %q", name)
	}

	_, err := r.Page("nope.html")
	assert.ErrorIs(t, err, ErrPageNotFound)
}
