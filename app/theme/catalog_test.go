package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirCatalog_ListThemes(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()

	for _, name := range []string{"Adwaita", "Adwaita-dark"} {
		require.NoError(t, os.Mkdir(filepath.Join(dir1, name), 0o755))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir2, "Greybird"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir2, "Adwaita"), 0o755)) // duplicate across dirs
	require.NoError(t, os.WriteFile(filepath.Join(dir1, "not-a-theme.txt"), []byte("x"), 0o600))

	catalog := NewDirCatalog(dir1, dir2)
	names, err := catalog.ListThemes()
	require.NoError(t, err)
	assert.Equal(t, []string{"Adwaita", "Adwaita-dark", "Greybird"}, names)
}

func TestDirCatalog_MissingDirSkipped(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Arc"), 0o755))

	catalog := NewDirCatalog(dir, filepath.Join(dir, "does-not-exist"))
	names, err := catalog.ListThemes()
	require.NoError(t, err)
	assert.Equal(t, []string{"Arc"}, names)
}

func TestDirCatalog_Empty(t *testing.T) {
	catalog := NewDirCatalog(t.TempDir())
	names, err := catalog.ListThemes()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDirCatalog_Defaults(t *testing.T) {
	catalog := NewDirCatalog()
	assert.Equal(t, DefaultThemeDirs(), catalog.Dirs())
	assert.NotEmpty(t, catalog.Dirs())
}
