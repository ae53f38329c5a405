package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DirCatalog lists installed themes by scanning theme directories.
// each subdirectory is a theme; missing directories are skipped.
type DirCatalog struct {
	dirs []string
}

// NewDirCatalog creates a catalog over the given directories.
// with no directories it falls back to DefaultThemeDirs.
func NewDirCatalog(dirs ...string) *DirCatalog {
	if len(dirs) == 0 {
		dirs = DefaultThemeDirs()
	}
	return &DirCatalog{dirs: dirs}
}

// DefaultThemeDirs returns the standard locations for user and system themes.
func DefaultThemeDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return []string{"/usr/share/themes"}
	}
	return []string{filepath.Join(home, ".themes"), "/usr/share/themes"}
}

// ListThemes returns the sorted, deduplicated set of installed theme names.
// an empty result is valid, it just means no theme pairs can be discovered.
func (c *DirCatalog) ListThemes() ([]string, error) {
	seen := map[string]bool{}
	for _, dir := range c.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read theme dir %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				seen[e.Name()] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Dirs returns the directories this catalog scans.
func (c *DirCatalog) Dirs() []string { return c.dirs }
