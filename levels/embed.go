package levels

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// read returns the level file, preferring ./levels on disk over the
// embedded copy.
func read(name string) ([]byte, error) {
	file := fileName(name)
	if data, err := os.ReadFile(filepath.Join("levels", file)); err == nil {
		return data, nil
	}
	return fs.ReadFile(LevelsFS, file)
}

// DiskDir returns ./levels when it exists on disk, for the watcher.
func DiskDir() (string, bool) {
	info, err := os.Stat("levels")
	if err != nil || !info.IsDir() {
		return "", false
	}
	return "levels", true
}

// Names lists the embedded levels without their extension.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

func fileName(name string) string {
	s := filepath.Base(filepath.ToSlash(name))
	if !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s
}
