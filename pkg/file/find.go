package file

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListWithExt returns the paths of all regular files in dir whose name
// ends with ext (case-insensitive), sorted by name.
func ListWithExt(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
