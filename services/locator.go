package services

import (
	"os"
	"path/filepath"
	"strings"

	"ytconv/types"
)

// OutputLocator recovers files the extraction tool wrote into the shared
// output directory. The tool does not report its output path, but filenames
// follow {sourceID}_{token}.{ext} via the directive's output template.
type OutputLocator struct {
	Dir string
}

// Locate returns the first file matching {sourceID}_{token}.* with the
// expected extension (any extension when ext is empty). With correct naming
// at most one file matches; if several do, the match follows the directory
// iteration order, which is not stable across platforms.
func (l OutputLocator) Locate(sourceID string, format types.Format, ext string) (string, bool) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return "", false
	}

	prefix := sourceID + "_" + string(format) + "."
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if ext != "" && !strings.EqualFold(filepath.Ext(name), ext) {
			continue
		}
		return filepath.Join(l.Dir, name), true
	}

	return "", false
}
