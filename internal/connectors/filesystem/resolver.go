package filesystem

import (
	"path/filepath"
	"strings"
)

// ResolvePath converts a file:// URI or bare path to a local path.
// Relative paths are resolved against baseDir, normally the directory of
// the report definition that names them.
func ResolvePath(uri, baseDir string) string {
	p := strings.TrimPrefix(uri, "file://")
	if p == "" || filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	return filepath.Join(baseDir, p)
}
