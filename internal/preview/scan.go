package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileInfo describes a statement file waiting in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// statementExts are the importable statement file extensions.
var statementExts = map[string]bool{
	".csv": true,
	".ofx": true,
	".qfx": true,
}

// Scan returns statement files in dir. A missing directory scans as
// empty rather than erroring.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !statementExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}
