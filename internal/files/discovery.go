// Package files provides file discovery over raw source directories.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Raw data extensions recognized by discovery.
var rawExtensions = map[string]bool{
	".dat":  true,
	".txt":  true,
	".xlsx": true,
	".xls":  true,
}

// FileInfo represents information about a discovered raw file.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery lists raw data files relative to a base path.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindRawFiles finds raw data files (.dat, .txt, .xlsx, .xls) in the
// given directory, sorted by name. dir may be absolute or relative to
// the base path.
func (d *Discovery) FindRawFiles(dir string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !rawExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// CountRawFiles returns the number of raw data files in dir.
func (d *Discovery) CountRawFiles(dir string) (int, error) {
	files, err := d.FindRawFiles(dir)
	if err != nil {
		return 0, err
	}
	return len(files), nil
}
