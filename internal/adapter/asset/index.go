// Package asset downloads product media and spec sheets, reusing files
// already present under the public directory.
package asset

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

// Index maps lowercased filenames to absolute paths of files on disk.
// It lives for one run and is never persisted.
type Index struct {
	mu    sync.RWMutex
	files map[string]string
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{files: make(map[string]string)}
}

// Scan walks dirs recursively and registers every regular file. Dot-files
// and dot-directories are skipped, missing directories are ignored. The
// first path found for a name wins.
func (i *Index) Scan(dirs []string) error {
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return err
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") && path != dir {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			i.addIfAbsent(name, abs)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the path registered for filename.
func (i *Index) Lookup(filename string) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	p, ok := i.files[strings.ToLower(filename)]
	return p, ok
}

// Add registers filename at path, replacing any previous entry.
func (i *Index) Add(filename, path string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.files[strings.ToLower(filename)] = path
}

// Len returns the number of indexed files.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.files)
}

func (i *Index) addIfAbsent(filename, path string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	key := strings.ToLower(filename)
	if _, ok := i.files[key]; !ok {
		i.files[key] = path
	}
}
