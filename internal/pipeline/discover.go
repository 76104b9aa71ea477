package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover walks rootDir and returns the absolute paths of every file whose
// lowercased extension (without the dot) is in extensions, sorted
// lexicographically for a deterministic processing order.
//
// The walk uses an explicit stack of pending directories. Symlinked
// directories are followed; each directory is visited at most once by its
// resolved real path, so symlink cycles terminate. Discover never writes.
func Discover(rootDir string, extensions []string) ([]string, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDirectoryNotFound, rootDir, err)
	}
	st, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDirectoryNotFound, rootDir, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, rootDir)
	}

	allowed := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		allowed[strings.TrimPrefix(strings.ToLower(e), ".")] = true
	}

	var files []string
	visited := make(map[string]bool)
	pending := []string{root}

	for len(pending) > 0 {
		dir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		resolved, err := filepath.EvalSymlinks(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", dir, err)
		}
		if visited[resolved] {
			continue
		}
		visited[resolved] = true

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", dir, err)
		}

		for _, d := range entries {
			path := filepath.Join(dir, d.Name())
			isDir := d.IsDir()
			if d.Type()&fs.ModeSymlink != 0 {
				// Broken links fall through as files; they fail per-file later.
				if target, err := os.Stat(path); err == nil {
					isDir = target.IsDir()
				}
			}
			if isDir {
				pending = append(pending, path)
				continue
			}
			if allowed[extOf(d.Name())] {
				files = append(files, path)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// extOf returns the lowercased extension of name without the leading dot.
func extOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
