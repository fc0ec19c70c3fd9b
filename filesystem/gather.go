package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// GatherFiles collects the absolute paths of all files below roots whose
// extension is one of extensions. Roots may be files or directories;
// directories are walked recursively. Files given directly are taken as they
// are, whatever their extension. The result is sorted and free of duplicates.
func GatherFiles(roots []string, extensions []string) ([]string, error) {
	hasExtension := func(name string) bool {
		ext := strings.ToLower(filepath.Ext(name))
		for _, e := range extensions {
			if e == ext {
				return true
			}
		}
		return false
	}

	seen := make(map[string]bool)
	var paths []string

	appendAbsPath := func(path string) error {
		path, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("absolute path: %w", err)
		}
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
		return nil
	}

	for _, root := range roots {
		fi, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		if fi.Mode().IsRegular() {
			if err := appendAbsPath(root); err != nil {
				return nil, err
			}
		} else if fi.Mode().IsDir() {
			err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() || !d.Type().IsRegular() || !hasExtension(d.Name()) {
					return nil
				}
				return appendAbsPath(path)
			})
			if err != nil {
				return nil, fmt.Errorf("walk '%s': %w", root, err)
			}
		} else {
			return nil, fmt.Errorf("path '%s' neither directory nor file", root)
		}
	}

	sort.Strings(paths)

	return paths, nil
}
