package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/habittracker/structlint/internal/cli/config"
	"github.com/habittracker/structlint/pkg/syntax"
)

// discoverTrees returns the tree documents at path, which may be a single
// file or a directory searched recursively. Hidden directories and project
// files are skipped.
func discoverTrees(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !info.IsDir() {
		if !syntax.IsTreeDocument(path) {
			return nil, fmt.Errorf("%s: %w", path, syntax.ErrUnsupportedFormat)
		}
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if syntax.IsTreeDocument(p) && !config.IsConfigFileName(d.Name()) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover tree documents: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// displayPath returns path relative to base when possible.
func displayPath(base, path string) string {
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
