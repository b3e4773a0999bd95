// Package fsutil provides file system utility functions.
package fsutil

import (
	"os"
	"strings"

	"github.com/spf13/afero"
)

// Pattern selects files by name. Every non-empty condition must hold, and a
// Pattern with no conditions matches nothing.
type Pattern struct {
	StartsWith  string
	EndsWith    string
	Contains    string
	NotContains string
}

// Match reports whether a file name satisfies the Pattern
func (p Pattern) Match(name string) bool {
	matched := false
	if p.StartsWith != "" {
		matched = true
		if !strings.HasPrefix(name, p.StartsWith) {
			return false
		}
	}
	if p.EndsWith != "" {
		matched = true
		if !strings.HasSuffix(name, p.EndsWith) {
			return false
		}
	}
	if p.Contains != "" {
		matched = true
		if !strings.Contains(name, p.Contains) {
			return false
		}
	}
	if p.NotContains != "" {
		matched = true
		if strings.Contains(name, p.NotContains) {
			return false
		}
	}
	return matched
}

// FindMatchingFiles recursively searches rootPath for files whose base name
// matches pattern. Paths are returned in lexical walk order.
func FindMatchingFiles(fs afero.Fs, rootPath string, pattern Pattern) ([]string, error) {
	var files []string
	err := afero.Walk(fs, rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && pattern.Match(info.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// FindFilesByExtension recursively searches rootPath for all files ending with extension
func FindFilesByExtension(fs afero.Fs, rootPath string, extension string) ([]string, error) {
	if extension == "" {
		// an empty suffix matches every file
		return FindMatchingFiles(fs, rootPath, Pattern{NotContains: string(os.PathSeparator)})
	}
	return FindMatchingFiles(fs, rootPath, Pattern{EndsWith: extension})
}
