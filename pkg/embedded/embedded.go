// Package embedded exposes the data files compiled into the binary.
//
// Paths starting with "embedded:" resolve against the built-in files, anything
// else is read from disk, so callers can use one loader for both.
package embedded

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Prefix marks a path that resolves against the embedded files.
const Prefix = "embedded:"

// CatalogPath is the path of the default game catalog.
const CatalogPath = Prefix + "catalog.yaml"

//go:embed catalog.yaml
var dataFS embed.FS

// ReadFile reads an embedded file when path carries Prefix, otherwise a file on disk.
func ReadFile(path string) ([]byte, error) {
	if name, ok := strings.CutPrefix(path, Prefix); ok {
		data, err := fs.ReadFile(dataFS, filepath.ToSlash(name))
		if err != nil {
			return nil, fmt.Errorf("embedded file %s: %w", name, err)
		}
		return data, nil
	}
	return os.ReadFile(path)
}

// Exists reports whether path can be read by ReadFile.
func Exists(path string) bool {
	if name, ok := strings.CutPrefix(path, Prefix); ok {
		_, err := fs.Stat(dataFS, filepath.ToSlash(name))
		return err == nil
	}
	_, err := os.Stat(path)
	return err == nil
}
