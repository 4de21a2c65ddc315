// Package source discovers candidate source files for endpoint extraction.
// It only produces file paths; reading and scanning happens elsewhere.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// skipDirs are directory names never descended into: build output, VCS
// metadata and test trees. Implementation endpoints live in main sources;
// scanning src/test/java would report endpoints the application never serves.
var skipDirs = map[string]struct{}{
	".git":         {},
	".idea":        {},
	"node_modules": {},
	"target":       {},
	"build":        {},
	"out":          {},
	"test":         {},
	"tests":        {},
}

// Walk returns the source files under root that the extractors understand:
// *.java, *.scala and Play "routes" files, excluding build output and VCS
// directories. The result preserves filesystem walk order.
func Walk(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat scan root: %w", err)
	}
	if !info.IsDir() {
		if IsSourceFile(root) {
			return []string{root}, nil
		}
		return nil, fmt.Errorf("%s is not a scannable source file", root)
	}

	files := make([]string, 0)
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Unreadable subtree; keep walking the rest.
			return nil
		}
		if info.IsDir() {
			if _, skip := skipDirs[info.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSourceFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

// IsSourceFile reports whether the extractors understand this file type.
func IsSourceFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, ".java") ||
		strings.HasSuffix(base, ".scala") ||
		base == "routes"
}
