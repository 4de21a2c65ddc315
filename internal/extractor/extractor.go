// Package extractor performs static extraction of REST endpoint declarations
// from Java and Scala source text. Detection is heuristic and line-oriented:
// each extractor is a small state machine over lines carrying the current
// enclosing type and controller base path, not a language parser.
package extractor

import (
	"path/filepath"
	"strings"
)

// Extractor extracts endpoint declarations from a single source file.
// Implementations never fail; malformed or unrecognized lines simply
// contribute no endpoints.
type Extractor interface {
	Extract(filePath, content string) []Endpoint
}

// ForFile selects the extractor for a file based on its name: ".java" files
// get the Java extractor, ".scala" files and Play "routes" files get the
// combined Scala extractor. Returns nil for files that are not scanned.
func ForFile(path string) Extractor {
	base := filepath.Base(path)
	switch {
	case strings.HasSuffix(base, ".java"):
		return NewJavaExtractor()
	case strings.HasSuffix(base, ".scala"), base == "routes":
		return NewScalaExtractor()
	default:
		return nil
	}
}

// scanState is the per-file mutable state threaded through a line scan.
// A fresh instance is created for every Extract call; it is never shared
// across files or goroutines.
type scanState struct {
	className string
	basePath  string
}

func splitLines(content string) []string {
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}
