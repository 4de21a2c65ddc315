package spec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RouteLens/routelens/internal/logger"
)

// skipDirs are directory names never descended into during discovery.
var skipDirs = map[string]struct{}{
	".git":         {},
	".idea":        {},
	"node_modules": {},
	"target":       {},
	"build":        {},
	"out":          {},
}

// Discover walks root for candidate specification documents (*.json, *.yaml,
// *.yml), parses each and returns the ones that validate. Files that fail to
// parse are dropped silently unless their name suggests they were meant to be
// a specification, in which case a warning is logged.
func Discover(root string, log *logger.Logger) []*Specification {
	specs := make([]*Specification, 0)

	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if _, skip := skipDirs[info.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}

		format, ok := formatForFile(path)
		if !ok {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			log.WithError(err).WithFile(path).Debug("Skipping unreadable candidate")
			return nil
		}

		s := Parse(path, raw, format)
		if s == nil {
			if LooksLikeSpecName(path) {
				log.WithFile(path).Warn("File looks like an API specification but failed to parse")
			}
			return nil
		}

		log.WithFile(path).Debugf("Parsed %s %s specification with %d endpoints",
			s.Kind, s.Version, len(s.Endpoints))
		specs = append(specs, s)
		return nil
	})

	return specs
}

// Load reads and parses a single specification file. Unreadable files are an
// error; readable files that are not specifications return nil, nil.
func Load(path string) (*Specification, error) {
	format, ok := formatForFile(path)
	if !ok {
		return nil, fmt.Errorf("unsupported specification format: %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read specification: %w", err)
	}

	return Parse(path, raw, format), nil
}

// formatForFile maps a file extension to a parse hint.
func formatForFile(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// LooksLikeSpecName reports whether a file name suggests the file was
// intended to be an API specification. Gates the parse-failure warning only;
// never gates parsing itself.
func LooksLikeSpecName(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	return strings.Contains(base, "swagger") ||
		strings.Contains(base, "openapi") ||
		strings.Contains(base, "api")
}
