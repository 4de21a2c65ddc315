// Package pathutil provides route path normalization and combination helpers.
package pathutil

import (
	"regexp"
	"strings"
)

var braceParam = regexp.MustCompile(`\{[^}]*\}`)

// Normalize collapses runs of slashes and strips the trailing slash.
// The empty path maps to "/". Normalize never fails and is idempotent.
func Normalize(path string) string {
	if path == "" {
		return "/"
	}

	var b strings.Builder
	b.Grow(len(path))
	prevSlash := false
	for _, r := range path {
		if r == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteRune(r)
	}

	out := b.String()
	if len(out) > 1 {
		out = strings.TrimSuffix(out, "/")
	}
	if out == "" {
		return "/"
	}
	return out
}

// Combine joins a controller-level base path with a method-level sub path,
// guaranteeing exactly one slash between them and a leading slash on the result.
func Combine(basePath, subPath string) string {
	if basePath == "" && subPath == "" {
		return "/"
	}
	if basePath == "" {
		return ensureLeadingSlash(subPath)
	}
	if subPath == "" {
		return ensureLeadingSlash(basePath)
	}

	base := strings.TrimSuffix(ensureLeadingSlash(basePath), "/")
	return base + ensureLeadingSlash(subPath)
}

// IsParameterSegment reports whether a single path segment represents a
// variable rather than a literal: "{id}", ":id", wildcard segments, or any
// segment containing a brace-delimited parameter.
func IsParameterSegment(segment string) bool {
	if segment == "" {
		return false
	}
	if strings.HasPrefix(segment, ":") {
		return true
	}
	if strings.Contains(segment, "*") {
		return true
	}
	if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
		return true
	}
	return braceParam.MatchString(segment)
}

func ensureLeadingSlash(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}
