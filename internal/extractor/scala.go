package extractor

import (
	"path/filepath"
	"strings"
)

// scalaTestSuffixes lists file-name suffixes that mark Scala test sources.
var scalaTestSuffixes = []string{
	"Test.scala",
	"Spec.scala",
	"IT.scala",
	"IntegrationTest.scala",
	"TestDsl.scala",
}

// IsScalaTestFile reports whether the file path names a Scala test source,
// either by suffix or by living under a test directory. Test files are never
// scanned for endpoints.
func IsScalaTestFile(path string) bool {
	norm := filepath.ToSlash(path)
	for _, suffix := range scalaTestSuffixes {
		if strings.HasSuffix(norm, suffix) {
			return true
		}
	}
	return strings.Contains(norm, "/test/") || strings.Contains(norm, "/tests/")
}

// ScalaExtractor scans Scala sources and Play routes files. Four detectors
// are applied per line with ordered early exit: Spring annotations, Play
// route lines, Akka HTTP directives, http4s case patterns. The first detector
// that claims a line wins; a line contributes at most one endpoint.
type ScalaExtractor struct{}

// NewScalaExtractor creates a new Scala extractor.
func NewScalaExtractor() *ScalaExtractor {
	return &ScalaExtractor{}
}

// Extract implements Extractor.
func (e *ScalaExtractor) Extract(filePath, content string) []Endpoint {
	endpoints := make([]Endpoint, 0)
	if IsScalaTestFile(filePath) {
		return endpoints
	}

	st := &scanState{}
	lines := splitLines(content)

	for i, line := range lines {
		if ep, emitted, matched := handleSpringLine(st, lines, i, filePath, scalaIdioms); matched {
			if emitted {
				endpoints = append(endpoints, ep)
			}
			continue
		}
		if ep, ok := matchPlayRoute(line, i+1, filePath); ok {
			endpoints = append(endpoints, ep)
			continue
		}
		if ep, ok := matchAkkaRoute(line, i+1, filePath, st.className); ok {
			endpoints = append(endpoints, ep)
			continue
		}
		if ep, ok := matchHTTP4sRoute(line, i+1, filePath, st.className); ok {
			endpoints = append(endpoints, ep)
		}
	}

	return endpoints
}
