package extractor

import (
	"regexp"

	"github.com/RouteLens/routelens/internal/pathutil"
)

// springIdioms carries the language-specific pieces of Spring-annotation
// scanning: how a type declaration looks and how a handler member is named.
type springIdioms struct {
	typeDecl *regexp.Regexp
	members  []*regexp.Regexp
}

var javaIdioms = springIdioms{
	typeDecl: regexp.MustCompile(`\b(?:class|interface|enum)\s+([A-Za-z_]\w*)`),
	members: []*regexp.Regexp{
		regexp.MustCompile(`\b(?:public|protected|private)\s+(?:static\s+)?[\w<>\[\],.?\s]+?\s+(\w+)\s*\(`),
	},
}

var scalaIdioms = springIdioms{
	typeDecl: regexp.MustCompile(`\b(?:class|object|trait)\s+([A-Za-z_]\w*)`),
	members: []*regexp.Regexp{
		regexp.MustCompile(`\bdef\s+(\w+)\s*[(\[:=]`),
		regexp.MustCompile(`\bval\s+(\w+)\s*:`),
	},
}

var (
	controllerMarkerRe = regexp.MustCompile(`@(?:RestController|Controller)\b`)
	requestMappingRe   = regexp.MustCompile(`@RequestMapping\b`)
	methodMappingRe    = regexp.MustCompile(`@(Get|Post|Put|Patch|Delete)Mapping\b`)
	requestMethodRe    = regexp.MustCompile(`method\s*=\s*(?:RequestMethod\.)?([A-Za-z]+)`)

	// Candidate path patterns tried in order; the first hit wins.
	annotationPathRes = []*regexp.Regexp{
		regexp.MustCompile(`\bvalue\s*=\s*"([^"]*)"`),
		regexp.MustCompile(`Mapping\s*\(\s*"([^"]*)"`),
		regexp.MustCompile(`\bpath\s*=\s*"([^"]*)"`),
		regexp.MustCompile(`\bvalue\s*=\s*\{\s*"([^"]*)"`),
	}
)

// handleSpringLine advances the Spring-annotation state machine by one line.
// matched reports that the line was consumed by Spring handling (and must not
// be offered to lower-priority detectors); emitted reports that ep is valid.
func handleSpringLine(st *scanState, lines []string, i int, file string, idioms springIdioms) (ep Endpoint, emitted, matched bool) {
	line := lines[i]

	if m := idioms.typeDecl.FindStringSubmatch(line); m != nil {
		// Class-level mapping annotations precede the declaration line, so
		// the base path gathered just above belongs to this type and is kept.
		st.className = m[1]
		return Endpoint{}, false, true
	}
	if controllerMarkerRe.MatchString(line) && !requestMappingRe.MatchString(line) {
		// A @RestController/@Controller marker opens the next controller
		// block; any base path from a previous type no longer applies.
		st.basePath = ""
		return Endpoint{}, false, true
	}

	if m := methodMappingRe.FindStringSubmatch(line); m != nil {
		verb, ok := ParseMethod(m[1])
		if !ok {
			return Endpoint{}, false, true
		}
		ep := emitSpring(st, lines, i, file, verb, annotationPath(line), idioms)
		return ep, true, true
	}

	if requestMappingRe.MatchString(line) {
		if m := requestMethodRe.FindStringSubmatch(line); m != nil {
			// @RequestMapping(method = RequestMethod.X) on a handler. Verbs
			// like HEAD or OPTIONS are not extraction targets.
			verb, ok := ParseMethod(m[1])
			if !ok {
				return Endpoint{}, false, true
			}
			ep := emitSpring(st, lines, i, file, verb, annotationPath(line), idioms)
			return ep, true, true
		}
		// Controller-level mapping: remember the base path for the handlers
		// that follow. It persists until the next type declaration.
		st.basePath = annotationPath(line)
		return Endpoint{}, false, true
	}

	return Endpoint{}, false, false
}

// annotationPath extracts the path value from a mapping annotation line.
func annotationPath(line string) string {
	for _, re := range annotationPathRes {
		if m := re.FindStringSubmatch(line); m != nil && m[1] != "" {
			return m[1]
		}
	}
	return ""
}

// emitSpring builds the endpoint for a method-mapping annotation, looking at
// the next up to 4 lines for the handler member name.
func emitSpring(st *scanState, lines []string, i int, file string, verb Method, subPath string, idioms springIdioms) Endpoint {
	member := ""
	for j := i + 1; j < len(lines) && j <= i+4 && member == ""; j++ {
		for _, re := range idioms.members {
			if m := re.FindStringSubmatch(lines[j]); m != nil {
				member = m[1]
				break
			}
		}
	}

	return Endpoint{
		Method:     verb,
		Path:       pathutil.Combine(st.basePath, subPath),
		SourceFile: file,
		Line:       i + 1,
		ClassName:  st.className,
		MemberName: member,
	}
}

// JavaExtractor scans Java source for Spring MVC request-mapping annotations.
type JavaExtractor struct{}

// NewJavaExtractor creates a new Java extractor.
func NewJavaExtractor() *JavaExtractor {
	return &JavaExtractor{}
}

// Extract implements Extractor.
func (e *JavaExtractor) Extract(filePath, content string) []Endpoint {
	st := &scanState{}
	lines := splitLines(content)
	endpoints := make([]Endpoint, 0)

	for i := range lines {
		if ep, emitted, _ := handleSpringLine(st, lines, i, filePath, javaIdioms); emitted {
			endpoints = append(endpoints, ep)
		}
	}

	return endpoints
}
