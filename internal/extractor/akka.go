package extractor

import (
	"regexp"
	"strings"
)

// Akka HTTP route DSLs nest directives across many lines; walking the full
// tree is out of reach for a line scanner, so detection is limited to lines
// where a verb directive and a path directive co-occur. This is deliberately
// noisy, which is why trivial paths are rejected below.
var (
	akkaVerbRe      = regexp.MustCompile(`\b(get|post|put|patch|delete)\b`)
	akkaVerbCallRe  = regexp.MustCompile(`\b(?:get|post|put|patch|delete)\s*\(`)
	akkaVerbBlockRe = regexp.MustCompile(`\b(?:get|post|put|patch|delete)\s*\{`)
	akkaPathCallRe  = regexp.MustCompile(`\bpath(?:Prefix)?\s*\(`)
	akkaPathArgRe   = regexp.MustCompile(`\bpath(?:Prefix)?\s*\(\s*"([^"]+)"`)
	quotedSlashRe   = regexp.MustCompile(`"([^"]*/[^"]*)"`)
)

func matchAkkaRoute(line string, lineNo int, file, className string) (Endpoint, bool) {
	triggered := false
	switch {
	// path("literal") together with a verb directive on the same line.
	case akkaPathArgRe.MatchString(line) && akkaVerbRe.MatchString(line):
		triggered = true
	// Verb call wrapping a path(...) call.
	case akkaVerbCallRe.MatchString(line) && akkaPathCallRe.MatchString(line):
		triggered = true
	// Verb block opener on a line that mentions a path.
	case akkaVerbBlockRe.MatchString(line) && strings.Contains(line, "path"):
		triggered = true
	}
	if !triggered {
		return Endpoint{}, false
	}

	vm := akkaVerbRe.FindStringSubmatch(line)
	if vm == nil {
		return Endpoint{}, false
	}
	verb, ok := ParseMethod(vm[1])
	if !ok {
		return Endpoint{}, false
	}

	path := ""
	if m := akkaPathArgRe.FindStringSubmatch(line); m != nil {
		path = m[1]
	} else if m := quotedSlashRe.FindStringSubmatch(line); m != nil {
		// Fallback: any quoted string containing a slash. Known to misfire on
		// unrelated literals; accepted precision/recall tradeoff.
		path = m[1]
	}

	// Trivial or absent paths are treated as false positives.
	if path == "" || path == "/" {
		return Endpoint{}, false
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return Endpoint{
		Method:     verb,
		Path:       path,
		SourceFile: file,
		Line:       lineNo,
		ClassName:  className,
	}, true
}
