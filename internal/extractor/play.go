package extractor

import (
	"regexp"
	"strings"
)

// Play routes files declare one route per line:
//
//	GET     /api/users/:id          controllers.UserController.getUser(id: Long)
//
// The path is taken verbatim (":id" parameters included) and the full
// controller reference becomes the member name. Routes files have no
// enclosing type, so the class name is never set.
var playRouteRe = regexp.MustCompile(`^\s*([A-Z]+)\s+(/\S*)\s+(\S.*)$`)

func matchPlayRoute(line string, lineNo int, file string) (Endpoint, bool) {
	m := playRouteRe.FindStringSubmatch(line)
	if m == nil {
		return Endpoint{}, false
	}

	verb, ok := ParseMethod(m[1])
	if !ok {
		return Endpoint{}, false
	}

	ref := strings.TrimSpace(m[3])
	// The controller reference must be a dotted call target; anything else is
	// not a route line (comments, column headers, DSL fragments).
	if first := strings.Fields(ref); len(first) == 0 || !strings.Contains(first[0], ".") {
		return Endpoint{}, false
	}

	return Endpoint{
		Method:     verb,
		Path:       m[2],
		SourceFile: file,
		Line:       lineNo,
		MemberName: ref,
	}, true
}
