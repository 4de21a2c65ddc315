package extractor

import (
	"regexp"
	"strings"
)

// http4s routes pattern-match on the request:
//
//	case GET -> Root / "users" / "met" / "rol" / RolVar(rol) => ...
//	case ctx @ Method.POST -> Root / "orders" => ...
//
// The optional binder ("ctx @") and the optional "Method." qualifier are both
// tolerated. Everything after Root is swept twice: once for quoted literal
// segments and once for UpperIdent(arg) path-variable extractors. The sweeps
// are independent; interleaved literals and variables are not reassembled in
// strict source order.
var (
	http4sCaseRe   = regexp.MustCompile(`^\s*case\s+(?:\w+\s*@\s*)?(?:Method\.)?(GET|POST|PUT|PATCH|DELETE)\s*->\s*Root\b(.*)$`)
	http4sQuotedRe = regexp.MustCompile(`"([^"]*)"`)
	http4sVarRe    = regexp.MustCompile(`\b([A-Z]\w*)\s*\(\s*([^)]*)\)`)
	identRe        = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

func matchHTTP4sRoute(line string, lineNo int, file, className string) (Endpoint, bool) {
	m := http4sCaseRe.FindStringSubmatch(line)
	if m == nil {
		return Endpoint{}, false
	}

	verb, ok := ParseMethod(m[1])
	if !ok {
		return Endpoint{}, false
	}
	rest := m[2]

	segments := make([]string, 0)
	for _, q := range http4sQuotedRe.FindAllStringSubmatch(rest, -1) {
		if q[1] != "" {
			segments = append(segments, q[1])
		}
	}
	for _, v := range http4sVarRe.FindAllStringSubmatch(rest, -1) {
		arg := strings.TrimSpace(v[2])
		if !identRe.MatchString(arg) {
			arg = "id"
		}
		segments = append(segments, ":"+arg)
	}

	path := "/"
	if len(segments) > 0 {
		path = "/" + strings.Join(segments, "/")
	}

	return Endpoint{
		Method:     verb,
		Path:       path,
		SourceFile: file,
		Line:       lineNo,
		ClassName:  className,
	}, true
}
