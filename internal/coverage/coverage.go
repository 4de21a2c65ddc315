// Package coverage reconciles extracted endpoints with parsed specifications.
package coverage

import (
	"strings"

	"github.com/RouteLens/routelens/internal/extractor"
	"github.com/RouteLens/routelens/internal/pathutil"
	"github.com/RouteLens/routelens/internal/spec"
)

// Status classifies an endpoint's documentation coverage.
type Status string

const (
	StatusCovered     Status = "covered"
	StatusNotCovered  Status = "not-covered"
	StatusNoSpecFound Status = "no-spec-found"
)

// MatchedOperation records the specification operation an endpoint matched.
type MatchedOperation struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	OperationID string `json:"operation_id,omitempty"`
	Summary     string `json:"summary,omitempty"`
}

// Result is the coverage verdict for one endpoint. Covered implies Matched
// is present.
type Result struct {
	Status   Status            `json:"status"`
	SpecFile string            `json:"spec_file,omitempty"`
	Matched  *MatchedOperation `json:"matched,omitempty"`
}

// Endpoint decorates an extracted endpoint with its coverage result. The
// underlying endpoint is copied, never mutated.
type Endpoint struct {
	extractor.Endpoint
	Coverage Result `json:"coverage"`
}

// Compute matches every endpoint against the specifications. With an empty
// specification set every endpoint is no-spec-found; that decision is global,
// not per endpoint. Otherwise specifications and their endpoints are scanned
// in input order and the first match wins.
func Compute(endpoints []extractor.Endpoint, specs []*spec.Specification) []Endpoint {
	out := make([]Endpoint, 0, len(endpoints))

	if len(specs) == 0 {
		for _, ep := range endpoints {
			out = append(out, Endpoint{Endpoint: ep, Coverage: Result{Status: StatusNoSpecFound}})
		}
		return out
	}

	for _, ep := range endpoints {
		out = append(out, Endpoint{Endpoint: ep, Coverage: matchOne(ep, specs)})
	}
	return out
}

func matchOne(ep extractor.Endpoint, specs []*spec.Specification) Result {
	for _, s := range specs {
		for _, se := range s.Endpoints {
			if !strings.EqualFold(string(ep.Method), se.Method) {
				continue
			}
			if !pathsMatch(ep.Path, se.Path) {
				continue
			}
			return Result{
				Status:   StatusCovered,
				SpecFile: s.SourcePath,
				Matched: &MatchedOperation{
					Method:      se.Method,
					Path:        se.Path,
					OperationID: se.OperationID,
					Summary:     se.Summary,
				},
			}
		}
	}
	return Result{Status: StatusNotCovered}
}

// pathsMatch compares two paths after normalization: exact equality first,
// then segment-wise with parameter segments on either side matching anything.
func pathsMatch(a, b string) bool {
	na := pathutil.Normalize(a)
	nb := pathutil.Normalize(b)
	if na == nb {
		return true
	}

	segsA := strings.Split(strings.TrimPrefix(na, "/"), "/")
	segsB := strings.Split(strings.TrimPrefix(nb, "/"), "/")
	if len(segsA) != len(segsB) {
		return false
	}
	for i := range segsA {
		if pathutil.IsParameterSegment(segsA[i]) || pathutil.IsParameterSegment(segsB[i]) {
			continue
		}
		if segsA[i] != segsB[i] {
			return false
		}
	}
	return true
}
