package coverage

import (
	"testing"

	"github.com/RouteLens/routelens/internal/extractor"
	"github.com/RouteLens/routelens/internal/spec"
)

func usersSpec() *spec.Specification {
	return &spec.Specification{
		SourcePath: "docs/openapi.yaml",
		Kind:       spec.KindOpenAPI,
		Version:    "3.0.0",
		Endpoints: []spec.Endpoint{
			{Method: "GET", Path: "/users", OperationID: "listUsers"},
			{Method: "GET", Path: "/users/{id}", OperationID: "getUser", Summary: "Get one user"},
			{Method: "POST", Path: "/users", OperationID: "createUser"},
		},
	}
}

func TestCompute_ParameterMatch(t *testing.T) {
	endpoints := []extractor.Endpoint{
		{Method: extractor.MethodGet, Path: "/users/123", SourceFile: "a.java", Line: 1},
	}

	out := Compute(endpoints, []*spec.Specification{usersSpec()})
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}

	cov := out[0].Coverage
	if cov.Status != StatusCovered {
		t.Fatalf("Status = %s, want covered", cov.Status)
	}
	if cov.SpecFile != "docs/openapi.yaml" {
		t.Errorf("SpecFile = %q", cov.SpecFile)
	}
	if cov.Matched == nil || cov.Matched.OperationID != "getUser" {
		t.Errorf("Matched = %+v, want getUser", cov.Matched)
	}
}

func TestCompute_MethodMismatch(t *testing.T) {
	endpoints := []extractor.Endpoint{
		{Method: extractor.MethodDelete, Path: "/users", SourceFile: "a.java", Line: 1},
	}

	out := Compute(endpoints, []*spec.Specification{usersSpec()})
	if out[0].Coverage.Status != StatusNotCovered {
		t.Errorf("Status = %s, want not-covered", out[0].Coverage.Status)
	}
	if out[0].Coverage.Matched != nil {
		t.Errorf("Matched = %+v, want nil", out[0].Coverage.Matched)
	}
}

func TestCompute_EmptySpecSetIsGlobal(t *testing.T) {
	endpoints := []extractor.Endpoint{
		{Method: extractor.MethodGet, Path: "/users", SourceFile: "a.java", Line: 1},
		{Method: extractor.MethodPost, Path: "/users", SourceFile: "a.java", Line: 9},
	}

	out := Compute(endpoints, nil)
	for i, ep := range out {
		if ep.Coverage.Status != StatusNoSpecFound {
			t.Errorf("out[%d].Status = %s, want no-spec-found", i, ep.Coverage.Status)
		}
	}
}

func TestCompute_FirstMatchWins(t *testing.T) {
	first := &spec.Specification{
		SourcePath: "first.yaml",
		Endpoints:  []spec.Endpoint{{Method: "GET", Path: "/users/{id}", OperationID: "fromFirst"}},
	}
	second := &spec.Specification{
		SourcePath: "second.yaml",
		Endpoints:  []spec.Endpoint{{Method: "GET", Path: "/users/{id}", OperationID: "fromSecond"}},
	}

	endpoints := []extractor.Endpoint{
		{Method: extractor.MethodGet, Path: "/users/42", SourceFile: "a.java", Line: 1},
	}

	out := Compute(endpoints, []*spec.Specification{first, second})
	cov := out[0].Coverage
	if cov.SpecFile != "first.yaml" || cov.Matched.OperationID != "fromFirst" {
		t.Errorf("matched %q in %q, want fromFirst in first.yaml", cov.Matched.OperationID, cov.SpecFile)
	}
}

func TestCompute_CaseInsensitiveMethods(t *testing.T) {
	s := &spec.Specification{
		SourcePath: "s.yaml",
		Endpoints:  []spec.Endpoint{{Method: "get", Path: "/health"}},
	}
	endpoints := []extractor.Endpoint{
		{Method: extractor.MethodGet, Path: "/health", SourceFile: "a.scala", Line: 3},
	}

	out := Compute(endpoints, []*spec.Specification{s})
	if out[0].Coverage.Status != StatusCovered {
		t.Errorf("Status = %s, want covered", out[0].Coverage.Status)
	}
}

func TestPathsMatch(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{"exact", "/users", "/users", true},
		{"normalization differences", "//users///all/", "/users/all", true},
		{"template parameter", "/users/123", "/users/{id}", true},
		{"colon parameter on extracted side", "/users/:id", "/users/55", true},
		{"segment count mismatch", "/users/1/posts", "/users/{id}", false},
		{"literal mismatch", "/users/1", "/orders/{id}", false},
		{"both parameters", "/users/:id", "/users/{userId}", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pathsMatch(tt.a, tt.b); got != tt.want {
				t.Errorf("pathsMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
