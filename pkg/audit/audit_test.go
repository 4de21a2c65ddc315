package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/RouteLens/routelens/internal/coverage"
	"github.com/RouteLens/routelens/internal/extractor"
	"github.com/RouteLens/routelens/internal/output"
)

const userController = `@RestController
@RequestMapping("/api/users")
public class UserController {

    @GetMapping
    public List<User> getUsers() {
        return service.findAll();
    }

    @DeleteMapping("/{id}")
    public void deleteUser(@PathVariable Long id) {
        service.delete(id);
    }
}
`

const usersSpec = `{
  "openapi": "3.0.1",
  "info": {"title": "Users API", "version": "1.0"},
  "paths": {
    "/api/users": {
      "get": {"operationId": "listUsers", "summary": "List users"}
    }
  }
}
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestAuditorRun(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/main/java/UserController.java": userController,
		"api/openapi.json":                  usersSpec,
	})

	var buf bytes.Buffer
	a, err := New(
		WithRoot(root),
		WithOutput(&buf),
		WithWorkers(2),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	report, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Stats.FilesTotal != 1 {
		t.Errorf("FilesTotal = %d, want 1", report.Stats.FilesTotal)
	}
	if report.Stats.FilesScanned != 1 {
		t.Errorf("FilesScanned = %d, want 1", report.Stats.FilesScanned)
	}
	if len(report.Endpoints) != 2 {
		t.Fatalf("got %d endpoints, want 2", len(report.Endpoints))
	}
	if report.Stats.Covered != 1 || report.Stats.NotCovered != 1 {
		t.Errorf("Covered = %d, NotCovered = %d, want 1 and 1",
			report.Stats.Covered, report.Stats.NotCovered)
	}

	byKey := map[string]coverage.Endpoint{}
	for _, ep := range report.Endpoints {
		byKey[string(ep.Method)+" "+ep.Path] = ep
	}
	get, ok := byKey["GET /api/users"]
	if !ok {
		t.Fatal("GET /api/users not extracted")
	}
	if get.Coverage.Status != coverage.StatusCovered {
		t.Errorf("GET /api/users status = %s, want covered", get.Coverage.Status)
	}
	if get.Coverage.Matched == nil || get.Coverage.Matched.OperationID != "listUsers" {
		t.Errorf("GET /api/users matched = %+v, want operationId listUsers", get.Coverage.Matched)
	}
	del, ok := byKey["DELETE /api/users/{id}"]
	if !ok {
		t.Fatal("DELETE /api/users/{id} not extracted")
	}
	if del.Coverage.Status != coverage.StatusNotCovered {
		t.Errorf("DELETE status = %s, want not-covered", del.Coverage.Status)
	}

	var out output.ScanReport
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.ID != report.ID {
		t.Errorf("written report ID = %s, want %s", out.ID, report.ID)
	}
}

func TestAuditorRunWithoutSpecs(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/main/java/UserController.java": userController,
	})

	var buf bytes.Buffer
	a, err := New(WithRoot(root), WithOutput(&buf))
	if err != nil {
		t.Fatal(err)
	}

	report, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Stats.NoSpec != 2 {
		t.Errorf("NoSpec = %d, want 2", report.Stats.NoSpec)
	}
	for _, ep := range report.Endpoints {
		if ep.Coverage.Status != coverage.StatusNoSpecFound {
			t.Errorf("%s %s status = %s, want no-spec-found", ep.Method, ep.Path, ep.Coverage.Status)
		}
	}
}

func TestAuditorExplicitSpecFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/main/java/UserController.java": userController,
	})
	specDir := writeTree(t, map[string]string{
		"users.json": usersSpec,
	})

	var buf bytes.Buffer
	a, err := New(
		WithRoot(root),
		WithSpecFiles(filepath.Join(specDir, "users.json")),
		WithOutput(&buf),
	)
	if err != nil {
		t.Fatal(err)
	}

	report, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Stats.Covered != 1 {
		t.Errorf("Covered = %d, want 1", report.Stats.Covered)
	}
	if len(report.Specifications) != 1 {
		t.Errorf("got %d specifications, want 1", len(report.Specifications))
	}
}

func TestAuditorMissingRoot(t *testing.T) {
	a, err := New(WithRoot(filepath.Join(t.TempDir(), "nope")), WithOutput(&bytes.Buffer{}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Run(context.Background()); err == nil {
		t.Error("Run() on missing root should fail")
	}
}

func TestAuditorValidation(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Run(context.Background()); err == nil {
		t.Error("Run() without a root should fail validation")
	}
}

func TestAuditorHistoryDiff(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/main/java/UserController.java": userController,
	})
	stateFile := filepath.Join(t.TempDir(), "history.db")

	run := func() *Auditor {
		a, err := New(
			WithRoot(root),
			WithStateFile(stateFile),
			WithOutput(&bytes.Buffer{}),
		)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := a.Run(context.Background()); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		return a
	}

	first := run()
	if diff := first.LastDiff(); diff == nil || diff.PreviousID != "" {
		t.Errorf("first run diff = %+v, want empty previous ID", diff)
	}

	second := run()
	diff := second.LastDiff()
	if diff == nil || diff.PreviousID == "" {
		t.Fatalf("second run diff = %+v, want previous ID set", diff)
	}
	if len(diff.Added) != 0 || len(diff.Removed) != 0 {
		t.Errorf("unchanged tree diff = added %v removed %v, want none", diff.Added, diff.Removed)
	}
}

func TestDedupe(t *testing.T) {
	eps := []extractor.Endpoint{
		{Method: extractor.MethodGet, Path: "/b", SourceFile: "B.java", Line: 3},
		{Method: extractor.MethodGet, Path: "/a", SourceFile: "A.java", Line: 10},
		{Method: extractor.MethodGet, Path: "/a", SourceFile: "A.java", Line: 10},
		{Method: extractor.MethodGet, Path: "/a", SourceFile: "A.java", Line: 5},
		{Method: extractor.MethodPost, Path: "/a", SourceFile: "A.java", Line: 2},
	}

	got := dedupe(eps)
	if len(got) != 4 {
		t.Fatalf("got %d endpoints, want 4: %+v", len(got), got)
	}
	if got[0].Path != "/a" || got[0].Line != 2 {
		t.Errorf("first endpoint = %+v, want POST /a at line 2", got[0])
	}
	// Distinct declarations of the same method and path differ only by line
	// and must both survive.
	if got[1].Line != 5 || got[2].Line != 10 {
		t.Errorf("GET /a declarations = lines %d and %d, want 5 and 10", got[1].Line, got[2].Line)
	}
	if got[3].SourceFile != "B.java" {
		t.Errorf("last endpoint = %+v, want from B.java", got[3])
	}
}

func TestConfigLoadAndValidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "root: /tmp/src\nworkers: 4\noutput:\n  format: csv\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Root != "/tmp/src" || cfg.Workers != 4 || cfg.Output.Format != "csv" {
		t.Errorf("loaded config = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	cfg.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() with zero workers should fail")
	}
}
