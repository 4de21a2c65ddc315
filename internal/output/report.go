// Package output provides report formatting for scan results.
package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/RouteLens/routelens/internal/coverage"
	"github.com/RouteLens/routelens/internal/spec"
)

// ScanReport is the complete result of one scan run.
type ScanReport struct {
	ID             string              `json:"id"`
	Root           string              `json:"root"`
	StartedAt      time.Time           `json:"started_at"`
	CompletedAt    time.Time           `json:"completed_at,omitempty"`
	Stats          ScanStats           `json:"stats"`
	Endpoints      []coverage.Endpoint `json:"endpoints"`
	Specifications []SpecInfo          `json:"specifications,omitempty"`
	Errors         []string            `json:"errors,omitempty"`
}

// ScanStats contains statistics about the scan.
type ScanStats struct {
	FilesTotal     int           `json:"files_total"`
	FilesScanned   int           `json:"files_scanned"`
	EndpointsFound int           `json:"endpoints_found"`
	Covered        int           `json:"covered"`
	NotCovered     int           `json:"not_covered"`
	NoSpec         int           `json:"no_spec"`
	ErrorCount     int           `json:"error_count"`
	Duration       time.Duration `json:"duration"`
}

// SpecInfo summarizes one discovered specification document.
type SpecInfo struct {
	Path          string `json:"path"`
	Kind          string `json:"kind"`
	Version       string `json:"version"`
	EndpointCount int    `json:"endpoint_count"`
}

// NewReport creates an empty report for a scan of root.
func NewReport(root string) *ScanReport {
	return &ScanReport{
		ID:        uuid.NewString(),
		Root:      root,
		StartedAt: time.Now().UTC(),
		Endpoints: make([]coverage.Endpoint, 0),
		Errors:    make([]string, 0),
	}
}

// Finalize stamps the completion time and recomputes the statistics from the
// accumulated endpoints and errors.
func (r *ScanReport) Finalize() {
	r.CompletedAt = time.Now().UTC()
	r.Stats.Duration = r.CompletedAt.Sub(r.StartedAt)
	r.Stats.EndpointsFound = len(r.Endpoints)
	r.Stats.ErrorCount = len(r.Errors)

	r.Stats.Covered = 0
	r.Stats.NotCovered = 0
	r.Stats.NoSpec = 0
	for _, ep := range r.Endpoints {
		switch ep.Coverage.Status {
		case coverage.StatusCovered:
			r.Stats.Covered++
		case coverage.StatusNotCovered:
			r.Stats.NotCovered++
		case coverage.StatusNoSpecFound:
			r.Stats.NoSpec++
		}
	}
}

// CoveragePercent returns the share of endpoints with a specification match,
// in percent. Zero endpoints yields zero.
func (r *ScanReport) CoveragePercent() float64 {
	if len(r.Endpoints) == 0 {
		return 0
	}
	return float64(r.Stats.Covered) / float64(len(r.Endpoints)) * 100
}

// AddSpecifications records summaries of the discovered specifications.
func (r *ScanReport) AddSpecifications(specs []*spec.Specification) {
	for _, s := range specs {
		r.Specifications = append(r.Specifications, SpecInfo{
			Path:          s.SourcePath,
			Kind:          string(s.Kind),
			Version:       s.Version,
			EndpointCount: len(s.Endpoints),
		})
	}
}
