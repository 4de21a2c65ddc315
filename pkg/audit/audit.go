// Package audit scans JVM source trees for REST endpoints and reports their
// coverage against discovered OpenAPI and Swagger specifications.
package audit

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RouteLens/routelens/internal/coverage"
	"github.com/RouteLens/routelens/internal/extractor"
	"github.com/RouteLens/routelens/internal/logger"
	"github.com/RouteLens/routelens/internal/output"
	"github.com/RouteLens/routelens/internal/source"
	"github.com/RouteLens/routelens/internal/spec"
	"github.com/RouteLens/routelens/internal/state"
)

// Auditor is the main scan orchestrator.
type Auditor struct {
	config       *Config
	logger       *logger.Logger
	outputWriter io.Writer

	mu      sync.Mutex
	running atomic.Bool

	lastDiff *state.RunDiff
}

// New creates a new auditor with the given options.
func New(opts ...Option) (*Auditor, error) {
	a := &Auditor{
		config: DefaultConfig(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if a.logger == nil {
		level := logger.InfoLevel
		if a.config.Verbose {
			level = logger.DebugLevel
		}
		if a.config.Debug {
			level = logger.TraceLevel
		}
		a.logger = logger.New(logger.Config{
			Level:     level,
			Pretty:    true,
			Component: "audit",
		})
	}

	return a, nil
}

// Run performs a full scan: walk sources, extract endpoints, discover
// specifications, compute coverage and write the report. File-level read
// failures are recorded on the report and do not abort the scan.
func (a *Auditor) Run(ctx context.Context) (*output.ScanReport, error) {
	if a.running.Load() {
		return nil, fmt.Errorf("auditor is already running")
	}
	a.running.Store(true)
	defer a.running.Store(false)

	if err := a.config.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	report := output.NewReport(a.config.Root)

	files, err := source.Walk(a.config.Root)
	if err != nil {
		return nil, err
	}
	report.Stats.FilesTotal = len(files)
	a.logger.WithField("files", len(files)).Info("Source walk complete")

	specs, err := a.loadSpecifications()
	if err != nil {
		return nil, err
	}
	a.logger.WithField("specifications", len(specs)).Info("Specification discovery complete")

	endpoints := a.extract(ctx, files, report)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Endpoints = coverage.Compute(endpoints, specs)
	report.AddSpecifications(specs)
	report.Finalize()

	a.logger.CoverageEvent(report.Stats.Covered, report.Stats.NotCovered, report.Stats.NoSpec)
	a.logger.ScanEvent(report.Stats.FilesScanned, report.Stats.EndpointsFound,
		report.Stats.ErrorCount, time.Since(start))

	if a.config.State.Enabled {
		if err := a.persistHistory(report); err != nil {
			a.logger.WithError(err).Warn("Failed to persist scan history")
		}
	}

	if err := a.writeReport(report); err != nil {
		return report, err
	}

	return report, nil
}

// LastDiff returns the endpoint diff against the previous persisted run.
// Nil when state persistence is disabled or no previous run exists.
func (a *Auditor) LastDiff() *state.RunDiff {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastDiff
}

// loadSpecifications parses explicit spec files when configured, otherwise
// discovers candidates under the spec root.
func (a *Auditor) loadSpecifications() ([]*spec.Specification, error) {
	if len(a.config.SpecFiles) > 0 {
		specs := make([]*spec.Specification, 0, len(a.config.SpecFiles))
		for _, path := range a.config.SpecFiles {
			s, err := spec.Load(path)
			if err != nil {
				return nil, err
			}
			if s == nil {
				a.logger.WithFile(path).Warn("File is not a recognized API specification")
				continue
			}
			specs = append(specs, s)
		}
		return specs, nil
	}

	root := a.config.SpecRoot
	if root == "" {
		root = a.config.Root
	}
	return spec.Discover(root, a.logger), nil
}

// extract runs the worker pool over the file list and returns a deduplicated,
// deterministically ordered endpoint slice.
func (a *Auditor) extract(ctx context.Context, files []string, report *output.ScanReport) []extractor.Endpoint {
	jobs := make(chan string)
	var wg sync.WaitGroup

	var mu sync.Mutex
	var all []extractor.Endpoint

	workers := a.config.Workers
	if workers > len(files) && len(files) > 0 {
		workers = len(files)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				ex := extractor.ForFile(path)
				if ex == nil {
					continue
				}

				raw, err := os.ReadFile(path)
				if err != nil {
					mu.Lock()
					report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", path, err))
					mu.Unlock()
					a.logger.WithError(err).WithFile(path).Warn("Failed to read source file")
					continue
				}

				eps := ex.Extract(path, string(raw))
				a.logger.ExtractionEvent(path, len(eps))

				mu.Lock()
				report.Stats.FilesScanned++
				all = append(all, eps...)
				mu.Unlock()
			}
		}()
	}

loop:
	for _, path := range files {
		select {
		case <-ctx.Done():
			break loop
		case jobs <- path:
		}
	}
	close(jobs)
	wg.Wait()

	return dedupe(all)
}

// dedupe drops repeated endpoints and fixes the ordering the worker pool
// scrambled.
func dedupe(endpoints []extractor.Endpoint) []extractor.Endpoint {
	sort.Slice(endpoints, func(i, j int) bool {
		a, b := endpoints[i], endpoints[j]
		if a.SourceFile != b.SourceFile {
			return a.SourceFile < b.SourceFile
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Method != b.Method {
			return a.Method < b.Method
		}
		return a.Path < b.Path
	})

	dedup := state.NewDeduplicator(len(endpoints))
	out := endpoints[:0]
	for _, ep := range endpoints {
		if dedup.Add(ep.Key()) {
			out = append(out, ep)
		}
	}
	return out
}

// persistHistory saves the run and records the diff against the previous one.
func (a *Auditor) persistHistory(report *output.ScanReport) error {
	store, err := state.Open(a.config.State.FilePath)
	if err != nil {
		return err
	}
	defer store.Close()

	diff, err := store.Diff(report)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.lastDiff = diff
	a.mu.Unlock()

	if diff.PreviousID != "" {
		a.logger.WithFields(map[string]interface{}{
			"added":   len(diff.Added),
			"removed": len(diff.Removed),
		}).Info("Endpoint diff against previous run")
	}

	return store.SaveRun(report)
}

// writeReport emits the report to the configured writer, file or stdout.
func (a *Auditor) writeReport(report *output.ScanReport) error {
	var w io.Writer = os.Stdout
	if a.outputWriter != nil {
		w = a.outputWriter
	} else if a.config.Output.FilePath != "" {
		f, err := os.Create(a.config.Output.FilePath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	writer := output.NewWriter(w, a.config.Output)
	defer writer.Close()

	if err := writer.WriteReport(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return writer.Flush()
}
