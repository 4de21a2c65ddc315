package audit

import (
	"io"

	"github.com/RouteLens/routelens/internal/logger"
)

// Option is a functional option for configuring the Auditor.
type Option func(*Auditor) error

// WithRoot sets the source tree root to scan.
func WithRoot(root string) Option {
	return func(a *Auditor) error {
		a.config.Root = root
		return nil
	}
}

// WithSpecRoot sets the root to search for specification documents.
func WithSpecRoot(root string) Option {
	return func(a *Auditor) error {
		a.config.SpecRoot = root
		return nil
	}
}

// WithSpecFiles sets explicit specification files, skipping discovery.
func WithSpecFiles(paths ...string) Option {
	return func(a *Auditor) error {
		a.config.SpecFiles = append(a.config.SpecFiles, paths...)
		return nil
	}
}

// WithWorkers sets the number of concurrent extraction workers.
func WithWorkers(n int) Option {
	return func(a *Auditor) error {
		if n < 1 {
			n = 1
		}
		a.config.Workers = n
		return nil
	}
}

// WithOutput sets the output writer.
func WithOutput(w io.Writer) Option {
	return func(a *Auditor) error {
		a.outputWriter = w
		return nil
	}
}

// WithOutputFile sets the output file path.
func WithOutputFile(path string) Option {
	return func(a *Auditor) error {
		a.config.Output.FilePath = path
		return nil
	}
}

// WithOutputFormat sets the output format (json or csv).
func WithOutputFormat(format string) Option {
	return func(a *Auditor) error {
		a.config.Output.Format = format
		return nil
	}
}

// WithPrettyOutput enables/disables pretty JSON output.
func WithPrettyOutput(pretty bool) Option {
	return func(a *Auditor) error {
		a.config.Output.Pretty = pretty
		return nil
	}
}

// WithStateFile sets the history database path and enables persistence.
func WithStateFile(path string) Option {
	return func(a *Auditor) error {
		a.config.State.FilePath = path
		a.config.State.Enabled = true
		return nil
	}
}

// WithVerbose enables/disables verbose logging.
func WithVerbose(verbose bool) Option {
	return func(a *Auditor) error {
		a.config.Verbose = verbose
		return nil
	}
}

// WithDebug enables/disables debug mode.
func WithDebug(debug bool) Option {
	return func(a *Auditor) error {
		a.config.Debug = debug
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *logger.Logger) Option {
	return func(a *Auditor) error {
		a.logger = l
		return nil
	}
}

// WithConfig sets the entire configuration.
func WithConfig(config *Config) Option {
	return func(a *Auditor) error {
		a.config = config
		return nil
	}
}
