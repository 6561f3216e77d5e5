package domain

import "context"

// CommandRunner executes external tools. Run captures output; RunStreaming
// additionally emits each merged stdout/stderr line through onLine as it is
// produced, while still buffering the full text. Both return an error only
// when the process could not be started at all; a non-zero exit is reported
// through CommandResult.
type CommandRunner interface {
	Run(ctx context.Context, argv []string, dir string) (CommandResult, error)
	RunStreaming(ctx context.Context, argv []string, dir string, onLine func(string)) (CommandResult, error)
	LookPath(name string) (string, error)
}

// ExampleDiscoverer finds example projects under a root directory.
type ExampleDiscoverer interface {
	Discover(root string, cfg Config, filter []string) (ts []ExampleRef, py []ExampleRef, err error)
}

// ConfigLoader loads the harness configuration for an examples root.
type ConfigLoader interface {
	Load(root string) (Config, error)
}

// GitInfo reports version-control metadata for a directory.
type GitInfo interface {
	CommitHash(path string) (string, error)
}

// Severity classifies sink events.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarn
	SeverityError
)

// Sink receives phase-by-phase console output. Implementations decide
// rendering (colored terminal, plain text, discard); phases never format
// directly. Line carries raw streamed subprocess output and must write whole
// lines so concurrent examples cannot interleave mid-line.
type Sink interface {
	Section(title string)
	Event(sev Severity, msg string)
	Line(text string)
}

// NopSink discards all output. Used by tests and by JSON output mode.
type NopSink struct{}

func (NopSink) Section(string)        {}
func (NopSink) Event(Severity, string) {}
func (NopSink) Line(string)           {}
