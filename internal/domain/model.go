package domain

import (
	"time"
)

// Variant identifies one of the two parallel example implementations.
type Variant string

const (
	VariantTypeScript Variant = "typescript"
	VariantPython     Variant = "python"
)

// Variants returns both variants in fixed order.
func Variants() []Variant {
	return []Variant{VariantTypeScript, VariantPython}
}

// ExampleRef identifies one discovered example project. Immutable after
// discovery.
type ExampleRef struct {
	Variant Variant `json:"variant"`
	RelPath string  `json:"rel_path"`
	Name    string  `json:"name"`
}

// CommandResult is the outcome of one external command invocation. A non-zero
// exit code is a normal, representable outcome, not an error.
type CommandResult struct {
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
}

// Combined returns stderr followed by stdout, the order used in failure
// messages.
func (r CommandResult) Combined() string {
	if r.Stderr == "" {
		return r.Stdout
	}
	if r.Stdout == "" {
		return r.Stderr
	}
	return r.Stderr + "\n" + r.Stdout
}

// SynthOutcome records one attempted synthesis. Success is true iff Template
// is present and Err is empty.
type SynthOutcome struct {
	Example  ExampleRef `json:"example"`
	Success  bool       `json:"success"`
	Template string     `json:"template,omitempty"`
	Err      string     `json:"error,omitempty"`
}

// ComparisonOutcome records one template comparison between the two variants
// of the same example. Matched is true iff Diff is empty. Pairs missing a
// successful counterpart are recorded with Skipped set and a reason, never
// as failures.
type ComparisonOutcome struct {
	Name    string `json:"name"`
	Matched bool   `json:"matched"`
	Skipped bool   `json:"skipped,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Diff    string `json:"diff,omitempty"`
}

// LifecycleOutcome records one deploy/destroy cycle. Deployed and Destroyed
// are independent: a failed destroy never retroactively marks the deploy as
// failed.
type LifecycleOutcome struct {
	Example    ExampleRef `json:"example"`
	Deployed   bool       `json:"deployed"`
	Destroyed  bool       `json:"destroyed"`
	DeployErr  string     `json:"deploy_error,omitempty"`
	DestroyErr string     `json:"destroy_error,omitempty"`
}

// RunReport aggregates every outcome of one harness invocation. It is the
// terminal artifact and the sole input to the process exit status.
type RunReport struct {
	RunID       string              `json:"run_id"`
	StartedAt   time.Time           `json:"started_at"`
	Duration    time.Duration       `json:"duration"`
	CommitHash  string              `json:"commit_hash,omitempty"`
	PhaseNotes  []string            `json:"phase_notes,omitempty"`
	Synth       []SynthOutcome      `json:"synth"`
	Comparisons []ComparisonOutcome `json:"comparisons"`
	Lifecycle   []LifecycleOutcome  `json:"lifecycle"`
}

// AddNote records a phase-level note (e.g. a skipped phase).
func (r *RunReport) AddNote(note string) {
	r.PhaseNotes = append(r.PhaseNotes, note)
}

// SynthErrors returns the synthesis outcomes that failed.
func (r *RunReport) SynthErrors() []SynthOutcome {
	var out []SynthOutcome
	for _, s := range r.Synth {
		if !s.Success {
			out = append(out, s)
		}
	}
	return out
}

// Mismatches returns the comparisons that ran and did not match.
func (r *RunReport) Mismatches() []ComparisonOutcome {
	var out []ComparisonOutcome
	for _, c := range r.Comparisons {
		if !c.Skipped && !c.Matched {
			out = append(out, c)
		}
	}
	return out
}

// DeployErrors returns the lifecycle outcomes whose deploy failed.
func (r *RunReport) DeployErrors() []LifecycleOutcome {
	var out []LifecycleOutcome
	for _, l := range r.Lifecycle {
		if l.DeployErr != "" {
			out = append(out, l)
		}
	}
	return out
}

// DestroyErrors returns the lifecycle outcomes whose destroy failed.
func (r *RunReport) DestroyErrors() []LifecycleOutcome {
	var out []LifecycleOutcome
	for _, l := range r.Lifecycle {
		if l.DestroyErr != "" {
			out = append(out, l)
		}
	}
	return out
}

// Failures returns the total number of recorded failures across all phases.
func (r *RunReport) Failures() int {
	return len(r.SynthErrors()) + len(r.Mismatches()) +
		len(r.DeployErrors()) + len(r.DestroyErrors())
}

// ExitCode is 0 iff every failure list is empty.
func (r *RunReport) ExitCode() int {
	if r.Failures() == 0 {
		return 0
	}
	return 1
}
