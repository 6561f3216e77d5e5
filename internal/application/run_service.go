package application

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cdkparity/cdkparity/internal/domain"
	"github.com/cdkparity/cdkparity/internal/domain/naming"
	"github.com/cdkparity/cdkparity/internal/domain/template"
)

// RunOptions control one harness invocation.
type RunOptions struct {
	// Root is the examples root (the directory holding the two variant
	// subdirectories).
	Root string
	// SkipDeploy skips the deploy/destroy phase.
	SkipDeploy bool
	// SkipPackage skips the up-front package build phase.
	SkipPackage bool
	// Examples filters discovery to the named examples.
	Examples []string
	// Parallel bounds concurrent synthesis. Values below 2 keep the phase
	// strictly sequential.
	Parallel int
}

// RunService is the orchestrator: it sequences discovery, package build,
// synthesis, comparison and lifecycle, and owns the single RunReport. Phases
// isolate failures per example; only a missing tool, a failed package build
// or an empty discovery abort the run.
type RunService struct {
	runner     domain.CommandRunner
	discoverer domain.ExampleDiscoverer
	git        domain.GitInfo
	sink       domain.Sink
}

func NewRunService(runner domain.CommandRunner, discoverer domain.ExampleDiscoverer, git domain.GitInfo, sink domain.Sink) *RunService {
	return &RunService{runner: runner, discoverer: discoverer, git: git, sink: sink}
}

// Run executes all phases and returns the aggregated report. The returned
// error is non-nil only for whole-run aborts; per-example failures live in
// the report.
func (s *RunService) Run(ctx context.Context, cfg domain.Config, opts RunOptions) (*domain.RunReport, error) {
	start := time.Now()

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving examples root: %w", err)
	}
	projectRoot := filepath.Dir(root)

	report := &domain.RunReport{
		RunID:     uuid.NewString(),
		StartedAt: start,
	}
	if hash, err := s.git.CommitHash(projectRoot); err == nil {
		report.CommitHash = hash
	}

	if err := s.checkPrerequisites(cfg); err != nil {
		return nil, err
	}

	if opts.SkipPackage {
		report.AddNote("package build skipped (--skip-package)")
	} else if err := s.buildPackage(ctx, cfg, projectRoot); err != nil {
		return nil, err
	}

	ts, py, err := s.discover(cfg, root, opts.Examples)
	if err != nil {
		return nil, err
	}

	s.synthAll(ctx, cfg, root, ts, py, opts.Parallel, report)
	s.compareAll(report)

	if opts.SkipDeploy {
		report.AddNote("deploy phase skipped (--skip-deploy)")
		s.sink.Section("Phase 3: Skipped (--skip-deploy flag)")
	} else {
		s.lifecycle(ctx, cfg, root, ts, report)
	}

	report.Duration = time.Since(start)
	return report, nil
}

// checkPrerequisites resolves every configured tool before any phase runs.
func (s *RunService) checkPrerequisites(cfg domain.Config) error {
	s.sink.Section("Checking prerequisites")
	for _, tool := range cfg.Tools {
		if _, err := s.runner.LookPath(tool); err != nil {
			s.sink.Event(domain.SeverityError, fmt.Sprintf("%s not found", tool))
			return fmt.Errorf("%w: %s", domain.ErrToolNotFound, tool)
		}
		s.sink.Event(domain.SeveritySuccess, fmt.Sprintf("%s found", tool))
	}
	return nil
}

// buildPackage runs the up-front build steps in the project root. Each step
// is fail-hard: without a trustworthy local artifact every later phase is
// meaningless.
func (s *RunService) buildPackage(ctx context.Context, cfg domain.Config, projectRoot string) error {
	s.sink.Section("Building Package")
	for _, step := range cfg.BuildSteps {
		name := strings.Join(step, " ")
		s.sink.Event(domain.SeverityInfo, fmt.Sprintf("Running %s...", name))
		start := time.Now()

		res, err := s.runner.Run(ctx, step, projectRoot)
		if err != nil {
			return fmt.Errorf("package build step %q: %w", name, err)
		}
		if res.ExitCode != 0 {
			s.sink.Event(domain.SeverityError, fmt.Sprintf("%s failed: %s", name, res.Combined()))
			return fmt.Errorf("package build step %q failed with exit code %d", name, res.ExitCode)
		}
		s.sink.Event(domain.SeveritySuccess, fmt.Sprintf("%s (%s)", name, domain.FormatDuration(time.Since(start))))
	}
	return nil
}

func (s *RunService) discover(cfg domain.Config, root string, filter []string) (ts, py []domain.ExampleRef, err error) {
	s.sink.Section("Finding examples")
	if len(filter) > 0 {
		s.sink.Event(domain.SeverityInfo, "Filtering to examples: "+strings.Join(filter, ", "))
	}

	ts, py, err = s.discoverer.Discover(root, cfg, filter)
	if err != nil {
		return nil, nil, err
	}

	s.sink.Event(domain.SeveritySuccess, fmt.Sprintf("Found %d TypeScript examples", len(ts)))
	s.sink.Event(domain.SeveritySuccess, fmt.Sprintf("Found %d Python examples", len(py)))
	return ts, py, nil
}

// synthAll synthesizes every example of both variants. Outcomes land in
// report.Synth in discovery order regardless of parallelism.
func (s *RunService) synthAll(ctx context.Context, cfg domain.Config, root string, ts, py []domain.ExampleRef, parallel int, report *domain.RunReport) {
	s.sink.Section("Phase 1: Synthesizing Examples")

	all := make([]domain.ExampleRef, 0, len(ts)+len(py))
	all = append(all, ts...)
	all = append(all, py...)

	synth := NewSynthService(s.runner, cfg, root, s.sink)
	outcomes := make([]domain.SynthOutcome, len(all))

	if parallel < 2 {
		for i, ex := range all {
			outcomes[i] = s.synthOne(ctx, synth, ex)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(parallel)
		for i, ex := range all {
			g.Go(func() error {
				outcomes[i] = s.synthOne(gctx, synth, ex)
				return nil
			})
		}
		// Workers never return errors; per-example failures live in the
		// outcome slots.
		_ = g.Wait()
	}

	report.Synth = outcomes
}

func (s *RunService) synthOne(ctx context.Context, synth *SynthService, ex domain.ExampleRef) domain.SynthOutcome {
	s.sink.Event(domain.SeverityInfo, fmt.Sprintf("Synthing %s: %s", ex.Variant, ex.RelPath))
	outcome := synth.Synthesize(ctx, ex)
	if outcome.Success {
		s.sink.Event(domain.SeveritySuccess, "Success")
	} else {
		s.sink.Event(domain.SeverityError, "Failed: "+outcome.Err)
	}
	return outcome
}

// compareAll pairs up successful synth outcomes by example name. Names with
// no successful counterpart in the other variant are recorded as skipped
// with a reason; they never count as failures.
func (s *RunService) compareAll(report *domain.RunReport) {
	s.sink.Section("Phase 2: Comparing Templates")

	tsTemplates := make(map[string]string)
	pyTemplates := make(map[string]string)
	nameSet := make(map[string]bool)
	for _, o := range report.Synth {
		nameSet[o.Example.Name] = true
		if !o.Success {
			continue
		}
		switch o.Example.Variant {
		case domain.VariantTypeScript:
			tsTemplates[o.Example.Name] = o.Template
		case domain.VariantPython:
			pyTemplates[o.Example.Name] = o.Template
		}
	}

	names := make([]string, 0, len(nameSet))
	for n := range nameSet {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, name := range names {
		tsT, tsOK := tsTemplates[name]
		pyT, pyOK := pyTemplates[name]
		switch {
		case !tsOK:
			s.sink.Event(domain.SeverityWarn, name+": no TypeScript template")
			report.Comparisons = append(report.Comparisons, domain.ComparisonOutcome{
				Name: name, Skipped: true, Reason: "no TypeScript template",
			})
			continue
		case !pyOK:
			s.sink.Event(domain.SeverityWarn, name+": no Python template")
			report.Comparisons = append(report.Comparisons, domain.ComparisonOutcome{
				Name: name, Skipped: true, Reason: "no Python template",
			})
			continue
		}

		s.sink.Event(domain.SeverityInfo, "Comparing "+name+"...")
		matched, diff := template.Compare(tsT, pyT, string(domain.VariantTypeScript), string(domain.VariantPython))
		if matched {
			s.sink.Event(domain.SeveritySuccess, "Templates match")
		} else {
			s.sink.Event(domain.SeverityError, "Templates differ")
			for _, line := range strings.Split(template.TruncateDiff(diff, 20), "\n") {
				s.sink.Line(line)
			}
		}
		report.Comparisons = append(report.Comparisons, domain.ComparisonOutcome{
			Name: name, Matched: matched, Diff: diff,
		})
	}
}

// lifecycle deploys and destroys the TypeScript examples whose synthesis
// succeeded, strictly sequentially per example.
func (s *RunService) lifecycle(ctx context.Context, cfg domain.Config, root string, ts []domain.ExampleRef, report *domain.RunReport) {
	s.sink.Section("Phase 3: Deploying and Destroying TypeScript Examples")

	succeeded := make(map[string]bool)
	for _, o := range report.Synth {
		if o.Success && o.Example.Variant == domain.VariantTypeScript {
			succeeded[o.Example.Name] = true
		}
	}

	lc := NewLifecycleService(s.runner, cfg, root, s.sink)
	var skipped []domain.ExampleRef
	for _, ex := range ts {
		if !succeeded[ex.Name] {
			skipped = append(skipped, ex)
			continue
		}

		s.sink.Event(domain.SeverityInfo, fmt.Sprintf("Testing deployment: %s (%s)", naming.DisplayName(naming.StackName(ex.Name)), ex.RelPath))
		outcome := lc.DeployAndDestroy(ctx, ex)
		report.Lifecycle = append(report.Lifecycle, outcome)

		if outcome.DeployErr != "" {
			s.sink.Event(domain.SeverityError, "Deploy failed")
		} else if outcome.DestroyErr != "" {
			s.sink.Event(domain.SeverityError, "Destroy failed")
		}
	}

	if len(skipped) > 0 {
		s.sink.Event(domain.SeverityWarn, fmt.Sprintf("Skipped %d example(s) due to synthesis failures:", len(skipped)))
		for _, ex := range skipped {
			s.sink.Event(domain.SeverityWarn, "  - "+ex.RelPath)
		}
	}
}
