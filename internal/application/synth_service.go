package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cdkparity/cdkparity/internal/domain"
)

// SynthService synthesizes one example at a time: install dependencies,
// install the locally built library artifact, run the synthesis tool, locate
// and read the produced template. Every step failure is captured into the
// SynthOutcome; the service never returns a per-example error so the
// orchestrator can keep processing the batch.
type SynthService struct {
	runner      domain.CommandRunner
	cfg         domain.Config
	root        string // examples root
	projectRoot string // parent of the examples root; holds dist/ and build scripts
	sink        domain.Sink
}

func NewSynthService(runner domain.CommandRunner, cfg domain.Config, root string, sink domain.Sink) *SynthService {
	return &SynthService{
		runner:      runner,
		cfg:         cfg,
		root:        root,
		projectRoot: filepath.Dir(root),
		sink:        sink,
	}
}

// Synthesize runs the full synthesis pipeline for one example.
func (s *SynthService) Synthesize(ctx context.Context, ex domain.ExampleRef) domain.SynthOutcome {
	exampleDir := filepath.Join(s.root, ex.RelPath)
	vc := s.cfg.Variants[ex.Variant]

	if err := s.installDeps(ctx, ex, exampleDir, vc); err != nil {
		return failure(ex, err)
	}
	if err := s.installArtifact(ctx, ex, exampleDir, vc); err != nil {
		return failure(ex, err)
	}
	if err := s.synth(ctx, ex, exampleDir); err != nil {
		return failure(ex, err)
	}

	templatePath, err := s.locateTemplate(exampleDir)
	if err != nil {
		return failure(ex, err)
	}

	data, err := os.ReadFile(templatePath)
	if err != nil {
		return failure(ex, fmt.Errorf("reading template: %w", err))
	}

	return domain.SynthOutcome{Example: ex, Success: true, Template: string(data)}
}

func (s *SynthService) installDeps(ctx context.Context, ex domain.ExampleRef, dir string, vc domain.VariantConfig) error {
	s.sink.Event(domain.SeverityInfo, fmt.Sprintf("Installing dependencies for %s...", ex.RelPath))
	start := time.Now()

	res, err := s.runner.Run(ctx, vc.InstallDeps, dir)
	if err != nil {
		return fmt.Errorf("dependency install: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("dependency install failed: %s", res.Combined())
	}

	s.sink.Event(domain.SeveritySuccess, fmt.Sprintf("Dependencies installed (%s)", domain.FormatDuration(time.Since(start))))
	return nil
}

func (s *SynthService) installArtifact(ctx context.Context, ex domain.ExampleRef, dir string, vc domain.VariantConfig) error {
	s.sink.Event(domain.SeverityInfo, fmt.Sprintf("Installing local package for %s...", ex.RelPath))
	start := time.Now()

	artifact, err := s.locateArtifact(vc)
	if err != nil {
		return err
	}

	argv := append(append([]string{}, vc.InstallArtifact...), artifact)
	res, err := s.runner.Run(ctx, argv, dir)
	if err != nil {
		return fmt.Errorf("local package install: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("local package install failed: %s", res.Combined())
	}

	s.sink.Event(domain.SeveritySuccess, fmt.Sprintf("Local package installed (%s)", domain.FormatDuration(time.Since(start))))
	return nil
}

// locateArtifact globs for the single locally built artifact of the variant.
// Zero or more than one match means the build output is not in a state the
// harness can trust.
func (s *SynthService) locateArtifact(vc domain.VariantConfig) (string, error) {
	pattern := filepath.Join(s.projectRoot, vc.ArtifactDir, vc.ArtifactGlob)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("globbing %s: %w", pattern, err)
	}
	if len(matches) != 1 {
		return "", fmt.Errorf("ambiguous or missing local artifact: %d matches for %s", len(matches), pattern)
	}
	return matches[0], nil
}

func (s *SynthService) synth(ctx context.Context, ex domain.ExampleRef, dir string) error {
	s.sink.Event(domain.SeverityInfo, fmt.Sprintf("Synthing %s...", ex.RelPath))
	start := time.Now()

	res, err := s.runner.Run(ctx, s.cfg.SynthCommand, dir)
	if err != nil {
		return fmt.Errorf("synth: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("synth failed: %s", res.Combined())
	}

	s.sink.Event(domain.SeveritySuccess, fmt.Sprintf("Synthesis completed (%s)", domain.FormatDuration(time.Since(start))))
	return nil
}

// locateTemplate finds the structured output document: immediate children of
// the output directory first, then a recursive walk. Multiple candidates
// (multi-stack examples) deterministically resolve to the first in sorted
// order.
func (s *SynthService) locateTemplate(exampleDir string) (string, error) {
	outDir := filepath.Join(exampleDir, s.cfg.OutputDir)
	if _, err := os.Stat(outDir); err != nil {
		return "", fmt.Errorf("%s directory not found", s.cfg.OutputDir)
	}

	candidates, err := templatesIn(outDir, s.cfg.TemplateSuffix, false)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		candidates, err = templatesIn(outDir, s.cfg.TemplateSuffix, true)
		if err != nil {
			return "", err
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no %s file found in %s", s.cfg.TemplateSuffix, s.cfg.OutputDir)
	}

	sort.Strings(candidates)
	return candidates[0], nil
}

func templatesIn(dir, suffix string, recursive bool) ([]string, error) {
	var out []string
	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), suffix) {
				out = append(out, filepath.Join(dir, e.Name()))
			}
		}
		return out, nil
	}

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), suffix) {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

func failure(ex domain.ExampleRef, err error) domain.SynthOutcome {
	return domain.SynthOutcome{Example: ex, Success: false, Err: err.Error()}
}
