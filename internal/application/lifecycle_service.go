package application

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/cdkparity/cdkparity/internal/domain"
)

// LifecycleService deploys and destroys one example against the real target.
// Output is streamed live through the sink while being buffered for failure
// reporting. A failed deploy is never followed by a destroy attempt; the
// half-created stack is left for the operator.
type LifecycleService struct {
	runner domain.CommandRunner
	cfg    domain.Config
	root   string
	sink   domain.Sink
}

func NewLifecycleService(runner domain.CommandRunner, cfg domain.Config, root string, sink domain.Sink) *LifecycleService {
	return &LifecycleService{runner: runner, cfg: cfg, root: root, sink: sink}
}

// DeployAndDestroy runs the deploy step and, only on deploy success, the
// destroy step. Destroy failure is recorded independently so operators can
// tell "deployed but failed to clean up" from "never deployed".
func (s *LifecycleService) DeployAndDestroy(ctx context.Context, ex domain.ExampleRef) domain.LifecycleOutcome {
	outcome := domain.LifecycleOutcome{Example: ex}
	dir := s.exampleDir(ex)

	s.sink.Event(domain.SeverityInfo, fmt.Sprintf("Deploying %s...", ex.RelPath))
	start := time.Now()
	res, err := s.runner.RunStreaming(ctx, s.cfg.DeployCommand, dir, s.sink.Line)
	if err != nil {
		outcome.DeployErr = fmt.Sprintf("deploy error: %v", err)
		return outcome
	}
	if res.ExitCode != 0 {
		outcome.DeployErr = fmt.Sprintf("deploy failed:\n%s", res.Combined())
		return outcome
	}
	outcome.Deployed = true
	s.sink.Event(domain.SeveritySuccess, fmt.Sprintf("Deployment completed (%s)", domain.FormatDuration(time.Since(start))))

	s.sink.Event(domain.SeverityInfo, fmt.Sprintf("Destroying %s...", ex.RelPath))
	start = time.Now()
	res, err = s.runner.RunStreaming(ctx, s.cfg.DestroyCommand, dir, s.sink.Line)
	if err != nil {
		outcome.DestroyErr = fmt.Sprintf("destroy error: %v", err)
		return outcome
	}
	if res.ExitCode != 0 {
		outcome.DestroyErr = fmt.Sprintf("destroy failed:\n%s", res.Combined())
		return outcome
	}
	outcome.Destroyed = true
	s.sink.Event(domain.SeveritySuccess, fmt.Sprintf("Destruction completed (%s)", domain.FormatDuration(time.Since(start))))

	return outcome
}

func (s *LifecycleService) exampleDir(ex domain.ExampleRef) string {
	return filepath.Join(s.root, ex.RelPath)
}
