// Package runner executes external tools via os/exec. A non-zero exit is a
// normal CommandResult; only the inability to start a process at all is
// surfaced as an error.
package runner

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/cdkparity/cdkparity/internal/domain"
)

// TimeoutExitCode is the sentinel exit code synthesized when a command
// exceeds the per-invocation timeout.
const TimeoutExitCode = 124

// maxLineBytes bounds a single streamed output line. CloudFormation event
// lines can be long but never near this.
const maxLineBytes = 1024 * 1024

// ExecRunner implements domain.CommandRunner with a fixed per-command
// timeout.
type ExecRunner struct {
	timeout time.Duration
}

// New creates an ExecRunner. A non-positive timeout disables the bound.
func New(timeout time.Duration) *ExecRunner {
	return &ExecRunner{timeout: timeout}
}

// LookPath resolves an executable name against PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes argv in dir and captures stdout and stderr separately.
func (r *ExecRunner) Run(ctx context.Context, argv []string, dir string) (domain.CommandResult, error) {
	cctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cmd := exec.CommandContext(cctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return domain.CommandResult{}, fmt.Errorf("starting %s: %w", argv[0], err)
	}

	err := cmd.Wait()
	return r.finish(cctx, argv, err, stdout.String(), stderr.String())
}

// RunStreaming executes argv in dir with stdout and stderr merged, emitting
// each output line through onLine as it arrives while buffering the full
// text. One read pass serves both the live console echo and the post-hoc
// error report.
func (r *ExecRunner) RunStreaming(ctx context.Context, argv []string, dir string, onLine func(string)) (domain.CommandResult, error) {
	cctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cmd := exec.CommandContext(cctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		pr.Close()
		return domain.CommandResult{}, fmt.Errorf("starting %s: %w", argv[0], err)
	}

	var buf strings.Builder
	done := make(chan struct{})
	go func() {
		defer close(done)
		sc := bufio.NewScanner(pr)
		sc.Buffer(make([]byte, 64*1024), maxLineBytes)
		for sc.Scan() {
			line := sc.Text()
			buf.WriteString(line)
			buf.WriteByte('\n')
			if onLine != nil {
				onLine(line)
			}
		}
		if err := sc.Err(); err != nil {
			// The scanner stopped mid-stream (e.g. a line over maxLineBytes).
			// Keep draining the pipe: with no reader the exec copy goroutine
			// blocks on write and Wait never returns, not even after the
			// context kills the process.
			buf.WriteString(fmt.Sprintf("(output truncated: %v)\n", err))
			io.Copy(io.Discard, pr)
		}
	}()

	err := cmd.Wait()
	pw.Close()
	<-done
	pr.Close()

	return r.finish(cctx, argv, err, buf.String(), "")
}

func (r *ExecRunner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// finish maps a Wait error onto the CommandResult contract: timeouts become
// the sentinel result, non-zero exits become normal results, anything else
// is a real error.
func (r *ExecRunner) finish(ctx context.Context, argv []string, err error, stdout, stderr string) (domain.CommandResult, error) {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.CommandResult{
			ExitCode: TimeoutExitCode,
			Stdout:   stdout,
			Stderr:   fmt.Sprintf("command %q timed out after %s", strings.Join(argv, " "), r.timeout),
		}, nil
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return domain.CommandResult{
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout,
				Stderr:   stderr,
			}, nil
		}
		return domain.CommandResult{}, fmt.Errorf("running %s: %w", argv[0], err)
	}

	return domain.CommandResult{ExitCode: 0, Stdout: stdout, Stderr: stderr}, nil
}
