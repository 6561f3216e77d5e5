package runner_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdkparity/cdkparity/internal/adapters/outbound/runner"
)

func TestRun_CapturesOutputAndExitCode(t *testing.T) {
	r := runner.New(time.Minute)

	res, err := r.Run(context.Background(), []string{"sh", "-c", "echo out; echo err >&2"}, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	r := runner.New(time.Minute)

	res, err := r.Run(context.Background(), []string{"sh", "-c", "exit 3"}, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
}

func TestRun_MissingExecutableIsAnError(t *testing.T) {
	r := runner.New(time.Minute)

	_, err := r.Run(context.Background(), []string{"definitely-not-a-real-binary-xyz"}, t.TempDir())
	assert.Error(t, err)
}

func TestRun_RespectsWorkingDir(t *testing.T) {
	r := runner.New(time.Minute)
	dir := t.TempDir()

	res, err := r.Run(context.Background(), []string{"pwd"}, dir)
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, dir)
}

func TestRun_TimeoutSynthesizesSentinelResult(t *testing.T) {
	r := runner.New(100 * time.Millisecond)

	res, err := r.Run(context.Background(), []string{"sleep", "5"}, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, runner.TimeoutExitCode, res.ExitCode)
	assert.Contains(t, res.Stderr, "timed out")
}

func TestRunStreaming_EchoesAndBuffers(t *testing.T) {
	r := runner.New(time.Minute)

	var lines []string
	res, err := r.RunStreaming(context.Background(),
		[]string{"sh", "-c", "echo one; echo two >&2; echo three"},
		t.TempDir(),
		func(line string) { lines = append(lines, line) },
	)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)

	// stdout and stderr are merged into a single stream; the buffered text
	// must be exactly the emitted lines.
	assert.ElementsMatch(t, []string{"one", "two", "three"}, lines)
	for _, line := range lines {
		assert.Contains(t, res.Stdout, line+"\n")
	}
}

func TestRunStreaming_FailureKeepsBufferedOutput(t *testing.T) {
	r := runner.New(time.Minute)

	res, err := r.RunStreaming(context.Background(),
		[]string{"sh", "-c", "echo stack exploded; exit 1"},
		t.TempDir(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stdout, "stack exploded")
}

func TestRunStreaming_OverlongLineDoesNotBlock(t *testing.T) {
	r := runner.New(time.Minute)

	// A single 2MB line exceeds the scanner's line limit; the runner must
	// still drain the stream and return.
	res, err := r.RunStreaming(context.Background(),
		[]string{"sh", "-c", `head -c 2097152 /dev/zero | tr '\0' a`},
		t.TempDir(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stdout, "output truncated")
}

func TestRunStreaming_OverlongLineStillTimesOut(t *testing.T) {
	r := runner.New(500 * time.Millisecond)

	start := time.Now()
	res, err := r.RunStreaming(context.Background(),
		[]string{"sh", "-c", `head -c 2097152 /dev/zero | tr '\0' a; sleep 10 >/dev/null 2>&1`},
		t.TempDir(), nil)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, runner.TimeoutExitCode, res.ExitCode)
	assert.Contains(t, res.Stderr, "timed out")
}

func TestRun_CancelKillsProcess(t *testing.T) {
	r := runner.New(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	res, err := r.Run(ctx, []string{"sleep", "10"}, t.TempDir())
	assert.Less(t, time.Since(start), 5*time.Second)
	if err == nil {
		assert.NotEqual(t, 0, res.ExitCode)
	}
}

func TestLookPath(t *testing.T) {
	r := runner.New(time.Minute)

	_, err := r.LookPath("sh")
	assert.NoError(t, err)

	_, err = r.LookPath("definitely-not-a-real-binary-xyz")
	assert.Error(t, err)
}
