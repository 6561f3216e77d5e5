package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cdkparity/cdkparity/internal/domain"
)

func TestRunReport_ExitCode_Clean(t *testing.T) {
	report := &domain.RunReport{
		Synth: []domain.SynthOutcome{
			{Example: domain.ExampleRef{Name: "advanced"}, Success: true, Template: "{}"},
		},
		Comparisons: []domain.ComparisonOutcome{
			{Name: "advanced", Matched: true},
		},
		Lifecycle: []domain.LifecycleOutcome{
			{Example: domain.ExampleRef{Name: "advanced"}, Deployed: true, Destroyed: true},
		},
	}

	assert.Equal(t, 0, report.Failures())
	assert.Equal(t, 0, report.ExitCode())
}

func TestRunReport_DestroyFailureIsIndependent(t *testing.T) {
	report := &domain.RunReport{
		Lifecycle: []domain.LifecycleOutcome{
			{
				Example:    domain.ExampleRef{Name: "advanced"},
				Deployed:   true,
				Destroyed:  false,
				DestroyErr: "destroy failed: stack busy",
			},
		},
	}

	assert.Empty(t, report.DeployErrors())
	assert.Len(t, report.DestroyErrors(), 1)
	assert.Equal(t, 1, report.ExitCode())
}

func TestRunReport_SkippedComparisonIsNotAFailure(t *testing.T) {
	report := &domain.RunReport{
		Comparisons: []domain.ComparisonOutcome{
			{Name: "ghes", Skipped: true, Reason: "no Python template"},
		},
	}

	assert.Empty(t, report.Mismatches())
	assert.Equal(t, 0, report.ExitCode())
}

func TestRunReport_AggregatesAcrossPhases(t *testing.T) {
	report := &domain.RunReport{
		Synth: []domain.SynthOutcome{
			{Example: domain.ExampleRef{Name: "a"}, Success: false, Err: "npm install failed"},
			{Example: domain.ExampleRef{Name: "b"}, Success: true, Template: "{}"},
		},
		Comparisons: []domain.ComparisonOutcome{
			{Name: "b", Matched: false, Diff: "--- typescript\n"},
		},
		Lifecycle: []domain.LifecycleOutcome{
			{Example: domain.ExampleRef{Name: "b"}, DeployErr: "boom"},
		},
	}

	assert.Equal(t, 3, report.Failures())
	assert.Equal(t, 1, report.ExitCode())
}

func TestCommandResult_Combined(t *testing.T) {
	assert.Equal(t, "out", domain.CommandResult{Stdout: "out"}.Combined())
	assert.Equal(t, "err", domain.CommandResult{Stderr: "err"}.Combined())
	assert.Equal(t, "err\nout", domain.CommandResult{Stdout: "out", Stderr: "err"}.Combined())
}

func TestDefaultConfig_IsValid(t *testing.T) {
	assert.NoError(t, domain.DefaultConfig().Validate())
}

func TestConfig_Validate_CatchesHoles(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.TimeoutSeconds = 0
	assert.Error(t, cfg.Validate())

	cfg = domain.DefaultConfig()
	cfg.SynthCommand = nil
	assert.Error(t, cfg.Validate())

	cfg = domain.DefaultConfig()
	vc := cfg.Variants[domain.VariantPython]
	vc.EntryPoint = ""
	cfg.Variants[domain.VariantPython] = vc
	assert.Error(t, cfg.Validate())

	cfg = domain.DefaultConfig()
	delete(cfg.Variants, domain.VariantTypeScript)
	assert.Error(t, cfg.Validate())
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.5s", domain.FormatDuration(1500*1000*1000))
	assert.Equal(t, "2m 5.0s", domain.FormatDuration(125*1000*1000*1000))
}
