package domain

import (
	"fmt"
	"time"
)

// VariantConfig describes the tooling for one example variant.
type VariantConfig struct {
	// Dir is the variant's subdirectory under the examples root.
	Dir string `yaml:"dir"`
	// EntryPoint is the file that qualifies a subdirectory as an example.
	EntryPoint string `yaml:"entry_point"`
	// InstallDeps installs the example's declared dependencies, run inside
	// the example directory.
	InstallDeps []string `yaml:"install_deps"`
	// ArtifactDir holds the locally built package, relative to the project
	// root (the parent of the examples root).
	ArtifactDir string `yaml:"artifact_dir"`
	// ArtifactGlob matches exactly one installable artifact in ArtifactDir.
	ArtifactGlob string `yaml:"artifact_glob"`
	// InstallArtifact installs the local artifact; the matched artifact path
	// is appended as the final argument.
	InstallArtifact []string `yaml:"install_artifact"`
}

// Config is the harness configuration. DefaultConfig covers the standard CDK
// toolchain; a .cdkparity.yaml at the examples root overrides individual
// fields.
type Config struct {
	Variants map[Variant]VariantConfig `yaml:"variants"`

	SynthCommand   []string `yaml:"synth_command"`
	DeployCommand  []string `yaml:"deploy_command"`
	DestroyCommand []string `yaml:"destroy_command"`

	// OutputDir is the synthesis tool's output directory inside an example.
	OutputDir string `yaml:"output_dir"`
	// TemplateSuffix identifies structured output documents in OutputDir.
	TemplateSuffix string `yaml:"template_suffix"`

	// BuildSteps are run once up front in the project root, each fail-hard.
	BuildSteps [][]string `yaml:"build_steps"`

	// Tools are executables that must be resolvable before any phase runs.
	Tools []string `yaml:"tools"`

	// TimeoutSeconds bounds every external command invocation.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// DefaultConfig returns the standard CDK toolchain configuration.
func DefaultConfig() Config {
	return Config{
		Variants: map[Variant]VariantConfig{
			VariantTypeScript: {
				Dir:             "typescript",
				EntryPoint:      "app.ts",
				InstallDeps:     []string{"npm", "install", "--no-package-lock"},
				ArtifactDir:     "dist/js",
				ArtifactGlob:    "*.tgz",
				InstallArtifact: []string{"npm", "install", "--no-save"},
			},
			VariantPython: {
				Dir:             "python",
				EntryPoint:      "app.py",
				InstallDeps:     []string{"pip", "install", "-r", "requirements.txt"},
				ArtifactDir:     "dist/python",
				ArtifactGlob:    "*.whl",
				InstallArtifact: []string{"pip", "install"},
			},
		},
		SynthCommand: []string{
			"cdk", "synth",
			"--quiet",
			"--no-asset-metadata",
			"--no-path-metadata",
			"--no-version-reporting",
		},
		DeployCommand:  []string{"cdk", "deploy", "--require-approval", "never", "--all"},
		DestroyCommand: []string{"cdk", "destroy", "--force", "--all"},
		OutputDir:      "cdk.out",
		TemplateSuffix: ".template.json",
		BuildSteps: [][]string{
			{"yarn", "run", "bundle"},
			{"yarn", "run", "compile"},
			{"yarn", "run", "package:js"},
			{"yarn", "run", "package:python"},
		},
		Tools:          []string{"cdk", "npm", "yarn"},
		TimeoutSeconds: 600,
	}
}

// Timeout returns the per-command timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks the configuration for holes that would make a run
// meaningless.
func (c Config) Validate() error {
	for _, v := range Variants() {
		vc, ok := c.Variants[v]
		if !ok {
			return fmt.Errorf("variant %q is not configured", v)
		}
		if vc.Dir == "" {
			return fmt.Errorf("variant %q: dir must not be empty", v)
		}
		if vc.EntryPoint == "" {
			return fmt.Errorf("variant %q: entry_point must not be empty", v)
		}
		if len(vc.InstallDeps) == 0 {
			return fmt.Errorf("variant %q: install_deps must not be empty", v)
		}
		if len(vc.InstallArtifact) == 0 {
			return fmt.Errorf("variant %q: install_artifact must not be empty", v)
		}
	}
	if len(c.SynthCommand) == 0 {
		return fmt.Errorf("synth_command must not be empty")
	}
	if len(c.DeployCommand) == 0 {
		return fmt.Errorf("deploy_command must not be empty")
	}
	if len(c.DestroyCommand) == 0 {
		return fmt.Errorf("destroy_command must not be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.TemplateSuffix == "" {
		return fmt.Errorf("template_suffix must not be empty")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive")
	}
	return nil
}
