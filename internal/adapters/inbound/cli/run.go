package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cdkparity/cdkparity/internal/adapters/outbound/config"
	"github.com/cdkparity/cdkparity/internal/adapters/outbound/discovery"
	"github.com/cdkparity/cdkparity/internal/adapters/outbound/gitinfo"
	"github.com/cdkparity/cdkparity/internal/adapters/outbound/runner"
	"github.com/cdkparity/cdkparity/internal/adapters/outbound/tui"
	"github.com/cdkparity/cdkparity/internal/application"
	"github.com/cdkparity/cdkparity/internal/domain"
)

func newRunCmd() *cobra.Command {
	var (
		skipDeploy  bool
		skipPackage bool
		examples    []string
		parallel    int
		jsonOutput  bool
		reportFile  string
	)

	cmd := &cobra.Command{
		Use:   "run [examples-root]",
		Short: "Run the full verification harness",
		Long:  "Synthesize all examples, compare templates across variants, and deploy/destroy the TypeScript examples. Exit code 0 means every phase was clean.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			absRoot, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg, err := config.New().Load(absRoot)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			var sink domain.Sink
			if jsonOutput {
				sink = domain.NopSink{}
			} else {
				sink = tui.NewConsoleSink(cmd.OutOrStdout())
			}

			// Propagate interrupts into in-flight subprocesses so an
			// aborted run does not orphan half-deployed stacks.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc := application.NewRunService(
				runner.New(cfg.Timeout()),
				discovery.New(),
				gitinfo.New(),
				sink,
			)

			report, err := svc.Run(ctx, cfg, application.RunOptions{
				Root:        absRoot,
				SkipDeploy:  skipDeploy,
				SkipPackage: skipPackage,
				Examples:    examples,
				Parallel:    parallel,
			})
			if err != nil {
				sink.Event(domain.SeverityError, err.Error())
				return err
			}

			if reportFile != "" {
				if err := writeReportFile(reportFile, report); err != nil {
					return fmt.Errorf("writing report file: %w", err)
				}
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderSummary(report))
			}

			if report.ExitCode() != 0 {
				return fmt.Errorf("%d error(s) found", report.Failures())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipDeploy, "skip-deploy", false, "Skip the deploy/destroy phase")
	cmd.Flags().BoolVar(&skipPackage, "skip-package", false, "Skip the package build phase")
	cmd.Flags().StringSliceVar(&examples, "examples", nil, "Only process the named examples (comma-separated or repeated)")
	cmd.Flags().IntVar(&parallel, "parallel", 1, "Max concurrent synthesis jobs")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run report as JSON")
	cmd.Flags().StringVar(&reportFile, "report-file", "", "Also write the run report as JSON to this file")

	return cmd
}

func writeReportFile(path string, report *domain.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
