// Package main provides the ban-comments CLI application.
package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/config"
	runctx "github.com/cicd-ai-toolkit/ban-comments/pkg/context"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/errors"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/governance"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/observability"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/output"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/rule"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/runner"
)

// defaultStdinFilename selects the JavaScript grammar for --stdin input.
const defaultStdinFilename = "stdin.js"

// checkFlags holds the flags for the check and fix commands.
type checkFlags struct {
	fix           bool
	fixDryRun     bool
	stdin         bool
	stdinFilename string
	format        string
	quiet         bool
	maxWarnings   int
	watch         bool
	options       string
	severity      string
	jobs          int
	metricsFile   string
	timeout       time.Duration
}

func newCheckCmd(gf *globalFlags) *cobra.Command {
	var cf checkFlags

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report comments in JavaScript and TypeScript files",
		Long: `Check files and directories for comments that are not allowed.

Directories are searched recursively for supported extensions; names in
files.exclude are skipped. With no paths the current directory is checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := runner.FixNone
			switch {
			case cf.fix && cf.fixDryRun:
				return errors.ValidationError("--fix and --fix-dry-run are mutually exclusive", nil)
			case cf.fix:
				mode = runner.FixWrite
			case cf.fixDryRun:
				mode = runner.FixDryRun
			}
			return runCheck(cmd, gf, &cf, mode, args)
		},
	}
	addCheckFlags(cmd, &cf)
	cmd.Flags().BoolVar(&cf.fix, "fix", false, "Remove reported comments from the files")
	cmd.Flags().BoolVar(&cf.fixDryRun, "fix-dry-run", false, "Compute fixes without writing them")
	return cmd
}

func newFixCmd(gf *globalFlags) *cobra.Command {
	var cf checkFlags

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Remove disallowed comments (same as check --fix)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, gf, &cf, runner.FixWrite, args)
		},
	}
	addCheckFlags(cmd, &cf)
	return cmd
}

func addCheckFlags(cmd *cobra.Command, cf *checkFlags) {
	f := cmd.Flags()
	f.BoolVar(&cf.stdin, "stdin", false, "Read source text from standard input")
	f.StringVar(&cf.stdinFilename, "stdin-filename", defaultStdinFilename, "File name used for --stdin input; its extension selects the language")
	f.StringVarP(&cf.format, "format", "f", output.FormatStylish, fmt.Sprintf("Output format: %v", output.Formats()))
	f.BoolVarP(&cf.quiet, "quiet", "q", false, "Report errors only")
	f.IntVar(&cf.maxWarnings, "max-warnings", -1, "Number of warnings that triggers a non-zero exit code (-1 disables)")
	f.BoolVarP(&cf.watch, "watch", "w", false, "Re-check on file changes until interrupted")
	f.StringVar(&cf.options, "options", "", "Rule options as JSON, replacing the configured options")
	f.StringVar(&cf.severity, "severity", "", "Rule severity: off, warn, error")
	f.IntVarP(&cf.jobs, "jobs", "j", 0, "Files checked in parallel (0 = number of CPUs)")
	f.StringVar(&cf.metricsFile, "metrics-file", "", "Write Prometheus metrics for the run to this file")
	f.DurationVar(&cf.timeout, "timeout", 0, "Abort the run after this duration (0 = no limit; ignored with --watch)")
}

// applyFlags overrides cfg with explicitly set command flags.
func (cf *checkFlags) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cf.options != "" {
		opts, err := rule.ParseOptions([]byte(cf.options))
		if err != nil {
			return err
		}
		cfg.Rules.BanComments.Options = opts
	}
	if cf.severity != "" {
		cfg.Rules.BanComments.Severity = cf.severity
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Global.Jobs = cf.jobs
	}
	if err := config.NewValidator().Validate(cfg); err != nil {
		return errors.ConfigError("invalid command-line configuration", err)
	}
	return nil
}

func runCheck(cmd *cobra.Command, gf *globalFlags, cf *checkFlags, mode runner.FixMode, args []string) error {
	if cf.stdin && len(args) > 0 {
		return errors.ValidationError("--stdin cannot be combined with paths", nil)
	}
	if cf.stdin && cf.watch {
		return errors.ValidationError("--stdin cannot be combined with --watch", nil)
	}

	cfg, err := gf.loadConfig()
	if err != nil {
		return err
	}
	if err := cf.applyFlags(cmd, cfg); err != nil {
		return err
	}

	logger := gf.newLogger(cfg, cmd.ErrOrStderr())
	for _, src := range cfg.Sources {
		logger.Debug("config loaded", observability.String("path", src))
	}

	formatter, err := output.NewFormatter(cf.format, output.Options{Color: gf.colorEnabled(cmd.OutOrStdout())})
	if err != nil {
		return errors.ValidationError("invalid --format", err)
	}
	reporter := output.NewReporter(cmd.OutOrStdout(), formatter, output.WithQuiet(cf.quiet))

	metrics := observability.NewMetrics()
	rn, err := runner.NewFromConfig(cfg, mode,
		runner.WithLogger(logger),
		runner.WithMetrics(metrics),
	)
	if err != nil {
		return errors.ConfigError("invalid rule configuration", err)
	}

	if cf.watch {
		ctx, stop := runctx.WithSignal(cmd.Context(), runctx.Interrupts()...)
		defer stop()
		return rn.Watch(ctx, pathsOrCwd(args), func(results []*output.Result, err error) {
			if err != nil {
				logger.Error("check failed", observability.Err(err))
				return
			}
			if _, err := reporter.Report(ctx, results); err != nil {
				logger.Error("report failed", observability.Err(err))
			}
		})
	}

	ctx, cancel := runctx.WithSignalTimeout(cmd.Context(), cf.timeout, runctx.Interrupts()...)
	defer cancel()

	var results []*output.Result
	if cf.stdin {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return errors.IOError("failed to read standard input", err)
		}
		res, err := rn.RunSource(ctx, cf.stdinFilename, content)
		if err != nil {
			return err
		}
		results = []*output.Result{res}
	} else {
		results, err = rn.Run(ctx, pathsOrCwd(args))
		if err != nil {
			return err
		}
	}

	totals, err := reporter.Report(ctx, results)
	if err != nil {
		return errors.IOError("failed to write report", err)
	}
	if cf.metricsFile != "" {
		if err := metrics.WriteTextfile(cf.metricsFile); err != nil {
			return errors.IOError("failed to write metrics", err).WithContext("path", cf.metricsFile)
		}
	}

	return governance.Evaluate(totals, cf.maxWarnings)
}

func pathsOrCwd(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}
