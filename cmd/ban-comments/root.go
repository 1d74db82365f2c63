// Package main provides the ban-comments CLI application.
package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/config"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/errors"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/observability"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/output"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/version"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
	noColor   bool
}

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	var gf globalFlags

	rootCmd := &cobra.Command{
		Use:   "ban-comments",
		Short: "Disallow comments in JavaScript and TypeScript files",
		Long: `ban-comments reports and removes comments from JavaScript and
TypeScript sources.

Directive comments (eslint..., @ts-...), shebang lines and, optionally,
JSDoc blocks are allowed; further exceptions are configured with
allowedPrefixes and allowedPatterns in .ban-comments.yaml.`,
		Version:       version.FullString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&gf.config, "config", "c", "", "Path to configuration file (default: search for .ban-comments.yaml)")
	rootCmd.PersistentFlags().StringVar(&gf.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&gf.logFormat, "log-format", "", "Log format: console, json")
	rootCmd.PersistentFlags().BoolVar(&gf.noColor, "no-color", false, "Disable coloured output")

	rootCmd.AddCommand(
		newCheckCmd(&gf),
		newFixCmd(&gf),
		newConfigCmd(&gf),
		newVersionCmd(),
	)
	return rootCmd
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err != nil {
		printError(stderr, err)
	}
	return errors.ExitCode(err)
}

// printError writes err for the user. Lint errors were already reported, so
// only the warning threshold message is repeated.
func printError(w io.Writer, err error) {
	var problems *errors.ProblemsError
	if stderrors.As(err, &problems) {
		if problems.Errors == 0 {
			fmt.Fprintf(w, "ban-comments: %v\n", err)
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// loadConfig loads configuration and applies the global flag overrides.
func (gf *globalFlags) loadConfig() (*config.Config, error) {
	loader := config.NewLoader()
	if gf.config != "" {
		loader = loader.WithPath(gf.config)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if gf.logLevel != "" {
		cfg.Global.LogLevel = gf.logLevel
	}
	if gf.logFormat != "" {
		cfg.Global.LogFormat = gf.logFormat
	}
	return cfg, nil
}

func (gf *globalFlags) newLogger(cfg *config.Config, w io.Writer) observability.Logger {
	return observability.NewLoggerWithOptions(observability.LoggerOptions{
		Level:   cfg.Global.LogLevel,
		Format:  cfg.Global.LogFormat,
		Out:     w,
		NoColor: !gf.colorEnabled(w),
	})
}

func (gf *globalFlags) colorEnabled(w io.Writer) bool {
	if gf.noColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && output.ColorEnabled(f)
}
