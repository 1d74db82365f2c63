// Package main provides the ban-comments CLI application.
package main

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/config"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/errors"
)

func newConfigCmd(gf *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create configuration",
	}
	cmd.AddCommand(newConfigPrintCmd(gf), newConfigInitCmd(), newConfigValidateCmd())
	return cmd
}

func newConfigPrintCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := gf.loadConfig()
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return errors.ConfigError("failed to encode configuration", err)
			}

			out := cmd.OutOrStdout()
			for _, src := range cfg.Sources {
				fmt.Fprintf(out, "# source: %s\n", src)
			}
			env := config.GetEnvConfig()
			keys := make([]string, 0, len(env))
			for k, v := range env {
				if v != "" {
					keys = append(keys, k)
				}
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "# env: %s=%s\n", k, env[k])
			}
			_, err = out.Write(data)
			return err
		},
	}
}

// newConfigValidateCmd checks a single file on its own, without the global
// config or environment overrides.
func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.NewLoader().LoadFromPath(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default " + config.ProjectConfigFile,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path := config.GetProjectConfigPath(dir)

			if _, err := os.Stat(path); err == nil && !force {
				return errors.ValidationError(fmt.Sprintf("%s already exists (use --force to overwrite)", path), nil)
			} else if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
				return errors.IOError("cannot inspect "+path, err)
			}

			data, err := config.DefaultConfig().Marshal()
			if err != nil {
				return errors.ConfigError("failed to encode configuration", err)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return errors.IOError("cannot create "+filepath.Dir(path), err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return errors.IOError("cannot write "+path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
