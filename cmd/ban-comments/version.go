// Package main provides the ban-comments CLI application.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/rule"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display detailed version information including build date, git commit, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Info()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ban-comments version: %s\n", info["version"])
			fmt.Fprintf(out, "  build date: %s\n", info["buildDate"])
			fmt.Fprintf(out, "  git commit: %s\n", info["gitCommit"])
			fmt.Fprintf(out, "  go version: %s\n", info["goVersion"])
			fmt.Fprintf(out, "  rules:      %s\n", strings.Join(rule.Names(), ", "))
		},
	}
}
