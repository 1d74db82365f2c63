// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/rule"
)

var (
	colorError = lipgloss.Color("#E74C3C")
	colorWarn  = lipgloss.Color("#F4D03F")
	colorMuted = lipgloss.Color("#6B7280")

	styleFile    = lipgloss.NewStyle().Underline(true)
	styleError   = lipgloss.NewStyle().Foreground(colorError)
	styleWarn    = lipgloss.NewStyle().Foreground(colorWarn)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleSummary = lipgloss.NewStyle().Bold(true)
)

// stylishFormatter groups problems by file, one aligned row per problem.
type stylishFormatter struct {
	color bool
}

func (f *stylishFormatter) paint(style lipgloss.Style, s string) string {
	if !f.color {
		return s
	}
	return style.Render(s)
}

func (f *stylishFormatter) Format(w io.Writer, results []*Result) error {
	var b strings.Builder

	for _, r := range results {
		if len(r.Messages) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(f.paint(styleFile, r.FilePath))
		b.WriteString("\n")

		rows := make([][4]string, 0, len(r.Messages))
		var widths [3]int
		for _, d := range r.Messages {
			row := [4]string{
				fmt.Sprintf("%d:%d", d.Line, d.Column),
				severityLabel(d.Severity),
				d.Message,
				d.RuleID,
			}
			for i := range widths {
				if n := lipgloss.Width(row[i]); n > widths[i] {
					widths[i] = n
				}
			}
			rows = append(rows, row)
		}

		for _, row := range rows {
			b.WriteString("  ")
			b.WriteString(f.paint(styleMuted, pad(row[0], widths[0])))
			b.WriteString("  ")
			b.WriteString(f.paint(severityStyle(row[1]), pad(row[1], widths[1])))
			b.WriteString("  ")
			b.WriteString(pad(row[2], widths[2]))
			b.WriteString("  ")
			b.WriteString(f.paint(styleMuted, row[3]))
			b.WriteString("\n")
		}
	}

	t := Summarize(results)
	if t.Problems() > 0 {
		style := styleWarn
		if t.Errors > 0 {
			style = styleError
		}
		b.WriteString("\n")
		b.WriteString(f.paint(style.Inherit(styleSummary), fmt.Sprintf("✖ %s (%s, %s)",
			plural(t.Problems(), "problem"),
			plural(t.Errors, "error"),
			plural(t.Warnings, "warning"))))
		b.WriteString("\n")

		if t.FixableErrors > 0 || t.FixableWarnings > 0 {
			b.WriteString(f.paint(style, fmt.Sprintf("  %s and %s potentially fixable with the `--fix` option.",
				plural(t.FixableErrors, "error"),
				plural(t.FixableWarnings, "warning"))))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func severityLabel(s rule.Severity) string {
	if s == rule.SeverityWarn {
		return "warning"
	}
	return string(s)
}

func severityStyle(label string) lipgloss.Style {
	if label == "warning" {
		return styleWarn
	}
	return styleError
}

func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
