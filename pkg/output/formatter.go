// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package output provides result formatting and reporting.
package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/fix"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/rule"
)

// Format names.
const (
	FormatStylish = "stylish"
	FormatCompact = "compact"
	FormatJSON    = "json"
	FormatDiff    = "diff"
	FormatGitHub  = "github"
)

// Formatter writes results to w.
type Formatter interface {
	Format(w io.Writer, results []*Result) error
}

// Options configures a formatter.
type Options struct {
	Color bool
}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string, opts Options) (Formatter, error) {
	switch name {
	case FormatStylish, "":
		return &stylishFormatter{color: opts.Color}, nil
	case FormatCompact:
		return compactFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	case FormatDiff:
		return diffFormatter{}, nil
	case FormatGitHub:
		return &AnnotationFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want one of %v)", name, Formats())
	}
}

// Formats lists the available format names.
func Formats() []string {
	return []string{FormatStylish, FormatCompact, FormatJSON, FormatDiff, FormatGitHub}
}

// Result is the outcome of checking one file.
type Result struct {
	FilePath            string            `json:"filePath"`
	Messages            []rule.Diagnostic `json:"messages"`
	ErrorCount          int               `json:"errorCount"`
	WarningCount        int               `json:"warningCount"`
	FixableErrorCount   int               `json:"fixableErrorCount"`
	FixableWarningCount int               `json:"fixableWarningCount"`
	// Output holds the fixed source when fixes were applied.
	Output string `json:"output,omitempty"`
	Fixed  bool   `json:"-"`

	// Source and Edits describe the fix against the original content.
	Source []byte     `json:"-"`
	Edits  []fix.Edit `json:"-"`
}

// NewResult builds a result for path and counts its diagnostics.
func NewResult(path string, src []byte, diags []rule.Diagnostic) *Result {
	r := &Result{
		FilePath: path,
		Messages: diags,
		Source:   src,
		Edits:    fix.Edits(diags),
	}
	if r.Messages == nil {
		r.Messages = []rule.Diagnostic{}
	}
	r.count()
	return r
}

// SetMessages replaces the remaining diagnostics and recounts them.
func (r *Result) SetMessages(diags []rule.Diagnostic) {
	if diags == nil {
		diags = []rule.Diagnostic{}
	}
	r.Messages = diags
	r.count()
}

func (r *Result) count() {
	r.ErrorCount, r.WarningCount = 0, 0
	r.FixableErrorCount, r.FixableWarningCount = 0, 0
	for _, d := range r.Messages {
		switch d.Severity {
		case rule.SeverityError:
			r.ErrorCount++
			if d.Fix != nil {
				r.FixableErrorCount++
			}
		case rule.SeverityWarn:
			r.WarningCount++
			if d.Fix != nil {
				r.FixableWarningCount++
			}
		}
	}
}

// Totals aggregates counts over results.
type Totals struct {
	Files           int
	Errors          int
	Warnings        int
	FixableErrors   int
	FixableWarnings int
	Fixed           int
}

// Problems returns errors plus warnings.
func (t Totals) Problems() int {
	return t.Errors + t.Warnings
}

// Summarize totals results.
func Summarize(results []*Result) Totals {
	var t Totals
	for _, r := range results {
		t.Files++
		t.Errors += r.ErrorCount
		t.Warnings += r.WarningCount
		t.FixableErrors += r.FixableErrorCount
		t.FixableWarnings += r.FixableWarningCount
		if r.Fixed {
			t.Fixed++
		}
	}
	return t
}

// SortResults orders results by file path.
func SortResults(results []*Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FilePath < results[j].FilePath
	})
}
