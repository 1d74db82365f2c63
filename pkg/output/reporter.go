// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package output

import (
	"context"
	"io"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/rule"
)

// Reporter writes formatted results to an output stream.
type Reporter struct {
	w         io.Writer
	formatter Formatter
	quiet     bool
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithQuiet hides warnings from the written report. Totals still count them.
func WithQuiet(quiet bool) ReporterOption {
	return func(r *Reporter) {
		r.quiet = quiet
	}
}

// NewReporter creates a new reporter.
func NewReporter(w io.Writer, formatter Formatter, opts ...ReporterOption) *Reporter {
	r := &Reporter{w: w, formatter: formatter}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report sorts results by path, writes them and returns their totals.
func (r *Reporter) Report(ctx context.Context, results []*Result) (Totals, error) {
	if err := ctx.Err(); err != nil {
		return Totals{}, err
	}

	SortResults(results)
	totals := Summarize(results)

	shown := results
	if r.quiet {
		shown = errorsOnly(results)
	}
	if err := r.formatter.Format(r.w, shown); err != nil {
		return totals, err
	}
	return totals, nil
}

func errorsOnly(results []*Result) []*Result {
	out := make([]*Result, 0, len(results))
	for _, res := range results {
		filtered := make([]rule.Diagnostic, 0, len(res.Messages))
		for _, d := range res.Messages {
			if d.Severity == rule.SeverityError {
				filtered = append(filtered, d)
			}
		}
		cp := *res
		cp.SetMessages(filtered)
		out = append(out, &cp)
	}
	return out
}
