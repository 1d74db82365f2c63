// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/fix"
)

// compactFormatter writes one line per problem.
type compactFormatter struct{}

func (compactFormatter) Format(w io.Writer, results []*Result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		for _, d := range r.Messages {
			fmt.Fprintf(bw, "%s:%d:%d: %s %s", r.FilePath, d.Line, d.Column, severityLabel(d.Severity), d.Message)
			if d.RuleID != "" {
				fmt.Fprintf(bw, " (%s)", d.RuleID)
			}
			bw.WriteByte('\n')
		}
	}
	if t := Summarize(results); t.Problems() > 0 {
		fmt.Fprintf(bw, "\n%s\n", plural(t.Problems(), "problem"))
	}
	return bw.Flush()
}

// jsonFormatter writes all results as a single JSON array.
type jsonFormatter struct{}

func (jsonFormatter) Format(w io.Writer, results []*Result) error {
	if results == nil {
		results = []*Result{}
	}
	return json.NewEncoder(w).Encode(results)
}

// diffFormatter writes the unified diff each fix would produce.
type diffFormatter struct{}

func (diffFormatter) Format(w io.Writer, results []*Result) error {
	for _, r := range results {
		if len(r.Edits) == 0 {
			continue
		}
		out, err := fix.Diff(r.FilePath, r.Source, r.Edits)
		if err != nil {
			return err
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
	}
	return nil
}
