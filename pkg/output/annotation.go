// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/rule"
)

// AnnotationFormatter writes GitHub Actions workflow commands so problems
// show up inline on pull requests.
type AnnotationFormatter struct{}

// Format writes one ::error or ::warning command per problem.
func (f *AnnotationFormatter) Format(w io.Writer, results []*Result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		for _, d := range r.Messages {
			bw.WriteString(Annotation(r.FilePath, d))
			bw.WriteString("\n")
		}
	}
	return bw.Flush()
}

// Annotation renders d as a workflow command for file.
func Annotation(file string, d rule.Diagnostic) string {
	command := "error"
	if d.Severity == rule.SeverityWarn {
		command = "warning"
	}
	title := d.RuleID
	if title == "" {
		title = rule.Name
	}
	return fmt.Sprintf("::%s file=%s,line=%d,col=%d,endLine=%d,endColumn=%d,title=%s::%s",
		command,
		escapeProperty(file),
		d.Line, d.Column, d.EndLine, d.EndColumn,
		escapeProperty(title),
		escapeData(d.Message),
	)
}

var (
	dataEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

func escapeData(s string) string {
	return dataEscaper.Replace(s)
}

func escapeProperty(s string) string {
	return propEscaper.Replace(s)
}
