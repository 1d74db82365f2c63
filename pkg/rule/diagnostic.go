// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package rule

import (
	"fmt"
	"strings"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/source"
)

// Severity is the reporting level of a rule.
type Severity string

const (
	SeverityOff   Severity = "off"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// ParseSeverity accepts off, warn/warning and error, case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "0":
		return SeverityOff, nil
	case "warn", "warning", "1":
		return SeverityWarn, nil
	case "error", "2":
		return SeverityError, nil
	default:
		return "", fmt.Errorf("unknown severity %q (want off, warn or error)", s)
	}
}

// Fix replaces the source bytes in Range [start, end) with Text.
type Fix struct {
	Range [2]int `json:"range"`
	Text  string `json:"text"`
}

// Diagnostic is one reported comment.
type Diagnostic struct {
	RuleID    string         `json:"ruleId"`
	MessageID string         `json:"messageId"`
	Message   string         `json:"message"`
	Severity  Severity       `json:"severity"`
	Line      int            `json:"line"`
	Column    int            `json:"column"`
	EndLine   int            `json:"endLine"`
	EndColumn int            `json:"endColumn"`
	Comment   source.Comment `json:"-"`
	Fix       *Fix           `json:"fix,omitempty"`
	// Fatal marks a file that could not be parsed; RuleID is empty then.
	Fatal bool `json:"fatal,omitempty"`
}

// ParsingError reports a source that does not parse. It is always an
// error, whatever the rule severity, and carries no fix.
func ParsingError(se *source.SyntaxError) Diagnostic {
	return Diagnostic{
		Message:   "Parsing error: " + se.Error(),
		Severity:  SeverityError,
		Line:      se.Position.Line,
		Column:    se.Position.Column,
		EndLine:   se.Position.Line,
		EndColumn: se.Position.Column,
		Fatal:     true,
	}
}
