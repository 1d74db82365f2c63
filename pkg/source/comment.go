// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package source extracts comment tokens from JavaScript and TypeScript
// source text.
package source

import "strings"

// Kind is the comment kind.
type Kind string

const (
	// Line is a `// ...` comment.
	Line Kind = "Line"
	// Block is a `/* ... */` comment.
	Block Kind = "Block"
	// Shebang is the `#!` interpreter line at the start of a script.
	Shebang Kind = "Shebang"
)

// Position is a 1-based line and column. Columns count bytes.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Span locates a token in the source. Start and End are byte offsets,
// End exclusive.
type Span struct {
	Start    int      `json:"start"`
	End      int      `json:"end"`
	StartPos Position `json:"startPos"`
	EndPos   Position `json:"endPos"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Comment is one comment occurrence.
type Comment struct {
	Kind Kind `json:"type"`
	// Raw is the full token text including delimiters.
	Raw string `json:"raw"`
	// Value is the text with delimiters stripped.
	Value string `json:"value"`
	Span  Span   `json:"span"`
}

// NewComment builds a Comment from its raw text, deriving Value from Kind.
func NewComment(kind Kind, raw string, span Span) Comment {
	return Comment{
		Kind:  kind,
		Raw:   raw,
		Value: stripDelimiters(kind, raw),
		Span:  span,
	}
}

func stripDelimiters(kind Kind, raw string) string {
	switch kind {
	case Line:
		return strings.TrimPrefix(raw, "//")
	case Shebang:
		return strings.TrimPrefix(raw, "#!")
	case Block:
		v := strings.TrimPrefix(raw, "/*")
		return strings.TrimSuffix(v, "*/")
	default:
		return raw
	}
}
