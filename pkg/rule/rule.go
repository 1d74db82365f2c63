// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package rule implements the ban-comments lint rule: it decides which
// comments are allowed and reports the rest with a fix that deletes them.
package rule

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/errors"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/source"
)

const jsdocOpener = "/**"

var (
	eslintDirective     = regexp.MustCompile(`^\s*eslint`)
	typeScriptDirective = regexp.MustCompile(`^\s*@ts-`)
)

// Rule is a compiled ban-comments rule. It is immutable and safe for
// concurrent use.
type Rule struct {
	opts            Options
	severity        Severity
	defaultPatterns []*regexp.Regexp
	allowedPatterns []*regexp.Regexp
}

// New compiles opts. An invalid pattern in AllowedPatterns fails here,
// before any comment is evaluated.
func New(opts Options) (*Rule, error) {
	compiled := make([]*regexp.Regexp, 0, len(opts.AllowedPatterns))
	for i, p := range opts.AllowedPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, errors.ConfigError(fmt.Sprintf("invalid allowedPatterns[%d] %q", i, p), err).
				WithContext("pattern", p)
		}
		compiled = append(compiled, re)
	}

	var defaults []*regexp.Regexp
	if opts.AllowEslintDirectives {
		defaults = append(defaults, eslintDirective)
	}
	if opts.AllowTypeScriptDirectives {
		defaults = append(defaults, typeScriptDirective)
	}

	return &Rule{
		opts:            opts,
		severity:        SeverityError,
		defaultPatterns: defaults,
		allowedPatterns: compiled,
	}, nil
}

// MustNew is New for options known to be valid. It panics on error.
func MustNew(opts Options) *Rule {
	r, err := New(opts)
	if err != nil {
		panic(err)
	}
	return r
}

// WithSeverity returns a copy of r reporting at severity s.
func (r *Rule) WithSeverity(s Severity) *Rule {
	cp := *r
	cp.severity = s
	return &cp
}

// Options returns the options r was compiled from.
func (r *Rule) Options() Options {
	return r.opts
}

// Severity returns the severity diagnostics are reported at.
func (r *Rule) Severity() Severity {
	return r.severity
}

// IsAllowed reports whether c may stay in the source. Checks run in a
// fixed order and the first match allows the comment.
func (r *Rule) IsAllowed(c source.Comment) bool {
	if r.opts.AllowShebang && c.Kind == source.Shebang {
		return true
	}

	// The JSDoc marker is the opening delimiter, so test the raw text.
	if r.opts.AllowJSDoc && c.Kind == source.Block && strings.HasPrefix(c.Raw, jsdocOpener) {
		return true
	}

	text := trim(c.Value)

	for _, prefix := range r.opts.AllowedPrefixes {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}

	for _, re := range r.defaultPatterns {
		if re.MatchString(text) {
			return true
		}
	}

	for _, re := range r.allowedPatterns {
		if re.MatchString(text) {
			return true
		}
	}

	return false
}

// Check evaluates every comment and returns a diagnostic for each one that
// is not allowed, in the order given. A rule at SeverityOff reports nothing.
func (r *Rule) Check(comments []source.Comment) []Diagnostic {
	if r.severity == SeverityOff {
		return nil
	}
	var diags []Diagnostic
	for _, c := range comments {
		if r.IsAllowed(c) {
			continue
		}
		diags = append(diags, r.report(c))
	}
	return diags
}

func (r *Rule) report(c source.Comment) Diagnostic {
	return Diagnostic{
		RuleID:    Name,
		MessageID: MessageNoComments,
		Message:   Meta.Messages[MessageNoComments],
		Severity:  r.severity,
		Line:      c.Span.StartPos.Line,
		Column:    c.Span.StartPos.Column,
		EndLine:   c.Span.EndPos.Line,
		EndColumn: c.Span.EndPos.Column,
		Comment:   c,
		Fix:       &Fix{Range: [2]int{c.Span.Start, c.Span.End}, Text: ""},
	}
}

// trim strips leading and trailing whitespace, including the byte order
// mark, from comment text.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
