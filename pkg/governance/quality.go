// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package governance decides whether a run passes.
package governance

import (
	"fmt"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/errors"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/output"
)

// QualityGate defines a check on run totals that must pass.
type QualityGate interface {
	// Name returns the gate name.
	Name() string

	// Check evaluates the totals of a run.
	Check(totals output.Totals) *GateResult
}

// GateResult represents the result of a quality gate check.
type GateResult struct {
	Passed  bool
	Name    string
	Message string
}

// ErrorGate fails when any error-severity problem was reported.
type ErrorGate struct{}

// Name returns the gate name.
func (ErrorGate) Name() string { return "errors" }

// Check fails on any error.
func (g ErrorGate) Check(totals output.Totals) *GateResult {
	return &GateResult{
		Passed:  totals.Errors == 0,
		Name:    g.Name(),
		Message: fmt.Sprintf("%d error(s)", totals.Errors),
	}
}

// WarningGate fails when warnings exceed Max. A negative Max disables it.
type WarningGate struct {
	Max int
}

// Name returns the gate name.
func (WarningGate) Name() string { return "max-warnings" }

// Check fails when warnings exceed the threshold.
func (g WarningGate) Check(totals output.Totals) *GateResult {
	return &GateResult{
		Passed:  g.Max < 0 || totals.Warnings <= g.Max,
		Name:    g.Name(),
		Message: fmt.Sprintf("%d warning(s), maximum %d", totals.Warnings, g.Max),
	}
}

// DefaultGates returns the gates of a check run.
func DefaultGates(maxWarnings int) []QualityGate {
	return []QualityGate{ErrorGate{}, WarningGate{Max: maxWarnings}}
}

// Run evaluates every gate and returns their results in order.
func Run(totals output.Totals, gates ...QualityGate) []*GateResult {
	results := make([]*GateResult, 0, len(gates))
	for _, gate := range gates {
		results = append(results, gate.Check(totals))
	}
	return results
}

// Evaluate returns a *errors.ProblemsError if any gate fails, nil otherwise.
func Evaluate(totals output.Totals, maxWarnings int) error {
	for _, res := range Run(totals, DefaultGates(maxWarnings)...) {
		if res.Passed {
			continue
		}
		problems := &errors.ProblemsError{Errors: totals.Errors, Warnings: totals.Warnings, MaxWarnings: -1}
		if res.Name == (WarningGate{}).Name() {
			problems.MaxWarnings = maxWarnings
		}
		return problems
	}
	return nil
}
