// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"fmt"
	"strings"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/rule"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/source"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"console", "json"}
)

// Validator validates configuration.
type Validator struct{}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates a configuration. It compiles the rule so that pattern
// errors surface before any file is read.
func (v *Validator) Validate(cfg *Config) error {
	if err := v.ValidateRule(&cfg.Rules.BanComments); err != nil {
		return err
	}
	if err := v.ValidateFiles(&cfg.Files); err != nil {
		return err
	}
	if err := v.ValidateGlobal(&cfg.Global); err != nil {
		return err
	}
	return nil
}

// ValidateRule validates the ban-comments rule configuration.
func (v *Validator) ValidateRule(cfg *RuleConfig) error {
	if _, err := rule.ParseSeverity(cfg.Severity); err != nil {
		return &ValidationError{
			Field:   "rules.ban-comments.severity",
			Value:   cfg.Severity,
			Message: "must be one of: off, warn, error",
		}
	}
	if _, err := rule.New(cfg.Options); err != nil {
		return &ValidationError{
			Field:   "rules.ban-comments.options.allowedPatterns",
			Message: err.Error(),
		}
	}
	return nil
}

// ValidateFiles validates file selection.
func (v *Validator) ValidateFiles(cfg *FilesConfig) error {
	for i, ext := range cfg.Extensions {
		if _, ok := source.LanguageFor("file" + ext); !ok || !strings.HasPrefix(ext, ".") {
			return &ValidationError{
				Field:   fmt.Sprintf("files.extensions[%d]", i),
				Value:   ext,
				Message: fmt.Sprintf("must be one of: %s", strings.Join(source.Extensions(), ", ")),
			}
		}
	}
	return nil
}

// ValidateGlobal validates global configuration.
func (v *Validator) ValidateGlobal(cfg *GlobalConfig) error {
	if err := oneOf("global.log_level", cfg.LogLevel, validLogLevels); err != nil {
		return err
	}
	if err := oneOf("global.log_format", cfg.LogFormat, validLogFormats); err != nil {
		return err
	}

	if cfg.Jobs < 0 {
		return &ValidationError{
			Field:   "global.jobs",
			Value:   cfg.Jobs,
			Message: "must be non-negative",
		}
	}
	if cfg.CacheSize < 0 {
		return &ValidationError{
			Field:   "global.cache_size",
			Value:   cfg.CacheSize,
			Message: "must be non-negative",
		}
	}
	if cfg.MaxFileSize < 0 {
		return &ValidationError{
			Field:   "global.max_file_size",
			Value:   cfg.MaxFileSize,
			Message: "must be non-negative",
		}
	}

	return nil
}

func oneOf(field, value string, valid []string) error {
	if value == "" {
		return nil
	}
	for _, candidate := range valid {
		if strings.EqualFold(value, candidate) {
			return nil
		}
	}
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(valid, ", ")),
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error for %s: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}
