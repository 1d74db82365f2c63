// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package config provides configuration management for ban-comments.
//
// Configuration Loading Order (later overrides earlier):
// 1. Defaults (hardcoded)
// 2. Global Config: $HOME/.config/ban-comments/config.yaml
// 3. Project Config: ./.ban-comments.yaml (searched upwards) or an explicit path
// 4. Environment Variables: BAN_COMMENTS_*
package config

import (
	"gopkg.in/yaml.v3"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/rule"
)

// Config represents the complete application configuration.
type Config struct {
	Rules  RulesConfig  `yaml:"rules"`
	Files  FilesConfig  `yaml:"files"`
	Global GlobalConfig `yaml:"global"`

	// Sources lists the files the configuration was read from, in order.
	Sources []string `yaml:"-"`
}

// RulesConfig holds per-rule settings, keyed by rule name.
type RulesConfig struct {
	BanComments RuleConfig `yaml:"ban-comments"`
}

// RuleConfig configures one rule.
type RuleConfig struct {
	Severity string       `yaml:"severity"` // off, warn, error
	Options  rule.Options `yaml:"options"`
}

// FilesConfig selects which files are checked when a directory is given.
type FilesConfig struct {
	Extensions []string `yaml:"extensions"`
	Exclude    []string `yaml:"exclude"` // directory or file base names
}

// GlobalConfig contains global application settings.
type GlobalConfig struct {
	LogLevel    string `yaml:"log_level"`     // debug, info, warn, error
	LogFormat   string `yaml:"log_format"`    // console, json
	Jobs        int    `yaml:"jobs"`          // 0 means one per CPU
	CacheSize   int    `yaml:"cache_size"`    // LRU entries, 0 disables
	MaxFileSize int    `yaml:"max_file_size"` // bytes
}

// Rule compiles the ban-comments rule with its configured severity.
func (c *Config) Rule() (*rule.Rule, error) {
	severity, err := rule.ParseSeverity(c.Rules.BanComments.Severity)
	if err != nil {
		return nil, &ValidationError{
			Field:   "rules.ban-comments.severity",
			Value:   c.Rules.BanComments.Severity,
			Message: err.Error(),
		}
	}
	factory, err := rule.Lookup(rule.Name)
	if err != nil {
		return nil, err
	}
	r, err := factory(c.Rules.BanComments.Options)
	if err != nil {
		return nil, err
	}
	return r.WithSeverity(severity), nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
