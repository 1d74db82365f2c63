// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"os"
	"path/filepath"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/rule"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/source"
)

// DefaultConfig returns the default configuration.
// These values are used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		Rules: RulesConfig{
			BanComments: DefaultRuleConfig(),
		},
		Files:  DefaultFilesConfig(),
		Global: DefaultGlobalConfig(),
	}
}

// DefaultRuleConfig returns the ban-comments rule at error severity with
// default options.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		Severity: string(rule.SeverityError),
		Options:  rule.DefaultOptions(),
	}
}

// DefaultFilesConfig returns default file selection.
func DefaultFilesConfig() FilesConfig {
	return FilesConfig{
		Extensions: source.Extensions(),
		Exclude:    []string{"node_modules", ".git", "dist", "build", "coverage"},
	}
}

// DefaultGlobalConfig returns default global configuration.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		LogLevel:    "info",
		LogFormat:   "console",
		Jobs:        0,
		CacheSize:   1024,
		MaxFileSize: source.DefaultMaxFileSize,
	}
}

// GetDefaultConfigPath returns the default global config file path, or ""
// when the home directory is unknown.
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, GlobalConfigDir, GlobalConfigFile)
}

// GetProjectConfigPath returns the project config file path.
func GetProjectConfigPath(projectRoot string) string {
	if projectRoot == "" {
		projectRoot = "."
	}
	return filepath.Join(projectRoot, ProjectConfigFile)
}
