// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/errors"
)

const (
	// EnvPrefix is the prefix for all environment variables.
	EnvPrefix = "BAN_COMMENTS"
	// EnvConfigPath names an explicit config file.
	EnvConfigPath = EnvPrefix + "_CONFIG"
	// ProjectConfigFile is the project-level config file name.
	ProjectConfigFile = ".ban-comments.yaml"
	// GlobalConfigDir is the global config directory, relative to $HOME.
	GlobalConfigDir = ".config/ban-comments"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// projectConfigFiles are searched for in each directory, in order.
var projectConfigFiles = []string{
	ProjectConfigFile,
	".ban-comments.yml",
}

// Loader loads configuration from files and environment.
type Loader struct {
	projectRoot string
	path        string
	skipGlobal  bool
	skipEnv     bool
}

// NewLoader creates a new config loader.
func NewLoader() *Loader {
	return &Loader{}
}

// WithProjectRoot sets the directory the project config search starts from.
func (l *Loader) WithProjectRoot(root string) *Loader {
	l.projectRoot = root
	return l
}

// WithPath loads the project config from path instead of searching for it.
// The file must exist.
func (l *Loader) WithPath(path string) *Loader {
	l.path = path
	return l
}

// SkipGlobal skips loading global config.
func (l *Loader) SkipGlobal() *Loader {
	l.skipGlobal = true
	return l
}

// SkipEnv skips environment variable overrides.
func (l *Loader) SkipEnv() *Loader {
	l.skipEnv = true
	return l
}

// Load loads configuration with full precedence order:
// 1. Defaults
// 2. Global Config ($HOME/.config/ban-comments/config.yaml)
// 3. Project Config (explicit path, BAN_COMMENTS_CONFIG, or .ban-comments.yaml)
// 4. Environment Variables (BAN_COMMENTS_*)
//
// Missing optional files are skipped; a file that exists but cannot be
// decoded is an error.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if !l.skipGlobal {
		if globalPath := GetDefaultConfigPath(); globalPath != "" {
			if err := l.decodeOptional(cfg, globalPath); err != nil {
				return nil, err
			}
		}
	}

	path := l.path
	if path == "" && !l.skipEnv {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := decodeFile(cfg, path); err != nil {
			return nil, err
		}
	} else if found, ok := FindProjectConfig(l.projectRoot); ok {
		if err := decodeFile(cfg, found); err != nil {
			return nil, err
		}
	}

	if !l.skipEnv {
		if err := applyEnvOverrides(cfg); err != nil {
			return nil, err
		}
	}

	if err := NewValidator().Validate(cfg); err != nil {
		return nil, errors.ConfigError("config validation failed", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path on top of the
// defaults, without global config or environment overrides.
func (l *Loader) LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := decodeFile(cfg, path); err != nil {
		return nil, err
	}
	if err := NewValidator().Validate(cfg); err != nil {
		return nil, errors.ConfigError("config validation failed", err)
	}
	return cfg, nil
}

func (l *Loader) decodeOptional(cfg *Config, path string) error {
	if _, err := os.Stat(path); stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return decodeFile(cfg, path)
}

// decodeFile decodes path over cfg. Fields absent from the file keep their
// current values; unknown fields are rejected.
func decodeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.ConfigError(fmt.Sprintf("failed to read config file: %s", path), err)
	}
	if err := Decode(cfg, data); err != nil {
		return errors.ConfigError(fmt.Sprintf("failed to parse config file: %s", path), err).
			WithContext("path", path)
	}
	cfg.Sources = append(cfg.Sources, path)
	return nil
}

// Decode strictly decodes YAML data over cfg.
func Decode(cfg *Config, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
// Format: BAN_COMMENTS_KEY=value
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvPrefix + "_LOG_LEVEL"); v != "" {
		cfg.Global.LogLevel = v
	}
	if v := os.Getenv(EnvPrefix + "_LOG_FORMAT"); v != "" {
		cfg.Global.LogFormat = v
	}
	if v := os.Getenv(EnvPrefix + "_SEVERITY"); v != "" {
		cfg.Rules.BanComments.Severity = v
	}
	if v := os.Getenv(EnvPrefix + "_JOBS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.ConfigError("invalid "+EnvPrefix+"_JOBS", err)
		}
		cfg.Global.Jobs = n
	}
	return nil
}

// FindProjectConfig searches start and its parents for a project config
// file. An empty start means the working directory.
func FindProjectConfig(start string) (string, bool) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}

	for {
		for _, name := range projectConfigFiles {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return "", false
		}
		dir = parent
	}
}

// GetEnvConfig returns all environment variables that start with BAN_COMMENTS_.
func GetEnvConfig() map[string]string {
	result := make(map[string]string)

	for _, env := range os.Environ() {
		if strings.HasPrefix(env, EnvPrefix+"_") {
			kv := strings.SplitN(env, "=", 2)
			if len(kv) == 2 {
				result[kv[0]] = kv[1]
			}
		}
	}

	return result
}
