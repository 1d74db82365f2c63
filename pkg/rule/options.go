// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package rule

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/errors"
)

// Options configures the ban-comments rule. The zero value is not the
// default; start from DefaultOptions.
type Options struct {
	// AllowedPatterns are regular expressions (RE2 syntax) matched against
	// the trimmed comment text.
	AllowedPatterns []string `yaml:"allowedPatterns,omitempty" json:"allowedPatterns,omitempty"`
	// AllowedPrefixes are literal prefixes of the trimmed comment text.
	AllowedPrefixes           []string `yaml:"allowedPrefixes,omitempty" json:"allowedPrefixes,omitempty"`
	AllowEslintDirectives     bool     `yaml:"allowEslintDirectives" json:"allowEslintDirectives"`
	AllowTypeScriptDirectives bool     `yaml:"allowTypeScriptDirectives" json:"allowTypeScriptDirectives"`
	AllowJSDoc                bool     `yaml:"allowJSDoc" json:"allowJSDoc"`
	AllowShebang              bool     `yaml:"allowShebang" json:"allowShebang"`
}

// DefaultOptions returns the options equivalent to an empty options object.
func DefaultOptions() Options {
	return Options{
		AllowEslintDirectives:     true,
		AllowTypeScriptDirectives: true,
		AllowJSDoc:                false,
		AllowShebang:              true,
	}
}

// ParseOptions decodes an options object (YAML or JSON) on top of the
// defaults. Unknown fields are rejected. Empty input yields the defaults.
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if len(bytes.TrimSpace(data)) == 0 {
		return opts, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil {
		return Options{}, errors.ConfigError("invalid ban-comments options", err)
	}
	return opts, nil
}

// UnmarshalYAML decodes an options mapping over o. Values are not coerced:
// the allow flags must be booleans and the lists must hold strings.
func (o *Options) UnmarshalYAML(n *yaml.Node) error {
	if err := checkOptionsNode(n); err != nil {
		return err
	}
	type plain Options
	return n.Decode((*plain)(o))
}

func checkOptionsNode(n *yaml.Node) error {
	n = unalias(n)
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: options must be an object", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], unalias(n.Content[i+1])
		switch key.Value {
		case "allowedPatterns", "allowedPrefixes":
			if val.Kind != yaml.SequenceNode {
				return fmt.Errorf("line %d: %s must be an array of strings", val.Line, key.Value)
			}
			for _, item := range val.Content {
				item = unalias(item)
				if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
					return fmt.Errorf("line %d: %s must contain only strings", item.Line, key.Value)
				}
			}
		case "allowEslintDirectives", "allowTypeScriptDirectives", "allowJSDoc", "allowShebang":
			if val.Kind != yaml.ScalarNode || val.ShortTag() != "!!bool" {
				return fmt.Errorf("line %d: %s must be a boolean", val.Line, key.Value)
			}
		default:
			return fmt.Errorf("line %d: field %s not found in options", key.Line, key.Value)
		}
	}
	return nil
}

func unalias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// Fingerprint identifies the option values; equal options share a fingerprint.
func (o Options) Fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "%q|%q|%t|%t|%t|%t",
		o.AllowedPatterns, o.AllowedPrefixes,
		o.AllowEslintDirectives, o.AllowTypeScriptDirectives, o.AllowJSDoc, o.AllowShebang)
	return hex.EncodeToString(h.Sum(nil))[:16]
}
