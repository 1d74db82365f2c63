// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package rule

import (
	"fmt"
	"sort"
)

// Name is the rule identifier used in configuration and reports.
const Name = "ban-comments"

// MessageNoComments is the message id of every ban-comments report.
const MessageNoComments = "noComments"

// Metadata describes a rule.
type Metadata struct {
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Recommended bool              `json:"recommended"`
	Fixable     string            `json:"fixable"`
	Messages    map[string]string `json:"messages"`
}

// Meta is the ban-comments metadata.
var Meta = Metadata{
	Name:        Name,
	Type:        "suggestion",
	Description: "Disallow comments in JavaScript and TypeScript files",
	Category:    "Stylistic Issues",
	Recommended: false,
	Fixable:     "code",
	Messages: map[string]string{
		MessageNoComments: "Comments are not allowed.",
	},
}

// Factory compiles a rule from its options.
type Factory func(Options) (*Rule, error)

var registry = map[string]Factory{
	Name: New,
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown rule %q", name)
	}
	return f, nil
}

// Names returns the registered rule names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
