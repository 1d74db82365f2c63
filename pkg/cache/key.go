// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// KeyGenerator generates cache keys.
type KeyGenerator struct {
	prefix string
}

// NewKeyGenerator creates a new key generator.
func NewKeyGenerator() *KeyGenerator {
	return &KeyGenerator{
		prefix: "ban-comments",
	}
}

// Generate generates a cache key from inputs. Inputs are separated so that
// ("ab", "c") and ("a", "bc") produce different keys.
func (kg *KeyGenerator) Generate(inputs ...string) string {
	h := sha256.New()
	for _, input := range inputs {
		h.Write([]byte(input))
		h.Write([]byte{0})
	}
	return kg.prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// GenerateForFile generates the key for checking content at path under a
// rule configuration identified by fingerprint.
func (kg *KeyGenerator) GenerateForFile(path string, content []byte, fingerprint string) string {
	sum := sha256.Sum256(content)
	return kg.Generate(path, hex.EncodeToString(sum[:]), fingerprint)
}
