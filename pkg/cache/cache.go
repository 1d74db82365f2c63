// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package cache provides caching for check results.
package cache

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/rule"
)

// DefaultTTL bounds how long a verdict stays cached. Keys already change
// with content, so this only limits memory held by a long watch session.
const DefaultTTL = 30 * time.Minute

// Entry is the cached verdict for one file.
type Entry struct {
	Diagnostics []rule.Diagnostic
	// Comments is the number of comment tokens the verdict was computed from.
	Comments int
}

// Cache holds the verdicts of checked files, keyed by KeyGenerator keys.
// A Cache of size zero stores nothing. Cached slices must not be modified.
type Cache struct {
	lru    *expirable.LRU[string, Entry]
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a cache holding at most size entries for ttl.
// A ttl of zero means DefaultTTL.
func New(size int, ttl time.Duration) *Cache {
	c := &Cache{}
	if size <= 0 {
		return c
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c.lru = expirable.NewLRU[string, Entry](size, nil, ttl)
	return c
}

// Enabled reports whether the cache stores anything.
func (c *Cache) Enabled() bool {
	return c != nil && c.lru != nil
}

// Get returns the entry stored under key.
func (c *Cache) Get(key string) (Entry, bool) {
	if !c.Enabled() {
		return Entry{}, false
	}
	e, ok := c.lru.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return e, ok
}

// Set stores e under key.
func (c *Cache) Set(key string, e Entry) {
	if !c.Enabled() {
		return
	}
	c.lru.Add(key, e)
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	if !c.Enabled() {
		return 0
	}
	return c.lru.Len()
}

// Stats returns the hit and miss counts since creation.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
