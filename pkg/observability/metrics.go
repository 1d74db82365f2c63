// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ban_comments"

// Metrics provides metrics collection for a lint run.
// Each instance owns its registry so that runs and tests do not share state.
type Metrics struct {
	registry *prometheus.Registry

	filesChecked    prometheus.Counter
	commentsScanned prometheus.Counter
	problems        *prometheus.CounterVec
	fixesApplied    prometheus.Counter
	cacheRequests   *prometheus.CounterVec
	fileDuration    prometheus.Histogram
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		filesChecked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_checked_total",
			Help:      "Number of files checked.",
		}),
		commentsScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_scanned_total",
			Help:      "Number of comment tokens evaluated.",
		}),
		problems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "problems_total",
			Help:      "Number of reported comments by severity.",
		}, []string{"severity"}),
		fixesApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fixes_applied_total",
			Help:      "Number of comments removed by fix mode.",
		}),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Verdict cache lookups by result.",
		}, []string{"result"}),
		fileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "file_check_duration_seconds",
			Help:      "Time spent checking a single file.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}

	m.registry.MustRegister(
		m.filesChecked,
		m.commentsScanned,
		m.problems,
		m.fixesApplied,
		m.cacheRequests,
		m.fileDuration,
	)
	return m
}

// Registry returns the registry holding all collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordFile records one checked file.
func (m *Metrics) RecordFile(duration time.Duration, comments int) {
	m.filesChecked.Inc()
	m.commentsScanned.Add(float64(comments))
	m.fileDuration.Observe(duration.Seconds())
}

// RecordProblems records n problems reported at severity.
func (m *Metrics) RecordProblems(severity string, n int) {
	if n > 0 {
		m.problems.WithLabelValues(severity).Add(float64(n))
	}
}

// RecordFixes records n removed comments.
func (m *Metrics) RecordFixes(n int) {
	if n > 0 {
		m.fixesApplied.Add(float64(n))
	}
}

// RecordCacheHit records a cache hit/miss.
func (m *Metrics) RecordCacheHit(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheRequests.WithLabelValues(result).Inc()
}

// WriteTextfile writes all metrics to path in the Prometheus text format,
// for pickup by the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
