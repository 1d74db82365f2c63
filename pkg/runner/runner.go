// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package runner checks files with the ban-comments rule: it discovers
// sources, evaluates them in parallel, applies fixes and watches for changes.
package runner

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/cache"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/config"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/errors"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/fix"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/observability"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/output"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/rule"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/source"
)

// FixMode selects what happens to fixable problems.
type FixMode int

const (
	// FixNone only reports.
	FixNone FixMode = iota
	// FixDryRun computes fixed output without touching files.
	FixDryRun
	// FixWrite writes fixed output back to disk.
	FixWrite
)

// Options contains options for a run.
type Options struct {
	Fix        FixMode
	Jobs       int      // 0 means runtime.NumCPU()
	Extensions []string // discovered file extensions
	Exclude    []string // base-name globs skipped during discovery
}

// Runner checks files against a rule.
type Runner struct {
	rule        *rule.Rule
	opts        Options
	extractor   *source.Extractor
	cache       *cache.Cache
	keys        *cache.KeyGenerator
	metrics     *observability.Metrics
	logger      observability.Logger
	fingerprint string
}

// Option configures a Runner.
type Option func(*Runner)

// WithCache sets the verdict cache.
func WithCache(c *cache.Cache) Option {
	return func(r *Runner) { r.cache = c }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l observability.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithExtractor replaces the default comment extractor.
func WithExtractor(e *source.Extractor) Option {
	return func(r *Runner) { r.extractor = e }
}

// New creates a runner for rl.
func New(rl *rule.Rule, opts Options, options ...Option) *Runner {
	if len(opts.Extensions) == 0 {
		opts.Extensions = source.Extensions()
	}
	r := &Runner{
		rule:      rl,
		opts:      opts,
		extractor: source.NewExtractor(),
		cache:     cache.New(0, 0),
		keys:      cache.NewKeyGenerator(),
		metrics:   observability.NewMetrics(),
		logger:    observability.NopLogger(),
	}
	for _, opt := range options {
		opt(r)
	}
	r.fingerprint = rl.Options().Fingerprint() + ":" + string(rl.Severity())
	return r
}

// NewFromConfig builds the rule, extractor and cache described by cfg.
func NewFromConfig(cfg *config.Config, fixMode FixMode, options ...Option) (*Runner, error) {
	rl, err := cfg.Rule()
	if err != nil {
		return nil, err
	}
	opts := Options{
		Fix:        fixMode,
		Jobs:       cfg.Global.Jobs,
		Extensions: cfg.Files.Extensions,
		Exclude:    cfg.Files.Exclude,
	}
	base := []Option{
		WithCache(cache.New(cfg.Global.CacheSize, 0)),
		WithExtractor(source.NewExtractor(source.WithMaxFileSize(cfg.Global.MaxFileSize))),
	}
	return New(rl, opts, append(base, options...)...), nil
}

// Metrics returns the runner's metrics collector.
func (r *Runner) Metrics() *observability.Metrics {
	return r.metrics
}

// Run discovers files under paths and checks them in parallel. Results are
// sorted by path. The first fatal error cancels the remaining work.
func (r *Runner) Run(ctx context.Context, paths []string) ([]*output.Result, error) {
	start := time.Now()

	files, err := r.Discover(paths)
	if err != nil {
		return nil, err
	}

	jobs := r.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]*output.Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			res, err := r.checkFile(gctx, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totals := output.Summarize(results)
	hits, misses := r.cache.Stats()
	r.logger.Debug("run complete",
		observability.Int("files", totals.Files),
		observability.Int("errors", totals.Errors),
		observability.Int("warnings", totals.Warnings),
		observability.Int("fixed", totals.Fixed),
		observability.Int("jobs", jobs),
		observability.Int("cache_hits", int(hits)),
		observability.Int("cache_misses", int(misses)),
		observability.Duration("duration", time.Since(start)),
	)
	return results, nil
}

// RunSource checks content as if it were the file name. Fixes are never
// written; in either fix mode the fixed text is returned in Output.
func (r *Runner) RunSource(ctx context.Context, name string, content []byte) (*output.Result, error) {
	res, err := r.check(ctx, name, content)
	if err != nil {
		return nil, err
	}
	if r.opts.Fix != FixNone {
		if _, err := r.applyFixes(res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (r *Runner) checkFile(ctx context.Context, path string) (*output.Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to stat %s", path), err).WithContext("path", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to read %s", path), err).WithContext("path", path)
	}

	res, err := r.check(ctx, path, content)
	if err != nil {
		return nil, err
	}
	if r.opts.Fix == FixNone {
		return res, nil
	}

	fixed, err := r.applyFixes(res)
	if err != nil {
		return nil, err
	}
	if r.opts.Fix == FixWrite && res.Fixed {
		if err := writeFileAtomic(path, fixed, info.Mode().Perm()); err != nil {
			return nil, errors.IOError(fmt.Sprintf("failed to write fixes to %s", path), err).WithContext("path", path)
		}
		r.metrics.RecordFixes(len(res.Edits))
		r.logger.Info("fixed", observability.String("file", path), observability.Int("removed", len(res.Edits)))
	}
	return res, nil
}

// check evaluates content, consulting the cache first.
func (r *Runner) check(ctx context.Context, path string, content []byte) (*output.Result, error) {
	start := time.Now()
	key := r.keys.GenerateForFile(path, content, r.fingerprint)

	entry, hit := r.cache.Get(key)
	if r.cache.Enabled() {
		r.metrics.RecordCacheHit(hit)
	}

	if !hit {
		f, err := r.extractor.Parse(ctx, path, content)
		if err != nil {
			return nil, err
		}
		entry = cache.Entry{Comments: len(f.Comments)}
		if f.Syntax != nil {
			r.logger.Warn("parsing error", observability.String("file", path), observability.Err(f.Syntax))
			entry.Diagnostics = []rule.Diagnostic{rule.ParsingError(f.Syntax)}
		} else {
			entry.Diagnostics = r.rule.Check(f.Comments)
		}
		r.cache.Set(key, entry)
	}

	res := output.NewResult(path, content, entry.Diagnostics)
	r.metrics.RecordFile(time.Since(start), entry.Comments)
	r.metrics.RecordProblems(string(rule.SeverityError), res.ErrorCount)
	r.metrics.RecordProblems(string(rule.SeverityWarn), res.WarningCount)
	r.logger.Debug("checked",
		observability.String("file", path),
		observability.Int("problems", len(res.Messages)),
		observability.Bool("cached", hit),
	)
	return res, nil
}

// applyFixes applies every fix in res, stores the fixed text in res.Output
// and leaves only unfixable problems in res.Messages.
func (r *Runner) applyFixes(res *output.Result) ([]byte, error) {
	if len(res.Edits) == 0 {
		return res.Source, nil
	}
	fixed, err := fix.Apply(res.Source, res.Edits)
	if err != nil {
		return nil, err
	}

	var remaining []rule.Diagnostic
	for _, d := range res.Messages {
		if d.Fix == nil {
			remaining = append(remaining, d)
		}
	}
	res.Output = string(fixed)
	res.Fixed = true
	res.SetMessages(remaining)
	return fixed, nil
}
