// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/errors"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/observability"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/output"
)

// DefaultDebounce is how long Watch waits for events to settle.
const DefaultDebounce = 150 * time.Millisecond

// RunFunc receives the outcome of every run started by Watch.
type RunFunc func(results []*output.Result, err error)

// Watch runs once, then again after every batch of relevant file-system
// changes under paths, until ctx is cancelled. Run errors go to fn and do
// not stop watching.
func (r *Runner) Watch(ctx context.Context, paths []string, fn RunFunc) error {
	return r.watch(ctx, paths, DefaultDebounce, fn)
}

func (r *Runner) watch(ctx context.Context, paths []string, debounce time.Duration, fn RunFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.IOError("failed to create file watcher", err)
	}
	defer watcher.Close()

	for _, root := range paths {
		if err := r.addWatches(watcher, root); err != nil {
			return err
		}
	}

	fn(r.Run(ctx, paths))

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !r.excluded(event.Name) {
					if err := r.addWatches(watcher, event.Name); err != nil {
						r.logger.Warn("cannot watch directory", observability.String("path", event.Name), observability.Err(err))
					}
					continue
				}
			}
			if event.Has(fsnotify.Chmod) || r.excluded(event.Name) || !r.supported(event.Name) {
				continue
			}
			r.logger.Debug("change detected", observability.String("file", event.Name), observability.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				timer.Reset(debounce)
			}

		case <-timerC:
			timer, timerC = nil, nil
			fn(r.Run(ctx, paths))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("file watcher error", observability.Err(err))
		}
	}
}

// addWatches watches root, or its directory if root is a file, and every
// non-excluded directory below it.
func (r *Runner) addWatches(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.IOError(fmt.Sprintf("cannot watch %s", root), err).WithContext("path", root)
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(root))
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && r.excluded(path) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return errors.IOError(fmt.Sprintf("cannot watch %s", path), err).WithContext("path", path)
		}
		return nil
	})
}
