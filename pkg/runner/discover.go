// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package runner

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/errors"
)

// Discover expands paths into the sorted, de-duplicated list of files to
// check. Directories are walked recursively, skipping excluded names and
// files with other extensions. Files named explicitly are always kept, so an
// unsupported explicit file surfaces as an error when it is checked.
func (r *Runner) Discover(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, errors.ValidationError("nothing to check", ErrNoPaths)
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.IOError(fmt.Sprintf("cannot check %s", root), err).WithContext("path", root)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && r.excluded(path) {
					return filepath.SkipDir
				}
				return nil
			}
			if r.excluded(path) || !r.supported(path) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, errors.IOError(fmt.Sprintf("failed to walk %s", root), err).WithContext("path", root)
		}
	}

	if len(files) == 0 {
		return nil, errors.ValidationError(fmt.Sprintf("nothing to check in %v", paths), ErrNoFiles)
	}
	sort.Strings(files)
	return files, nil
}

// excluded reports whether the base name of path matches an exclude entry,
// either literally or as a glob.
func (r *Runner) excluded(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range r.opts.Exclude {
		if base == pattern {
			return true
		}
		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

func (r *Runner) supported(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range r.opts.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// IsNoFiles reports whether err means discovery found nothing to check.
func IsNoFiles(err error) bool {
	return stderrors.Is(err, ErrNoFiles)
}
