// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package fix

import (
	"bytes"
	"sort"

	"github.com/sourcegraph/go-diff/diff"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/errors"
)

// Diff renders the effect of applying edits to src as a unified diff with
// no context lines. It returns nil when edits change nothing.
func Diff(path string, src []byte, edits []Edit) ([]byte, error) {
	after, err := Apply(src, edits)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(src, after) {
		return nil, nil
	}

	fd := &diff.FileDiff{
		OrigName: "a/" + path,
		NewName:  "b/" + path,
		Hunks:    hunks(src, after, edits),
	}
	out, err := diff.PrintFileDiff(fd)
	if err != nil {
		return nil, errors.FixError("render diff for "+path, err)
	}
	return out, nil
}

// lineGroup is a run of original lines touched by one or more edits.
type lineGroup struct {
	first, last int // 0-based, inclusive
	delta       int // new line count minus original line count
}

func hunks(before, after []byte, edits []Edit) []*diff.Hunk {
	starts := lineStarts(before)
	lineOf := func(off int) int {
		return sort.Search(len(starts), func(i int) bool { return starts[i] > off }) - 1
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var groups []lineGroup
	for _, e := range sorted {
		first := lineOf(e.Start)
		last := first
		if e.End > e.Start {
			last = lineOf(e.End - 1)
		}
		delta := bytes.Count([]byte(e.Text), []byte("\n")) - bytes.Count(before[e.Start:e.End], []byte("\n"))

		if n := len(groups); n > 0 && first <= groups[n-1].last {
			g := &groups[n-1]
			if last > g.last {
				g.last = last
			}
			g.delta += delta
			continue
		}
		groups = append(groups, lineGroup{first: first, last: last, delta: delta})
	}

	oldLines := bytes.Split(before, []byte("\n"))
	newLines := bytes.Split(after, []byte("\n"))

	out := make([]*diff.Hunk, 0, len(groups))
	shift := 0
	for _, g := range groups {
		origCount := g.last - g.first + 1
		newCount := origCount + g.delta
		newFirst := g.first + shift

		var body bytes.Buffer
		for _, l := range oldLines[g.first : g.last+1] {
			body.WriteByte('-')
			body.Write(l)
			body.WriteByte('\n')
		}
		for _, l := range newLines[newFirst : newFirst+newCount] {
			body.WriteByte('+')
			body.Write(l)
			body.WriteByte('\n')
		}

		out = append(out, &diff.Hunk{
			OrigStartLine: int32(g.first + 1),
			OrigLines:     int32(origCount),
			NewStartLine:  int32(newFirst + 1),
			NewLines:      int32(newCount),
			Body:          body.Bytes(),
		})
		shift += g.delta
	}
	return out
}

func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
