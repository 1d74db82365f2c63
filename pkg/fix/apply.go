// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package fix applies diagnostic fixes to source text and renders the
// result as a unified diff.
package fix

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/errors"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/rule"
)

// Edit replaces src[Start:End] with Text.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Edits collects the fixes attached to diags.
func Edits(diags []rule.Diagnostic) []Edit {
	edits := make([]Edit, 0, len(diags))
	for _, d := range diags {
		if d.Fix == nil {
			continue
		}
		edits = append(edits, Edit{Start: d.Fix.Range[0], End: d.Fix.Range[1], Text: d.Fix.Text})
	}
	return edits
}

// Apply returns src with every edit applied. Edits may come in any order but
// must lie within src and must not overlap.
func Apply(src []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return src, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var out bytes.Buffer
	out.Grow(len(src))
	last := 0
	for i, e := range sorted {
		if e.Start < 0 || e.End > len(src) || e.Start > e.End {
			return nil, errors.FixError(fmt.Sprintf("edit %d range [%d, %d) outside source of %d bytes", i, e.Start, e.End, len(src)), nil)
		}
		if e.Start < last {
			return nil, errors.FixError(fmt.Sprintf("edit %d range [%d, %d) overlaps previous edit ending at %d", i, e.Start, e.End, last), nil)
		}
		out.Write(src[last:e.Start])
		out.WriteString(e.Text)
		last = e.End
	}
	out.Write(src[last:])
	return out.Bytes(), nil
}
