package fix_test

import (
	"testing"

	"github.com/sourcegraph/go-diff/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/errors"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/fix"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/rule"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		edits []fix.Edit
		want  string
	}{
		{
			name: "no edits",
			src:  "const x = 1;",
			want: "const x = 1;",
		},
		{
			name:  "single deletion keeps newline",
			src:   "// plain\nconst x=1;",
			edits: []fix.Edit{{Start: 0, End: 8}},
			want:  "\nconst x=1;",
		},
		{
			name:  "out of order edits",
			src:   "// a\n// b\nx();",
			edits: []fix.Edit{{Start: 5, End: 9}, {Start: 0, End: 4}},
			want:  "\n\nx();",
		},
		{
			name:  "replacement text",
			src:   "abc",
			edits: []fix.Edit{{Start: 1, End: 2, Text: "XY"}},
			want:  "aXYc",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fix.Apply([]byte(tt.src), tt.edits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestApplyRejectsBadEdits(t *testing.T) {
	src := []byte("0123456789")

	_, err := fix.Apply(src, []fix.Edit{{Start: 2, End: 6}, {Start: 4, End: 8}})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.ErrFix))

	_, err = fix.Apply(src, []fix.Edit{{Start: 5, End: 20}})
	require.Error(t, err)

	_, err = fix.Apply(src, []fix.Edit{{Start: 6, End: 5}})
	require.Error(t, err)
}

func TestEditsFromDiagnostics(t *testing.T) {
	diags := []rule.Diagnostic{
		{Fix: &rule.Fix{Range: [2]int{0, 4}}},
		{},
		{Fix: &rule.Fix{Range: [2]int{10, 12}, Text: " "}},
	}
	assert.Equal(t, []fix.Edit{{Start: 0, End: 4}, {Start: 10, End: 12, Text: " "}}, fix.Edits(diags))
}

func TestDiff(t *testing.T) {
	src := []byte("#!/usr/bin/env node\n// Regular comment\n/**\n * doc\n */\nconst x = 1;\n")
	edits := []fix.Edit{
		{Start: 20, End: 38},
		{Start: 39, End: 53},
	}

	out, err := fix.Diff("src/app.js", src, edits)
	require.NoError(t, err)

	fd, err := diff.ParseFileDiff(out)
	require.NoError(t, err)
	assert.Equal(t, "a/src/app.js", fd.OrigName)
	assert.Equal(t, "b/src/app.js", fd.NewName)
	require.Len(t, fd.Hunks, 2)

	first := fd.Hunks[0]
	assert.EqualValues(t, 2, first.OrigStartLine)
	assert.EqualValues(t, 1, first.OrigLines)
	assert.EqualValues(t, 2, first.NewStartLine)
	assert.EqualValues(t, 1, first.NewLines)
	assert.Equal(t, "-// Regular comment\n+\n", string(first.Body))

	second := fd.Hunks[1]
	assert.EqualValues(t, 3, second.OrigStartLine)
	assert.EqualValues(t, 3, second.OrigLines)
	assert.EqualValues(t, 3, second.NewStartLine)
	assert.EqualValues(t, 1, second.NewLines)
	assert.Equal(t, "-/**\n- * doc\n- */\n+\n", string(second.Body))
}

func TestDiffNoChange(t *testing.T) {
	out, err := fix.Diff("a.js", []byte("x();"), nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}
