package runner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/cache"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/config"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/errors"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/output"
	"github.com/cicd-ai-toolkit/ban-comments/pkg/rule"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func newRunner(fixMode FixMode, options ...Option) *Runner {
	return New(rule.MustNew(rule.DefaultOptions()), Options{
		Fix:     fixMode,
		Jobs:    2,
		Exclude: []string{"node_modules", "*.min.js"},
	}, options...)
}

func rel(t *testing.T, root string, results []*output.Result) []string {
	t.Helper()
	var out []string
	for _, r := range results {
		p, err := filepath.Rel(root, r.FilePath)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(p))
	}
	return out
}

func TestDiscover(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.js":                  "",
		"src/b.ts":              "",
		"src/c.tsx":             "",
		"src/readme.md":         "",
		"src/vendor.min.js":     "",
		"node_modules/dep/x.js": "",
	})

	r := newRunner(FixNone)
	files, err := r.Discover([]string{root, filepath.Join(root, "a.js")})
	require.NoError(t, err)

	var got []string
	for _, f := range files {
		p, _ := filepath.Rel(root, f)
		got = append(got, filepath.ToSlash(p))
	}
	assert.Equal(t, []string{"a.js", "src/b.ts", "src/c.tsx"}, got)
}

func TestDiscoverExplicitFileKept(t *testing.T) {
	root := writeTree(t, map[string]string{"notes.md": "# x"})

	files, err := newRunner(FixNone).Discover([]string{filepath.Join(root, "notes.md")})
	require.NoError(t, err)
	assert.Len(t, files, 1)

	_, err = newRunner(FixNone).Run(context.Background(), files)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.ErrParse))
}

func TestDiscoverErrors(t *testing.T) {
	r := newRunner(FixNone)

	_, err := r.Discover(nil)
	assert.ErrorIs(t, err, ErrNoPaths)

	_, err = r.Discover([]string{filepath.Join(t.TempDir(), "missing")})
	assert.True(t, errors.IsKind(err, errors.ErrIO))

	_, err = r.Discover([]string{writeTree(t, map[string]string{"a.md": ""})})
	assert.True(t, IsNoFiles(err))
	assert.Equal(t, errors.ExitFatal, errors.ExitCode(err))
}

func TestRun(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.js":     "#!/usr/bin/env node\n// plain\nconst x = 1; // eslint-disable-line\n",
		"b.ts":     "// @ts-ignore\nlet y: number = 'a';\n",
		"c.js":     "/** doc */\nfunction f() {}\n/* block */\n",
		"d/e.jsx":  "const el = <div>{/* jsx */}</div>;\n",
		"clean.js": "const z = 3;\n",
	})

	results, err := newRunner(FixNone).Run(context.Background(), []string{root})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.js", "b.ts", "c.js", "clean.js", "d/e.jsx"}, rel(t, root, results))

	counts := make(map[string]int)
	for _, r := range results {
		p, _ := filepath.Rel(root, r.FilePath)
		counts[filepath.ToSlash(p)] = r.ErrorCount
	}
	assert.Equal(t, map[string]int{"a.js": 1, "b.ts": 0, "c.js": 2, "clean.js": 0, "d/e.jsx": 1}, counts)

	totals := output.Summarize(results)
	assert.Equal(t, 4, totals.Errors)
	assert.Zero(t, totals.Fixed)

	data, err := os.ReadFile(filepath.Join(root, "a.js"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "// plain", "report mode never writes")
}

func TestRunFixWritesAndIsIdempotent(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.js":     "#!/usr/bin/env node\n// plain\nconst x = 1; // trailing\n",
		"clean.js": "const z = 3;\n",
	})
	a := filepath.Join(root, "a.js")
	require.NoError(t, os.Chmod(a, 0o600))

	r := newRunner(FixWrite)
	results, err := r.Run(context.Background(), []string{root})
	require.NoError(t, err)

	fixedRes := results[0]
	assert.True(t, fixedRes.Fixed)
	assert.Empty(t, fixedRes.Messages)
	assert.Equal(t, "#!/usr/bin/env node\n\nconst x = 1; \n", fixedRes.Output)
	assert.False(t, results[1].Fixed)

	data, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "#!/usr/bin/env node\n\nconst x = 1; \n", string(data))

	info, err := os.Stat(a)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary files left behind")

	expected := `
# HELP ban_comments_fixes_applied_total Number of comments removed by fix mode.
# TYPE ban_comments_fixes_applied_total counter
ban_comments_fixes_applied_total 2
`
	require.NoError(t, testutil.GatherAndCompare(r.Metrics().Registry(), strings.NewReader(expected), "ban_comments_fixes_applied_total"))

	again, err := newRunner(FixWrite).Run(context.Background(), []string{root})
	require.NoError(t, err)
	for _, res := range again {
		assert.False(t, res.Fixed, "second fix run changes nothing in %s", res.FilePath)
		assert.Empty(t, res.Messages)
	}
}

func TestRunFixDryRun(t *testing.T) {
	root := writeTree(t, map[string]string{"a.js": "// plain\nx();\n"})

	results, err := newRunner(FixDryRun).Run(context.Background(), []string{root})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "\nx();\n", results[0].Output)
	assert.Empty(t, results[0].Messages)
	assert.Len(t, results[0].Edits, 1, "edits are kept for diff output")

	data, err := os.ReadFile(filepath.Join(root, "a.js"))
	require.NoError(t, err)
	assert.Equal(t, "// plain\nx();\n", string(data))
}

func TestRunSource(t *testing.T) {
	r := newRunner(FixNone)
	res, err := r.RunSource(context.Background(), "stdin.ts", []byte("// plain\nconst x=1;"))
	require.NoError(t, err)
	assert.Equal(t, "stdin.ts", res.FilePath)
	assert.Equal(t, 1, res.ErrorCount)
	assert.False(t, res.Fixed)

	fixer := newRunner(FixWrite)
	res, err = fixer.RunSource(context.Background(), "stdin.js", []byte("// plain\nconst x=1;"))
	require.NoError(t, err)
	assert.Equal(t, "\nconst x=1;", res.Output)
	assert.Empty(t, res.Messages)

	_, err = r.RunSource(context.Background(), "stdin.py", []byte("# x"))
	assert.True(t, errors.IsKind(err, errors.ErrParse))
}

func TestRunWarnSeverity(t *testing.T) {
	rl := rule.MustNew(rule.DefaultOptions()).WithSeverity(rule.SeverityWarn)
	r := New(rl, Options{})

	res, err := r.RunSource(context.Background(), "a.js", []byte("// a\n// b\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, res.ErrorCount)
	assert.Equal(t, 2, res.WarningCount)
}

func TestRunUsesCache(t *testing.T) {
	c := cache.New(16, 0)
	r := newRunner(FixNone, WithCache(c))
	root := writeTree(t, map[string]string{"a.js": "// a\n", "b.js": "x();\n"})

	first, err := r.Run(context.Background(), []string{root})
	require.NoError(t, err)
	second, err := r.Run(context.Background(), []string{root})
	require.NoError(t, err)

	assert.Equal(t, output.Summarize(first), output.Summarize(second))
	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(2), misses)

	// Cached files still count their comments.
	expected := `
# HELP ban_comments_comments_scanned_total Number of comment tokens evaluated.
# TYPE ban_comments_comments_scanned_total counter
ban_comments_comments_scanned_total 2
`
	require.NoError(t, testutil.GatherAndCompare(r.Metrics().Registry(), strings.NewReader(expected), "ban_comments_comments_scanned_total"))

	// A different rule configuration must not reuse verdicts.
	strict := New(rule.MustNew(rule.Options{}), Options{}, WithCache(c))
	_, err = strict.Run(context.Background(), []string{root})
	require.NoError(t, err)
	hits, _ = c.Stats()
	assert.Equal(t, int64(2), hits)
}

func TestRunReportsParsingError(t *testing.T) {
	src := "x();\n/* never closed\n"
	root := writeTree(t, map[string]string{"broken.js": src})

	results, err := newRunner(FixWrite).Run(context.Background(), []string{root})
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, 1, res.ErrorCount)
	assert.False(t, res.Fixed)
	require.Len(t, res.Messages, 1)
	assert.True(t, res.Messages[0].Fatal)
	assert.Nil(t, res.Messages[0].Fix)
	assert.True(t, strings.HasPrefix(res.Messages[0].Message, "Parsing error:"))

	data, err := os.ReadFile(filepath.Join(root, "broken.js"))
	require.NoError(t, err)
	assert.Equal(t, src, string(data), "a file that does not parse is never rewritten")
}

func TestRunCancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"a.js": "// a\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(FixNone).Run(ctx, []string{root})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rules.BanComments.Severity = "warn"
	cfg.Rules.BanComments.Options.AllowedPrefixes = []string{"KEEP"}
	cfg.Files.Extensions = []string{".ts"}

	r, err := NewFromConfig(cfg, FixNone)
	require.NoError(t, err)

	root := writeTree(t, map[string]string{"a.ts": "// KEEP me\n// drop\n", "b.js": "// ignored\n"})
	results, err := r.Run(context.Background(), []string{root})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].WarningCount)

	cfg.Rules.BanComments.Severity = "loud"
	_, err = NewFromConfig(cfg, FixNone)
	require.Error(t, err)
}

func TestWatch(t *testing.T) {
	root := writeTree(t, map[string]string{"a.js": "x();\n"})
	r := newRunner(FixNone)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var runs []output.Totals
	done := make(chan error, 1)
	go func() {
		done <- r.watch(ctx, []string{root}, 20*time.Millisecond, func(results []*output.Result, err error) {
			assert.NoError(t, err)
			mu.Lock()
			runs = append(runs, output.Summarize(results))
			mu.Unlock()
		})
	}()

	count := func() int {
		mu.Lock()
		defer mu.Unlock()
		return len(runs)
	}
	require.Eventually(t, func() bool { return count() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.js"), []byte("// added\nx();\n"), 0o644))
	require.Eventually(t, func() bool { return count() >= 2 }, 5*time.Second, 10*time.Millisecond)

	mu.Lock()
	last := runs[len(runs)-1]
	mu.Unlock()
	assert.Equal(t, 1, last.Errors)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.js")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, writeFileAtomic(path, []byte("new"), 0o640))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	err = writeFileAtomic(filepath.Join(t.TempDir(), "missing", "a.js"), []byte("x"), 0o644)
	assert.Error(t, err)
}

func TestRunFixFollowsSymlink(t *testing.T) {
	root := writeTree(t, map[string]string{"real/target.js": "// x\nconst a = 1;\n"})
	target := filepath.Join(root, "real", "target.js")
	require.NoError(t, os.Chmod(target, 0o600))
	link := filepath.Join(root, "link.js")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	results, err := newRunner(FixWrite).Run(context.Background(), []string{link})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Fixed)

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "link is still a symlink")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "\nconst a = 1;\n", string(data))

	info, err = os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Join(root, "real"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left next to the target")
}

func TestExcluded(t *testing.T) {
	r := newRunner(FixNone)
	assert.True(t, r.excluded("/x/node_modules"))
	assert.True(t, r.excluded("lib/app.min.js"))
	assert.False(t, r.excluded("lib/app.js"))
	assert.True(t, r.supported("a.mts"))
	assert.True(t, r.supported("src/App.JS"))
	assert.False(t, r.supported("a.json"))
}
