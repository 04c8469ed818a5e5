package lint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRun(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "intro.md", "Some text {{#check FOO-1 | Do the thing}} more text.\n")
	writeFile(t, src, "nested/memory.md", "{{#check MEM-1 | Free it}}\n\n{{#check MEM-2 | Drop it}}\n")
	writeFile(t, src, "notes.txt", "{{#check IGNORED | not markdown}}\n")

	report, err := Run(src)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Files)
	assert.Equal(t, 3, report.Total())
	assert.True(t, report.Clean())
}

func TestRunReportsProblems(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "bad.md", "line one\n{{#check BAD-NO-PIPE}}\n")

	report, err := Run(src)
	require.NoError(t, err)

	require.Len(t, report.Problems, 1)
	assert.Equal(t, "bad.md", report.Problems[0].File)
	assert.Contains(t, report.Problems[0].Message, "line 2")
	assert.False(t, report.Clean())
}

func TestRunReportsDuplicates(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "a.md", "{{#check X | first}}\n")
	writeFile(t, src, "b.md", "{{#check X | second}}\n")

	report, err := Run(src)
	require.NoError(t, err)

	require.Len(t, report.Duplicates, 1)
	assert.Equal(t, "X", report.Duplicates[0].ID)
	assert.Equal(t, "b.md", report.Duplicates[0].File)
	assert.Equal(t, 1, report.Total())
}

func TestRunCountsRecos(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "reco.md", `<div class="reco" id="R-1" type="Rule" title="do it"></div>`+"\n")

	report, err := Run(src)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Total())
	assert.True(t, report.Clean())
}

func TestRunMissingDir(t *testing.T) {
	_, err := Run(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLineOf(t *testing.T) {
	content := "a\nb\nc"
	assert.Equal(t, 1, lineOf(content, 0))
	assert.Equal(t, 2, lineOf(content, 2))
	assert.Equal(t, 3, lineOf(content, 4))
	assert.Equal(t, 3, lineOf(content, 99))
}

func TestRenderMentionsEverything(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "a.md", "{{#check A-1 | alpha}}\n{{#check A-1 | dup}}\n{{#check BROKEN}}\n")

	report, err := Run(src)
	require.NoError(t, err)

	out := report.Render()
	assert.Contains(t, out, "A-1")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "Problems")
	assert.Contains(t, out, "Duplicate identifiers")
	assert.Contains(t, out, "1 checks in 1 files")
}
