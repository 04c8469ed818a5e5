// Package lint scans a book's markdown sources for check marks
// without going through the mdbook protocol, giving authors the same
// diagnostics the preprocessor emits at build time.
package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ANSSI-FR/mdbook-checklist/internal/checklist"
)

// Problem is a content-level finding tied to a source file.
type Problem struct {
	File    string
	Message string
}

// Duplicate records a check identifier seen more than once.
type Duplicate struct {
	ID   string
	File string
}

// Report is the outcome of one lint pass.
type Report struct {
	Files      int
	Chapters   []checklist.ChapterChecks
	Problems   []Problem
	Duplicates []Duplicate
}

// Total returns the number of registered checks.
func (r *Report) Total() int {
	n := 0
	for _, ch := range r.Chapters {
		n += len(ch.Checks)
	}
	return n
}

// Clean reports whether the pass found nothing to complain about.
func (r *Report) Clean() bool {
	return len(r.Problems) == 0 && len(r.Duplicates) == 0
}

// Run walks every .md file under srcDir in path order and scans it
// for check directives and reco divs. File-system errors abort the
// pass; content problems land in the report.
func Run(srcDir string) (*Report, error) {
	report := &Report{}
	registry := checklist.NewRegistry()

	err := filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(strings.ToLower(path), ".md") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			rel = path
		}
		report.Files++
		lintFile(rel, string(data), registry, report)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", srcDir, err)
	}

	report.Chapters = registry.Snapshot()
	return report, nil
}

func lintFile(rel, content string, registry *checklist.Registry, report *Report) {
	matches, diags := checklist.Scan(content)
	for _, d := range diags {
		report.Problems = append(report.Problems, Problem{
			File:    rel,
			Message: fmt.Sprintf("line %d: %s", lineOf(content, d.Offset), d.Reason),
		})
	}
	for _, m := range matches {
		if !registry.Record(m.ID, m.Description, rel, rel) {
			report.Duplicates = append(report.Duplicates, Duplicate{ID: m.ID, File: rel})
		}
	}

	recos, problems := checklist.CollectRecos(content)
	for _, msg := range problems {
		report.Problems = append(report.Problems, Problem{File: rel, Message: msg})
	}
	for _, reco := range recos {
		if !registry.Record(reco.ID, reco.Description(), rel, rel) {
			report.Duplicates = append(report.Duplicates, Duplicate{ID: reco.ID, File: rel})
		}
	}
}

// lineOf converts a byte offset to a 1-based line number.
func lineOf(content string, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return 1 + strings.Count(content[:offset], "\n")
}
