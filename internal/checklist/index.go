package checklist

import (
	"fmt"
	"strings"

	"github.com/ANSSI-FR/mdbook-checklist/internal/mdbook"
)

// IndexPath is where the generated chapter pretends to live. Links in
// the index are relative to it, so chapter paths can be used as-is.
const IndexPath = "checklist.md"

// GenerateIndex renders the registry into a new chapter: one
// sub-heading per source chapter, one unchecked task-list item per
// check, each linking back to the anchor Rewrite left in the text. An
// empty registry still yields a chapter with just the title heading.
func GenerateIndex(snapshot []ChapterChecks, title string) *mdbook.Chapter {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)

	for _, chapter := range snapshot {
		fmt.Fprintf(&b, "\n## %s\n\n", chapter.Chapter)
		for _, check := range chapter.Checks {
			fmt.Fprintf(&b, "- [ ] %s ([%s](%s#%s))\n",
				check.Description, check.ID, chapter.Path, check.ID)
		}
	}

	path := IndexPath
	return &mdbook.Chapter{
		Name:        title,
		Content:     b.String(),
		Path:        &path,
		SubItems:    []mdbook.BookItem{},
		ParentNames: []string{},
	}
}
