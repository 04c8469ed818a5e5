package lint

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles for the lint report, kept package-level like the rest of the
// charm-based output in this repo.
var (
	styleHeading   = lipgloss.NewStyle().Bold(true)
	styleChapter   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleID        = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleDesc      = lipgloss.NewStyle()
	styleProblem   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleDuplicate = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleDim       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Render formats the report for a terminal.
func (r *Report) Render() string {
	var b strings.Builder

	for _, chapter := range r.Chapters {
		b.WriteString(styleChapter.Render(chapter.Chapter))
		b.WriteString("\n")
		for _, check := range chapter.Checks {
			fmt.Fprintf(&b, "  %s  %s\n",
				styleID.Render(check.ID), styleDesc.Render(check.Description))
		}
	}

	if len(r.Problems) > 0 {
		b.WriteString("\n")
		b.WriteString(styleHeading.Render("Problems"))
		b.WriteString("\n")
		for _, p := range r.Problems {
			fmt.Fprintf(&b, "  %s %s\n",
				styleProblem.Render(p.File+":"), p.Message)
		}
	}

	if len(r.Duplicates) > 0 {
		b.WriteString("\n")
		b.WriteString(styleHeading.Render("Duplicate identifiers"))
		b.WriteString("\n")
		for _, d := range r.Duplicates {
			fmt.Fprintf(&b, "  %s seen again in %s\n",
				styleDuplicate.Render(d.ID), d.File)
		}
	}

	b.WriteString("\n")
	b.WriteString(styleDim.Render(
		fmt.Sprintf("%d checks in %d files", r.Total(), r.Files)))
	b.WriteString("\n")
	return b.String()
}
