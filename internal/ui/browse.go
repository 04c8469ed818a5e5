// Package ui is a small read-only browser for the checks a book
// defines: one row per check, filterable, grouped by chapter.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ANSSI-FR/mdbook-checklist/internal/lint"
)

// checkRow is one display line.
type checkRow struct {
	chapter string
	id      string
	desc    string
}

func (r checkRow) matchesQuery(words []string) bool {
	for _, word := range words {
		if !strings.Contains(strings.ToLower(r.chapter), word) &&
			!strings.Contains(strings.ToLower(r.id), word) &&
			!strings.Contains(strings.ToLower(r.desc), word) {
			return false
		}
	}
	return true
}

type browseModel struct {
	rows     []checkRow
	filtered []int

	cursor int
	offset int
	width  int
	height int

	filter textinput.Model
}

func newBrowseModel(report *lint.Report) browseModel {
	var rows []checkRow
	for _, chapter := range report.Chapters {
		for _, check := range chapter.Checks {
			rows = append(rows, checkRow{
				chapter: chapter.Chapter,
				id:      check.ID,
				desc:    check.Description,
			})
		}
	}

	ti := textinput.New()
	ti.Placeholder = "filter checks"
	ti.Prompt = "> "
	ti.Focus()

	m := browseModel{rows: rows, filter: ti, width: 80, height: 24}
	m.applyFilter()
	return m
}

func (m browseModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.adjustOffset()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "ctrl+p":
			m.moveCursor(-1)
			return m, nil
		case "down", "ctrl+n":
			m.moveCursor(1)
			return m, nil
		case "pgup":
			m.moveCursor(-m.pageSize())
			return m, nil
		case "pgdown":
			m.moveCursor(m.pageSize())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m browseModel) View() string {
	var b strings.Builder
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	page := m.pageSize()
	end := m.offset + page
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	lastChapter := ""
	for i := m.offset; i < end; i++ {
		row := m.rows[m.filtered[i]]
		if row.chapter != lastChapter {
			b.WriteString(styles.Chapter.Render(row.chapter))
			b.WriteString("\n")
			lastChapter = row.chapter
		}

		cursor := "  "
		line := fmt.Sprintf("%s  %s", styles.ID.Render(row.id), styles.Desc.Render(row.desc))
		if i == m.cursor {
			cursor = styles.Cursor.Render("> ")
			line = styles.Selected.Render(line)
		}
		b.WriteString(cursor)
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Dim.Render(
		fmt.Sprintf("%d/%d checks  ·  esc to quit", len(m.filtered), len(m.rows))))
	return b.String()
}

func (m *browseModel) applyFilter() {
	words := strings.Fields(strings.ToLower(m.filter.Value()))
	m.filtered = m.filtered[:0]
	for i, row := range m.rows {
		if row.matchesQuery(words) {
			m.filtered = append(m.filtered, i)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustOffset()
}

func (m *browseModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustOffset()
}

func (m *browseModel) adjustOffset() {
	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// pageSize leaves room for the filter line and the status line, plus
// chapter headings which take a row each; a conservative estimate is
// fine for scrolling.
func (m *browseModel) pageSize() int {
	page := m.height - 6
	if page < 1 {
		page = 1
	}
	return page
}

// Run launches the browser over a lint report.
func Run(report *lint.Report) error {
	p := tea.NewProgram(newBrowseModel(report), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
