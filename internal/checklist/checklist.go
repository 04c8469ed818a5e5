// Package checklist collects `{{#check <id> | <description>}}` marks
// and recommendation divs from a book's chapters, rewrites each mark
// to a linkable anchor, and appends a generated checklist chapter
// indexing them all.
package checklist

import (
	"github.com/charmbracelet/log"

	"github.com/ANSSI-FR/mdbook-checklist/internal/mdbook"
)

// Name is the preprocessor's table name in book.toml
// ([preprocessor.checklist]).
const Name = "checklist"

// DefaultTitle heads the generated chapter when book.toml does not
// configure one.
const DefaultTitle = "Checklist"

// Config is the [preprocessor.checklist] table.
type Config struct {
	Title string `json:"title" mapstructure:"title"`
}

// Preprocessor runs the scan, rewrite and index generation pass over
// one book.
type Preprocessor struct {
	log *log.Logger
}

// New returns a preprocessor logging warnings through logger.
func New(logger *log.Logger) *Preprocessor {
	return &Preprocessor{log: logger}
}

// Run processes the book in place and returns it with the checklist
// chapter appended. Content-level problems (malformed directives,
// duplicate identifiers, incomplete reco divs) are warnings, never
// errors: one typo must not break the whole book build.
func (p *Preprocessor) Run(ctx *mdbook.PreprocessorContext, book *mdbook.Book) (*mdbook.Book, error) {
	cfg := Config{Title: DefaultTitle}
	if ctx != nil {
		if _, err := ctx.Config.DecodePreprocessor(Name, &cfg); err != nil {
			p.log.Warn("ignoring malformed preprocessor config", "err", err)
		}
		if cfg.Title == "" {
			cfg.Title = DefaultTitle
		}
	}

	registry := NewRegistry()
	book.ForEachChapter(func(ch *mdbook.Chapter) {
		p.processChapter(ch, registry)
	})

	book.AppendChapter(GenerateIndex(registry.Snapshot(), cfg.Title))
	p.log.Debug("checklist generated", "checks", registry.Len())
	return book, nil
}

func (p *Preprocessor) processChapter(ch *mdbook.Chapter, registry *Registry) {
	title := ch.Title()
	path := ch.PathString()

	matches, diags := Scan(ch.Content)
	for _, d := range diags {
		p.log.Warn("malformed check directive", "chapter", title, "offset", d.Offset, "reason", d.Reason)
	}
	for _, m := range matches {
		if !registry.Record(m.ID, m.Description, title, path) {
			p.log.Warn("duplicate check identifier", "chapter", title, "id", m.ID)
		}
	}
	// Every occurrence is rewritten, duplicates included: the
	// registry decides what the index lists, not what the text shows.
	ch.Content = Rewrite(ch.Content, matches)

	recos, problems := CollectRecos(ch.Content)
	for _, prob := range problems {
		p.log.Warn(prob, "chapter", title)
	}
	for _, reco := range recos {
		if !registry.Record(reco.ID, reco.Description(), title, path) {
			p.log.Warn("duplicate reco identifier", "chapter", title, "id", reco.ID)
		}
	}
}
