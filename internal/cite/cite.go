// Package cite rewrites `[@key]` citations into links and appends a
// references section built from each chapter's YAML front matter.
package cite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/ANSSI-FR/mdbook-checklist/internal/mdbook"
)

// Name is the preprocessor's table name in book.toml
// ([preprocessor.cite]).
const Name = "cite"

// DefaultTitle heads the per-chapter references section.
const DefaultTitle = "References"

// Config is the [preprocessor.cite] table.
type Config struct {
	Title string `json:"title" mapstructure:"title"`
}

// Entry is one bibliography record from the chapter front matter,
// CSL-YAML shaped.
type Entry struct {
	ID     string   `yaml:"id"`
	Title  string   `yaml:"title"`
	URL    string   `yaml:"url"`
	Author []Person `yaml:"author"`
}

// Person is a CSL name; only the family name is rendered.
type Person struct {
	Family string `yaml:"family"`
}

type frontMatter struct {
	References []Entry `yaml:"references"`
}

var citeRe = regexp.MustCompile(`\[@([a-zA-Z0-9\-_]*)\]`)

// Preprocessor strips front matter and processes citations for every
// chapter of a book.
type Preprocessor struct {
	log *log.Logger
}

// New returns a preprocessor logging warnings through logger.
func New(logger *log.Logger) *Preprocessor {
	return &Preprocessor{log: logger}
}

// Run processes the book in place. Chapters without front matter pass
// through byte-for-byte; unparseable front matter is stripped but
// produces a warning instead of failing the build.
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

	book.ForEachChapter(func(ch *mdbook.Chapter) {
		meta, body, ok := SplitFrontMatter(ch.Content)
		if !ok {
			return
		}
		ch.Content = body

		var fm frontMatter
		if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
			p.log.Warn("unreadable front matter", "chapter", ch.Title(), "err", err)
			return
		}
		if len(fm.References) == 0 {
			return
		}
		ch.Content = Process(body, fm.References, cfg.Title)
	})

	return book, nil
}

// Process rewrites every `[@key]` in content to a `[key](#key)` link
// and, when at least one citation was found, appends a references
// section listing the cited bibliography entries in their order of
// appearance in bib.
func Process(content string, bib []Entry, title string) string {
	cited := make(map[string]struct{})
	for _, m := range citeRe.FindAllStringSubmatch(content, -1) {
		cited[m[1]] = struct{}{}
	}

	out := citeRe.ReplaceAllString(content, "[$1](#$1)")
	if len(cited) == 0 {
		return out
	}

	var b strings.Builder
	b.WriteString(out)
	fmt.Fprintf(&b, "\n\n## %s\n\n", title)
	for _, entry := range bib {
		if _, ok := cited[entry.ID]; !ok {
			continue
		}
		b.WriteString(renderEntry(entry))
	}
	return b.String()
}

func renderEntry(entry Entry) string {
	titleLink := entry.Title
	if entry.URL != "" {
		titleLink = fmt.Sprintf("[%s](%s)", entry.Title, entry.URL)
	}
	var authors strings.Builder
	for _, person := range entry.Author {
		authors.WriteString(", ")
		authors.WriteString(person.Family)
	}
	return fmt.Sprintf("* <a id=%q></a> *%s*%s (%s)\n", entry.ID, titleLink, authors.String(), entry.ID)
}
