package mdbook

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// Book is the chapter tree mdbook hands to a preprocessor.
type Book struct {
	Sections []BookItem
}

// BookItem is one node of the table of contents. Exactly one of
// Chapter, PartTitle or Separator is set, mirroring mdbook's
// externally tagged enum encoding.
type BookItem struct {
	Chapter   *Chapter
	PartTitle string
	Separator bool
}

// Chapter is a single book chapter. Path is nil for draft chapters
// and for chapters synthesized by preprocessors.
type Chapter struct {
	Name        string     `json:"name"`
	Content     string     `json:"content"`
	Number      []uint32   `json:"number"`
	SubItems    []BookItem `json:"sub_items"`
	Path        *string    `json:"path"`
	SourcePath  *string    `json:"source_path"`
	ParentNames []string   `json:"parent_names"`
}

// Title returns the chapter's display name, deriving one from the
// source path when the name is empty.
func (c *Chapter) Title() string {
	if c.Name != "" {
		return c.Name
	}
	if c.Path != nil {
		base := filepath.Base(*c.Path)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return "(untitled)"
}

// PathString returns the chapter's path or "" when it has none.
func (c *Chapter) PathString() string {
	if c.Path == nil {
		return ""
	}
	return *c.Path
}

// ForEachChapter visits every chapter depth-first in document order:
// a chapter is visited before its sub-items, sub-items before the
// chapter's siblings. Separators and part titles are skipped, but
// draft chapters (no path) are still descended into.
func (b *Book) ForEachChapter(fn func(ch *Chapter)) {
	walkItems(b.Sections, fn)
}

func walkItems(items []BookItem, fn func(ch *Chapter)) {
	for i := range items {
		ch := items[i].Chapter
		if ch == nil {
			continue
		}
		fn(ch)
		walkItems(ch.SubItems, fn)
	}
}

// AppendChapter adds a chapter as the last top-level section.
func (b *Book) AppendChapter(ch *Chapter) {
	b.Sections = append(b.Sections, BookItem{Chapter: ch})
}

func (it BookItem) MarshalJSON() ([]byte, error) {
	switch {
	case it.Separator:
		return json.Marshal("Separator")
	case it.PartTitle != "":
		return json.Marshal(map[string]string{"PartTitle": it.PartTitle})
	case it.Chapter != nil:
		return json.Marshal(map[string]*Chapter{"Chapter": it.Chapter})
	}
	return nil, fmt.Errorf("book item has no variant set")
}

func (it *BookItem) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var tag string
		if err := json.Unmarshal(data, &tag); err != nil {
			return err
		}
		if tag != "Separator" {
			return fmt.Errorf("unknown book item %q", tag)
		}
		*it = BookItem{Separator: true}
		return nil
	}

	var tagged struct {
		Chapter   *Chapter `json:"Chapter"`
		PartTitle *string  `json:"PartTitle"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	switch {
	case tagged.Chapter != nil:
		*it = BookItem{Chapter: tagged.Chapter}
	case tagged.PartTitle != nil:
		*it = BookItem{PartTitle: *tagged.PartTitle}
	default:
		return fmt.Errorf("unknown book item variant: %s", trimmed)
	}
	return nil
}

// bookJSON matches mdbook's serialized Book struct. The
// __non_exhaustive marker must round-trip as null.
type bookJSON struct {
	Sections      []BookItem `json:"sections"`
	NonExhaustive *struct{}  `json:"__non_exhaustive"`
}

func (b Book) MarshalJSON() ([]byte, error) {
	sections := b.Sections
	if sections == nil {
		sections = []BookItem{}
	}
	return json.Marshal(bookJSON{Sections: sections})
}

func (b *Book) UnmarshalJSON(data []byte) error {
	var raw bookJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.Sections = raw.Sections
	return nil
}

// chapterJSON exists so nil slices come out as [] and the wire shape
// stays what mdbook's serde derive expects.
type chapterJSON struct {
	Name        string     `json:"name"`
	Content     string     `json:"content"`
	Number      []uint32   `json:"number"`
	SubItems    []BookItem `json:"sub_items"`
	Path        *string    `json:"path"`
	SourcePath  *string    `json:"source_path"`
	ParentNames []string   `json:"parent_names"`
}

func (c Chapter) MarshalJSON() ([]byte, error) {
	raw := chapterJSON(c)
	if raw.SubItems == nil {
		raw.SubItems = []BookItem{}
	}
	if raw.ParentNames == nil {
		raw.ParentNames = []string{}
	}
	return json.Marshal(raw)
}

func (c *Chapter) UnmarshalJSON(data []byte) error {
	var raw chapterJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Chapter(raw)
	return nil
}
