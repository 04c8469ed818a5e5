package mdbook

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Version is the mdbook release line this module was written against.
// A differing host version is worth a warning but not an error.
const Version = "0.4"

// PreprocessorContext is the first element of the [context, book] pair
// mdbook writes to a preprocessor's stdin.
type PreprocessorContext struct {
	Root          string `json:"root"`
	Config        Config `json:"config"`
	Renderer      string `json:"renderer"`
	MdbookVersion string `json:"mdbook_version"`
}

// Config is the book.toml table as mdbook serializes it. Only the
// per-preprocessor sub-tables are interpreted here.
type Config struct {
	Preprocessor map[string]json.RawMessage `json:"preprocessor"`
}

// DecodePreprocessor unmarshals the configuration table for the named
// preprocessor into out. It reports whether a table was present;
// absence is not an error, the caller keeps its defaults.
func (c *Config) DecodePreprocessor(name string, out any) (bool, error) {
	raw, ok := c.Preprocessor[name]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("preprocessor.%s config: %w", name, err)
	}
	return true, nil
}

// VersionMatches reports whether the host's mdbook version is on the
// same release line as Version.
func (ctx *PreprocessorContext) VersionMatches() bool {
	return strings.HasPrefix(ctx.MdbookVersion, Version+".")
}

// ParseInput reads the [context, book] payload from r. Any decoding
// failure is fatal to the caller: without a well-formed book there is
// nothing to emit.
func ParseInput(r io.Reader) (*PreprocessorContext, *Book, error) {
	var pair []json.RawMessage
	if err := json.NewDecoder(r).Decode(&pair); err != nil {
		return nil, nil, fmt.Errorf("decode input: %w", err)
	}
	if len(pair) != 2 {
		return nil, nil, fmt.Errorf("expected [context, book] pair, got %d elements", len(pair))
	}

	var ctx PreprocessorContext
	if err := json.Unmarshal(pair[0], &ctx); err != nil {
		return nil, nil, fmt.Errorf("decode preprocessor context: %w", err)
	}
	var book Book
	if err := json.Unmarshal(pair[1], &book); err != nil {
		return nil, nil, fmt.Errorf("decode book: %w", err)
	}
	return &ctx, &book, nil
}

// WriteBook serializes the processed book to w in the format mdbook
// reads back.
func WriteBook(w io.Writer, book *Book) error {
	if err := json.NewEncoder(w).Encode(book); err != nil {
		return fmt.Errorf("encode book: %w", err)
	}
	return nil
}
