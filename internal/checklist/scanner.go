package checklist

import (
	"fmt"
	"strings"
)

const (
	directiveOpen  = "{{#check"
	directiveClose = "}}"
)

// Match is one well-formed `{{#check <id> | <description>}}` directive.
// Start and End delimit the full markup, delimiters included, as byte
// offsets into the scanned text.
type Match struct {
	ID          string
	Description string
	Start       int
	End         int
}

// Diagnostic describes markup that looked like a directive but could
// not be parsed. The text is left untouched; the diagnostic exists so
// the author can fix the typo.
type Diagnostic struct {
	Offset int
	Reason string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("offset %d: %s", d.Offset, d.Reason)
}

// Scan finds every check directive in text. Malformed candidates are
// reported as diagnostics and skipped; they never abort the scan.
// Matches are returned in text order with non-overlapping spans.
func Scan(text string) ([]Match, []Diagnostic) {
	var (
		matches []Match
		diags   []Diagnostic
	)

	pos := 0
	for {
		rel := strings.Index(text[pos:], directiveOpen)
		if rel < 0 {
			break
		}
		start := pos + rel
		body := start + len(directiveOpen)

		// "{{#checklist" and friends are not directives.
		if body >= len(text) || !isSpace(text[body]) {
			pos = body
			continue
		}

		// The first unescaped "}}" terminates the directive. Descriptions
		// containing a literal "}}" are a known limitation.
		closeRel := strings.Index(text[body:], directiveClose)
		if closeRel < 0 {
			diags = append(diags, Diagnostic{Offset: start, Reason: "missing closing }}"})
			pos = body
			continue
		}
		closeAt := body + closeRel
		end := closeAt + len(directiveClose)
		inner := text[body:closeAt]

		id, desc, ok := splitDirective(inner)
		if !ok {
			diags = append(diags, Diagnostic{Offset: start, Reason: "missing | separator"})
			pos = end
			continue
		}
		if id == "" {
			diags = append(diags, Diagnostic{Offset: start, Reason: "empty identifier"})
			pos = end
			continue
		}
		if reason := invalidIdent(id); reason != "" {
			diags = append(diags, Diagnostic{Offset: start, Reason: reason})
			pos = end
			continue
		}

		matches = append(matches, Match{
			ID:          id,
			Description: desc,
			Start:       start,
			End:         end,
		})
		pos = end
	}

	return matches, diags
}

func splitDirective(inner string) (id, desc string, ok bool) {
	sep := strings.IndexByte(inner, '|')
	if sep < 0 {
		return "", "", false
	}
	return strings.TrimSpace(inner[:sep]), strings.TrimSpace(inner[sep+1:]), true
}

// invalidIdent rejects identifiers that would collide with the
// markdown link syntax the index generator emits.
func invalidIdent(id string) string {
	for _, r := range id {
		switch {
		case r == ' ', r == '\t', r == '\n', r == '\r':
			return "identifier contains whitespace"
		case r == ']', r == ')':
			return fmt.Sprintf("identifier contains %q", r)
		}
	}
	return ""
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
