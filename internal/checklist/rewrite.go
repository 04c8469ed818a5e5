package checklist

import "strings"

// Rewrite replaces every matched directive span with its identifier
// followed by an HTML anchor, so the generated index can deep-link to
// the spot where the check mark sits. Text outside the spans is copied
// through untouched. The anchor form is not directive syntax, so
// re-scanning rewritten text finds nothing and a second pass is a
// no-op.
func Rewrite(text string, matches []Match) string {
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m.Start])
		b.WriteString(Anchor(m.ID))
		last = m.End
	}
	b.WriteString(text[last:])
	return b.String()
}

// Anchor renders the in-place replacement for a check directive.
func Anchor(id string) string {
	return id + `<a id="` + id + `"></a>`
}
