//go:build property
// +build property

package checklist

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genIdent produces identifiers in the directive's allowed character set.
func genIdent() gopter.Gen {
	return gen.RegexMatch(`^[A-Z][A-Z0-9\-]{0,15}$`)
}

// genProse produces chapter text free of directive syntax.
func genProse() gopter.Gen {
	return gen.AlphaString().SuchThat(func(s string) bool {
		return !strings.Contains(s, "{{#check")
	})
}

func TestScannerProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("non-directive text round-trips unchanged", prop.ForAll(
		func(text string) bool {
			matches, _ := Scan(text)
			return len(matches) == 0 && Rewrite(text, matches) == text
		},
		genProse(),
	))

	properties.Property("scan finds an embedded directive", prop.ForAll(
		func(prefix, id, desc, suffix string) bool {
			if desc == "" {
				return true
			}
			text := prefix + "{{#check " + id + " | " + desc + "}}" + suffix
			matches, _ := Scan(text)
			if len(matches) != 1 {
				return false
			}
			m := matches[0]
			return m.ID == id && m.Description == desc &&
				text[m.Start:m.End] == "{{#check "+id+" | "+desc+"}}"
		},
		genProse(), genIdent(), genProse(), genProse(),
	))

	properties.Property("rewriting is idempotent under re-scan", prop.ForAll(
		func(prefix, id, desc string) bool {
			if desc == "" {
				return true
			}
			text := prefix + "{{#check " + id + " | " + desc + "}}"
			matches, _ := Scan(text)
			once := Rewrite(text, matches)

			again, diags := Scan(once)
			return len(again) == 0 && len(diags) == 0 && Rewrite(once, again) == once
		},
		genProse(), genIdent(), genProse(),
	))

	properties.Property("identifier survives into anchor and index", prop.ForAll(
		func(id, desc string) bool {
			if desc == "" {
				return true
			}
			text := "{{#check " + id + " | " + desc + "}}"
			matches, _ := Scan(text)
			if len(matches) != 1 {
				return false
			}

			registry := NewRegistry()
			registry.Record(matches[0].ID, matches[0].Description, "Ch", "ch.md")
			index := GenerateIndex(registry.Snapshot(), "Checklist")

			return strings.Contains(Rewrite(text, matches), Anchor(id)) &&
				strings.Contains(index.Content, "(ch.md#"+id+")")
		},
		genIdent(), genProse(),
	))

	properties.TestingRun(t)
}

func TestRegistryProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("document order is stable", prop.ForAll(
		func(ids []string) bool {
			registry := NewRegistry()
			var recorded []string
			for _, id := range ids {
				if registry.Record(id, "desc "+id, "Ch", "ch.md") {
					recorded = append(recorded, id)
				}
			}

			snap := registry.Snapshot()
			if len(snap) == 0 {
				return len(recorded) == 0
			}
			if len(snap[0].Checks) != len(recorded) {
				return false
			}
			for i, check := range snap[0].Checks {
				if check.ID != recorded[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genIdent()),
	))

	properties.Property("first-seen-wins under duplication", prop.ForAll(
		func(id, first, second string) bool {
			registry := NewRegistry()
			registry.Record(id, first, "One", "one.md")
			registry.Record(id, second, "Two", "two.md")

			snap := registry.Snapshot()
			return registry.Len() == 1 && len(snap) == 1 &&
				snap[0].Checks[0].Description == first
		},
		genIdent(), gen.AlphaString(), gen.AlphaString(),
	))

	properties.TestingRun(t)
}
