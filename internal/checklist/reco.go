package checklist

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// Reco is a recommendation block: a `<div class="reco">` carrying its
// own id, type and title attributes. Unlike check directives, reco
// divs stay in the text as written; the div's id already is the
// anchor the index links to.
type Reco struct {
	ID    string
	Type  string
	Title string
}

// Description renders the index entry text for a reco.
func (r Reco) Description() string {
	return r.Type + " - " + r.Title
}

// CollectRecos extracts every recommendation div from a chapter's
// markdown. HTML blocks are located through the markdown AST so that
// reco divs quoted inside code fences are not picked up. Divs missing
// one of the required attributes are reported as problems and skipped.
func CollectRecos(content string) ([]Reco, []string) {
	var (
		recos    []Reco
		problems []string
	)
	for _, block := range htmlBlocks([]byte(content)) {
		found, probs := parseRecoFragment(block)
		recos = append(recos, found...)
		problems = append(problems, probs...)
	}
	return recos, problems
}

// htmlBlocks returns the raw HTML fragments of the document, both
// block-level and inline.
func htmlBlocks(source []byte) []string {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var blocks []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.HTMLBlock:
			var buf bytes.Buffer
			for i := 0; i < node.Lines().Len(); i++ {
				seg := node.Lines().At(i)
				buf.Write(seg.Value(source))
			}
			if node.HasClosure() {
				buf.Write(node.ClosureLine.Value(source))
			}
			blocks = append(blocks, buf.String())
		case *ast.RawHTML:
			var buf bytes.Buffer
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				buf.Write(seg.Value(source))
			}
			blocks = append(blocks, buf.String())
		}
		return ast.WalkContinue, nil
	})
	return blocks
}

// parseRecoFragment tokenizes an HTML fragment and picks out reco
// divs. Markdown extraction hands us fragments whose closing tags may
// live in a different block, so this works on a token stream rather
// than a parsed tree.
func parseRecoFragment(fragment string) ([]Reco, []string) {
	var (
		recos    []Reco
		problems []string
	)

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return recos, problems
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != "div" {
				continue
			}
			attrs := make(map[string]string, len(tok.Attr))
			for _, a := range tok.Attr {
				attrs[a.Key] = a.Val
			}
			if attrs["class"] != "reco" {
				continue
			}
			reco := Reco{ID: attrs["id"], Type: attrs["type"], Title: attrs["title"]}
			switch {
			case reco.ID == "":
				problems = append(problems, `reco div without "id" attribute`)
			case reco.Type == "":
				problems = append(problems, fmt.Sprintf("reco div %s without %q attribute", reco.ID, "type"))
			case reco.Title == "":
				problems = append(problems, fmt.Sprintf("reco div %s without %q attribute", reco.ID, "title"))
			default:
				recos = append(recos, reco)
			}
		}
	}
}
