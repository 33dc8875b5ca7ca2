package outline

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/mdtoc/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownProvider reads ATX and setext headings using goldmark. Headings
// inside code blocks, lists and block quotes are not part of the outline.
type MarkdownProvider struct {
	// SkipTitle is a TOC title line. When it is itself a heading, that
	// heading is left out so the TOC does not list its own title.
	SkipTitle string
}

func (p *MarkdownProvider) Outline(r io.Reader, filename string) (*doctree.Tree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return p.Parse(src, filename), nil
}

// Parse builds the outline of src.
func (p *MarkdownProvider) Parse(src []byte, filename string) *doctree.Tree {
	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	tree := &doctree.Tree{
		Title: baseTitle(filename, ".md", ".markdown"),
	}
	skip := skipKey(p.SkipTitle)

	b := doctree.NewBuilder()
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		title, offset := headingSource(heading, src)
		if skip != "" && plainTitle(title) == skip {
			continue
		}
		b.Add(heading.Level, title, offset)
	}
	tree.Children = b.Forest()
	return tree
}

// headingSource returns the heading text as written, inline markup included,
// and the offset of the line it starts on.
func headingSource(h *ast.Heading, src []byte) (string, int) {
	lines := h.Lines()
	if lines.Len() == 0 {
		return "", -1
	}
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimSpace(string(seg.Value(src))))
	}
	start := lines.At(0).Start
	offset := bytes.LastIndexByte(src[:start], '\n') + 1
	return strings.Join(parts, " "), offset
}

// skipKey returns the plain heading text of a title line such as
// "## **Table of Contents**", or "" when the title line is not a heading.
func skipKey(titleLine string) string {
	if !strings.HasPrefix(titleLine, "#") {
		return ""
	}
	return plainTitle(strings.TrimLeft(titleLine, "#"))
}

// plainTitle strips surrounding emphasis markers.
func plainTitle(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "*_"))
}
