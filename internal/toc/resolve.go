package toc

import (
	"regexp"
	"strings"

	"github.com/dgallion1/mdtoc/internal/doctree"
	"github.com/dgallion1/mdtoc/internal/outline"
)

// Resolve finds the heading that a rendered entry line points at and returns
// the offset of the heading line in doc.
//
// An entry at indentation level n targets a heading of level n+1 whose text
// is the entry title. The last such heading in the document wins; an
// exact-case match is preferred over a case-insensitive one. Headings are
// read the same way Generate reads them, so code blocks never match.
func Resolve(entry, doc string, cfg RenderConfig) (int, error) {
	item, err := ParseItem(entry, cfg)
	if err != nil {
		return -1, err
	}
	return FindHeading(Headings(doc), item.Level+1, item.Title)
}

// Headings returns every heading of a Markdown document in document order.
func Headings(doc string) []*doctree.Node {
	tree := (&outline.MarkdownProvider{}).Parse([]byte(doc), "")
	nodes := make([]*doctree.Node, 0, doctree.Count(tree.Children))
	var walk func([]*doctree.Node)
	walk = func(forest []*doctree.Node) {
		for _, n := range forest {
			nodes = append(nodes, n)
			walk(n.Children)
		}
	}
	walk(tree.Children)
	return nodes
}

// FindHeading returns the offset of the last heading in nodes with the given
// source level and title.
func FindHeading(nodes []*doctree.Node, level int, title string) (int, error) {
	title = strings.TrimSpace(title)
	for _, fold := range []bool{false, true} {
		for i := len(nodes) - 1; i >= 0; i-- {
			n := nodes[i]
			if n.Level != level {
				continue
			}
			text := strings.TrimSpace(n.Title)
			if text == title || (fold && strings.EqualFold(text, title)) {
				return n.Offset, nil
			}
		}
	}
	return -1, ErrNotFound
}

// ResolveFragment resolves a raw "#fragment" link that was not necessarily
// written by Render. It returns the offset of the first heading, at any
// level, whose text starts with the fragment, where each '-' in the fragment
// matches either '-' or a space and letter case is ignored.
func ResolveFragment(fragment, doc string) (int, error) {
	frag, ok := strings.CutPrefix(strings.TrimSpace(fragment), "#")
	if !ok {
		return -1, ErrNotFound
	}

	parts := strings.Split(frag, "-")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	re, err := regexp.Compile(`(?i)^` + strings.Join(parts, `[- ]`))
	if err != nil {
		return -1, ErrNotFound
	}
	for _, n := range Headings(doc) {
		if re.MatchString(n.Title) {
			return n.Offset, nil
		}
	}
	return -1, ErrNotFound
}
