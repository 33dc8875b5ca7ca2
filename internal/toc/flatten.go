package toc

import "github.com/dgallion1/mdtoc/internal/doctree"

// Flatten walks the forest depth-first in document order. Every node yields
// exactly one Entry, children directly after their parent.
func Flatten(forest []*doctree.Node) []Entry {
	entries := make([]Entry, 0, doctree.Count(forest))
	var walk func(nodes []*doctree.Node, depth int)
	walk = func(nodes []*doctree.Node, depth int) {
		for _, n := range nodes {
			if n == nil {
				continue
			}
			entries = append(entries, Entry{Depth: depth, Title: n.Title})
			walk(n.Children, depth+1)
		}
	}
	walk(forest, 0)
	return entries
}
