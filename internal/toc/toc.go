// Package toc turns a heading outline into an anchor-linked Markdown table of
// contents, finds a previously rendered block inside a document, and resolves
// a rendered entry back to the heading it points at.
//
// Everything here is a pure function over strings and outline values. Offsets
// are byte offsets into the exact string passed in.
package toc

import (
	"errors"

	"github.com/dgallion1/mdtoc/internal/doctree"
)

var (
	// ErrNotFound reports that no TOC block or no matching heading exists.
	ErrNotFound = errors.New("toc: not found")
	// ErrNotTocItem reports a line that does not have the shape of a rendered entry.
	ErrNotTocItem = errors.New("toc: line is not a toc entry")
	// ErrInvalidIndentation reports an entry whose indentation is not a
	// multiple of the configured indent unit.
	ErrInvalidIndentation = errors.New("toc: indentation is not a multiple of the indent unit")
)

// RenderConfig controls how a TOC block looks. It is read-only input to every
// call; a zero StartMarker or EndMarker means the marker is absent.
type RenderConfig struct {
	ListMarker  string
	IndentUnit  int
	QuoteLines  bool
	StartMarker string
	TitleLine   string
	EndMarker   string

	// MaxDepth drops entries at depth >= MaxDepth after disambiguation.
	// 0 keeps every entry.
	MaxDepth int
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() RenderConfig {
	return RenderConfig{
		ListMarker:  "-",
		IndentUnit:  2,
		StartMarker: "<!-- toc start - Don't edit this section. Run `mdtoc refresh` -->",
		TitleLine:   "**Table of Contents**",
		EndMarker:   "<!-- toc end -->",
	}
}

// Entry is one heading of a flattened outline. Depth 0 is a top-level heading.
type Entry struct {
	Depth int
	Title string
}

// Disambiguated is an Entry with its per-title occurrence index: 0 for the
// first heading with that exact title, 1 for the second, and so on.
type Disambiguated struct {
	Entry
	Occurrence int
}

// Bounds is the half-open byte range [Start, End) of a TOC block.
type Bounds struct {
	Start int
	End   int
}

// Generate runs the whole pipeline: flatten, disambiguate, render.
func Generate(forest []*doctree.Node, cfg RenderConfig) string {
	return Render(Disambiguate(Flatten(forest)), cfg)
}
