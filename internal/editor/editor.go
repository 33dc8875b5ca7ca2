// Package editor applies TOC operations to whole Markdown documents held in
// memory: insert, refresh (generate-or-replace), delete and follow-link.
// Each call is independent; nothing is retained between calls.
package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgallion1/mdtoc/internal/doctree"
	"github.com/dgallion1/mdtoc/internal/outline"
	"github.com/dgallion1/mdtoc/internal/toc"
)

// ErrOffset reports a position outside the document.
var ErrOffset = errors.New("editor: invalid offset")

// Editor binds a rendering configuration to the document operations.
type Editor struct {
	cfg toc.RenderConfig
	log *slog.Logger
}

// New creates an Editor. A nil logger discards output.
func New(cfg toc.RenderConfig, log *slog.Logger) *Editor {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Editor{cfg: cfg, log: log}
}

// Outline returns the heading forest of a Markdown document.
func (e *Editor) Outline(doc string) []*doctree.Node {
	p := &outline.MarkdownProvider{SkipTitle: e.cfg.TitleLine}
	return p.Parse([]byte(doc), "").Children
}

// Render returns a fresh TOC block for doc without modifying it.
func (e *Editor) Render(doc string) string {
	return toc.Generate(e.Outline(doc), e.cfg)
}

// Insert writes a fresh TOC block at the start of the line containing
// offset, ignoring any existing block. The block must start a line for
// Locate to find it again.
func (e *Editor) Insert(doc string, offset int) (string, error) {
	if err := checkOffset(doc, offset); err != nil {
		return doc, err
	}
	offset = lineStart(doc, offset)
	block := e.Render(doc)
	e.log.Debug("toc inserted", "offset", offset, "bytes", len(block))
	return doc[:offset] + block + doc[offset:], nil
}

// Refresh replaces the existing TOC block in place, or inserts one at offset
// when the document has none. Applying it twice gives the same document as
// applying it once.
func (e *Editor) Refresh(doc string, offset int) (string, bool, error) {
	if out, ok := e.RefreshIfPresent(doc); ok {
		return out, true, nil
	}
	out, err := e.Insert(doc, offset)
	return out, false, err
}

// RefreshIfPresent regenerates an existing TOC block and leaves documents
// without one untouched. This is the call to make before saving.
func (e *Editor) RefreshIfPresent(doc string) (string, bool) {
	b, ok := toc.Locate(doc, e.cfg)
	if !ok {
		return doc, false
	}
	block := e.Render(doc)
	e.log.Debug("toc replaced", "start", b.Start, "end", b.End, "bytes", len(block))
	return doc[:b.Start] + block + doc[b.End:], true
}

// Delete removes the existing TOC block.
func (e *Editor) Delete(doc string) (string, bool) {
	b, ok := toc.Locate(doc, e.cfg)
	if !ok {
		return doc, false
	}
	e.log.Debug("toc deleted", "start", b.Start, "end", b.End)
	return doc[:b.Start] + doc[b.End:], true
}

// Follow returns the offset of the heading a TOC entry line points at. A
// line that is not an entry but a raw "#fragment" link is resolved against
// heading text instead.
func (e *Editor) Follow(doc, target string) (int, error) {
	off, err := toc.Resolve(target, doc, e.cfg)
	if errors.Is(err, toc.ErrNotTocItem) {
		if frag := strings.TrimSpace(target); strings.HasPrefix(frag, "#") {
			return toc.ResolveFragment(frag, doc)
		}
		return -1, toc.ErrNotFound
	}
	return off, err
}

// FollowAt resolves the entry on the line containing offset.
func (e *Editor) FollowAt(doc string, offset int) (int, error) {
	if offset < 0 || offset > len(doc) {
		return -1, fmt.Errorf("%w: %d not in [0,%d]", ErrOffset, offset, len(doc))
	}
	start := lineStart(doc, offset)
	end := strings.IndexByte(doc[offset:], '\n')
	if end < 0 {
		end = len(doc)
	} else {
		end += offset
	}
	return e.Follow(doc, doc[start:end])
}

// LineOf returns the 1-based line number of offset in doc.
func LineOf(doc string, offset int) int {
	offset = min(max(offset, 0), len(doc))
	return strings.Count(doc[:offset], "\n") + 1
}

func checkOffset(doc string, offset int) error {
	if offset < 0 || offset > len(doc) {
		return fmt.Errorf("%w: %d not in [0,%d]", ErrOffset, offset, len(doc))
	}
	return nil
}

func lineStart(doc string, offset int) int {
	return strings.LastIndexByte(doc[:offset], '\n') + 1
}
