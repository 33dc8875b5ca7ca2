package outline

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/mdtoc/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFProvider reads the document's bookmark tree. A PDF without bookmarks
// has an empty outline.
type PDFProvider struct{}

func (p *PDFProvider) Outline(r io.Reader, filename string) (*doctree.Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	tree := &doctree.Tree{
		Title: baseTitle(filename, ".pdf"),
	}
	tree.Children = bookmarks(reader.Outline().Child, 1)
	return tree, nil
}

func bookmarks(items []pdflib.Outline, level int) []*doctree.Node {
	nodes := make([]*doctree.Node, 0, len(items))
	for _, item := range items {
		nodes = append(nodes, &doctree.Node{
			Title:    strings.TrimSpace(item.Title),
			Level:    level,
			Offset:   -1,
			Children: bookmarks(item.Child, level+1),
		})
	}
	return nodes
}
