package doctree

// Tree is the heading outline of one document.
type Tree struct {
	Title    string  // Document title (from metadata or filename)
	Children []*Node // Top-level headings, in document order
}

// Node is one heading. Children are one level deeper than their parent,
// whatever the heading markup levels were in the source.
type Node struct {
	Title    string  // Heading text as written in the source
	Level    int     // Source heading level (1 for h1/#), 0 if unknown
	Offset   int     // Byte offset of the heading in the source, -1 if unknown
	Children []*Node // Subheadings
}

// Count returns the number of nodes in the forest.
func Count(forest []*Node) int {
	n := 0
	for _, node := range forest {
		n += 1 + Count(node.Children)
	}
	return n
}

// stackEntry tracks an open heading while a flat heading stream is nested.
type stackEntry struct {
	node  *Node
	level int
}

// Builder nests a document-ordered stream of (level, title) headings into a
// forest. A heading becomes a child of the nearest preceding heading with a
// lower level.
type Builder struct {
	root  Node
	stack []stackEntry
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	b := &Builder{}
	b.stack = []stackEntry{{node: &b.root, level: 0}}
	return b
}

// Add appends a heading of the given source level.
func (b *Builder) Add(level int, title string, offset int) *Node {
	newNode := &Node{Title: title, Level: level, Offset: offset}

	// Pop stack until we find a parent with lower level.
	for len(b.stack) > 1 && b.stack[len(b.stack)-1].level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}

	parent := b.stack[len(b.stack)-1].node
	parent.Children = append(parent.Children, newNode)
	b.stack = append(b.stack, stackEntry{node: newNode, level: level})
	return newNode
}

// Forest returns the top-level headings collected so far.
func (b *Builder) Forest() []*Node {
	return b.root.Children
}
