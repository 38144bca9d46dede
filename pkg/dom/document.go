package dom

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrNotChild is returned when a reference node is not a child of the
	// given parent.
	ErrNotChild = errors.New("dom: node is not a child of parent")

	// ErrNoParent is returned when replacing a node that is not attached.
	ErrNoParent = errors.New("dom: node has no parent")

	// ErrHierarchy is returned when an insertion would make a node its own
	// ancestor.
	ErrHierarchy = errors.New("dom: insertion would create a cycle")
)

const blankDocument = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document is an observable HTML document.
type Document struct {
	root      *html.Node
	body      *html.Node
	observers []*MutationObserver
}

// NewDocument creates an empty document with head and body elements.
func NewDocument() *Document {
	doc, err := ParseDocument(blankDocument)
	if err != nil {
		panic("dom: parse blank document: " + err.Error())
	}
	return doc
}

// ParseDocument parses a complete HTML page, typically server output that
// is about to be hydrated.
func ParseDocument(markup string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	d := &Document{root: root}
	Walk(root, func(n *html.Node) {
		if d.body == nil && n.Type == html.ElementNode && n.DataAtom == atom.Body {
			d.body = n
		}
	})
	return d, nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the <body> element.
func (d *Document) Body() *html.Node {
	return d.body
}

// Contains reports whether n is part of the document tree.
func (d *Document) Contains(n *html.Node) bool {
	return Contains(d.root, n)
}

// AppendChild appends child (or the children of a fragment) to parent.
func (d *Document) AppendChild(parent, child *html.Node) error {
	return d.InsertBefore(parent, child, nil)
}

// InsertBefore inserts child before ref. A nil ref appends.
// Attached nodes are moved, which produces a removal record on their old
// parent first.
func (d *Document) InsertBefore(parent, child, ref *html.Node) error {
	if ref != nil && ref.Parent != parent {
		return ErrNotChild
	}
	if err := checkHierarchy(parent, child); err != nil {
		return err
	}
	nodes := d.adopt(child)
	for _, n := range nodes {
		parent.InsertBefore(n, ref)
	}
	d.notify(MutationRecord{Target: parent, AddedNodes: nodes})
	return nil
}

// RemoveChild detaches child from parent.
func (d *Document) RemoveChild(parent, child *html.Node) error {
	if child.Parent != parent {
		return ErrNotChild
	}
	parent.RemoveChild(child)
	d.notify(MutationRecord{Target: parent, RemovedNodes: []*html.Node{child}})
	return nil
}

// ReplaceChildren removes every child of parent and appends nodes in
// order, producing a single record.
func (d *Document) ReplaceChildren(parent *html.Node, nodes ...*html.Node) error {
	for _, n := range nodes {
		if err := checkHierarchy(parent, n); err != nil {
			return err
		}
	}

	var added []*html.Node
	for _, n := range nodes {
		added = append(added, d.adopt(n)...)
	}

	removed := Children(parent)
	for _, c := range removed {
		parent.RemoveChild(c)
	}
	for _, n := range added {
		parent.AppendChild(n)
	}

	d.notify(MutationRecord{Target: parent, AddedNodes: added, RemovedNodes: removed})
	return nil
}

// ReplaceWith replaces old with nodes in old's parent.
func (d *Document) ReplaceWith(old *html.Node, nodes ...*html.Node) error {
	parent := old.Parent
	if parent == nil {
		return ErrNoParent
	}
	for _, n := range nodes {
		if err := checkHierarchy(parent, n); err != nil {
			return err
		}
	}

	var added []*html.Node
	for _, n := range nodes {
		if n == old {
			continue
		}
		added = append(added, d.adopt(n)...)
	}
	for _, n := range added {
		parent.InsertBefore(n, old)
	}
	parent.RemoveChild(old)

	d.notify(MutationRecord{Target: parent, AddedNodes: added, RemovedNodes: []*html.Node{old}})
	return nil
}

// adopt prepares n for insertion: a fragment yields its children, an
// attached node is detached from its current parent.
func (d *Document) adopt(n *html.Node) []*html.Node {
	if IsFragment(n) {
		children := Children(n)
		for _, c := range children {
			n.RemoveChild(c)
		}
		d.notify(MutationRecord{Target: n, RemovedNodes: children})
		return children
	}
	if old := n.Parent; old != nil {
		old.RemoveChild(n)
		d.notify(MutationRecord{Target: old, RemovedNodes: []*html.Node{n}})
	}
	return []*html.Node{n}
}

func checkHierarchy(parent, child *html.Node) error {
	if child == nil {
		return ErrNotChild
	}
	if !IsFragment(child) && Contains(child, parent) {
		return ErrHierarchy
	}
	return nil
}
