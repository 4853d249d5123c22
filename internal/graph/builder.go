package graph

import (
	"fmt"

	"github.com/dominikbraun/graph"
)

// SchemaGraph is the write-once handoff structure between the compiler and
// the emission step. It is a directed graph with a single "entry" root:
// the root has one outgoing edge per class in document order, and each
// class node has exactly two child edges per field, inserted name first,
// wire type second. Consumers recover (name, type) tuples by pairing a
// class's children two at a time in insertion order; the pairing is
// positional, edges carry no labels.
//
// The underlying adjacency map is unordered, so insertion order is kept
// in a child index the same way the reverse indexes sit next to the graph
// in code-search builders. Node lookup and the order/size counts go
// through the graph itself.
type SchemaGraph struct {
	g graph.Graph[string, *Node]

	children map[string][]string // parent ID -> child IDs, insertion order
	seq      int                 // monotonic ID suffix
}

// NewSchemaGraph creates a graph holding only the entry root.
func NewSchemaGraph() *SchemaGraph {
	sg := &SchemaGraph{
		g:        graph.New(func(n *Node) string { return n.ID }, graph.Directed()),
		children: make(map[string][]string),
	}
	// AddVertex on a fresh graph cannot fail.
	_ = sg.g.AddVertex(&Node{ID: EntryID, Kind: NodeEntry, Label: "entry"})
	return sg
}

// AddClass inserts a class node and links it from the root. Call order is
// document order; the root's child list preserves it.
func (sg *SchemaGraph) AddClass(name string) string {
	id := sg.insert(NodeClass, name)
	sg.link(EntryID, id)
	return id
}

// AddField inserts the two leaf nodes for one field (normalized name,
// then wire type) and links both from the class node in that order. The
// two insertions belong to one field and must never be interleaved with
// another field's; this method is the only writer, which enforces that.
func (sg *SchemaGraph) AddField(classID, name, wireType string) error {
	node, err := sg.g.Vertex(classID)
	if err != nil || node.Kind != NodeClass {
		return fmt.Errorf("no class node %q", classID)
	}
	nameID := sg.insert(NodeName, name)
	sg.link(classID, nameID)
	typeID := sg.insert(NodeType, wireType)
	sg.link(classID, typeID)
	return nil
}

// Node returns a node by ID.
func (sg *SchemaGraph) Node(id string) (*Node, bool) {
	n, err := sg.g.Vertex(id)
	if err != nil {
		return nil, false
	}
	return n, true
}

// Children returns a parent's child IDs in insertion order.
func (sg *SchemaGraph) Children(id string) []string {
	return sg.children[id]
}

// Order returns the number of nodes, entry root included.
func (sg *SchemaGraph) Order() int {
	n, _ := sg.g.Order()
	return n
}

// Size returns the number of edges.
func (sg *SchemaGraph) Size() int {
	n, _ := sg.g.Size()
	return n
}

// insert adds a vertex with a fresh synthetic ID.
func (sg *SchemaGraph) insert(kind NodeKind, label string) string {
	sg.seq++
	node := &Node{
		ID:    fmt.Sprintf("%s:%d", kind, sg.seq),
		Kind:  kind,
		Label: label,
	}
	_ = sg.g.AddVertex(node)
	return node.ID
}

// link adds a directed edge and records it in the ordered child index.
func (sg *SchemaGraph) link(from, to string) {
	_ = sg.g.AddEdge(from, to)
	sg.children[from] = append(sg.children[from], to)
}
