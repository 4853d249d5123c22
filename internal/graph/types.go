package graph

// NodeKind identifies what a schema graph node stands for.
type NodeKind string

const (
	NodeEntry NodeKind = "entry" // the designated root
	NodeClass NodeKind = "class"
	NodeName  NodeKind = "name" // a field's normalized name leaf
	NodeType  NodeKind = "type" // a field's wire-type leaf
)

// Node is one vertex of the schema graph. IDs are synthetic and unique;
// Label carries the value consumers read (class name, field name, or wire
// type). Labels may repeat across nodes, since two classes can both
// declare a u32 field, so identity lives in ID, never in Label.
type Node struct {
	ID    string   `json:"id"`
	Kind  NodeKind `json:"kind"`
	Label string   `json:"label"`
}

// EntryID is the fixed ID of the root node every schema graph starts with.
const EntryID = "entry"
