package graph

import (
	"fmt"

	"github.com/steamforge/langgen/internal/steamd"
)

// FromSchema builds the handoff graph from a compiled schema, classes in
// schema order, fields in declaration order.
func FromSchema(schema *steamd.Schema) *SchemaGraph {
	sg := NewSchemaGraph()
	for _, cls := range schema.Classes {
		classID := sg.AddClass(cls.Name)
		for _, f := range cls.Fields {
			// classID was just returned by AddClass, so this cannot fail.
			_ = sg.AddField(classID, f.Name, f.WireType)
		}
	}
	return sg
}

// Walk reconstructs class and field declarations from the graph alone,
// honoring the consumer contract: the entry's children in insertion order
// are the classes, and each class's children pair off two at a time as
// (name, wire type). Only the leaf labels travel through the graph, so
// array metadata is not recovered here: emitters that need it consume
// the schema records directly.
func Walk(sg *SchemaGraph) (*steamd.Schema, error) {
	schema := &steamd.Schema{}

	for _, classID := range sg.Children(EntryID) {
		classNode, ok := sg.Node(classID)
		if !ok || classNode.Kind != NodeClass {
			return nil, fmt.Errorf("entry child %q is not a class node", classID)
		}

		kids := sg.Children(classID)
		if len(kids)%2 != 0 {
			return nil, fmt.Errorf("class %q has %d children, want an even count", classNode.Label, len(kids))
		}

		cls := steamd.Class{Name: classNode.Label}
		for i := 0; i < len(kids); i += 2 {
			nameNode, ok := sg.Node(kids[i])
			if !ok || nameNode.Kind != NodeName {
				return nil, fmt.Errorf("class %q child %d: want a name node", classNode.Label, i)
			}
			typeNode, ok := sg.Node(kids[i+1])
			if !ok || typeNode.Kind != NodeType {
				return nil, fmt.Errorf("class %q child %d: want a type node", classNode.Label, i+1)
			}
			cls.Fields = append(cls.Fields, steamd.Field{
				Name:     nameNode.Label,
				WireType: typeNode.Label,
			})
		}
		schema.Classes = append(schema.Classes, cls)
	}

	return schema, nil
}
