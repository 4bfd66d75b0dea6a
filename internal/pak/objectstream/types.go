// Package objectstream decodes the engine's binary object-graph
// format (spec.md §4.3) and renders it to XML or JSON.
package objectstream

// ValueType tags the inline value carried by a Node. The wire format
// itself is not pinned down by spec.md beyond "a variable-length
// typed value" — this is the concrete encoding this implementation
// uses, chosen so that an all-zero root type-id hash plus an Object
// value tag reproduces spec.md's ObjectStream magic
// ("00 00 00 00 03") exactly (see DESIGN.md).
type ValueType uint8

const (
	ValueNull ValueType = iota
	ValueBool
	ValueInt32
	ValueObject // no inline payload; the node's value is its children
	ValueFloat32
	ValueFloat64
	ValueString
	ValueInt64
)

// Node is one entry in the object graph: a type-id hash, an optional
// member-name hash (absent on the root), a typed value, and ordered
// children (spec.md §3 "ObjectStreamTree").
type Node struct {
	TypeID   uint32
	TypeName string // hashdict.Resolve(TypeID), or its hex fallback

	IsRoot  bool
	NameID  uint32
	Name    string // hashdict.Resolve(NameID), or its hex fallback; "" for root

	ValueType ValueType
	Value     interface{} // nil, bool, int32, int64, float32, float64 or string

	Children []*Node
}

// Tree is the parsed object graph (spec.md §3 "ObjectStreamTree").
type Tree struct {
	Root *Node
}

// elementName is the name used for this node as an XML element or
// JSON key: the resolved member name for non-root nodes, the resolved
// type name for the root (spec.md §4.3: "element/key names equal the
// resolved member name or the hex fallback").
func (n *Node) elementName() string {
	if n.IsRoot || n.Name == "" {
		return n.TypeName
	}
	return n.Name
}
