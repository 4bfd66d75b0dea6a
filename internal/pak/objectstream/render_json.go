package objectstream

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// jsonPair and jsonObject give us an ordered, possibly-duplicate-key
// JSON object, since a plain Go map cannot preserve sibling order or
// hold two children with the same resolved name (spec.md §4.3:
// "child ordering preserves file order").
type jsonPair struct {
	key   string
	value interface{}
}

type jsonObject []jsonPair

func (o jsonObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(p.value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// body is this node's JSON representation: an optional "value" member
// followed by one member per child, named after the child's resolved
// element name.
func (n *Node) body() jsonObject {
	obj := make(jsonObject, 0, len(n.Children)+1)
	if n.ValueType != ValueObject && n.ValueType != ValueNull {
		obj = append(obj, jsonPair{"value", n.Value})
	}
	for _, c := range n.Children {
		obj = append(obj, jsonPair{c.elementName(), c.body()})
	}
	return obj
}

// MarshalJSONCompact renders t as compact JSON (ObjectStreamFormat
// Mini).
func MarshalJSONCompact(t *Tree) ([]byte, error) {
	root := jsonObject{{t.Root.elementName(), t.Root.body()}}
	return json.Marshal(root)
}

// MarshalJSONIndent renders t as indented JSON (ObjectStreamFormat
// Pretty).
func MarshalJSONIndent(t *Tree) ([]byte, error) {
	compact, err := MarshalJSONCompact(t)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
