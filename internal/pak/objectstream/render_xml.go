package objectstream

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"unicode"
)

// MarshalXML renders t as indented XML (ObjectStreamFormat XML),
// two tabs per nesting level (spec.md §4.5: "XML (indent = two
// tabs)").
func MarshalXML(t *Tree) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "\t\t")
	if err := enc.Encode(t.Root); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// MarshalXML implements xml.Marshaler so each Node can emit itself
// under a dynamically chosen element name (its resolved type or
// member name), which encoding/xml's struct-tag based encoding cannot
// do on its own.
func (n *Node) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: xmlName(n.elementName())}}

	if n.ValueType != ValueObject && n.ValueType != ValueNull {
		start.Attr = []xml.Attr{{
			Name:  xml.Name{Local: "value"},
			Value: fmt.Sprintf("%v", n.Value),
		}}
	}

	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := enc.Encode(c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// xmlName sanitizes name into a valid XML element local name, since a
// hex-fallback name ("0a1b2c3d") or an engine type name may start with
// a digit or contain characters XML element names disallow.
func xmlName(name string) string {
	if name == "" {
		return "_"
	}
	runes := []rune(name)
	var out bytes.Buffer
	for i, r := range runes {
		switch {
		case i == 0 && !isNameStartRune(r):
			out.WriteByte('_')
			if isNameRune(r) {
				out.WriteRune(r)
			}
		case isNameRune(r):
			out.WriteRune(r)
		default:
			out.WriteByte('_')
		}
	}
	return out.String()
}

func isNameStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameRune(r rune) bool {
	return isNameStartRune(r) || unicode.IsDigit(r) || r == '-' || r == '.'
}
