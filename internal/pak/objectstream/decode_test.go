package objectstream

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/deploymenttheory/pakdecode/internal/hashdict"
)

type nodeBuilder struct {
	buf bytes.Buffer
}

func (b *nodeBuilder) u32(v uint32) *nodeBuilder {
	binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *nodeBuilder) u8(v uint8) *nodeBuilder {
	b.buf.WriteByte(v)
	return b
}

func (b *nodeBuilder) str(s string) *nodeBuilder {
	b.u32(uint32(len(s)))
	b.buf.WriteString(s)
	return b
}

// buildRootObject builds a root node (type hash 0) with no name, value
// type Object, and the given raw child bytes appended verbatim.
func buildRootObject(childCount uint32, children []byte) []byte {
	b := &nodeBuilder{}
	b.u32(0)               // type-id hash (root)
	b.u8(uint8(ValueObject)) // value type
	b.u32(childCount)
	b.buf.Write(children)
	return b.buf.Bytes()
}

// buildChildString builds a non-root string-valued node with the
// given name hash.
func buildChildString(nameHash uint32, value string) []byte {
	b := &nodeBuilder{}
	b.u32(0xDEADBEEF) // type-id hash
	b.u32(nameHash)   // member-name hash
	b.u8(uint8(ValueString))
	b.str(value)
	b.u32(0) // no children
	return b.buf.Bytes()
}

func TestDecodeRootOnly(t *testing.T) {
	buf := buildRootObject(0, nil)

	tree, err := Decode(buf, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if tree.Root.TypeID != 0 {
		t.Errorf("TypeID = %d, want 0", tree.Root.TypeID)
	}
	if !tree.Root.IsRoot {
		t.Error("expected IsRoot")
	}
	if len(tree.Root.Children) != 0 {
		t.Errorf("len(Children) = %d, want 0", len(tree.Root.Children))
	}
}

func TestDecodeNestedStringChild(t *testing.T) {
	child := buildChildString(0x1234, "value")
	buf := buildRootObject(1, child)

	hashes := hashdict.New()
	hashes.Set(0x1234, "greeting")

	tree, err := Decode(buf, hashes)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(tree.Root.Children) != 1 {
		t.Fatalf("len(Children) = %d, want 1", len(tree.Root.Children))
	}
	c := tree.Root.Children[0]
	if c.Name != "greeting" {
		t.Errorf("Name = %q, want %q", c.Name, "greeting")
	}
	if c.Value != "value" {
		t.Errorf("Value = %v, want %q", c.Value, "value")
	}
}

func TestDecodeUnresolvedHashFallback(t *testing.T) {
	child := buildChildString(0x1234, "value")
	buf := buildRootObject(1, child)

	tree, err := Decode(buf, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	c := tree.Root.Children[0]
	if c.Name != "00001234" {
		t.Errorf("Name = %q, want hex fallback", c.Name)
	}
}

func TestDecodeTruncatedBuffer(t *testing.T) {
	buf := []byte{0x00, 0x00} // too short even for the type-id hash
	if _, err := Decode(buf, nil); err == nil {
		t.Fatal("expected error for truncated buffer")
	}
}

func TestObjectStreamMagicRoundTrip(t *testing.T) {
	// spec.md's ObjectStream magic ("00 00 00 00 03") is exactly a
	// root node whose type-id hash is zero and whose value type is
	// Object (tag 3).
	buf := buildRootObject(0, nil)
	if !bytes.HasPrefix(buf, []byte{0x00, 0x00, 0x00, 0x00, 0x03}) {
		t.Fatalf("root-object encoding does not reproduce the ObjectStream magic: %x", buf[:5])
	}
}
