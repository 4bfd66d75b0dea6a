package objectstream

import (
	"strings"
	"testing"
)

func sampleTree() *Tree {
	return &Tree{
		Root: &Node{
			TypeID:    0,
			TypeName:  "Root",
			IsRoot:    true,
			ValueType: ValueObject,
			Children: []*Node{
				{Name: "count", ValueType: ValueInt32, Value: int32(3)},
				{Name: "label", ValueType: ValueString, Value: "hi"},
			},
		},
	}
}

func TestMarshalJSONCompactOrderPreserved(t *testing.T) {
	out, err := MarshalJSONCompact(sampleTree())
	if err != nil {
		t.Fatalf("MarshalJSONCompact: %v", err)
	}
	s := string(out)
	countIdx := strings.Index(s, `"count"`)
	labelIdx := strings.Index(s, `"label"`)
	if countIdx == -1 || labelIdx == -1 || countIdx > labelIdx {
		t.Errorf("expected count before label, got %s", s)
	}
}

func TestMarshalJSONIndent(t *testing.T) {
	out, err := MarshalJSONIndent(sampleTree())
	if err != nil {
		t.Fatalf("MarshalJSONIndent: %v", err)
	}
	if !strings.Contains(string(out), "\n") {
		t.Errorf("expected indented output to contain newlines, got %s", out)
	}
}

func TestMarshalXMLElementNames(t *testing.T) {
	out, err := MarshalXML(sampleTree())
	if err != nil {
		t.Fatalf("MarshalXML: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "<Root") {
		t.Errorf("expected root element <Root>, got %s", s)
	}
	if !strings.Contains(s, "<count") {
		t.Errorf("expected child element <count>, got %s", s)
	}
}

func TestXMLNameSanitizesLeadingDigit(t *testing.T) {
	got := xmlName("0a1b2c3d")
	if got[0] == '0' {
		t.Errorf("xmlName(%q) = %q, starts with a digit", "0a1b2c3d", got)
	}
}
