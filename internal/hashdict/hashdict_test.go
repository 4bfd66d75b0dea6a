package hashdict

import (
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	d := New()
	d.Set(0x1234, "greeting")

	if got := d.Resolve(0x1234); got != "greeting" {
		t.Errorf("Resolve(0x1234) = %q, want greeting", got)
	}
	if got := d.Resolve(0xABCD); got != "0000abcd" {
		t.Errorf("Resolve(0xABCD) = %q, want hex fallback", got)
	}
}

func TestResolveNilDictionary(t *testing.T) {
	var d *Dictionary
	if got := d.Resolve(0x1); got != "00000001" {
		t.Errorf("Resolve on nil dictionary = %q, want hex fallback", got)
	}
}

func TestLoad(t *testing.T) {
	r := strings.NewReader("305441741,weapon_id\n0x1234,greeting\n")
	d, err := Load(r)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := d.Resolve(305441741); got != "weapon_id" {
		t.Errorf("Resolve(305441741) = %q, want weapon_id", got)
	}
	if got := d.Resolve(0x1234); got != "greeting" {
		t.Errorf("Resolve(0x1234) = %q, want greeting", got)
	}
}
