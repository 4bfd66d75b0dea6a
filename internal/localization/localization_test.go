package localization

import (
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	m := New()
	m.Set("@ui.hello", "Hi")

	tt := []struct {
		name    string
		literal string
		want    string
	}{
		{"mapped key", "@ui.hello", "Hi"},
		{"unmapped key falls back to literal", "@ui.bye", "@ui.bye"},
		{"non-prefixed literal is untouched", "plain", "plain"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.Resolve(tc.literal); got != tc.want {
				t.Errorf("Resolve(%q) = %q, want %q", tc.literal, got, tc.want)
			}
		})
	}
}

func TestResolveNilMap(t *testing.T) {
	var m *Map
	if got := m.Resolve("@ui.hello"); got != "@ui.hello" {
		t.Errorf("Resolve on nil map = %q, want literal unchanged", got)
	}
}

func TestLoad(t *testing.T) {
	r := strings.NewReader(`{"@ui.hello": "Hi", "@ui.null": null}`)
	m, err := Load(r)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := m.Resolve("@ui.hello"); got != "Hi" {
		t.Errorf("Resolve(@ui.hello) = %q, want Hi", got)
	}
	if got := m.Resolve("@ui.null"); got != "@ui.null" {
		t.Errorf("Resolve(@ui.null) = %q, want literal (null translation)", got)
	}
}
