package pak

import "testing"

func TestClassify(t *testing.T) {
	tt := []struct {
		name     string
		buf      []byte
		filename string
		want     PayloadKind
	}{
		{"script bytecode", []byte{0x04, 0x00, 0x1B, 0x4C, 0x75, 0xFF}, "a.bin", ScriptBytecode},
		{"object stream", []byte{0x00, 0x00, 0x00, 0x00, 0x03, 0xAA}, "a.bin", ObjectStream},
		{"datasheet", []byte{0x11, 0x00, 0x00, 0x00, 0xAA}, "a.bin", Datasheet},
		{"distribution by filename", []byte{0x01, 0x02}, "foo.distribution", Distribution},
		{"opaque", []byte{0x01, 0x02, 0x03}, "foo.bin", Opaque},
		{"empty buffer opaque", []byte{}, "foo.bin", Opaque},
		{"script bytecode wins over filename", []byte{0x04, 0x00, 0x1B, 0x4C, 0x75}, "foo.distribution", ScriptBytecode},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.buf, tc.filename)
			if got != tc.want {
				t.Errorf("Classify(%x, %q) = %v, want %v", tc.buf, tc.filename, got, tc.want)
			}
		})
	}
}
