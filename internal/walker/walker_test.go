package walker

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkerFindsZipArchives(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.pak"), []byte("PK\x03\x04rest"))
	writeFile(t, filepath.Join(root, "sub", "b.pak"), []byte("PK\x03\x04rest"))
	writeFile(t, filepath.Join(root, "not-a-zip.pak"), []byte("plain text"))
	writeFile(t, filepath.Join(root, "ignored.txt"), []byte("PK\x03\x04rest"))

	out := make(chan string, 10)
	w := New(root, ".pak", out)

	if err := w.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var found []string
	for path := range out {
		found = append(found, path)
	}

	if len(found) != 2 {
		t.Fatalf("found %d archives, want 2: %v", len(found), found)
	}
	stats := w.Stats()
	if stats.ArchivesFound != 2 {
		t.Errorf("ArchivesFound = %d, want 2", stats.ArchivesFound)
	}
	if stats.ArchivesSkipped != 1 {
		t.Errorf("ArchivesSkipped = %d, want 1 (not-a-zip.pak)", stats.ArchivesSkipped)
	}
}
