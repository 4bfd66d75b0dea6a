package extractor

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/deploymenttheory/pakdecode/internal/hashdict"
	"github.com/deploymenttheory/pakdecode/internal/localization"
	"github.com/deploymenttheory/pakdecode/internal/manifest"
	"github.com/deploymenttheory/pakdecode/internal/pak"
	"github.com/deploymenttheory/pakdecode/internal/pak/azcs"
	"github.com/deploymenttheory/pakdecode/internal/pak/oodle"
)

func writeTestArchive(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.CreateHeader(&zip.FileHeader{Name: "hello.bin", Method: zip.Store})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

// TestExtractArchiveEndToEnd is spec.md scenario S1: a stored entry's
// bytes pass through verbatim under the default Opaque path.
func TestExtractArchiveEndToEnd(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "bundle.pak")
	writeTestArchive(t, archivePath)

	outDir := filepath.Join(dir, "out")
	man, err := manifest.New("")
	if err != nil {
		t.Fatalf("manifest.New: %v", err)
	}

	ext := New(1, outDir, pak.Formats{}, localization.New(), hashdict.New(), azcs.None, oodle.Unavailable, man)
	ext.Start()
	ext.Queue() <- archivePath
	ext.Done()
	ext.Wait()

	if ext.Stats().Errors != 0 {
		t.Fatalf("extraction reported %d errors", ext.Stats().Errors)
	}
	if ext.Stats().EntriesWritten != 1 {
		t.Fatalf("EntriesWritten = %d, want 1", ext.Stats().EntriesWritten)
	}

	outPath := filepath.Join(outDir, "bundle", "hello.bin")
	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading extracted output: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}
