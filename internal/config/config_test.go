package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deploymenttheory/pakdecode/internal/pak"
)

func TestFormatsDefaults(t *testing.T) {
	f, err := Config{}.Formats()
	if err != nil {
		t.Fatalf("Formats: %v", err)
	}
	if f.Datasheet != pak.DatasheetMini {
		t.Errorf("default DatasheetFormat = %v, want Mini", f.Datasheet)
	}
	if f.ObjectStream != pak.ObjectStreamXML {
		t.Errorf("default ObjectStreamFormat = %v, want XML", f.ObjectStream)
	}
	if f.ScriptBytecode != pak.ScriptBytecodeRaw {
		t.Errorf("default ScriptBytecodeFormat = %v, want Raw", f.ScriptBytecode)
	}
}

func TestFormatsUnknownValue(t *testing.T) {
	_, err := Config{DatasheetFormat: "nonsense"}.Formats()
	if err == nil {
		t.Fatal("expected error for unknown datasheet format")
	}
}

func TestLoadFileMissingIsNotError(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.OutputDir != "" {
		t.Errorf("expected zero-value config for missing file, got %+v", cfg)
	}
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "input_dir: /paks\noutput_dir: /out\ndatasheet_format: csv\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.InputDir != "/paks" || cfg.OutputDir != "/out" || cfg.DatasheetFormat != "csv" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}
