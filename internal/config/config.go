// Package config holds the process-wide, immutable-after-init
// configuration consumed by the walker, extractor and manifest
// writer. No component reaches for ambient state once Config has
// been built; it is threaded explicitly into each constructor.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/pakdecode/internal/pak"
)

// Config is the root configuration for a pakextract run.
type Config struct {
	// Main settings
	InputDir         string `yaml:"input_dir"`
	OutputDir        string `yaml:"output_dir"`
	ArchiveExtension string `yaml:"archive_extension"`
	ManifestFile     string `yaml:"manifest_file"`
	LocalizationFile string `yaml:"localization_file"`
	HashDictFile     string `yaml:"hash_dict_file"`

	// Per-kind output format selection
	DatasheetFormat      string `yaml:"datasheet_format"`
	ObjectStreamFormat   string `yaml:"object_stream_format"`
	ScriptBytecodeFormat string `yaml:"script_bytecode_format"`

	// Concurrency settings
	ExtractorWorkers int `yaml:"extractor_workers"`
}

// LoadFile reads a YAML config file. A missing file is not an error;
// command-line flags are expected to supply defaults in that case.
func LoadFile(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: opening %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Formats resolves the configured per-kind format names into a
// pak.Formats value (spec.md §9 "Global configuration": "pass a
// &Config into Decompressor::try_new; do not reach for ambient
// state").
func (c Config) Formats() (pak.Formats, error) {
	ds, err := parseDatasheetFormat(c.DatasheetFormat)
	if err != nil {
		return pak.Formats{}, err
	}
	osf, err := parseObjectStreamFormat(c.ObjectStreamFormat)
	if err != nil {
		return pak.Formats{}, err
	}
	sb, err := parseScriptBytecodeFormat(c.ScriptBytecodeFormat)
	if err != nil {
		return pak.Formats{}, err
	}
	return pak.Formats{Datasheet: ds, ObjectStream: osf, ScriptBytecode: sb}, nil
}

func parseDatasheetFormat(s string) (pak.DatasheetFormat, error) {
	switch s {
	case "", "mini":
		return pak.DatasheetMini, nil
	case "pretty":
		return pak.DatasheetPretty, nil
	case "yaml":
		return pak.DatasheetYAML, nil
	case "csv":
		return pak.DatasheetCSV, nil
	case "bytes":
		return pak.DatasheetBytes, nil
	case "xml":
		return pak.DatasheetXML, nil
	case "sql":
		return pak.DatasheetSQL, nil
	default:
		return 0, fmt.Errorf("config: unknown datasheet format %q", s)
	}
}

func parseObjectStreamFormat(s string) (pak.ObjectStreamFormat, error) {
	switch s {
	case "", "xml":
		return pak.ObjectStreamXML, nil
	case "mini":
		return pak.ObjectStreamMini, nil
	case "pretty":
		return pak.ObjectStreamPretty, nil
	case "bytes":
		return pak.ObjectStreamBytes, nil
	default:
		return 0, fmt.Errorf("config: unknown object stream format %q", s)
	}
}

func parseScriptBytecodeFormat(s string) (pak.ScriptBytecodeFormat, error) {
	switch s {
	case "", "raw":
		return pak.ScriptBytecodeRaw, nil
	case "parsed":
		return pak.ScriptBytecodeParsed, nil
	default:
		return 0, fmt.Errorf("config: unknown script bytecode format %q", s)
	}
}
