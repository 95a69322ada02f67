package platform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the per-project configuration file.
const ConfigFileName = ".tsnb.yaml"

// FileConfig is the on-disk configuration. Unset fields keep their defaults.
type FileConfig struct {
	QueryLanguage    string   `yaml:"query_language,omitempty"`
	MarkdownLanguage string   `yaml:"markdown_language,omitempty"`
	Languages        []string `yaml:"languages,omitempty"`
	Lenient          *bool    `yaml:"lenient,omitempty"`
	Indent           *bool    `yaml:"indent,omitempty"`
	Pattern          string   `yaml:"pattern,omitempty"`
}

// LoadConfig reads a configuration file. Unknown keys are rejected so that
// typos do not silently fall back to defaults.
func LoadConfig(path string) (FileConfig, error) {
	var cfg FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfig looks upwards from startDir for ConfigFileName.
// It returns an empty path when none is found.
func FindConfig(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Marshal renders the configuration as YAML.
func (c FileConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
