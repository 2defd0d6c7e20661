// Package config loads the optional driver configuration file. The
// interpreter core takes no configuration; only the golox command reads it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable that overrides the config path.
const EnvVar = "GOLOX_CONFIG"

// DefaultFile is the config file name looked up in the home directory.
const DefaultFile = ".golox.yaml"

// Config is the driver configuration.
type Config struct {
	REPL      REPL      `yaml:"repl"`
	ExitCodes ExitCodes `yaml:"exit_codes"`

	// Path is the file the config was loaded from, empty for defaults.
	Path string `yaml:"-"`
}

// REPL configures the interactive prompt.
type REPL struct {
	Prompt         string `yaml:"prompt"`
	ContinuePrompt string `yaml:"continue_prompt"`
	HistoryFile    string `yaml:"history_file"`
	Color          bool   `yaml:"color"`
}

// ExitCodes are the process exit statuses used by the driver.
type ExitCodes struct {
	Usage        int `yaml:"usage"`
	DataError    int `yaml:"data_error"`
	RuntimeError int `yaml:"runtime_error"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		REPL: REPL{
			Prompt:         "golox> ",
			ContinuePrompt: "...    ",
			HistoryFile:    "~/.golox_history",
			Color:          true,
		},
		ExitCodes: ExitCodes{
			Usage:        64,
			DataError:    65,
			RuntimeError: 70,
		},
	}
}

// Load reads the config file at path. Keys absent from the file keep their
// default values; unknown keys are an error.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	cfg.Path = abs
	return cfg, nil
}

// Decode reads a YAML config from r on top of the defaults.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads the config named by $GOLOX_CONFIG, else ~/.golox.yaml.
// A missing default file yields the built-in defaults; a missing file named
// by the environment variable is an error.
func LoadDefault() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(filepath.Join(home, DefaultFile))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Encode writes cfg as YAML.
func Encode(w io.Writer, cfg *Config) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("config: encoder close: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// HistoryPath returns the REPL history file with a leading ~ expanded.
// An empty result disables history.
func (c *Config) HistoryPath() string {
	p := c.REPL.HistoryFile
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}
