package config

// loader.go - configuration loading from the rc file and the environment.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (LoadFromEnv)
//   3. YAML rc file  (LoadFile)
//   4. Defaults   (defaults.go)

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the rc file layout.  Pointers distinguish "absent"
// from a zero value so that an explicit empty prompt is honoured.
type fileConfig struct {
	Prompt     *string `yaml:"prompt"`
	MaxLine    *int    `yaml:"max_line"`
	NullDevice *string `yaml:"null_device"`
	Expand     *string `yaml:"expand"`
	Verbose    *int    `yaml:"verbose"`
}

// ResolvePath returns the rc file to read: an explicit path first, then
// SMALLSH_CONFIG, then $HOME/.smallshrc.yaml.  The boolean reports
// whether the path was chosen explicitly; a missing implicit file is not
// an error.
func ResolvePath(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if v := os.Getenv(EnvPrefix + "CONFIG"); v != "" {
		return v, true
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", false
	}
	return filepath.Join(home, DefaultRCFile), false
}

// LoadFile overlays the YAML file at path onto cfg.  When required is
// false a missing file is silently ignored.
func LoadFile(cfg *Config, path string, required bool) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	if fc.Prompt != nil {
		cfg.Prompt = *fc.Prompt
	}
	if fc.MaxLine != nil {
		cfg.MaxLine = *fc.MaxLine
	}
	if fc.NullDevice != nil {
		cfg.NullDevice = *fc.NullDevice
	}
	if fc.Expand != nil {
		cfg.ExpandMode = strings.ToLower(*fc.Expand)
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	cfg.ConfigPath = path
	return nil
}

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the SMALLSH_ prefix.

// LoadFromEnv overlays environment variables onto cfg.  Only set env
// vars override the existing value; SMALLSH_PROMPT may be set to the
// empty string on purpose.
func LoadFromEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvPrefix + "PROMPT"); ok {
		cfg.Prompt = v
	}
	if v := envInt(EnvPrefix + "MAX_LINE"); v > 0 {
		cfg.MaxLine = v
	}
	if v := os.Getenv(EnvPrefix + "NULL_DEVICE"); v != "" {
		cfg.NullDevice = v
	}
	if v := os.Getenv(EnvPrefix + "EXPAND"); v != "" {
		cfg.ExpandMode = strings.ToLower(v)
	}
	if v := envInt(EnvPrefix + "VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// YAML renders cfg in the rc file layout.
func (c *Config) YAML() (string, error) {
	fc := fileConfig{
		Prompt:     &c.Prompt,
		MaxLine:    &c.MaxLine,
		NullDevice: &c.NullDevice,
		Expand:     &c.ExpandMode,
		Verbose:    &c.Verbose,
	}
	data, err := yaml.Marshal(&fc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
