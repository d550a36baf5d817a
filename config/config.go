// Package config defines the runtime configuration for smallsh and the
// validation rules applied before the interpreter starts.
package config

import (
	"fmt"

	smallerrors "smallsh/internal/errors"
)

// Config holds every tuneable for a single interpreter run.  The zero
// value is not usable; start from [Default].
type Config struct {
	// ── Interaction ──────────────────────────────────────────────────
	Prompt  string // written before every read
	MaxLine int    // longest accepted input line, in bytes

	// ── Execution ────────────────────────────────────────────────────
	NullDevice string // stdin/stdout for background children
	ExpandMode string // "all" or "tail"; see ExpandAll / ExpandTail

	// ── Sources ──────────────────────────────────────────────────────
	ConfigPath string // YAML rc file; empty means the default location

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
}

// Default returns a Config populated from defaults.go.
func Default() *Config {
	return &Config{
		Prompt:     DefaultPrompt,
		MaxLine:    DefaultMaxLine,
		NullDevice: DefaultNullDevice,
		ExpandMode: ExpandAll,
	}
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.MaxLine <= 0 {
		return &smallerrors.ConfigError{
			Field:   "max-line",
			Value:   c.MaxLine,
			Message: "must be positive",
			Hint:    fmt.Sprintf("the default is %d", DefaultMaxLine),
		}
	}
	if c.MaxLine > MaxLineLimit {
		return &smallerrors.ConfigError{
			Field:   "max-line",
			Value:   c.MaxLine,
			Message: fmt.Sprintf("exceeds the limit of %d", MaxLineLimit),
		}
	}
	if c.NullDevice == "" {
		return &smallerrors.ConfigError{
			Field:   "null-device",
			Message: "must not be empty",
			Hint:    "background commands read from and write to this path",
		}
	}
	switch c.ExpandMode {
	case ExpandAll, ExpandTail:
	default:
		return &smallerrors.ConfigError{
			Field:   "expand",
			Value:   c.ExpandMode,
			Message: "unknown expansion mode",
			Hint:    "use \"all\" or \"tail\"",
		}
	}
	if c.Verbose < 0 {
		return &smallerrors.ConfigError{
			Field:   "verbose",
			Value:   c.Verbose,
			Message: "must not be negative",
		}
	}
	return nil
}
