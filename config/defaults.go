package config

import "os"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags, the rc file, and environment variable loading.

const (
	// DefaultPrompt is printed before every input line.
	DefaultPrompt = ": "

	// DefaultMaxLine bounds a single input line.
	DefaultMaxLine = 2048

	// MaxLineLimit is the largest value accepted for MaxLine.
	MaxLineLimit = 1 << 20

	// DefaultNullDevice is where background children read and write
	// when no redirect was given.
	DefaultNullDevice = os.DevNull

	// DefaultRCFile is looked up in $HOME when no config path is set.
	DefaultRCFile = ".smallshrc.yaml"

	// EnvPrefix is prepended to every supported environment variable.
	EnvPrefix = "SMALLSH_"
)

// Expansion modes for the $$ marker.
const (
	// ExpandAll replaces every occurrence of the marker in a token.
	ExpandAll = "all"

	// ExpandTail truncates the last two characters of any token that
	// contains the marker and appends the pid.
	ExpandTail = "tail"
)
