package token

import (
	"fmt"
	"strconv"
	"strings"
)

// Marker is replaced with the shell's process id.
const Marker = "$$"

// Mode selects how Marker is substituted.
type Mode int

const (
	// ExpandAll replaces every occurrence of Marker.
	ExpandAll Mode = iota
	// ExpandTail drops the last two bytes of a token that contains
	// Marker anywhere and appends the pid.  Only correct when the
	// marker sits at the end of the token.
	ExpandTail
)

// ParseMode maps a config value ("all", "tail") to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "all":
		return ExpandAll, nil
	case "tail":
		return ExpandTail, nil
	}
	return ExpandAll, fmt.Errorf("unknown expansion mode %q", s)
}

func (m Mode) String() string {
	if m == ExpandTail {
		return "tail"
	}
	return "all"
}

// Expander substitutes Marker with a fixed pid.
type Expander struct {
	pid  string
	mode Mode
}

// NewExpander returns an Expander for pid.
func NewExpander(pid int, mode Mode) *Expander {
	return &Expander{pid: strconv.Itoa(pid), mode: mode}
}

// Expand returns a copy of tokens with the marker substituted.  Each
// token is expanded once; the input slice is not modified.
func (e *Expander) Expand(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = e.expandToken(tok)
	}
	return out
}

func (e *Expander) expandToken(tok string) string {
	if !strings.Contains(tok, Marker) {
		return tok
	}
	if e.mode == ExpandTail {
		return tok[:len(tok)-len(Marker)] + e.pid
	}
	return strings.ReplaceAll(tok, Marker, e.pid)
}
