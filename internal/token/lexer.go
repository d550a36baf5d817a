// Package token splits an input line into words and expands the $$
// marker.
package token

import (
	"strings"

	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes (start at 1 to avoid clash with parsly.EOF).
const (
	spaceCode = iota + 1
	wordCode
)

var (
	spaceToken = parsly.NewToken(spaceCode, "Space", matcher.NewByte(' '))
	wordToken  = parsly.NewToken(wordCode, "Word", &wordMatcher{})
)

// wordMatcher matches a run of bytes up to the next space.
type wordMatcher struct{}

func (m *wordMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if input[i] == ' ' {
			break
		}
		matched++
	}
	return matched
}

// Split breaks line on single spaces.  Consecutive spaces never yield
// empty tokens, and a trailing newline is ignored.
func Split(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return nil
	}

	cursor := parsly.NewCursor("", []byte(line), 0)
	var tokens []string
	for cursor.HasMore() {
		match := cursor.MatchAny(spaceToken, wordToken)
		switch match.Code {
		case wordCode:
			tokens = append(tokens, match.Text(cursor))
		case spaceCode:
		default:
			return tokens
		}
	}
	return tokens
}
