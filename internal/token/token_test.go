package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expected    []string
	}{
		{description: "empty line", input: "", expected: nil},
		{description: "only spaces", input: "    ", expected: nil},
		{description: "single word", input: "ls", expected: []string{"ls"}},
		{description: "words", input: "ls -la /tmp", expected: []string{"ls", "-la", "/tmp"}},
		{description: "runs of spaces", input: "  echo   a  b ", expected: []string{"echo", "a", "b"}},
		{description: "trailing newline", input: "status\n", expected: []string{"status"}},
		{description: "crlf", input: "cd /tmp\r\n", expected: []string{"cd", "/tmp"}},
		{description: "control tokens", input: "wc < in.txt > out.txt &", expected: []string{"wc", "<", "in.txt", ">", "out.txt", "&"}},
		{description: "tabs are not separators", input: "a\tb c", expected: []string{"a\tb", "c"}},
	}

	for _, testCase := range testCases {
		actual := Split(testCase.input)
		assert.EqualValues(t, testCase.expected, actual, testCase.description)
	}
}

func TestExpander_Expand(t *testing.T) {
	testCases := []struct {
		description string
		mode        Mode
		input       []string
		expected    []string
	}{
		{
			description: "marker alone",
			mode:        ExpandAll,
			input:       []string{"echo", "$$"},
			expected:    []string{"echo", "4242"},
		},
		{
			description: "marker at tail",
			mode:        ExpandAll,
			input:       []string{"touch", "file$$"},
			expected:    []string{"touch", "file4242"},
		},
		{
			description: "marker in the middle, all",
			mode:        ExpandAll,
			input:       []string{"a$$b"},
			expected:    []string{"a4242b"},
		},
		{
			description: "two markers, all",
			mode:        ExpandAll,
			input:       []string{"$$-$$"},
			expected:    []string{"4242-4242"},
		},
		{
			description: "marker at tail, tail",
			mode:        ExpandTail,
			input:       []string{"dir$$"},
			expected:    []string{"dir4242"},
		},
		{
			description: "marker in the middle, tail truncates the end",
			mode:        ExpandTail,
			input:       []string{"a$$bc"},
			expected:    []string{"a$$4242"},
		},
		{
			description: "lone dollar untouched",
			mode:        ExpandAll,
			input:       []string{"$HOME", "$"},
			expected:    []string{"$HOME", "$"},
		},
	}

	for _, testCase := range testCases {
		e := NewExpander(4242, testCase.mode)
		assert.EqualValues(t, testCase.expected, e.Expand(testCase.input), testCase.description)
	}
}

func TestExpander_DoesNotMutateInput(t *testing.T) {
	in := []string{"echo", "$$"}
	out := NewExpander(7, ExpandAll).Expand(in)
	assert.Equal(t, "$$", in[1])
	assert.Equal(t, "7", out[1])
}

func TestExpander_StablePid(t *testing.T) {
	e := NewExpander(99, ExpandAll)
	first := e.Expand([]string{"$$"})
	second := e.Expand([]string{"$$"})
	assert.Equal(t, first, second)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("tail")
	require.NoError(t, err)
	assert.Equal(t, ExpandTail, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ExpandAll, m)

	_, err = ParseMode("middle")
	assert.Error(t, err)

	assert.Equal(t, "tail", ExpandTail.String())
}
