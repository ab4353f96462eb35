package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText_TrimsLine(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(newReader("  hello  \n"), "Prompt", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Contains(t, out.String(), "Prompt")
}

func TestGetSimpleText_EOFWithPartialLine(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(newReader("partial"), "Prompt", &out)
	require.NoError(t, err)
	assert.Equal(t, "partial", got)
}

func TestGetSimpleText_EOFWithoutInput(t *testing.T) {
	var out bytes.Buffer
	_, err := GetSimpleText(newReader(""), "Prompt", &out)
	require.Error(t, err)
}

func TestGetPassword_UsesSeam(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)
	assert.Contains(t, out.String(), "Enter password:")
}

func TestTerminalGate_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"whatever\n", false},
	}

	for _, tc := range tests {
		var out bytes.Buffer
		g := NewTerminalGate(newReader(tc.input), &out)
		assert.Equal(t, tc.want, g.Confirm("Delete?"), "input %q", tc.input)
		assert.Contains(t, out.String(), "(y/n)")
	}
}

func TestTerminalGate_ReadFailureDeclines(t *testing.T) {
	var out bytes.Buffer
	g := NewTerminalGate(newReader(""), &out)
	assert.False(t, g.Confirm("Delete?"), "unavailable input must mean no")
}
