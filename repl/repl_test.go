package repl_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"wlang/repl"
)

func TestReplConcreteModeThreadsStateAcrossLines(t *testing.T) {
	in := strings.NewReader("x := 1\nx := x + 1\n")
	var out bytes.Buffer

	repl.Start(in, &out)

	text := out.String()
	assert.Contains(t, text, "x: 1")
	assert.Contains(t, text, "x: 2")
}

func TestReplSwitchesToSymbolicMode(t *testing.T) {
	in := strings.NewReader(":sym\nhavoc x\n")
	var out bytes.Buffer

	repl.Start(in, &out)

	assert.Contains(t, out.String(), "switched to symbolic mode")
	assert.Contains(t, out.String(), "feasible state")
}

func TestReplReportsParseError(t *testing.T) {
	in := strings.NewReader("x := +\n")
	var out bytes.Buffer

	repl.Start(in, &out)

	assert.Contains(t, out.String(), "<repl>")
}
