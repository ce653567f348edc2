package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPrintsFrames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(&buf, "sandbox", "", "walk_jump", 50, true))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "# level=sandbox player=player script=walk_jump"))
	assert.Contains(t, buf.String(), "landed")
	assert.Contains(t, buf.String(), "jumped")

	frames := 0
	for _, l := range lines[1:] {
		if !strings.HasPrefix(l, "      ") {
			frames++
		}
	}
	assert.Equal(t, 50, frames)
}

func TestRunUntilDone(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(&buf, "sandbox", "", "walk_jump", 0, false))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1+241)
}

func TestRunErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, run(&buf, "sandbox", "", "missing", 10, false))
	assert.Error(t, run(&buf, "missing", "", "walk_jump", 10, false))
}
