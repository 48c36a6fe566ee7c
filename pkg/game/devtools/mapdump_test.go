package devtools

import (
	"bytes"
	"math/rand"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skirmish/pkg/game/config"
	"skirmish/pkg/game/state"
)

func newGame(t *testing.T) *state.Game {
	t.Helper()
	cfg := config.Default()
	g, err := state.NewGame(cfg, rand.New(rand.NewSource(cfg.Seed)), nil)
	require.NoError(t, err)
	return g
}

func TestDumpMap(t *testing.T) {
	g := newGame(t)

	var buf bytes.Buffer
	require.NoError(t, DumpMap(&buf, g))
	out := buf.String()

	for _, section := range []string{"[metadata]", "[legend]", "[map]", "[rooms]", "[soldiers]", "[supplies]"} {
		assert.Contains(t, out, section)
	}
	assert.Contains(t, out, "size: 40x40")
	assert.Contains(t, out, "soldier#1 team=1 policy=offensive")
	assert.Equal(t, len(g.Soldiers()), strings.Count(out, "soldier#"))
	assert.Equal(t, g.Config.Boxes, strings.Count(out, "box at="))
	assert.Contains(t, out, strings.Repeat("W|", 39)+"W\n")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, os.ErrClosed }

func TestDumpMap_WriteError(t *testing.T) {
	assert.ErrorIs(t, DumpMap(failingWriter{}, newGame(t)), os.ErrClosed)
}

func TestDumpMapToFile(t *testing.T) {
	g := newGame(t)
	path, err := DumpMapToFile(g, t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[rooms]")
}
