package terminal

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOf_NonTerminalFallsBack(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "frame")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	assert.Equal(t, Size{Width: DefaultWidth, Height: DefaultHeight}, Of(f))
}

func TestSize_FitsAndIndent(t *testing.T) {
	s := Size{Width: 80, Height: 24}
	assert.True(t, s.Fits(80, 24))
	assert.False(t, s.Fits(81, 10))
	assert.False(t, s.Fits(10, 25))

	assert.Equal(t, 20, len(s.Indent(40)))
	assert.Equal(t, "", s.Indent(80))
	assert.Equal(t, "", s.Indent(120))
}
