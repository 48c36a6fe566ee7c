// Package terminal probes the controlling terminal so text frames can be
// centred and clipped.
package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Size is a terminal extent in character cells
type Size struct {
	Width  int
	Height int
}

// Current returns the size of the terminal attached to stdout.
// Falls back to defaults if the size cannot be determined.
func Current() Size {
	return Of(os.Stdout)
}

// Of returns the size of the terminal behind f, or the defaults when f is
// not a terminal.
func Of(f *os.File) Size {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return Size{Width: DefaultWidth, Height: DefaultHeight}
	}
	width, height, err := term.GetSize(fd)
	if err != nil || width <= 0 || height <= 0 {
		return Size{Width: DefaultWidth, Height: DefaultHeight}
	}
	return Size{Width: width, Height: height}
}

// Fits reports whether a block of cols × rows characters fits on screen
func (s Size) Fits(cols, rows int) bool {
	return cols <= s.Width && rows <= s.Height
}

// Indent returns the left padding that centres a line of the given width
func (s Size) Indent(cols int) string {
	if cols >= s.Width {
		return ""
	}
	return strings.Repeat(" ", (s.Width-cols)/2)
}
