package renderer

import (
	"skirmish/pkg/game/state"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleWall
	StyleSpace
	StylePath
	StyleFloor
	StyleEntrance
	StyleSoldier
	StyleEnemy
	StyleHit
	StyleSupply
	StyleBox
	StyleSubtle
)

// Renderer defines the interface for frame rendering backends
type Renderer interface {
	// Init prepares the renderer (colors, labels, terminal size)
	Init()

	// Clear clears the display
	Clear()

	// RenderFrame renders the map and status of one iteration
	RenderFrame(g *state.Game)

	// StyleText applies a style to text and returns the styled string
	StyleText(text string, style TextStyle) string

	// ShowMessage displays a message to the user
	ShowMessage(msg string)
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Init initializes the current renderer
func Init() {
	if Current != nil {
		Current.Init()
	}
}

// Clear clears the display using the current renderer
func Clear() {
	if Current != nil {
		Current.Clear()
	}
}

// RenderFrame renders a complete frame
func RenderFrame(g *state.Game) {
	if Current != nil {
		Current.RenderFrame(g)
	}
}

// StyleText applies a style to text
func StyleText(text string, style TextStyle) string {
	if Current != nil {
		return Current.StyleText(text, style)
	}
	return text
}

// ShowMessage displays a message through the current renderer
func ShowMessage(msg string) {
	if Current != nil {
		Current.ShowMessage(msg)
	}
}
