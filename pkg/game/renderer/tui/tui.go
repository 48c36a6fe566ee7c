// Package tui renders frames to a color terminal.
package tui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"skirmish/pkg/engine/terminal"
	"skirmish/pkg/engine/world"
	"skirmish/pkg/game/agent"
	"skirmish/pkg/game/renderer"
	"skirmish/pkg/game/state"
)

// Icons for bare cells. Occupants always render with their own symbol.
const (
	IconWall     = "▒"
	IconSpace    = " "
	IconPath     = "·"
	IconFloor    = "░"
	IconEntrance = "▫"
)

var _ renderer.Renderer = (*TUIRenderer)(nil)

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	out    io.Writer
	size   terminal.Size
	labels *gotext.Po

	styles map[renderer.TextStyle]color.Style
}

// New creates a new TUI renderer writing to out; nil means stdout
func New(out io.Writer) *TUIRenderer {
	if out == nil {
		out = os.Stdout
	}
	return &TUIRenderer{out: out}
}

// Init initializes the TUI renderer (colors, labels, terminal size)
func (t *TUIRenderer) Init() {
	t.styles = map[renderer.TextStyle]color.Style{
		renderer.StyleWall:     {color.FgGray},
		renderer.StylePath:     {color.FgYellow},
		renderer.StyleFloor:    {color.FgBlue},
		renderer.StyleEntrance: {color.FgCyan, color.OpBold},
		renderer.StyleSoldier:  {color.FgGreen, color.BgBlack, color.OpBold},
		renderer.StyleEnemy:    {color.FgMagenta, color.BgBlack, color.OpBold},
		renderer.StyleHit:      {color.FgRed, color.OpBold},
		renderer.StyleSupply:   {color.FgYellow, color.OpBold},
		renderer.StyleBox:      {color.FgWhite},
		renderer.StyleSubtle:   {color.FgGray, color.OpBold},
	}
	t.labels = loadLabels()
	t.size = terminal.Current()
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	c := exec.Command("clear")
	c.Stdout = t.out
	_ = c.Run()
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	if s, ok := t.styles[style]; ok {
		return s.Sprint(text)
	}
	return text
}

// ShowMessage displays a message to the user
func (t *TUIRenderer) ShowMessage(msg string) {
	fmt.Fprintln(t.out, msg)
}

// label looks up a translated label
func (t *TUIRenderer) label(key string, args ...any) string {
	if t.labels == nil {
		t.labels = loadLabels()
	}
	return t.labels.Get(key, args...)
}

// RenderFrame renders a complete frame: header, map, soldiers and messages
func (t *TUIRenderer) RenderFrame(g *state.Game) {
	header := t.label("ITERATION", g.Iteration, g.Config.Iterations) + ", " + t.label("TEAMS_LEFT", len(g.Teams))
	fmt.Fprintln(t.out, t.StyleText(header, renderer.StyleSubtle))
	fmt.Fprintln(t.out)

	t.printMap(g)
	fmt.Fprintln(t.out)
	t.printTeams(g)
	t.printMessagesPane(g)

	if g.Done() {
		if w := g.Winner(); w != nil {
			fmt.Fprintln(t.out, t.StyleText(t.label("WINNER", w.ID), renderer.StyleEntrance))
		} else if len(g.Teams) == 0 {
			fmt.Fprintln(t.out, t.StyleText(t.label("DRAW"), renderer.StyleHit))
		}
	}
}

// printMap draws the grid, centred when it fits the terminal
func (t *TUIRenderer) printMap(g *state.Game) {
	grid := g.Map.Grid
	cols := grid.Width()*2 - 1

	indent := ""
	if t.size.Fits(cols, grid.Height()) {
		indent = t.size.Indent(cols)
	} else if t.size.Width > 0 {
		fmt.Fprintln(t.out, t.StyleText(
			t.label("TOO_SMALL", t.size.Width, t.size.Height, cols, grid.Height()), renderer.StyleSubtle))
	}

	for y := 0; y < grid.Height(); y++ {
		cells := make([]string, grid.Width())
		for x := 0; x < grid.Width(); x++ {
			cells[x] = t.renderCell(grid.Cell(world.Pt(x, y)))
		}
		fmt.Fprintln(t.out, indent+strings.Join(cells, " "))
	}
}

// renderCell returns the styled representation of a cell
func (t *TUIRenderer) renderCell(c *world.Cell) string {
	style := renderer.CellStyle(c)
	if c.Occupant != nil {
		return t.StyleText(c.Occupant.Symbol(), style)
	}
	switch c.Kind {
	case world.Wall:
		return t.StyleText(IconWall, style)
	case world.Path:
		return t.StyleText(IconPath, style)
	case world.Floor:
		return t.StyleText(IconFloor, style)
	case world.Entrance:
		return t.StyleText(IconEntrance, style)
	default:
		return IconSpace
	}
}

func (t *TUIRenderer) printTeams(g *state.Game) {
	for _, team := range g.Teams {
		fmt.Fprintln(t.out, t.StyleText(t.label("TEAM", team.ID), renderer.StyleSubtle))
		for _, s := range team.Soldiers {
			fmt.Fprintln(t.out, "  "+t.soldierLine(s))
		}
	}
}

func (t *TUIRenderer) soldierLine(s *agent.Soldier) string {
	style := renderer.StyleSoldier
	if s.Team != 1 {
		style = renderer.StyleEnemy
	}
	if s.HasVisualState() {
		style = renderer.StyleHit
	}
	return t.label("SOLDIER", t.StyleText(s.Symbol(), style), s.Policy().Name(),
		s.Health, s.MaxHealth, s.Bullets, s.Grenades, s.State)
}

// printMessagesPane shows the most recent game messages
func (t *TUIRenderer) printMessagesPane(g *state.Game) {
	if len(g.Messages) == 0 {
		return
	}
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, t.StyleText(t.label("MESSAGES"), renderer.StyleSubtle))
	for _, msg := range g.Messages {
		fmt.Fprintln(t.out, "- "+msg)
	}
}
