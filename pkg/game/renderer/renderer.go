// Package renderer turns a game into frames. The plain renderer prints the
// token grid exactly as the grid renders itself; richer backends live in
// subpackages.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"skirmish/pkg/engine/world"
	"skirmish/pkg/game/agent"
	"skirmish/pkg/game/entities"
	"skirmish/pkg/game/state"
)

// Plain writes uncolored token frames to an io.Writer
type Plain struct {
	out io.Writer
}

// NewPlain creates a plain renderer writing to out
func NewPlain(out io.Writer) *Plain {
	return &Plain{out: out}
}

func (p *Plain) Init() {}

// Clear separates frames with a blank line
func (p *Plain) Clear() {
	fmt.Fprintln(p.out)
}

// RenderFrame writes the token grid followed by the status lines
func (p *Plain) RenderFrame(g *state.Game) {
	fmt.Fprint(p.out, Frame(g))
	for _, line := range StatusLines(g) {
		fmt.Fprintln(p.out, line)
	}
}

// StyleText returns text unchanged
func (p *Plain) StyleText(text string, _ TextStyle) string {
	return text
}

// ShowMessage writes msg on its own line
func (p *Plain) ShowMessage(msg string) {
	fmt.Fprintln(p.out, msg)
}

// Frame returns the token grid of the game, one row per line
func Frame(g *state.Game) string {
	return g.Map.Grid.String()
}

// CellStyle classifies a cell for styled renderers. Soldiers of team 1 use
// StyleSoldier and every other team StyleEnemy.
func CellStyle(c *world.Cell) TextStyle {
	switch o := c.Occupant.(type) {
	case *agent.Soldier:
		if o.HasVisualState() {
			return StyleHit
		}
		if o.Team == 1 {
			return StyleSoldier
		}
		return StyleEnemy
	case *entities.Box:
		return StyleBox
	case *entities.Supply:
		return StyleSupply
	}

	switch c.Kind {
	case world.Wall:
		return StyleWall
	case world.Path:
		return StylePath
	case world.Floor:
		return StyleFloor
	case world.Entrance:
		return StyleEntrance
	default:
		return StyleSpace
	}
}

// StatusLines summarises the iteration and every soldier still alive
func StatusLines(g *state.Game) []string {
	lines := []string{fmt.Sprintf("iteration %d/%d, %d teams", g.Iteration, g.Config.Iterations, len(g.Teams))}
	for _, team := range g.Teams {
		parts := make([]string, 0, team.Len())
		for _, s := range team.Soldiers {
			parts = append(parts, SoldierSummary(s))
		}
		lines = append(lines, fmt.Sprintf("team %d: %s", team.ID, strings.Join(parts, ", ")))
	}
	if w := g.Winner(); w != nil && g.Done() {
		lines = append(lines, fmt.Sprintf("team %d wins", w.ID))
	}
	return lines
}

// SoldierSummary is a one-line description of a soldier
func SoldierSummary(s *agent.Soldier) string {
	return fmt.Sprintf("#%d %s hp=%d/%d b=%d g=%d %s",
		s.ID, s.Policy().Name(), s.Health, s.MaxHealth, s.Bullets, s.Grenades, s.State)
}
