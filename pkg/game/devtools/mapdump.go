// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"skirmish/pkg/engine/world"
	"skirmish/pkg/game/entities"
	"skirmish/pkg/game/events"
	"skirmish/pkg/game/state"
)

const mapDumpFilename = "map.txt"

// cellKindNames labels cell kinds in the legend
var cellKindNames = []struct {
	kind world.CellKind
	name string
}{
	{world.Wall, "wall"},
	{world.Space, "space"},
	{world.Path, "corridor"},
	{world.Floor, "room floor"},
	{world.Entrance, "room entrance"},
}

// DumpMap writes a full debug dump of g to w: metadata, legend, the grid,
// rooms, soldiers and supplies. The format is plain key: value sections.
func DumpMap(w io.Writer, g *state.Game) error {
	d := &dumper{w: w}
	grid := g.Map.Grid

	d.section("metadata")
	d.line("size: %dx%d", grid.Width(), grid.Height())
	d.line("seed: %d", g.Config.Seed)
	d.line("iteration: %d/%d", g.Iteration, g.Config.Iterations)
	d.line("rooms: %d", len(g.Map.Rooms))
	d.line("corridors: %d", g.Map.Corridors)
	d.line("teams: %d", len(g.Teams))

	d.section("legend")
	for _, k := range cellKindNames {
		d.line("%s: %s (%d cells)", k.kind.Token(), k.name, grid.Count(k.kind))
	}

	d.section("map")
	d.raw(grid.String())

	d.section("rooms")
	for i, r := range g.Map.Rooms {
		x0, y0, x1, y1 := r.Bounds()
		d.line("room %d: center=%v size=%dx%d bounds=(%d,%d)-(%d,%d) floor=%d",
			i, r.Center, r.Width, r.Height, x0, y0, x1-1, y1-1, r.Area())
	}

	d.section("soldiers")
	for _, team := range g.Teams {
		for _, s := range team.Soldiers {
			d.line("%s team=%d policy=%s at=%v hp=%d/%d bullets=%d grenades=%d state=%s",
				events.SoldierActor(s.ID), s.Team, s.Policy().Name(), s.Position(),
				s.Health, s.MaxHealth, s.Bullets, s.Grenades, s.State)
		}
	}

	d.section("supplies")
	grid.ForEachCell(func(c *world.Cell) {
		switch o := c.Occupant.(type) {
		case *entities.Supply:
			d.line("%s at=%v", o, c.Point)
		case *entities.Box:
			d.line("box at=%v", c.Point)
		}
	})

	return d.err
}

// DumpMapToFile writes DumpMap output to map.txt under dir and returns the path
func DumpMapToFile(g *state.Game, dir string) (string, error) {
	path := filepath.Join(dir, mapDumpFilename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create map dump: %w", err)
	}
	defer f.Close()

	if err := DumpMap(f, g); err != nil {
		return "", fmt.Errorf("write map dump: %w", err)
	}
	return path, nil
}

// dumper keeps the first write error so callers check once
type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) section(name string) {
	d.line("\n[%s]", name)
}

func (d *dumper) line(format string, a ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format+"\n", a...)
}

func (d *dumper) raw(s string) {
	if d.err != nil {
		return
	}
	_, d.err = io.WriteString(d.w, s)
}
