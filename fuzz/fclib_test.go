package fclib_fuzzing

import (
	"context"
	"strings"
	"testing"

	"oss.terrastruct.com/flowchart/fcgraph"
	"oss.terrastruct.com/flowchart/fclib"
	"oss.terrastruct.com/flowchart/fctarget"
	"oss.terrastruct.com/flowchart/lib/geo"
	"oss.terrastruct.com/flowchart/lib/go2"
	"oss.terrastruct.com/flowchart/lib/log"
)

// FuzzLayout feeds edge lists like "a>b b>c c>a" through the whole engine.
func FuzzLayout(f *testing.F) {
	f.Add("a>b b>c", false, false, 50., 40.)
	f.Add("a>b a>c c>a b>b", true, true, 0., 0.)
	f.Add("a>a", false, true, -10., 5.)

	f.Fuzz(func(t *testing.T, edges string, flowing, cross bool, rowSpacing, colSpacing float64) {
		if !geo.IsFinite(rowSpacing) || !geo.IsFinite(colSpacing) {
			return
		}
		if go2.Abs(rowSpacing) > 1e6 || go2.Abs(colSpacing) > 1e6 {
			return
		}
		g := fcgraph.NewGraph()
		for _, pair := range strings.Fields(edges) {
			from, to, ok := strings.Cut(pair, ">")
			if !ok {
				continue
			}
			g.Connect(from, to)
		}

		cfg := &fctarget.Config{
			Mode:       go2.Pointer(string(fctarget.ModeStacked)),
			EdgeType:   go2.Pointer(string(fctarget.EdgeBent)),
			RowSpacing: go2.Pointer(rowSpacing),
			ColSpacing: go2.Pointer(colSpacing),
		}
		if flowing {
			cfg.Mode = go2.Pointer(string(fctarget.ModeFlowing))
		}
		if cross {
			cfg.EdgeType = go2.Pointer(string(fctarget.EdgeCross))
		}

		diagram, err := fclib.Layout(log.WithTB(context.Background(), t, nil), g, cfg)
		if err != nil {
			return
		}
		for _, n := range diagram.Nodes {
			if !geo.IsFinite(n.Pos.X) || !geo.IsFinite(n.Pos.Y) {
				t.Fatalf("node %s placed at %v", n.ID, n.Pos.ToString())
			}
		}
		if len(diagram.Edges) != len(g.Edges) {
			t.Fatalf("expected %d edges, got %d", len(g.Edges), len(diagram.Edges))
		}
	})
}
