package fclib_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"oss.terrastruct.com/diff"
	"oss.terrastruct.com/xjson"

	"oss.terrastruct.com/flowchart/fcgraph"
	"oss.terrastruct.com/flowchart/fclib"
	"oss.terrastruct.com/flowchart/fctarget"
	"oss.terrastruct.com/flowchart/lib/geo"
	"oss.terrastruct.com/flowchart/lib/go2"
	"oss.terrastruct.com/flowchart/lib/log"
)

func layout(t *testing.T, text string, cfg *fctarget.Config) (*fctarget.Diagram, error) {
	ctx := log.WithTB(context.Background(), t, nil)
	g, err := fcgraph.Decode([]byte(text))
	if !assert.NoError(t, err) {
		return nil, err
	}
	return fclib.Layout(ctx, g, cfg)
}

func mustLayout(t *testing.T, text string, cfg *fctarget.Config) *fctarget.Diagram {
	d, err := layout(t, text, cfg)
	assert.NoError(t, err)
	if d == nil {
		t.FailNow()
	}
	return d
}

func node(t *testing.T, d *fctarget.Diagram, id string) *fctarget.Node {
	n := d.NodeByID(id)
	if n == nil {
		t.Fatalf("missing node %q", id)
	}
	return n
}

func TestLayout(t *testing.T) {
	t.Parallel()

	t.Run("chain", testChain)
	t.Run("fan_out", testFanOut)
	t.Run("back_edge", testBackEdge)
	t.Run("self_loop", testSelfLoop)
	t.Run("attributes", testAttributes)
	t.Run("config", testConfig)
	t.Run("invalid", testInvalid)
	t.Run("deterministic", testDeterministic)
}

func testChain(t *testing.T) {
	t.Parallel()

	d := mustLayout(t, `
nodes: {A: {}, B: {}, C: {}}
edges:
  - {from: A, to: B}
  - {from: B, to: C}
`, nil)

	assert.Len(t, d.Rows, 3)
	for i, id := range []string{"A", "B", "C"} {
		assert.Equal(t, []string{id}, d.Rows[i].NodeIDs)
		n := node(t, d, id)
		assert.Equal(t, i, n.Row)
		assert.Equal(t, 0., n.Pos.X)
		assert.Equal(t, float64(i)*(fctarget.DEFAULT_NODE_HEIGHT+fctarget.DEFAULT_ROW_SPACING), n.Pos.Y)
	}
	for _, e := range d.Edges {
		assert.Equal(t, fctarget.PathBentForward, e.Path.Kind)
		assert.Equal(t, geo.South, e.FromAnchor)
		assert.Equal(t, geo.North, e.ToAnchor)
	}
}

func testFanOut(t *testing.T) {
	t.Parallel()

	d := mustLayout(t, `
nodes: {A: {}, B: {}, C: {}}
edges:
  - {from: A, to: B}
  - {from: A, to: C}
`, nil)

	assert.Equal(t, [][]string{{"A"}, {"B", "C"}}, [][]string{d.Rows[0].NodeIDs, d.Rows[1].NodeIDs})
	a, b, c := node(t, d, "A"), node(t, d, "B"), node(t, d, "C")
	assert.Less(t, b.Pos.X, c.Pos.X)
	assert.Equal(t, b.Width+c.Width+fctarget.DEFAULT_COL_SPACING, d.Rows[1].Width)
	assert.Equal(t, a.Box().Center().X, (b.Pos.X+c.Pos.X+c.Width)/2)
	assert.Equal(t, []string{"B", "C"}, a.Successors)
	assert.Nil(t, a.Predecessors)
	assert.Equal(t, []string{"A"}, c.Predecessors)
	assert.Nil(t, c.Successors)
	assert.Equal(t, fctarget.Bounds{
		X: geo.Range{Min: -20, Max: 360},
		Y: geo.Range{Min: -20, Max: 190},
	}, d.Bounds)

	for _, n := range d.Nodes {
		assert.True(t, d.Bounds.X.Contains(n.Pos.X), n.ID)
		assert.True(t, d.Bounds.Y.Contains(n.Pos.Y), n.ID)
	}
}

func testBackEdge(t *testing.T) {
	t.Parallel()

	d := mustLayout(t, `
nodes: {A: {}, B: {}}
edges:
  - {from: A, to: B}
  - {from: B, to: A}
`, nil)

	assert.Equal(t, 0, node(t, d, "A").Row)
	assert.Equal(t, 1, node(t, d, "B").Row)
	assert.Equal(t, []string{"B"}, node(t, d, "A").Successors)
	assert.Equal(t, []string{"B"}, node(t, d, "A").Predecessors)

	back := d.Edges[1]
	assert.Equal(t, "(B -> A)[0]", back.ID)
	assert.Equal(t, geo.North, back.Direction)
	assert.Equal(t, geo.East, back.Side)
	assert.Equal(t, back.Side, back.FromAnchor)
	assert.Equal(t, back.Side, back.ToAnchor)
	assert.Equal(t, fctarget.PathBentBackward, back.Path.Kind)
	assert.Equal(t, fctarget.DEFAULT_MIN_EDGE_SIZE+fctarget.DEFAULT_DETOUR_SIZE, back.Path.Padding)
}

func testSelfLoop(t *testing.T) {
	t.Parallel()

	for _, edgeType := range []fctarget.EdgeType{fctarget.EdgeCross, fctarget.EdgeBent} {
		d := mustLayout(t, `
nodes: {A: {}}
edges: [{from: A, to: A}]
`, &fctarget.Config{EdgeType: go2.Pointer(string(edgeType))})

		e := d.Edges[0]
		assert.True(t, e.IsCircular)
		assert.Equal(t, fctarget.PathCircular, e.Path.Kind, edgeType)
		assert.NotEqual(t, e.FromAnchor.IsHorizontal(), e.ToAnchor.IsHorizontal())
	}
}

func testAttributes(t *testing.T) {
	t.Parallel()

	d := mustLayout(t, `
nodes:
  A: {text: Start, symbol: ellipse, bgcolor: red}
  B: {symbol: rhombus}
  C: {width: 10, height: 20}
edges:
  - {from: A, to: B, text: go, color: "rgb(0, 0, 255)", marker: diamond, fontSize: 20}
  - {from: A, to: C}
`, nil)

	a := node(t, d, "A")
	assert.Equal(t, "Start", a.Text)
	assert.Equal(t, "ellipse", a.Symbol)
	assert.Equal(t, "#ff0000", a.BgColor)

	b := node(t, d, "B")
	assert.Equal(t, "rhombus", b.Symbol)
	assert.Equal(t, 225., b.Width)
	assert.Equal(t, 90., b.Height)

	c := node(t, d, "C")
	assert.Equal(t, "rectangle", c.Symbol)
	assert.Equal(t, 10., c.Width)
	assert.Equal(t, 20., c.Height)

	assert.Equal(t, "go", d.Edges[0].Text)
	assert.Equal(t, "#0000ff", d.Edges[0].Color)
	assert.Equal(t, fctarget.DiamondMarker, d.Edges[0].Marker)
	assert.Equal(t, 20, d.Edges[0].FontSize)

	assert.Equal(t, fctarget.ArrowMarker, d.Edges[1].Marker)
	assert.Equal(t, fctarget.DEFAULT_FONT_SIZE, d.Edges[1].FontSize)
	assert.NotNil(t, d.Edges[1].Path.LabelPosition)
}

func testConfig(t *testing.T) {
	t.Parallel()

	text := `
config: {mode: flowing, colSpacing: 10}
nodes: {A: {}, B: {}}
edges: [{from: A, to: B}]
`
	d := mustLayout(t, text, nil)
	assert.Equal(t, fctarget.ModeFlowing, d.Mode)
	assert.Equal(t, geo.Point{X: 160, Y: 0}, node(t, d, "B").Pos)

	d = mustLayout(t, text, &fctarget.Config{
		Mode:     go2.Pointer(string(fctarget.ModeStacked)),
		EdgeType: go2.Pointer(string(fctarget.EdgeCross)),
	})
	assert.Equal(t, fctarget.ModeStacked, d.Mode)
	assert.Equal(t, fctarget.EdgeCross, d.EdgeType)
	assert.Equal(t, geo.Point{X: 0, Y: 110}, node(t, d, "B").Pos)
	assert.Equal(t, fctarget.PathStraight, d.Edges[0].Path.Kind)

	_, err := layout(t, text, &fctarget.Config{Mode: go2.Pointer("sideways")})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), `unknown layout mode "sideways"`)
	}
}

func testInvalid(t *testing.T) {
	t.Parallel()

	d, err := layout(t, `
nodes: {A: {}, B: {}, C: {}}
edges: [{from: A, to: B}, {from: A, to: D}]
`, nil)
	assert.Nil(t, d)
	assert.True(t, errors.Is(err, fcgraph.ErrIsolatedNode), "%v", err)
	assert.True(t, errors.Is(err, fcgraph.ErrUnknownNode), "%v", err)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "failed to layout")
	}

	ctx, cancel := context.WithCancel(log.WithTB(context.Background(), t, nil))
	cancel()
	g := fcgraph.NewGraph()
	g.Connect("A", "B")
	_, err = fclib.Layout(ctx, g, nil)
	assert.True(t, errors.Is(err, context.Canceled), "%v", err)
}

func testDeterministic(t *testing.T) {
	t.Parallel()

	text := `
nodes: {A: {}, B: {}, C: {}, D: {x: 400}}
edges:
  - {from: A, to: B}
  - {from: A, to: C}
  - {from: C, to: D}
  - {from: D, to: A}
  - {from: B, to: C}
  - {from: D, to: D}
`
	exp := xjson.MarshalIndent(mustLayout(t, text, nil))
	for i := 0; i < 5; i++ {
		got := xjson.MarshalIndent(mustLayout(t, text, nil))
		ds, err := diff.Strings(exp, got)
		assert.NoError(t, err)
		assert.Empty(t, ds)
	}
}
