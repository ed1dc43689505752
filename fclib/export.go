package fclib

import (
	"oss.terrastruct.com/flowchart/fcedge"
	"oss.terrastruct.com/flowchart/fcgraph"
	"oss.terrastruct.com/flowchart/fclayout"
	"oss.terrastruct.com/flowchart/fctarget"
	"oss.terrastruct.com/flowchart/lib/geo"
	"oss.terrastruct.com/flowchart/lib/go2"
)

func toRow(row *fclayout.Row) fctarget.Row {
	ids := make([]string, 0, len(row.Nodes))
	for _, rn := range row.Nodes {
		ids = append(ids, rn.Node.ID)
	}
	return fctarget.Row{
		Index:   row.Index,
		NodeIDs: ids,
		Width:   row.Width,
		Height:  row.Height,
	}
}

func toNode(n *fclayout.Node, levels *fclayout.Levels) (fctarget.Node, error) {
	node := fctarget.Node{
		ID:     n.ID(),
		Text:   n.Input.Text,
		Symbol: string(n.Input.Symbol.Normalize()),
		Pos:    geo.Point{X: n.X, Y: n.Y},
		Width:  n.Width,
		Height: n.Height,
		Row:    n.Row,
		Column: n.Column,
	}
	if ln, ok := levels.Lookup(node.ID); ok {
		node.Successors = neighborIDs(ln.Forward)
		node.Predecessors = neighborIDs(ln.Backward)
	}
	if node.Text == "" {
		node.Text = node.ID
	}
	if n.Input.BgColor != "" {
		c, err := fcgraph.NormalizeColor(n.Input.BgColor)
		if err != nil {
			return fctarget.Node{}, err
		}
		node.BgColor = c
	}
	return node, nil
}

func neighborIDs(m map[string]fclayout.Neighbor) []string {
	if len(m) == 0 {
		return nil
	}
	return go2.SortedKeys(m)
}

func toEdge(se *fcedge.ShapedEdge, path *fctarget.Path, opts *fctarget.LayoutOpts) (fctarget.Edge, error) {
	e := se.Edge
	edge := fctarget.Edge{
		ID:       e.AbsID(),
		From:     e.From,
		To:       e.To,
		Marker:   fctarget.ToMarker(e.Marker),
		Text:     e.Text,
		FontSize: go2.Deref(e.FontSize, opts.FontSize),

		FromPos:    *se.FromPos,
		ToPos:      *se.ToPos,
		FromAnchor: se.FromAnchor,
		ToAnchor:   se.ToAnchor,
		Direction:  se.Direction,
		Side:       se.Side,
		IsCircular: se.IsCircular,

		Path: *path,
	}
	if e.Color != "" {
		c, err := fcgraph.NormalizeColor(e.Color)
		if err != nil {
			return fctarget.Edge{}, err
		}
		edge.Color = c
	}
	return edge, nil
}
