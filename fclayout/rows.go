package fclayout

import (
	"fmt"
	"math"

	"oss.terrastruct.com/flowchart/fcgraph"
	"oss.terrastruct.com/flowchart/fctarget"
)

// RowNode is a leveled node with its size resolved.
type RowNode struct {
	Node *fcgraph.Node

	Width  float64
	Height float64

	// explicit coordinates from the input, nil when the positioner decides
	FixedX *float64
	FixedY *float64

	Row    int
	Column int
}

type Row struct {
	Index int
	Nodes []*RowNode

	// Width spans the row left to right including the gaps between nodes,
	// Height spans it top to bottom. Flowing layouts read Height as the row length.
	Width  float64
	Height float64
}

type Table struct {
	Rows []*Row

	MaxRowWidth  float64
	MaxRowHeight float64
}

// NodeSize returns n's size, scaling the defaults for a rhombus.
// An explicit width or height always wins.
func NodeSize(n *fcgraph.Node, opts *fctarget.LayoutOpts) (w, h float64) {
	w, h = opts.NodeWidth, opts.NodeHeight
	if n.Symbol.Normalize() == fcgraph.SymbolRhombus {
		w *= opts.RhombusRatio
		h *= opts.RhombusRatio
	}
	if n.Width != nil {
		w = *n.Width
	}
	if n.Height != nil {
		h = *n.Height
	}
	return w, h
}

// Pack groups leveled nodes into rows, keeping first observed order within a row.
func Pack(l *Levels, nodes map[string]*fcgraph.Node, opts *fctarget.LayoutOpts) (*Table, error) {
	t := &Table{
		Rows: make([]*Row, l.RowCount()),
	}
	for i := range t.Rows {
		t.Rows[i] = &Row{Index: i}
	}

	for _, ln := range l.Nodes {
		n, ok := nodes[ln.ID]
		if !ok {
			return nil, fmt.Errorf("%w %q", fcgraph.ErrUnknownNode, ln.ID)
		}
		row := t.Rows[ln.Row]

		w, h := NodeSize(n, opts)
		row.Nodes = append(row.Nodes, &RowNode{
			Node:   n,
			Width:  w,
			Height: h,
			FixedX: n.X,
			FixedY: n.Y,
			Row:    ln.Row,
			Column: len(row.Nodes),
		})
	}

	for _, row := range t.Rows {
		for i, rn := range row.Nodes {
			if i > 0 {
				row.Width += opts.ColSpacing
				row.Height += opts.RowSpacing
			}
			row.Width += rn.Width
			row.Height += rn.Height
		}
		t.MaxRowWidth = math.Max(t.MaxRowWidth, row.Width)
		t.MaxRowHeight = math.Max(t.MaxRowHeight, row.Height)
	}

	return t, nil
}
