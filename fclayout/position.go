package fclayout

import (
	"math"

	"oss.terrastruct.com/flowchart/fcgraph"
	"oss.terrastruct.com/flowchart/fctarget"
	"oss.terrastruct.com/flowchart/lib/geo"
)

// Node is a placed node. X, Y is its top left corner.
type Node struct {
	Input *fcgraph.Node

	X      float64
	Y      float64
	Width  float64
	Height float64

	Row    int
	Column int
	// number of nodes sharing the row
	RowLen int
}

func (n *Node) ID() string {
	return n.Input.ID
}

func (n *Node) Box() *geo.Box {
	return geo.NewBox(geo.NewPoint(n.X, n.Y), n.Width, n.Height)
}

type Layout struct {
	// row by row, left to right within a row
	Nodes []*Node
	Rows  []*Row

	index map[string]int
}

func (l *Layout) Lookup(id string) (*Node, bool) {
	i, ok := l.index[id]
	if !ok {
		return nil, false
	}
	return l.Nodes[i], true
}

// axes maps the row-relative layout onto x and y.
// main runs along a row, cross runs from one row to the next.
type axes struct {
	mainSize   func(*RowNode) float64
	crossSize  func(*RowNode) float64
	mainFixed  func(*RowNode) *float64
	crossFixed func(*RowNode) *float64
	rowLength  func(*Row) float64
	maxLength  float64
	mainGap    float64
	crossGap   float64
	place      func(main, cross float64) (x, y float64)
}

func axesFor(t *Table, opts *fctarget.LayoutOpts) axes {
	if opts.Mode == fctarget.ModeFlowing {
		return axes{
			mainSize:   func(rn *RowNode) float64 { return rn.Height },
			crossSize:  func(rn *RowNode) float64 { return rn.Width },
			mainFixed:  func(rn *RowNode) *float64 { return rn.FixedY },
			crossFixed: func(rn *RowNode) *float64 { return rn.FixedX },
			rowLength:  func(r *Row) float64 { return r.Height },
			maxLength:  t.MaxRowHeight,
			mainGap:    opts.RowSpacing,
			crossGap:   opts.ColSpacing,
			place:      func(main, cross float64) (float64, float64) { return cross, main },
		}
	}
	return axes{
		mainSize:   func(rn *RowNode) float64 { return rn.Width },
		crossSize:  func(rn *RowNode) float64 { return rn.Height },
		mainFixed:  func(rn *RowNode) *float64 { return rn.FixedX },
		crossFixed: func(rn *RowNode) *float64 { return rn.FixedY },
		rowLength:  func(r *Row) float64 { return r.Width },
		maxLength:  t.MaxRowWidth,
		mainGap:    opts.ColSpacing,
		crossGap:   opts.RowSpacing,
		place:      func(main, cross float64) (float64, float64) { return main, cross },
	}
}

// Position places every row centered on the longest row.
//
// Stacked rows go top to bottom with nodes left to right; flowing is the transpose.
// A fixed main axis coordinate moves only its own node: the gap after it shrinks
// by the amount it moved so the rest of the row stays put.
func Position(t *Table, opts *fctarget.LayoutOpts) *Layout {
	ax := axesFor(t, opts)
	l := &Layout{
		Rows:  t.Rows,
		index: make(map[string]int),
	}

	cross := 0.
	for _, row := range t.Rows {
		main := ax.maxLength/2 - ax.rowLength(row)/2
		thickest := 0.
		for _, rn := range row.Nodes {
			gap := ax.mainGap
			at := main
			if fixed := ax.mainFixed(rn); fixed != nil {
				gap -= *fixed - main
				at = *fixed
			}
			atCross := cross
			if fixed := ax.crossFixed(rn); fixed != nil {
				atCross = *fixed
			}

			x, y := ax.place(at, atCross)
			l.index[rn.Node.ID] = len(l.Nodes)
			l.Nodes = append(l.Nodes, &Node{
				Input:  rn.Node,
				X:      x,
				Y:      y,
				Width:  rn.Width,
				Height: rn.Height,
				Row:    rn.Row,
				Column: rn.Column,
				RowLen: len(row.Nodes),
			})

			main = at + ax.mainSize(rn) + gap
			thickest = math.Max(thickest, ax.crossSize(rn))
		}
		cross += thickest + ax.crossGap
	}

	return l
}
