// Package fclayout assigns rows to nodes and places them.
//
// Level -> Pack -> Position -> ComputeBounds, each stage returning a new table.
package fclayout

import (
	"oss.terrastruct.com/flowchart/fcgraph"
)

// Neighbor points at the edge and node on the other end of an adjacency,
// by index into the input edge slice and Levels.Nodes.
type Neighbor struct {
	Edge int
	Node int
}

type LeveledNode struct {
	ID  string
	Row int

	// keyed by neighbor id, the last edge between the pair wins
	Forward  map[string]Neighbor
	Backward map[string]Neighbor
}

type Levels struct {
	// first observed order
	Nodes  []*LeveledNode
	MaxRow int

	index map[string]int
}

func (l *Levels) Lookup(id string) (*LeveledNode, bool) {
	i, ok := l.index[id]
	if !ok {
		return nil, false
	}
	return l.Nodes[i], true
}

func (l *Levels) RowCount() int {
	return l.MaxRow + 1
}

func (l *Levels) add(id string, row int) int {
	l.Nodes = append(l.Nodes, &LeveledNode{
		ID:       id,
		Row:      row,
		Forward:  make(map[string]Neighbor),
		Backward: make(map[string]Neighbor),
	})
	i := len(l.Nodes) - 1
	l.index[id] = i
	if row > l.MaxRow {
		l.MaxRow = row
	}
	return i
}

// Level walks edges in order. A node's row is fixed the first time it's seen:
// sources start at row 0 and targets land one row below their source.
// Later edges only add adjacency.
func Level(edges []*fcgraph.Edge) *Levels {
	l := &Levels{
		MaxRow: -1,
		index:  make(map[string]int),
	}

	for ei, e := range edges {
		fi, ok := l.index[e.From]
		if !ok {
			fi = l.add(e.From, 0)
		}
		ti, ok := l.index[e.To]
		if !ok {
			ti = l.add(e.To, l.Nodes[fi].Row+1)
		}

		l.Nodes[fi].Forward[e.To] = Neighbor{Edge: ei, Node: ti}
		l.Nodes[ti].Backward[e.From] = Neighbor{Edge: ei, Node: fi}
	}

	return l
}
