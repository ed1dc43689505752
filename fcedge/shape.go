// Package fcedge attaches edges to placed nodes and draws their paths.
package fcedge

import (
	"errors"
	"fmt"

	"oss.terrastruct.com/flowchart/fcgraph"
	"oss.terrastruct.com/flowchart/fclayout"
	"oss.terrastruct.com/flowchart/fctarget"
	"oss.terrastruct.com/flowchart/lib/geo"
)

// ErrUnreachable is returned for combinations of mode, direction and side that
// no layout produces.
var ErrUnreachable = errors.New("unreachable edge state")

type ShapedEdge struct {
	Edge *fcgraph.Edge
	From *fclayout.Node
	To   *fclayout.Node

	FromPos    *geo.Point
	ToPos      *geo.Point
	FromAnchor geo.Compass
	ToAnchor   geo.Compass

	Direction geo.Compass
	// half of the diagram a backward edge detours through
	Side       geo.Compass
	IsCircular bool
}

// Backward is true when the edge points at an earlier row.
func (se *ShapedEdge) Backward() bool {
	return se.To.Row < se.From.Row
}

// Shape picks the faces e attaches to on from and to.
//
// . forward row    from s -> to n        (stacked)
// . backward row   both on Side
// . same row       from Direction -> to opposite
// . self loop      two perpendicular faces
func Shape(e *fcgraph.Edge, from, to *fclayout.Node, mode fctarget.Mode) (_ *ShapedEdge, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("edge %s: %w", e.AbsID(), err)
		}
	}()

	se := &ShapedEdge{
		Edge:       e,
		From:       from,
		To:         to,
		IsCircular: e.IsCircular(),
	}

	se.Direction, err = direction(from, to, mode)
	if err != nil {
		return nil, err
	}
	se.Side, err = side(from, to, mode)
	if err != nil {
		return nil, err
	}
	se.FromAnchor, se.ToAnchor, err = anchors(se, mode)
	if err != nil {
		return nil, err
	}

	se.FromPos, err = from.Box().Anchor(se.FromAnchor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	se.ToPos, err = to.Box().Anchor(se.ToAnchor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return se, nil
}

func direction(from, to *fclayout.Node, mode fctarget.Mode) (geo.Compass, error) {
	sameRow := from.Row == to.Row
	switch mode {
	case fctarget.ModeStacked:
		if sameRow {
			if to.Column > from.Column {
				return geo.East, nil
			}
			return geo.West, nil
		}
		if to.Row > from.Row {
			return geo.South, nil
		}
		return geo.North, nil
	case fctarget.ModeFlowing:
		if sameRow {
			if to.Column > from.Column {
				return geo.South, nil
			}
			return geo.North, nil
		}
		if to.Row > from.Row {
			return geo.East, nil
		}
		return geo.West, nil
	}
	return "", fmt.Errorf("%w: mode %q", ErrUnreachable, mode)
}

// side compares each endpoint's column against the middle of its row.
func side(from, to *fclayout.Node, mode fctarget.Mode) (geo.Compass, error) {
	start := from.Column - from.RowLen/2
	end := to.Column - to.RowLen/2
	positive := start+end >= 0

	switch mode {
	case fctarget.ModeStacked:
		if positive {
			return geo.East, nil
		}
		return geo.West, nil
	case fctarget.ModeFlowing:
		if positive {
			return geo.South, nil
		}
		return geo.North, nil
	}
	return "", fmt.Errorf("%w: mode %q", ErrUnreachable, mode)
}

func anchors(se *ShapedEdge, mode fctarget.Mode) (from, to geo.Compass, err error) {
	switch {
	case se.To.Row > se.From.Row:
		switch mode {
		case fctarget.ModeStacked:
			return geo.South, geo.North, nil
		case fctarget.ModeFlowing:
			return geo.East, geo.West, nil
		}
	case se.To.Row < se.From.Row:
		return se.Side, se.Side, nil
	case se.To.Column != se.From.Column:
		return se.Direction, se.Direction.GetOpposite(), nil
	case se.Direction.IsHorizontal():
		return geo.West, geo.South, nil
	case se.Direction.IsVertical():
		return geo.North, geo.East, nil
	}
	return "", "", fmt.Errorf("%w: direction %q side %q mode %q", ErrUnreachable, se.Direction, se.Side, mode)
}
