package fcedge

import (
	"fmt"
	"math"

	"oss.terrastruct.com/flowchart/fctarget"
	"oss.terrastruct.com/flowchart/lib/geo"
	"oss.terrastruct.com/flowchart/lib/svg"
)

// PathKindFor picks the path variant for se. Self loops are always circular.
func PathKindFor(se *ShapedEdge, edgeType fctarget.EdgeType) (fctarget.PathKind, error) {
	if se.IsCircular {
		return fctarget.PathCircular, nil
	}
	switch edgeType {
	case fctarget.EdgeCross:
		return fctarget.PathStraight, nil
	case fctarget.EdgeBent:
		if se.Backward() {
			return fctarget.PathBentBackward, nil
		}
		return fctarget.PathBentForward, nil
	}
	return "", fmt.Errorf("%w: edge type %q", ErrUnreachable, edgeType)
}

// BuildPath draws se in its own box.
func BuildPath(se *ShapedEdge, opts *fctarget.LayoutOpts) (*fctarget.Path, error) {
	kind, err := PathKindFor(se, opts.EdgeType)
	if err != nil {
		return nil, fmt.Errorf("edge %s: %w", se.Edge.AbsID(), err)
	}

	var p *fctarget.Path
	switch kind {
	case fctarget.PathStraight:
		p = straight(se, opts)
	case fctarget.PathBentForward:
		p = bentForward(se, opts)
	case fctarget.PathBentBackward:
		p, err = bentBackward(se, opts)
	case fctarget.PathCircular:
		p, err = circular(se, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("edge %s: %w", se.Edge.AbsID(), err)
	}

	p.LabelPosition = geo.Route(p.Route).Midpoint()
	return p, nil
}

// newPath sizes the box around both endpoints, padding on every side.
func newPath(kind fctarget.PathKind, se *ShapedEdge, padding float64) (*fctarget.Path, *svg.PathContext) {
	from, to := se.FromPos, se.ToPos
	p := &fctarget.Path{
		Kind:    kind,
		Origin:  *from.Min(to),
		Padding: padding,
		Width:   math.Abs(to.X-from.X) + 2*padding,
		Height:  math.Abs(to.Y-from.Y) + 2*padding,
	}
	tl := p.TopLeft()
	p.Start = *from.Sub(tl)
	p.End = *to.Sub(tl)

	pc := svg.NewPathContext()
	pc.StartAt(&p.Start)
	return p, pc
}

func finish(p *fctarget.Path, pc *svg.PathContext) *fctarget.Path {
	p.Command = pc.PathData()
	tl := p.TopLeft()
	p.Route = pc.Route.Translate(tl.X, tl.Y)
	return p
}

func straight(se *ShapedEdge, opts *fctarget.LayoutOpts) *fctarget.Path {
	p, pc := newPath(fctarget.PathStraight, se, opts.MinEdgeSize)
	pc.L(false, p.End.X, p.End.Y)
	return finish(p, pc)
}

// bentForward leaves the source face straight, turns halfway, and enters the target
// face straight.
func bentForward(se *ShapedEdge, opts *fctarget.LayoutOpts) *fctarget.Path {
	p, pc := newPath(fctarget.PathBentForward, se, opts.MinEdgeSize)
	if se.FromAnchor.IsVertical() {
		pc.V(false, (p.Start.Y+p.End.Y)/2)
		pc.H(false, p.End.X)
		pc.V(false, p.End.Y)
	} else {
		pc.H(false, (p.Start.X+p.End.X)/2)
		pc.V(false, p.End.Y)
		pc.H(false, p.End.X)
	}
	return finish(p, pc)
}

// bentBackward goes around the outside of both endpoints on se.Side.
//
// .  ┌──┐
// .  │to│◄──┐
// .  └──┘   │
// .  ┌────┐ │
// .  │from├─┘
// .  └────┘
func bentBackward(se *ShapedEdge, opts *fctarget.LayoutOpts) (*fctarget.Path, error) {
	p, pc := newPath(fctarget.PathBentBackward, se, opts.MinEdgeSize+opts.DetourSize)
	outer := func(a, b float64) float64 {
		if se.Side.IsPositive() {
			return math.Max(a, b) + opts.DetourSize
		}
		return math.Min(a, b) - opts.DetourSize
	}
	switch {
	case se.Side.IsHorizontal():
		pc.H(false, outer(p.Start.X, p.End.X))
		pc.V(false, p.End.Y)
		pc.H(false, p.End.X)
	case se.Side.IsVertical():
		pc.V(false, outer(p.Start.Y, p.End.Y))
		pc.H(false, p.End.X)
		pc.V(false, p.End.Y)
	default:
		return nil, fmt.Errorf("%w: side %q", ErrUnreachable, se.Side)
	}
	return finish(p, pc), nil
}

// circular loops from one face of a node back into a perpendicular face.
// The box reaches loopSize past each face, so Padding is 0.
func circular(se *ShapedEdge, opts *fctarget.LayoutOpts) (*fctarget.Path, error) {
	from, to := se.FromPos, se.ToPos
	loopSize := opts.MinEdgeSize + opts.DetourSize

	fdx, fdy := se.FromAnchor.Normal()
	tdx, tdy := se.ToAnchor.Normal()
	// z of normal(from) x normal(to); 0 when the faces are parallel
	turn := fdx*tdy - fdy*tdx
	if turn == 0 {
		return nil, fmt.Errorf("%w: self loop from %q to %q", ErrUnreachable, se.FromAnchor, se.ToAnchor)
	}

	origin := from.Min(to)
	if math.Min(fdx, tdx) < 0 {
		origin.X -= loopSize
	}
	if math.Min(fdy, tdy) < 0 {
		origin.Y -= loopSize
	}

	p := &fctarget.Path{
		Kind:   fctarget.PathCircular,
		Origin: *origin,
		Width:  math.Abs(to.X-from.X) + loopSize,
		Height: math.Abs(to.Y-from.Y) + loopSize,
	}
	p.Start = *from.Sub(origin)
	p.End = *to.Sub(origin)

	pc := svg.NewPathContext()
	pc.StartAt(&p.Start)
	pc.A(false, p.Width/opts.ArcSizeRatio, p.Height/opts.ArcSizeRatio, 0, true, turn > 0, p.End.X, p.End.Y)
	p.Command = pc.PathData()

	// polyline around the loop box for label placement and hit testing
	out := from.Add(fdx*loopSize, fdy*loopSize)
	in := to.Add(tdx*loopSize, tdy*loopSize)
	corner := geo.NewPoint(out.X, in.Y)
	if se.FromAnchor.IsVertical() {
		corner = geo.NewPoint(in.X, out.Y)
	}
	p.Route = []*geo.Point{from.Copy(), out, corner, in, to.Copy()}
	return p, nil
}
