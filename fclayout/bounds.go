package fclayout

import (
	"oss.terrastruct.com/flowchart/fctarget"
	"oss.terrastruct.com/flowchart/lib/geo"
)

// ComputeBounds returns the extent of all nodes plus margins, starting from the origin.
//
// A node at or below the minimum is not checked against the maximum, so a node
// sitting on the origin never extends the maximum.
func ComputeBounds(nodes []*Node, opts *fctarget.LayoutOpts) fctarget.Bounds {
	var x, y geo.Range
	for _, n := range nodes {
		if n.X <= x.Min {
			x.Min = n.X
		} else if n.X+n.Width > x.Max {
			x.Max = n.X + n.Width
		}
		if n.Y <= y.Min {
			y.Min = n.Y
		} else if n.Y+n.Height > y.Max {
			y.Max = n.Y + n.Height
		}
	}
	return fctarget.Bounds{
		X: x.Inflate(opts.WidthMargin),
		Y: y.Inflate(opts.HeightMargin),
	}
}
