// Package svg writes SVG path data for edge geometry.
package svg

import (
	"fmt"
	"math"
	"strings"

	"oss.terrastruct.com/flowchart/lib/geo"
)

// PathContext accumulates path commands in a local coordinate box.
// Route holds the vertices visited by straight commands; arcs contribute their endpoints.
type PathContext struct {
	Commands []string
	Route    geo.Route
	Start    *geo.Point
	Current  *geo.Point
}

func chopPrecision(f float64) float64 {
	return math.Round(f*10000) / 10000
}

func NewPathContext() *PathContext {
	return &PathContext{}
}

func (c *PathContext) point(isLowerCase bool, x, y float64) *geo.Point {
	if isLowerCase {
		return geo.NewPoint(chopPrecision(c.Current.X+x), chopPrecision(c.Current.Y+y))
	}
	return geo.NewPoint(chopPrecision(x), chopPrecision(y))
}

func (c *PathContext) StartAt(p *geo.Point) {
	c.Start = geo.NewPoint(chopPrecision(p.X), chopPrecision(p.Y))
	c.Commands = append(c.Commands, fmt.Sprintf("M %v %v", c.Start.X, c.Start.Y))
	c.Current = c.Start.Copy()
	c.Route = append(c.Route, c.Start.Copy())
}

func (c *PathContext) L(isLowerCase bool, x, y float64) {
	endPoint := c.point(isLowerCase, x, y)
	c.Commands = append(c.Commands, fmt.Sprintf("L %v %v", endPoint.X, endPoint.Y))
	c.moveTo(endPoint)
}

func (c *PathContext) H(isLowerCase bool, x float64) {
	endPoint := c.point(isLowerCase, x, 0)
	endPoint.Y = c.Current.Y
	c.Commands = append(c.Commands, fmt.Sprintf("H %v", endPoint.X))
	c.moveTo(endPoint)
}

func (c *PathContext) V(isLowerCase bool, y float64) {
	endPoint := c.point(isLowerCase, 0, y)
	endPoint.X = c.Current.X
	c.Commands = append(c.Commands, fmt.Sprintf("V %v", endPoint.Y))
	c.moveTo(endPoint)
}

// A draws an elliptical arc from the current point to (x, y).
func (c *PathContext) A(isLowerCase bool, rx, ry, rotation float64, largeArc, sweep bool, x, y float64) {
	endPoint := c.point(isLowerCase, x, y)
	c.Commands = append(c.Commands, fmt.Sprintf(
		"A %v %v %v %d %d %v %v",
		chopPrecision(rx), chopPrecision(ry), rotation,
		flag(largeArc), flag(sweep),
		endPoint.X, endPoint.Y,
	))
	c.moveTo(endPoint)
}

func (c *PathContext) moveTo(p *geo.Point) {
	c.Route = append(c.Route, p.Copy())
	c.Current = p.Copy()
}

func (c *PathContext) PathData() string {
	return strings.Join(c.Commands, " ")
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
