package geo

import "fmt"

type Box struct {
	TopLeft *Point
	Width   float64
	Height  float64
}

func NewBox(tl *Point, width, height float64) *Box {
	return &Box{
		TopLeft: tl,
		Width:   width,
		Height:  height,
	}
}

func (b *Box) Copy() *Box {
	if b == nil {
		return nil
	}
	return NewBox(b.TopLeft.Copy(), b.Width, b.Height)
}

func (b *Box) Center() *Point {
	return NewPoint(b.TopLeft.X+b.Width/2, b.TopLeft.Y+b.Height/2)
}

// Anchor returns the midpoint of the box face c.
// . ┌──n──┐
// . w     e
// . └──s──┘
func (b *Box) Anchor(c Compass) (*Point, error) {
	var dx, dy float64
	switch c {
	case North:
		dx, dy = b.Width/2, 0
	case South:
		dx, dy = b.Width/2, b.Height
	case West:
		dx, dy = 0, b.Height/2
	case East:
		dx, dy = b.Width, b.Height/2
	default:
		return nil, fmt.Errorf("no anchor for compass %q", c)
	}
	return b.TopLeft.Add(dx, dy), nil
}

func (b *Box) ToString() string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("{TopLeft: %s, Width: %.0f, Height: %.0f}", b.TopLeft.ToString(), b.Width, b.Height)
}
