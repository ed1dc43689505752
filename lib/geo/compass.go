package geo

import "fmt"

// Compass is one of the four faces of an axis-aligned box.
type Compass string

const (
	North Compass = "n"
	South Compass = "s"
	East  Compass = "e"
	West  Compass = "w"
)

func ParseCompass(s string) (Compass, error) {
	switch c := Compass(s); c {
	case North, South, East, West:
		return c, nil
	}
	return "", fmt.Errorf("unknown compass %q", s)
}

func (c Compass) String() string {
	return string(c)
}

func (c Compass) IsHorizontal() bool {
	return c == East || c == West
}

func (c Compass) IsVertical() bool {
	return c == North || c == South
}

// IsPositive reports whether c points toward increasing x or y.
func (c Compass) IsPositive() bool {
	return c == East || c == South
}

func (c Compass) GetOpposite() Compass {
	switch c {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return c
	}
}

// Normal returns the outward unit normal of the face.
func (c Compass) Normal() (dx, dy float64) {
	switch c {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}
