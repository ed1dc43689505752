package geo

import "fmt"

// Range is a closed interval on one axis.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) Size() float64 {
	return r.Max - r.Min
}

func (r Range) Contains(v float64) bool {
	return r.Min <= v && v <= r.Max
}

// Inflate grows the range by margin on both ends
func (r Range) Inflate(margin float64) Range {
	return Range{Min: r.Min - margin, Max: r.Max + margin}
}

func (r Range) ToString() string {
	return fmt.Sprintf("[%v, %v]", r.Min, r.Max)
}
