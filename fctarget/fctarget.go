package fctarget

import (
	"encoding/json"
	"fmt"
	"hash/fnv"

	"oss.terrastruct.com/flowchart/lib/geo"
)

type Diagram struct {
	Mode     Mode     `json:"mode"`
	EdgeType EdgeType `json:"edgeType"`

	Nodes  []Node `json:"nodes"`
	Rows   []Row  `json:"rows"`
	Bounds Bounds `json:"bounds"`
	Edges  []Edge `json:"edges"`
}

func NewDiagram(opts *LayoutOpts) *Diagram {
	return &Diagram{
		Mode:     opts.Mode,
		EdgeType: opts.EdgeType,
		Nodes:    []Node{},
		Rows:     []Row{},
		Edges:    []Edge{},
	}
}

func (diagram Diagram) Bytes() ([]byte, error) {
	return json.Marshal(diagram)
}

func (diagram Diagram) HashID() (string, error) {
	bytes, err := diagram.Bytes()
	if err != nil {
		return "", err
	}
	h := fnv.New32a()
	h.Write(bytes)
	// CSS names can't start with numbers, so prepend a little something
	return fmt.Sprintf("fc-%d", h.Sum32()), nil
}

func (diagram Diagram) NodeByID(id string) *Node {
	for i := range diagram.Nodes {
		if diagram.Nodes[i].ID == id {
			return &diagram.Nodes[i]
		}
	}
	return nil
}

type Node struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Symbol  string `json:"symbol"`
	BgColor string `json:"bgcolor,omitempty"`

	Pos    geo.Point `json:"pos"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`

	Row    int `json:"row"`
	Column int `json:"column"`

	// ids of the nodes this one has edges to and from, sorted
	Successors   []string `json:"successors,omitempty"`
	Predecessors []string `json:"predecessors,omitempty"`
}

func (n Node) Box() *geo.Box {
	return geo.NewBox(n.Pos.Copy(), n.Width, n.Height)
}

type Row struct {
	Index   int      `json:"index"`
	NodeIDs []string `json:"nodes"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
}

type Bounds struct {
	X geo.Range `json:"x"`
	Y geo.Range `json:"y"`
}

func (b Bounds) Width() float64 {
	return b.X.Size()
}

func (b Bounds) Height() float64 {
	return b.Y.Size()
}

type Edge struct {
	ID string `json:"id"`

	From   string `json:"from"`
	To     string `json:"to"`
	Marker Marker `json:"marker"`

	Text     string `json:"text,omitempty"`
	Color    string `json:"color,omitempty"`
	FontSize int    `json:"fontSize"`

	FromPos    geo.Point   `json:"fromPos"`
	ToPos      geo.Point   `json:"toPos"`
	FromAnchor geo.Compass `json:"fromAnchor"`
	ToAnchor   geo.Compass `json:"toAnchor"`
	Direction  geo.Compass `json:"direction"`
	Side       geo.Compass `json:"side"`
	IsCircular bool        `json:"isCircular"`

	Path Path `json:"path"`
}

type PathKind string

const (
	PathStraight     PathKind = "straight"
	PathBentForward  PathKind = "bent-forward"
	PathBentBackward PathKind = "bent-backward"
	PathCircular     PathKind = "circular"
)

// Path is an edge's drawing in its own coordinate box.
// The box's top left in diagram space is Origin - (Padding, Padding); Start, End and
// Command are relative to that corner. Route is in diagram space.
type Path struct {
	Kind    PathKind `json:"kind"`
	Command string   `json:"command"`

	Origin  geo.Point `json:"origin"`
	Padding float64   `json:"padding"`
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`

	Start geo.Point `json:"start"`
	End   geo.Point `json:"end"`

	Route         []*geo.Point `json:"route"`
	LabelPosition *geo.Point   `json:"labelPosition,omitempty"`
}

// TopLeft is the diagram-space corner Command is drawn relative to.
func (p Path) TopLeft() *geo.Point {
	return p.Origin.Add(-p.Padding, -p.Padding)
}

type Marker string

const (
	NoMarker       Marker = "none"
	ArrowMarker    Marker = "arrow"
	TriangleMarker Marker = "triangle"
	CircleMarker   Marker = "circle"
	DiamondMarker  Marker = "diamond"

	DefaultMarker Marker = ArrowMarker
)

// valid values for edge markers
var Markers = map[string]struct{}{
	string(NoMarker):       {},
	string(ArrowMarker):    {},
	string(TriangleMarker): {},
	string(CircleMarker):   {},
	string(DiamondMarker):  {},
}

func IsMarker(s string) bool {
	if s == "" {
		return true
	}
	_, ok := Markers[s]
	return ok
}

func ToMarker(s string) Marker {
	if _, ok := Markers[s]; ok {
		return Marker(s)
	}
	return DefaultMarker
}
