package fcgraph

import (
	"fmt"

	"oss.terrastruct.com/flowchart/fctarget"
)

type Graph struct {
	Nodes map[string]*Node `yaml:"nodes"`
	// Edge order is significant: earlier edges decide the rows of the nodes they reach first.
	Edges []*Edge `yaml:"edges"`

	Config *fctarget.Config `yaml:"config,omitempty"`
}

func NewGraph() *Graph {
	return &Graph{
		Nodes: make(map[string]*Node),
	}
}

type Symbol string

const (
	SymbolRectangle Symbol = "rectangle"
	SymbolRhombus   Symbol = "rhombus"
	SymbolEllipse   Symbol = "ellipse"
)

func (s Symbol) IsValid() bool {
	switch s {
	case "", SymbolRectangle, SymbolRhombus, SymbolEllipse:
		return true
	}
	return false
}

// Normalize maps the empty symbol to rectangle.
func (s Symbol) Normalize() Symbol {
	if s == "" {
		return SymbolRectangle
	}
	return s
}

type Node struct {
	ID   string `yaml:"id,omitempty"`
	Text string `yaml:"text,omitempty"`

	// nil means unset, which is distinct from 0
	Width  *float64 `yaml:"width,omitempty"`
	Height *float64 `yaml:"height,omitempty"`
	X      *float64 `yaml:"x,omitempty"`
	Y      *float64 `yaml:"y,omitempty"`

	Symbol  Symbol `yaml:"symbol,omitempty"`
	BgColor string `yaml:"bgcolor,omitempty"`
}

type Edge struct {
	// Index distinguishes edges with the same endpoints, in input order.
	Index int `yaml:"-"`

	From string `yaml:"from"`
	To   string `yaml:"to"`

	Text     string `yaml:"text,omitempty"`
	Color    string `yaml:"color,omitempty"`
	FontSize *int   `yaml:"fontSize,omitempty"`
	Marker   string `yaml:"marker,omitempty"`
}

func (e *Edge) AbsID() string {
	return fmt.Sprintf("(%s -> %s)[%d]", e.From, e.To, e.Index)
}

func (e *Edge) IsCircular() bool {
	return e.From == e.To
}

// AddNode adds or replaces the node with n.ID.
func (g *Graph) AddNode(n *Node) *Node {
	if g.Nodes == nil {
		g.Nodes = make(map[string]*Node)
	}
	g.Nodes[n.ID] = n
	return n
}

// Connect appends an edge from -> to, creating plain nodes for unknown ids.
func (g *Graph) Connect(from, to string) *Edge {
	for _, id := range []string{from, to} {
		if _, ok := g.Nodes[id]; !ok {
			g.AddNode(&Node{ID: id, Text: id})
		}
	}
	e := &Edge{
		From: from,
		To:   to,
	}
	e.initIndex(g.Edges)
	g.Edges = append(g.Edges, e)
	return e
}

func (e *Edge) initIndex(edges []*Edge) {
	e.Index = 0
	for _, e2 := range edges {
		if e2 == e {
			break
		}
		if e.From == e2.From && e.To == e2.To {
			e.Index++
		}
	}
}

// InitIndices recomputes Index for every edge.
func (g *Graph) InitIndices() {
	for _, e := range g.Edges {
		if e != nil {
			e.initIndex(g.Edges)
		}
	}
}
