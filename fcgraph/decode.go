package fcgraph

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
	"oss.terrastruct.com/xdefer"
)

// Decode parses a graph file. JSON input is accepted as YAML.
//
// nodes:
//   a: {text: Start, symbol: ellipse}
//   b: {text: Done?, symbol: rhombus}
// edges:
//   - {from: a, to: b, text: go}
func Decode(b []byte) (_ *Graph, err error) {
	defer xdefer.Errorf(&err, "failed to decode graph")

	g := NewGraph()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(g); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	for id, n := range g.Nodes {
		if n == nil {
			n = &Node{}
			g.Nodes[id] = n
		}
		if n.ID == "" {
			n.ID = id
		}
		if n.Text == "" {
			n.Text = n.ID
		}
	}
	g.InitIndices()
	return g, nil
}
