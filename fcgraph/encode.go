package fcgraph

import (
	"bytes"

	"gopkg.in/yaml.v3"
	"oss.terrastruct.com/xdefer"
)

// Encode writes g as canonical YAML: nodes sorted by id, attributes that repeat
// the default left out.
func Encode(g *Graph) (_ []byte, err error) {
	defer xdefer.Errorf(&err, "failed to encode graph")

	out := &Graph{
		Nodes:  make(map[string]*Node, len(g.Nodes)),
		Edges:  g.Edges,
		Config: g.Config,
	}
	for id, n := range g.Nodes {
		if n == nil {
			out.Nodes[id] = &Node{}
			continue
		}
		n2 := *n
		if n2.ID == id {
			n2.ID = ""
		}
		if n2.Text == id {
			n2.Text = ""
		}
		if n2.Symbol == SymbolRectangle {
			n2.Symbol = ""
		}
		out.Nodes[id] = &n2
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
