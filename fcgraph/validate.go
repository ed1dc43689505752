package fcgraph

import (
	"errors"
	"fmt"

	"github.com/mazznoer/csscolorparser"
	"go.uber.org/multierr"

	"oss.terrastruct.com/flowchart/fctarget"
	"oss.terrastruct.com/flowchart/lib/go2"
)

var (
	ErrUnknownNode      = errors.New("unknown node")
	ErrIsolatedNode     = errors.New("node has no edges")
	ErrInvalidAttribute = errors.New("invalid attribute")
)

// Validate reports every structural problem in g. Problems are listed in node id order,
// then edge order.
func Validate(g *Graph) error {
	if g == nil {
		return errors.New("nil graph")
	}

	var errs error
	touched := make(map[string]struct{}, len(g.Nodes))

	for _, id := range go2.SortedKeys(g.Nodes) {
		n := g.Nodes[id]
		if n == nil {
			errs = multierr.Append(errs, fmt.Errorf("node %q: %w: missing definition", id, ErrInvalidAttribute))
			continue
		}
		if n.ID == "" {
			errs = multierr.Append(errs, fmt.Errorf("node %q: %w: empty id", id, ErrInvalidAttribute))
		} else if n.ID != id {
			errs = multierr.Append(errs, fmt.Errorf("node %q: %w: id %q does not match its key", id, ErrInvalidAttribute, n.ID))
		}
		if !n.Symbol.IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("node %q: %w: unknown symbol %q", id, ErrInvalidAttribute, n.Symbol))
		}
		if n.BgColor != "" {
			if _, err := NormalizeColor(n.BgColor); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("node %q: %w: bgcolor: %v", id, ErrInvalidAttribute, err))
			}
		}
	}

	for i, e := range g.Edges {
		if e == nil {
			errs = multierr.Append(errs, fmt.Errorf("edge %d: %w: missing definition", i, ErrInvalidAttribute))
			continue
		}
		for _, id := range []string{e.From, e.To} {
			if _, ok := g.Nodes[id]; !ok {
				errs = multierr.Append(errs, fmt.Errorf("edge %s: %w %q", e.AbsID(), ErrUnknownNode, id))
			}
			touched[id] = struct{}{}
		}
		if !fctarget.IsMarker(e.Marker) {
			errs = multierr.Append(errs, fmt.Errorf("edge %s: %w: unknown marker %q", e.AbsID(), ErrInvalidAttribute, e.Marker))
		}
		if e.Color != "" {
			if _, err := NormalizeColor(e.Color); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("edge %s: %w: color: %v", e.AbsID(), ErrInvalidAttribute, err))
			}
		}
		if e.FontSize != nil && *e.FontSize <= 0 {
			errs = multierr.Append(errs, fmt.Errorf("edge %s: %w: fontSize must be positive, got %d", e.AbsID(), ErrInvalidAttribute, *e.FontSize))
		}
	}

	for _, id := range go2.SortedKeys(g.Nodes) {
		if _, ok := touched[id]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("node %q: %w", id, ErrIsolatedNode))
		}
	}

	return errs
}

// NormalizeColor parses any CSS color and returns it as hex.
func NormalizeColor(s string) (string, error) {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return "", err
	}
	return c.HexString(), nil
}
