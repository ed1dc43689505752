// Package fclib lays out a flowchart graph end to end.
package fclib

import (
	"context"

	"cdr.dev/slog"
	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/flowchart/fcedge"
	"oss.terrastruct.com/flowchart/fcgraph"
	"oss.terrastruct.com/flowchart/fclayout"
	"oss.terrastruct.com/flowchart/fctarget"
	"oss.terrastruct.com/flowchart/lib/log"
)

// Layout validates g and computes a diagram for it.
// Fields set in cfg take precedence over the graph's own config block.
func Layout(ctx context.Context, g *fcgraph.Graph, cfg *fctarget.Config) (_ *fctarget.Diagram, err error) {
	defer xdefer.Errorf(&err, "failed to layout")

	if err := fcgraph.Validate(g); err != nil {
		return nil, err
	}
	opts, err := g.Config.Merge(cfg).Resolve()
	if err != nil {
		return nil, err
	}
	ctx = log.Named(ctx, "layout")
	ctx = log.WithFields(ctx, slog.F("mode", opts.Mode), slog.F("edgeType", opts.EdgeType))

	levels := fclayout.Level(g.Edges)
	log.Debug(ctx, "leveled", slog.F("nodes", len(levels.Nodes)), slog.F("rows", levels.RowCount()))

	table, err := fclayout.Pack(levels, g.Nodes, opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	placed := fclayout.Position(table, opts)
	bounds := fclayout.ComputeBounds(placed.Nodes, opts)
	log.Debug(ctx, "positioned",
		slog.F("maxRowWidth", table.MaxRowWidth),
		slog.F("maxRowHeight", table.MaxRowHeight),
		slog.F("bounds", bounds),
	)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	diagram := fctarget.NewDiagram(opts)
	diagram.Bounds = bounds
	for _, row := range table.Rows {
		diagram.Rows = append(diagram.Rows, toRow(row))
	}
	for _, n := range placed.Nodes {
		node, err := toNode(n, levels)
		if err != nil {
			return nil, err
		}
		diagram.Nodes = append(diagram.Nodes, node)
	}

	for _, e := range g.Edges {
		from, _ := placed.Lookup(e.From)
		to, _ := placed.Lookup(e.To)
		se, err := fcedge.Shape(e, from, to, opts.Mode)
		if err != nil {
			return nil, err
		}
		path, err := fcedge.BuildPath(se, opts)
		if err != nil {
			return nil, err
		}
		edge, err := toEdge(se, path, opts)
		if err != nil {
			return nil, err
		}
		diagram.Edges = append(diagram.Edges, edge)
	}
	log.Debug(ctx, "shaped edges", slog.F("edges", len(diagram.Edges)))

	return diagram, nil
}
