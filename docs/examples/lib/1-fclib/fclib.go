package main

import (
	"context"
	"os"
	"path/filepath"

	"oss.terrastruct.com/flowchart/fcgraph"
	"oss.terrastruct.com/flowchart/fclib"
	"oss.terrastruct.com/flowchart/lib/log"
)

// Remember to add if err != nil checks in production.
func main() {
	g := fcgraph.NewGraph()
	g.Connect("start", "check")
	g.Connect("check", "done").Text = "yes"
	g.Connect("check", "start").Text = "no"
	g.Nodes["check"].Symbol = fcgraph.SymbolRhombus

	diagram, _ := fclib.Layout(log.Stderr(context.Background()), g, nil)
	out, _ := diagram.Bytes()
	_ = os.WriteFile(filepath.Join("out.json"), out, 0600)
}
