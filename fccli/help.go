package fccli

import (
	"fmt"
	"path/filepath"

	"oss.terrastruct.com/flowchart/lib/version"
	"oss.terrastruct.com/flowchart/lib/xmain"
)

func help(ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, `%[1]s %[2]s
Usage:
  %[1]s [--watch=false] [--mode=stacked] [--edge-type=bent] file.yaml [file.layout.json]
  %[1]s validate file.yaml
  %[1]s fmt file.yaml ...

%[1]s lays out the flowchart in file.yaml (or file.json) and writes the positioned nodes
and edge paths as JSON. It defaults to file.layout.json if an output path is not provided.

Use - to have %[1]s read from stdin or write to stdout.

Flags:
%[3]s

Subcommands:
  %[1]s validate file.yaml - Reports every problem in file.yaml without laying it out
  %[1]s fmt file.yaml ... - Rewrites each file as canonical YAML
  %[1]s version - Print the version
`, filepath.Base(ms.Name), version.Version, ms.Opts.Defaults())
}
