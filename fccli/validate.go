package fccli

import (
	"context"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/flowchart/fcgraph"
	"oss.terrastruct.com/flowchart/lib/xmain"
)

func validateCmd(ctx context.Context, ms *xmain.State, args []string) (err error) {
	defer xdefer.Errorf(&err, "failed to validate")

	if len(args) == 0 {
		return xmain.UsageErrorf("validate must be passed an input file to be validated")
	}
	inputPath := args[0]

	input, err := ms.ReadPath(inputPath)
	if err != nil {
		return err
	}
	g, err := fcgraph.Decode(input)
	if err != nil {
		return err
	}
	if err := fcgraph.Validate(g); err != nil {
		return err
	}
	if _, err := g.Config.Resolve(); err != nil {
		return err
	}

	ms.Log.Success.Printf("%s is valid", ms.HumanPath(inputPath))
	return nil
}
