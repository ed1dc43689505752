package fccli

import (
	"bytes"
	"context"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/flowchart/fcgraph"
	"oss.terrastruct.com/flowchart/lib/xmain"
)

func fmtCmd(ctx context.Context, ms *xmain.State, args []string) (err error) {
	defer xdefer.Errorf(&err, "failed to fmt")

	if len(args) == 0 {
		return xmain.UsageErrorf("fmt must be passed at least one file to be formatted")
	}

	for _, inputPath := range args {
		input, err := ms.ReadPath(inputPath)
		if err != nil {
			return err
		}
		g, err := fcgraph.Decode(input)
		if err != nil {
			return err
		}
		output, err := fcgraph.Encode(g)
		if err != nil {
			return err
		}
		if !bytes.Equal(output, input) {
			if err := ms.WritePath(inputPath, output); err != nil {
				return err
			}
			ms.Log.Info.Printf("formatted %s", ms.HumanPath(inputPath))
		}
	}
	return nil
}
