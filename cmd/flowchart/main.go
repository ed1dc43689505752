package main

import (
	"oss.terrastruct.com/flowchart/fccli"
	"oss.terrastruct.com/flowchart/lib/xmain"
)

func main() {
	xmain.Main(fccli.Run)
}
