// Package fccli implements the flowchart command.
package fccli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"cdr.dev/slog"
	"github.com/spf13/pflag"
	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/flowchart/fcgraph"
	"oss.terrastruct.com/flowchart/fclib"
	"oss.terrastruct.com/flowchart/fctarget"
	"oss.terrastruct.com/flowchart/lib/log"
	"oss.terrastruct.com/flowchart/lib/version"
	"oss.terrastruct.com/flowchart/lib/xmain"
)

type flags struct {
	watch      *bool
	debug      *bool
	version    *bool
	configPath *string
	mode       *string
	edgeType   *string
	rowSpacing *float64
	colSpacing *float64
}

func Run(ctx context.Context, ms *xmain.State) (err error) {
	f, err := registerFlags(ms)
	if err != nil {
		return err
	}

	args, err := ms.Opts.Parse()
	if errors.Is(err, pflag.ErrHelp) {
		help(ms)
		return nil
	}
	if err != nil {
		return err
	}

	if *f.debug {
		ms.Env.Setenv("DEBUG", "1")
		ctx = log.Leveled(ctx, slog.LevelDebug)
	}

	if len(args) > 0 {
		switch args[0] {
		case "validate":
			return validateCmd(ctx, ms, args[1:])
		case "fmt":
			return fmtCmd(ctx, ms, args[1:])
		case "version":
			if len(args) > 1 {
				return xmain.UsageErrorf("version subcommand accepts no arguments")
			}
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
	}

	if len(args) == 0 {
		if *f.version {
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
		help(ms)
		return nil
	} else if len(args) >= 3 {
		return xmain.UsageErrorf("too many arguments passed")
	}

	inputPath := args[0]
	outputPath := "-"
	if len(args) >= 2 {
		outputPath = args[1]
	} else if inputPath != "-" {
		outputPath = renameExt(inputPath, ".layout.json")
	}

	flagCfg := f.config(ms)

	if *f.watch {
		if inputPath == "-" {
			return xmain.UsageErrorf("-w[atch] cannot be combined with reading input from stdin")
		}
		if outputPath == "-" {
			return xmain.UsageErrorf("-w[atch] cannot be combined with writing output to stdout")
		}
		w, err := newWatcher(ctx, ms, watcherOpts{
			inputPath:  inputPath,
			outputPath: outputPath,
			configPath: *f.configPath,
			flagCfg:    flagCfg,
		})
		if err != nil {
			return err
		}
		return w.run()
	}

	_, err = compile(ctx, ms, inputPath, outputPath, *f.configPath, flagCfg)
	if err != nil {
		return err
	}
	ms.Log.Success.Printf("successfully laid out %s to %s", ms.HumanPath(inputPath), ms.HumanPath(outputPath))
	return nil
}

func registerFlags(ms *xmain.State) (*flags, error) {
	f := &flags{}
	var err error

	f.watch, err = ms.Opts.Bool("FLOWCHART_WATCH", "watch", "w", false, "watch the input and config files and lay out again on every change.")
	if err != nil {
		return nil, err
	}
	f.debug, err = ms.Opts.Bool("DEBUG", "debug", "d", false, "print debug logs.")
	if err != nil {
		return nil, err
	}
	f.version, err = ms.Opts.Bool("", "version", "v", false, "get the version")
	if err != nil {
		return nil, err
	}
	f.configPath = ms.Opts.String("FLOWCHART_CONFIG", "config", "c", "", "TOML file with layout options. The graph's own config block and flags take precedence.")
	f.mode, err = ms.Opts.Enum("FLOWCHART_MODE", "mode", "m",
		[]string{string(fctarget.ModeStacked), string(fctarget.ModeFlowing)},
		"stacked puts rows top to bottom, flowing puts rows left to right")
	if err != nil {
		return nil, err
	}
	f.edgeType, err = ms.Opts.Enum("FLOWCHART_EDGE_TYPE", "edge-type", "e",
		[]string{string(fctarget.EdgeCross), string(fctarget.EdgeBent)},
		"cross draws straight lines, bent draws orthogonal segments")
	if err != nil {
		return nil, err
	}
	f.rowSpacing, err = ms.Opts.Float64("FLOWCHART_ROW_SPACING", "row-spacing", "", fctarget.DEFAULT_ROW_SPACING,
		"vertical gap between nodes: between rows when stacked, within a row when flowing")
	if err != nil {
		return nil, err
	}
	f.colSpacing, err = ms.Opts.Float64("FLOWCHART_COL_SPACING", "col-spacing", "", fctarget.DEFAULT_COL_SPACING,
		"horizontal gap between nodes: within a row when stacked, between rows when flowing")
	if err != nil {
		return nil, err
	}
	return f, nil
}

// config collects the options the user set explicitly through flags or environment.
func (f *flags) config(ms *xmain.State) *fctarget.Config {
	cfg := &fctarget.Config{}
	if *f.mode != "" {
		cfg.Mode = f.mode
	}
	if *f.edgeType != "" {
		cfg.EdgeType = f.edgeType
	}
	if ms.Opts.IsSet("row-spacing") {
		cfg.RowSpacing = f.rowSpacing
	}
	if ms.Opts.IsSet("col-spacing") {
		cfg.ColSpacing = f.colSpacing
	}
	return cfg
}

// compile runs one layout of inputPath and writes the JSON diagram to outputPath.
func compile(ctx context.Context, ms *xmain.State, inputPath, outputPath, configPath string, flagCfg *fctarget.Config) (_ *fctarget.Diagram, err error) {
	defer xdefer.Errorf(&err, "failed to lay out %s", ms.HumanPath(inputPath))

	input, err := ms.ReadPath(inputPath)
	if err != nil {
		return nil, err
	}
	g, err := fcgraph.Decode(input)
	if err != nil {
		return nil, err
	}

	cfg := &fctarget.Config{}
	if configPath != "" {
		b, err := ms.ReadPath(configPath)
		if err != nil {
			return nil, err
		}
		cfg, err = fctarget.ParseConfig(b)
		if err != nil {
			return nil, err
		}
		ms.Log.Debug.Printf("using config %s", ms.HumanPath(configPath))
	}
	cfg = cfg.Merge(g.Config).Merge(flagCfg)

	diagram, err := fclib.Layout(ctx, g, cfg)
	if err != nil {
		return nil, err
	}

	out, err := json.MarshalIndent(diagram, "", "  ")
	if err != nil {
		return nil, err
	}
	out = append(out, '\n')
	if err := ms.WritePath(outputPath, out); err != nil {
		return nil, err
	}
	return diagram, nil
}

func renameExt(fp string, newExt string) string {
	ext := filepath.Ext(fp)
	if ext == "" {
		return fp + newExt
	}
	return strings.TrimSuffix(fp, ext) + newExt
}
