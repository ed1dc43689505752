package fctarget

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"oss.terrastruct.com/flowchart/lib/go2"
)

const (
	DEFAULT_NODE_WIDTH    = 150.
	DEFAULT_NODE_HEIGHT   = 60.
	DEFAULT_ROW_SPACING   = 50.
	DEFAULT_COL_SPACING   = 40.
	DEFAULT_WIDTH_MARGIN  = 20.
	DEFAULT_HEIGHT_MARGIN = 20.
	DEFAULT_FONT_SIZE     = 14
	DEFAULT_MIN_EDGE_SIZE = 20.
	DEFAULT_DETOUR_SIZE   = 30.

	// a rhombus inscribing the same label as a rectangle needs more room
	DEFAULT_RHOMBUS_RATIO = 1.5
	DEFAULT_ARC_RATIO     = 2.
)

type Mode string

const (
	// rows flow top to bottom, nodes in a row flow left to right
	ModeStacked Mode = "stacked"
	// rows flow left to right, nodes in a row flow top to bottom
	ModeFlowing Mode = "flowing"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeStacked, ModeFlowing:
		return m, nil
	}
	return "", fmt.Errorf(`unknown layout mode %q, expected "stacked" or "flowing"`, s)
}

type EdgeType string

const (
	EdgeCross EdgeType = "cross"
	EdgeBent  EdgeType = "bent"
)

func ParseEdgeType(s string) (EdgeType, error) {
	switch et := EdgeType(s); et {
	case EdgeCross, EdgeBent:
		return et, nil
	}
	return "", fmt.Errorf(`unknown edge type %q, expected "cross" or "bent"`, s)
}

// Config is a partial set of layout options. Unset fields fall back to defaults.
// Zero or negative sizes are accepted and produce degenerate geometry.
type Config struct {
	Mode     *string `json:"mode,omitempty" yaml:"mode,omitempty" toml:"mode"`
	EdgeType *string `json:"edgeType,omitempty" yaml:"edgeType,omitempty" toml:"edge_type"`

	NodeWidth    *float64 `json:"nodeWidth,omitempty" yaml:"nodeWidth,omitempty" toml:"node_width"`
	NodeHeight   *float64 `json:"nodeHeight,omitempty" yaml:"nodeHeight,omitempty" toml:"node_height"`
	RowSpacing   *float64 `json:"rowSpacing,omitempty" yaml:"rowSpacing,omitempty" toml:"row_spacing"`
	ColSpacing   *float64 `json:"colSpacing,omitempty" yaml:"colSpacing,omitempty" toml:"col_spacing"`
	WidthMargin  *float64 `json:"widthMargin,omitempty" yaml:"widthMargin,omitempty" toml:"width_margin"`
	HeightMargin *float64 `json:"heightMargin,omitempty" yaml:"heightMargin,omitempty" toml:"height_margin"`
	FontSize     *int     `json:"fontSize,omitempty" yaml:"fontSize,omitempty" toml:"font_size"`
	MinEdgeSize  *float64 `json:"minEdgeSize,omitempty" yaml:"minEdgeSize,omitempty" toml:"min_edge_size"`
	DetourSize   *float64 `json:"detourSize,omitempty" yaml:"detourSize,omitempty" toml:"detour_size"`
	RhombusRatio *float64 `json:"rhombusRatio,omitempty" yaml:"rhombusRatio,omitempty" toml:"rhombus_ratio"`
	ArcSizeRatio *float64 `json:"arcSizeRatio,omitempty" yaml:"arcSizeRatio,omitempty" toml:"arc_size_ratio"`
}

// LayoutOpts is a fully resolved Config.
type LayoutOpts struct {
	Mode     Mode
	EdgeType EdgeType

	NodeWidth    float64
	NodeHeight   float64
	RowSpacing   float64
	ColSpacing   float64
	WidthMargin  float64
	HeightMargin float64
	FontSize     int
	MinEdgeSize  float64
	DetourSize   float64
	RhombusRatio float64
	ArcSizeRatio float64
}

func DefaultConfig() *Config {
	return &Config{
		Mode:         go2.Pointer(string(ModeStacked)),
		EdgeType:     go2.Pointer(string(EdgeBent)),
		NodeWidth:    go2.Pointer(DEFAULT_NODE_WIDTH),
		NodeHeight:   go2.Pointer(DEFAULT_NODE_HEIGHT),
		RowSpacing:   go2.Pointer(DEFAULT_ROW_SPACING),
		ColSpacing:   go2.Pointer(DEFAULT_COL_SPACING),
		WidthMargin:  go2.Pointer(DEFAULT_WIDTH_MARGIN),
		HeightMargin: go2.Pointer(DEFAULT_HEIGHT_MARGIN),
		FontSize:     go2.Pointer(DEFAULT_FONT_SIZE),
		MinEdgeSize:  go2.Pointer(DEFAULT_MIN_EDGE_SIZE),
		DetourSize:   go2.Pointer(DEFAULT_DETOUR_SIZE),
		RhombusRatio: go2.Pointer(DEFAULT_RHOMBUS_RATIO),
		ArcSizeRatio: go2.Pointer(DEFAULT_ARC_RATIO),
	}
}

// Merge returns a copy of c with every field set in over taking precedence.
func (c *Config) Merge(over *Config) *Config {
	out := &Config{}
	if c != nil {
		*out = *c
	}
	if over == nil {
		return out
	}
	if over.Mode != nil {
		out.Mode = over.Mode
	}
	if over.EdgeType != nil {
		out.EdgeType = over.EdgeType
	}
	if over.NodeWidth != nil {
		out.NodeWidth = over.NodeWidth
	}
	if over.NodeHeight != nil {
		out.NodeHeight = over.NodeHeight
	}
	if over.RowSpacing != nil {
		out.RowSpacing = over.RowSpacing
	}
	if over.ColSpacing != nil {
		out.ColSpacing = over.ColSpacing
	}
	if over.WidthMargin != nil {
		out.WidthMargin = over.WidthMargin
	}
	if over.HeightMargin != nil {
		out.HeightMargin = over.HeightMargin
	}
	if over.FontSize != nil {
		out.FontSize = over.FontSize
	}
	if over.MinEdgeSize != nil {
		out.MinEdgeSize = over.MinEdgeSize
	}
	if over.DetourSize != nil {
		out.DetourSize = over.DetourSize
	}
	if over.RhombusRatio != nil {
		out.RhombusRatio = over.RhombusRatio
	}
	if over.ArcSizeRatio != nil {
		out.ArcSizeRatio = over.ArcSizeRatio
	}
	return out
}

// Resolve merges c over the defaults and validates the enumerated options.
func (c *Config) Resolve() (*LayoutOpts, error) {
	full := DefaultConfig().Merge(c)

	mode, err := ParseMode(*full.Mode)
	if err != nil {
		return nil, err
	}
	edgeType, err := ParseEdgeType(*full.EdgeType)
	if err != nil {
		return nil, err
	}

	return &LayoutOpts{
		Mode:         mode,
		EdgeType:     edgeType,
		NodeWidth:    *full.NodeWidth,
		NodeHeight:   *full.NodeHeight,
		RowSpacing:   *full.RowSpacing,
		ColSpacing:   *full.ColSpacing,
		WidthMargin:  *full.WidthMargin,
		HeightMargin: *full.HeightMargin,
		FontSize:     *full.FontSize,
		MinEdgeSize:  *full.MinEdgeSize,
		DetourSize:   *full.DetourSize,
		RhombusRatio: *full.RhombusRatio,
		ArcSizeRatio: *full.ArcSizeRatio,
	}, nil
}

// ParseConfig decodes a TOML config. Unknown keys are rejected so typos don't silently
// fall back to defaults.
func ParseConfig(b []byte) (*Config, error) {
	var c Config
	md, err := toml.Decode(string(b), &c)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("failed to parse config: unknown key %q", undecoded[0].String())
	}
	return &c, nil
}
