package geoascii

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Render vector geometry as character art"
	MsgLayersShort     = "Describe the layers of one or more datasources"
	MsgConfigShort     = "Print the effective configuration"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Write the geoascii man page to stdout"

	// Status messages
	MsgNoLayers = "No layers found."

	// Error messages
	MsgErrNoInput        = "no INFILE given"
	MsgErrStdinTwice     = "stdin can only be read once"
	MsgErrIterateLayers  = "can only iterate over a single layer - specify one INFILE, or INFILE,LAYER for multi-layer datasources (found %d layers)"
	MsgErrIterateArgs    = "can only iterate over 1 layer - --%s may be given only once"
	MsgErrCharCount      = "number of --char arguments must equal the number of layers being processed - found %d characters and %d layers; characters and colors are generated when none are supplied"
	MsgErrFillCollision  = "fill value `%c' also specified as a character - `--fill COLOR' selects the digit paired with that color, which may collide with a --char digit"
	MsgErrDuplicateChars = "all --%s values must be unique"
	MsgErrMixedSyntax    = "invalid syntax - all --%s values must use the same syntax, e.g. can't mix `+', `blue' and `+=blue'"
	MsgErrBBoxNoExtent   = "bbox file `%s' has no features"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig     = "Read configuration from this file instead of the user config"
	MsgFlagNoColor    = "Never write ANSI colors"
	MsgFlagOutfile    = "Write to an output file instead of stdout"
	MsgFlagWidth      = "Render geometry across N columns, each cell takes two (default from config, 40)"
	MsgFlagIterate    = "Iterate over input features and display each individually"
	MsgFlagFill       = "Character for non-geometry cells: CHAR, COLOR or CHAR=STYLE"
	MsgFlagChar       = "Character for geometry cells, once per layer: CHAR, COLOR or CHAR=STYLE"
	MsgFlagAllTouched = "Fill every cell a polygon touches instead of only cells whose center it covers"
	MsgFlagCRS        = "Label input layers with this CRS, once per layer; coordinates are not transformed"
	MsgFlagNoPrompt   = "Print all features without pausing in between"
	MsgFlagProps      = "When iterating, show these properties above each feature; %all shows every one"
	MsgFlagBBox       = "Render data within a bounding box: a datasource path or \"x_min y_min x_max y_max\""
	MsgFlagFormat     = "Output format: toml or yaml"
	MsgFlagDefaults   = "Print the commented defaults template instead of the effective configuration"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/layers-long.txt
	msgLayersLongRaw string
	MsgLayersLong    = strings.TrimSpace(msgLayersLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
