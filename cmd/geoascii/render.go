package geoascii

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/arthur-debert/geoascii/pkg/config"
	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/arthur-debert/geoascii/pkg/geom"
	"github.com/arthur-debert/geoascii/pkg/grid"
	"github.com/arthur-debert/geoascii/pkg/logging"
	"github.com/arthur-debert/geoascii/pkg/render"
	"github.com/arthur-debert/geoascii/pkg/source"
	"github.com/arthur-debert/geoascii/pkg/style"
	"github.com/arthur-debert/geoascii/pkg/ui"
	"github.com/spf13/cobra"
)

// renderFlags holds the root command's own flags. Width, all-touched,
// prompt and properties reach the run through the loaded configuration.
type renderFlags struct {
	outfile    string
	width      int
	iterate    bool
	fill       string
	chars      []string
	allTouched bool
	crs        []string
	noPrompt   bool
	properties string
	bbox       string
}

// splitProperties parses NAME,NAME,... keeping %all as a single entry
func splitProperties(v string) []string {
	if v == render.AllProperties {
		return []string{v}
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// renderRun is one invocation of the root command
type renderRun struct {
	cfg   *config.Config
	flags *renderFlags
	in    io.Reader
	out   io.Writer

	chars  style.CharMap
	fill   style.Assignment
	bbox   *geom.BBox
	styled bool
}

func runRender(cmd *cobra.Command, cfg *config.Config, flags *renderFlags, args []string) (err error) {
	logger := logging.GetLogger("cli")

	if flags.outfile == stdoutPath {
		flags.outfile = ""
	}
	out := cmd.OutOrStdout()
	if flags.outfile != "" {
		f, err := os.Create(flags.outfile)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, "cannot create `%s'", flags.outfile).
				WithDetail("outfile", flags.outfile)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		out = f
	}

	r := &renderRun{cfg: cfg, flags: flags, in: cmd.InOrStdin(), out: out}
	if err := r.prepare(); err != nil {
		return err
	}

	inputs, err := openInputs(args, r.in, flags.crs)
	if err != nil {
		return err
	}
	logger.Info().Int("layers", len(inputs)).Bool("iterate", flags.iterate).Msg("rendering")

	if flags.iterate {
		return r.iterate(inputs, args)
	}
	return r.renderLayers(inputs)
}

// stdoutPath is the outfile value meaning stdout
const stdoutPath = "-"

// prepare validates the flags that do not need the inputs
func (r *renderRun) prepare() error {
	chars, err := parseCharSpecs("char", r.flags.chars)
	if err != nil {
		return err
	}
	r.chars = chars

	fillValue := r.cfg.Render.Fill
	if r.flags.fill != "" {
		fillValue = r.flags.fill
	}
	fills, err := parseCharSpecs("fill", []string{fillValue})
	if err != nil {
		return err
	}
	r.fill = fills[0]

	if r.bbox, err = parseBBoxFlag(r.flags.bbox); err != nil {
		return err
	}

	format := ui.FromColorMode(r.cfg.Output.Color)
	r.styled = ui.Resolve(format, r.out) == ui.FormatTerminal
	return nil
}

// defaultChar is the configured character for a lone layer
func (r *renderRun) defaultChar() (style.CharMap, error) {
	ch, err := grid.ValidateChar("char", r.cfg.Render.Char)
	if err != nil {
		return nil, err
	}
	return style.CharMap{{Char: ch}}, nil
}

// styleMap merges the layer and fill styles, or nothing when output is plain
func (r *renderRun) styleMap(chars style.CharMap) (style.Map, error) {
	if !r.styled {
		return nil, nil
	}
	all := append(style.CharMap{}, chars...)
	all = append(all, r.fill)
	return all.StyleMap()
}

// renderLayers draws every layer against one extent and stacks them
func (r *renderRun) renderLayers(inputs []inputLayer) error {
	n := len(inputs)
	chars := r.chars
	var err error
	switch {
	case len(chars) == 0 && n == 1:
		chars, err = r.defaultChar()
	case len(chars) == 0:
		chars, err = style.AutoCharMap(n)
	case len(chars) != n:
		err = errors.Newf(errors.ErrLayerMismatch, MsgErrCharCount, len(chars), n).
			WithDetail("chars", len(chars)).
			WithDetail("layers", n)
	}
	if err != nil {
		return err
	}
	if err := checkFillCollision(r.fill.Char, chars); err != nil {
		return err
	}
	styles, err := r.styleMap(chars)
	if err != nil {
		return err
	}
	logger := logging.GetLogger("cli")
	for i, in := range inputs {
		logger.Debug().Str("layer", in.Name).Str("char", string(chars[i].Char)).Str("style", chars[i].Style).Msg("layer assignment")
	}

	var rendered string
	if n == 1 {
		rendered, err = render.Render(inputs[0].Source, render.Options{
			Width:      r.cfg.Render.Width,
			Fill:       string(r.fill.Char),
			Char:       string(chars[0].Char),
			AllTouched: r.cfg.Render.AllTouched,
			BBox:       r.bbox,
		})
	} else {
		layers := make([]render.LayerChar, n)
		for i, in := range inputs {
			layers[i] = render.LayerChar{Source: in.Source, Char: string(chars[i].Char)}
		}
		rendered, err = render.RenderMultiple(layers, render.MultiOptions{
			Width:      r.cfg.Render.Width,
			Fill:       string(r.fill.Char),
			AllTouched: r.cfg.Render.AllTouched,
			BBox:       r.bbox,
		})
	}
	if err != nil {
		return err
	}

	if len(styles) > 0 {
		rendered = style.Style(rendered, styles)
	}
	_, err = fmt.Fprintln(r.out, rendered)
	return err
}

// iterate renders the features of a single layer one page at a time
func (r *renderRun) iterate(inputs []inputLayer, args []string) error {
	if len(inputs) != 1 {
		return errors.Newf(errors.ErrLayerMismatch, MsgErrIterateLayers, len(inputs)).
			WithDetail("layers", len(inputs))
	}
	if len(r.chars) > 1 {
		return errors.Newf(errors.ErrInvalidInput, MsgErrIterateArgs, "char").
			WithDetail("flag", "char")
	}
	if len(r.flags.crs) > 1 {
		return errors.Newf(errors.ErrInvalidInput, MsgErrIterateArgs, "crs").
			WithDetail("flag", "crs")
	}

	chars := r.chars
	if len(chars) == 0 {
		var err error
		if chars, err = r.defaultChar(); err != nil {
			return err
		}
	}
	if err := checkFillCollision(r.fill.Char, chars); err != nil {
		return err
	}
	styles, err := r.styleMap(chars)
	if err != nil {
		return err
	}

	input := inputs[0]
	opts := render.PaginateOptions{
		Render: render.Options{
			Width:      r.cfg.Render.Width,
			Fill:       string(r.fill.Char),
			Char:       string(chars[0].Char),
			AllTouched: r.cfg.Render.AllTouched,
			BBox:       r.bbox,
		},
		Properties: r.cfg.Paginate.Properties,
		Style:      styles,
	}

	prompter := r.prompter(args)
	n := 0
	for page, err := range render.Paginate(input.bounded(r.bbox), opts) {
		if err != nil {
			return err
		}
		n++
		if _, err := fmt.Fprintln(r.out, page); err != nil {
			return err
		}
		more, err := prompter.Next()
		if err != nil {
			return err
		}
		if !more {
			logger := logging.GetLogger("cli")
			logger.Debug().Int("pages", n).Msg("stopped at prompt")
			return nil
		}
	}
	return nil
}

// prompter pauses between features only for an interactive stdin that is
// not also the data source
func (r *renderRun) prompter(args []string) ui.Prompter {
	if slices.Contains(args, source.Stdin) {
		return ui.NoPrompt{}
	}
	stdin, _ := r.in.(*os.File)
	if !ui.ShouldPrompt(r.cfg.Paginate.Prompt, r.flags.outfile, stdin) {
		return ui.NoPrompt{}
	}
	return ui.NewLinePrompter(r.in, r.out, ui.FromColorMode(r.cfg.Output.Color))
}
