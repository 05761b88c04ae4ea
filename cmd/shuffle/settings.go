package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/shuffle/internal/config"
	"github.com/gorewood/shuffle/internal/format"
	"github.com/gorewood/shuffle/internal/output"
	"github.com/gorewood/shuffle/internal/transform"
)

// newPrinter builds the printer for cmd, honoring --json and --color.
func newPrinter(cmd *cobra.Command) (*output.Printer, error) {
	out := cmd.OutOrStdout()
	mode, err := output.ParseColorMode(stringFlag(cmd, "color"))
	isTTY := output.ResolveColorMode(mode, output.IsTTY(out))
	printer := output.NewPrinter(out, isJSONMode(cmd), isTTY).WithStderr(cmd.ErrOrStderr())
	if err != nil {
		printer.Error(err)
		return nil, err
	}
	return printer, nil
}

// stringFlag reads a string flag from cmd or its persistent parents.
func stringFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// transformFlags holds the flags shared by transform and export.
type transformFlags struct {
	format          string
	preserveMargins bool
	width           float64
	fontSize        float64
	padding         float64
	compact         bool
	measure         string
	advance         float64
	font            string
}

func (f *transformFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.format, "format", "f", "", "Output format: markdown, latex, json, json-separated or html")
	flags.BoolVar(&f.preserveMargins, "preserve-margins", false, "Re-wrap lines to the editor width")
	flags.Float64Var(&f.width, "width", 0, "Editor width in pixels")
	flags.Float64Var(&f.fontSize, "font-size", 0, "Font size in pixels (default 16)")
	flags.Float64Var(&f.padding, "padding", 0, "Total horizontal padding in pixels")
	flags.BoolVar(&f.compact, "compact", false, "Emit JSON without indentation")
	flags.StringVar(&f.measure, "measure", "", "Text measurer: mono, truetype or pdf")
	flags.Float64Var(&f.advance, "advance", 0, "Monospace glyph width as a fraction of the font size")
	flags.StringVar(&f.font, "font", "", "TrueType font file (truetype) or core font family (pdf)")
}

// loadConfig reads the config file and SHUFFLE_* variables, then applies
// every flag the user set. The format flag is kept out of validation so
// unknown formats can pass through with a warning.
func (f *transformFlags) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(stringFlag(cmd, "config"))
	if err != nil {
		return cfg, output.NewUserErrorWithCause(err.Error(), err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, output.NewUserErrorWithCause("environment: "+err.Error(), err)
	}

	changed := cmd.Flags().Changed
	if changed("preserve-margins") {
		cfg.PreserveMargins = f.preserveMargins
	}
	if changed("width") {
		cfg.Width = f.width
	}
	if changed("font-size") {
		cfg.FontSize = f.fontSize
	}
	if changed("padding") {
		cfg.Padding = f.padding
	}
	if changed("compact") {
		cfg.Compact = f.compact
	}
	if changed("measure") {
		cfg.Measure = f.measure
	}
	if changed("advance") {
		cfg.Advance = f.advance
	}
	if changed("font") {
		cfg.Font = f.font
	}

	if err := cfg.Validate(); err != nil {
		return cfg, output.NewUserErrorWithCause(err.Error(), err)
	}
	return cfg, nil
}

// request builds the base transform request from config, environment and flags.
func (f *transformFlags) request(cmd *cobra.Command, printer *output.Printer) (transform.Request, error) {
	cfg, err := f.loadConfig(cmd)
	if err != nil {
		return transform.Request{}, err
	}

	req, err := cfg.Request()
	if err != nil {
		return transform.Request{}, output.NewUserErrorWithCause(err.Error(), err)
	}

	if cmd.Flags().Changed("format") {
		kind, ok := format.ParseKind(f.format)
		if !ok {
			printer.Warn("unknown format %q, writing normalized text unchanged", f.format)
		}
		req.Format = kind
	}
	return req, nil
}

// pinFlags reapplies explicit width and font size flags after an entry's
// own preferences were merged into req.
func (f *transformFlags) pinFlags(cmd *cobra.Command, req transform.Request) transform.Request {
	if cmd.Flags().Changed("width") {
		req.RenderWidth = f.width
	}
	if cmd.Flags().Changed("font-size") {
		req.FontSize = f.fontSize
	}
	return req
}

// fail prints err and returns it.
func fail(printer *output.Printer, err error) error {
	printer.Error(err)
	return err
}
