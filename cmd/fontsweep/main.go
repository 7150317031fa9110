/*
Command fontsweep renders a test string at a sequence of font sizes into a
PNG image, in order to visually detect font rasterization regressions.

Usage:

	fontsweep [flags] FONT

FONT is a font file, the name of a packaged Go font (see -list), the name of
a system font or, if -fontconfig is set, a family name known to fontconfig.

By default "Hello World!" is drawn at 6–14pt and 16–20pt. Every line is
checked to be within the image; with -shape every line's width is checked
against the width HarfBuzz computes for it.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/npillmayer/fontsweep/backend/raster"
	"github.com/npillmayer/fontsweep/backend/report"
	"github.com/npillmayer/fontsweep/core"
	"github.com/npillmayer/fontsweep/core/font"
	"github.com/npillmayer/fontsweep/core/font/fontregistry"
	"github.com/npillmayer/fontsweep/core/locate/resources"
	"github.com/npillmayer/fontsweep/engine/shaping"
	"github.com/npillmayer/fontsweep/engine/sweep"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	xfont "golang.org/x/image/font"
)

// tracer traces with key 'fontsweep.cli'
func tracer() tracing.Trace {
	return tracing.Select("fontsweep.cli")
}

var traceKeys = []string{"cli", "fonts", "resources", "raster", "sweep", "glyphs", "report"}

// options are the command line settings of a sweep.
type options struct {
	fontname   string
	output     string
	htmlOutput string
	backend    string
	fixture    string
	sizes      string
	text       string
	dpi        float64
	width      int
	hinting    string
	strict     bool
	shape      bool
	fontconfig string
	timeout    time.Duration
}

func main() {
	initDisplay()

	// command line flags
	opts := options{}
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	list := flag.Bool("list", false, "List packaged fonts and exit")
	flag.StringVar(&opts.output, "o", "fontsweep.png", "Output PNG file")
	flag.StringVar(&opts.htmlOutput, "html", "", "Write an HTML report to this file")
	flag.StringVar(&opts.backend, "backend", raster.Backends[0],
		"Rasterizer ["+strings.Join(raster.Backends, "|")+"]")
	flag.StringVar(&opts.fixture, "fixture", "", "YAML file with text, sizes, margin, left, width, dpi")
	flag.StringVar(&opts.sizes, "sizes", "", "Font sizes in points, e.g. 6-14,16-20")
	flag.StringVar(&opts.text, "text", "", "Test string")
	flag.Float64Var(&opts.dpi, "dpi", 0, "Resolution (72 makes 1pt = 1px)")
	flag.IntVar(&opts.width, "width", 0, "Image width in pixels")
	flag.StringVar(&opts.hinting, "hinting", "full", "Glyph hinting [none|vertical|full]")
	flag.BoolVar(&opts.strict, "strict", false, "Fail for missing glyphs and clipped lines")
	flag.BoolVar(&opts.shape, "shape", false, "Check line widths against HarfBuzz shaping")
	flag.StringVar(&opts.fontconfig, "fontconfig", "", "Absolute path of the fc-list binary")
	flag.DurationVar(&opts.timeout, "timeout", 30*time.Second, "Time limit for locating the font")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] FONT\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	// set up logging
	if err := setupTracing(*tlevel); err != nil {
		fmt.Fprintf(os.Stderr, "error configuring tracing: %v\n", err)
		os.Exit(1)
	}
	if *list {
		for _, name := range font.PackagedFontNames() {
			fmt.Println(name)
		}
		return
	}
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Need a font file name")
		flag.Usage()
		os.Exit(1)
	}
	opts.fontname = flag.Arg(0)
	os.Exit(run(opts))
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setupTracing(level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace.fontsweep."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// run performs a sweep and returns the exit code of the program.
func run(opts options) int {
	conf := testconfig.Conf{
		"app-key":    "fontsweep",
		"fontconfig": opts.fontconfig,
	}
	if err := sweepFont(conf, opts); err != nil {
		tracer().Errorf("%v", err)
		fmt.Fprintln(os.Stderr, core.UserMessage(err))
		return 1
	}
	return 0
}

func sweepFont(conf schuko.Configuration, opts options) error {
	ctx := context.Background()
	promise := resources.ResolveFontAsync(conf, opts.fontname) // font lookup may search the file system
	fx, err := makeFixture(opts)
	if err != nil {
		return err
	}
	hinting, err := parseHinting(opts.hinting)
	if err != nil {
		return err
	}
	lookupCtx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()
	f, err := promise.Await(lookupCtx)
	if err != nil {
		return err
	}
	pterm.Info.Printfln("sweeping %s (%s) with %s", f.Fontname, f.Filepath, opts.backend)
	registry := fontregistry.GlobalRegistry()
	if hinting != xfont.HintingFull {
		registry = fontregistry.NewRegistry(hinting)
	}
	renderer, err := raster.New(opts.backend, f, raster.Options{
		DPI:      fx.DPI,
		Hinting:  hinting,
		Strict:   opts.strict,
		Registry: registry,
	})
	if err != nil {
		return err
	}
	result, err := sweep.Run(ctx, renderer, fx)
	if err != nil {
		return err
	}
	registry.LogFontList()
	if err = report.WritePNG(opts.output, result.Canvas); err != nil {
		return err
	}
	clipped := result.Clipped()
	for _, line := range clipped {
		pterm.Warning.Printfln("line at %dpt is clipped, bounding box is %v", line.Size, line.BBox)
	}
	var checks []shaping.Report
	if opts.shape {
		if checks, err = checkShaping(f, result); err != nil {
			return err
		}
	}
	if opts.htmlOutput != "" {
		if err = writeHTML(opts, f, result, checks); err != nil {
			return err
		}
	}
	b := result.Canvas.Bounds()
	pterm.Success.Printfln("wrote %s: %d lines, %d×%d pixels", opts.output, len(result.Lines), b.Dx(), b.Dy())
	if opts.strict && len(clipped) > 0 {
		return core.Error(core.EINVALID, "%d of %d lines are clipped", len(clipped), len(result.Lines))
	}
	return nil
}

// makeFixture loads the fixture and applies the command line overrides.
func makeFixture(opts options) (sweep.Fixture, error) {
	fx := sweep.DefaultFixture()
	var err error
	if opts.fixture != "" {
		if fx, err = sweep.LoadFixture(opts.fixture); err != nil {
			return fx, err
		}
	}
	if opts.sizes != "" {
		if fx.Sizes, err = sweep.ParseSizes(opts.sizes); err != nil {
			return fx, err
		}
	}
	if opts.text != "" {
		fx.Text = opts.text
	}
	if opts.dpi != 0 {
		fx.DPI = opts.dpi
	}
	if opts.width != 0 {
		fx.Width = opts.width
	}
	tracer().Debugf("fixture = %+v", fx)
	return fx, fx.Validate()
}

func parseHinting(h string) (xfont.Hinting, error) {
	switch strings.ToLower(h) {
	case "none":
		return xfont.HintingNone, nil
	case "vertical":
		return xfont.HintingVertical, nil
	case "full", "":
		return xfont.HintingFull, nil
	}
	return xfont.HintingNone, core.Error(core.EINVALID, "unknown hinting %q", h)
}

func checkShaping(f *font.ScalableFont, result *sweep.Result) ([]shaping.Report, error) {
	checker, err := shaping.NewChecker(f)
	if err != nil {
		return nil, err
	}
	checks := make([]shaping.Report, 0, len(result.Lines))
	table := pterm.TableData{{"size", "glyphs", "clusters", "width", "expected", "deviation"}}
	for _, line := range result.Lines {
		check := checker.Check(result.Fixture.Text, line.Size, result.Fixture.DPI, line.BBox)
		checks = append(checks, check)
		table = append(table, []string{
			fmt.Sprintf("%dpt", check.Size),
			fmt.Sprint(check.Glyphs),
			fmt.Sprint(check.Clusters),
			fmt.Sprint(check.Rendered),
			fmt.Sprintf("%.1f", check.Expected),
			fmt.Sprintf("%+.1f", check.Deviation),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(table).Render(); err != nil {
		tracer().Errorf("cannot print shaping table: %v", err)
	}
	for _, check := range checks {
		if check.Suspicious() {
			pterm.Warning.Printfln("width at %dpt deviates by %+.1f pixels", check.Size, check.Deviation)
		}
	}
	return checks, nil
}

func writeHTML(opts options, f *font.ScalableFont, result *sweep.Result, checks []shaping.Report) error {
	out, err := os.Create(opts.htmlOutput)
	if err != nil {
		return core.WrapError(err, core.EIO, "cannot open %s for write", opts.htmlOutput)
	}
	defer out.Close()
	img, err := filepath.Rel(filepath.Dir(opts.htmlOutput), opts.output)
	if err != nil {
		img = opts.output
	}
	return report.WriteHTML(out, report.Page{
		Fontname: f.Fontname,
		Image:    filepath.ToSlash(img),
		Result:   result,
		Checks:   checks,
	})
}
