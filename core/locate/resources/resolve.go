package resources

import (
	"context"
	"fmt"
	"os"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/fontsweep/core"
	"github.com/npillmayer/fontsweep/core/font"
	"github.com/npillmayer/schuko"
)

// NotFound returns an application error for a missing font.
func NotFound(name string) error {
	e := fmt.Errorf("resource missing: %v", name)
	return core.WrapError(e, core.EMISSING, "font not found: %s", name)
}

// ResolveFont locates and loads a font. name is tried, in this order,
//
//   - as a path to a font file
//   - as the name of a packaged Go font, e.g. "go-mono"
//   - as the name of a system font (searching the platform's font folders)
//   - as a family name known to fontconfig, if conf has key 'fontconfig' set
//
// conf may be nil, which disables the fontconfig lookup.
func ResolveFont(conf schuko.Configuration, name string) (*font.ScalableFont, error) {
	if name == "" {
		return nil, core.Error(core.EINVALID, "need a font file name")
	}
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		tracer().Debugf("%s is a font file", name)
		return font.LoadOpenTypeFont(name)
	}
	if f, ok := font.PackagedFont(name); ok {
		tracer().Debugf("%s is a packaged font", name)
		return f, nil
	}
	if fpath, err := findfont.Find(name); err == nil && fpath != "" {
		tracer().Debugf("%s is a system font at %s", name, fpath)
		return font.LoadOpenTypeFont(fpath)
	}
	if conf != nil {
		style, weight := font.GuessStyleAndWeight(name)
		desc, variant := findFontConfigFont(conf, name, style, weight)
		if desc.Path != "" {
			tracer().Debugf("fontconfig matched %s to %s (%s)", name, desc.Path, variant)
			return font.LoadOpenTypeFont(desc.Path)
		}
	}
	return nil, NotFound(name)
}

// --- Promises --------------------------------------------------------------

type fontPlusErr struct {
	font *font.ScalableFont
	err  error
}

// FontPromise is returned by ResolveFontAsync.
type FontPromise interface {
	Await(ctx context.Context) (*font.ScalableFont, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*font.ScalableFont, error)
}

func (loader fontLoader) Await(ctx context.Context) (*font.ScalableFont, error) {
	return loader.await(ctx)
}

// ResolveFontAsync resolves a font in the background. See ResolveFont.
func ResolveFontAsync(conf schuko.Configuration, name string) FontPromise {
	ch := make(chan fontPlusErr, 1)
	go func(ch chan<- fontPlusErr) {
		result := fontPlusErr{}
		result.font, result.err = ResolveFont(conf, name)
		ch <- result
		close(ch)
	}(ch)
	return fontLoader{
		await: func(ctx context.Context) (*font.ScalableFont, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.font, r.err
			}
		},
	}
}
