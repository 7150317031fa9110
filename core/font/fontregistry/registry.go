package fontregistry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/npillmayer/fontsweep/core"
	"github.com/npillmayer/fontsweep/core/font"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
)

// Registry is a type for holding information about loaded fonts and the
// typecases prepared from them.
type Registry struct {
	sync.Mutex
	fonts     map[string]*font.ScalableFont
	typecases map[string]*font.TypeCase
	hinting   xfont.Hinting
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold information about
// loaded fonts and typecases.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry(xfont.HintingFull)
	})
	return globalFontRegistry
}

// NewRegistry creates an empty registry. Typecases will be prepared with
// the given hinting.
func NewRegistry(hinting xfont.Hinting) *Registry {
	fr := &Registry{
		fonts:     make(map[string]*font.ScalableFont),
		typecases: make(map[string]*font.TypeCase),
		hinting:   hinting,
	}
	return fr
}

// Hinting returns the hinting typecases of this registry are prepared with.
func (fr *Registry) Hinting() xfont.Hinting {
	return fr.hinting
}

// StoreFont pushes a font into the registry if it isn't contained yet.
//
// The font will be stored using the normalized font name as a key. If this
// key is already associated with a font, that font will not be overridden.
// StoreFont returns the key.
func (fr *Registry) StoreFont(f *font.ScalableFont) string {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return ""
	}
	normalizedName := font.NormalizeFontname(f.Fontname, xfont.StyleNormal, xfont.WeightNormal)
	fr.Lock()
	defer fr.Unlock()
	if _, ok := fr.fonts[normalizedName]; !ok {
		tracer().Debugf("registry stores font %s as %s", f.Fontname, normalizedName)
		fr.fonts[normalizedName] = f
	}
	return normalizedName
}

// TypeCase returns a typecase for a font at a given size and resolution.
// If a suitable typecase has already been cached, TypeCase will return the cached
// typecase. If a suitable font has previously been stored under key
// `normalizedName`, a typecase will be derived from this font.
//
// If the font is not known, TypeCase will derive a typecase from the
// fallback font and return it, together with an error.
func (fr *Registry) TypeCase(normalizedName string, size float64, dpi float64) (*font.TypeCase, error) {
	tracer().Debugf("registry searches for font %s at %.2f", normalizedName, size)
	tname := appendSize(normalizedName, size, dpi)
	fr.Lock()
	defer fr.Unlock()
	if t, ok := fr.typecases[tname]; ok {
		tracer().Debugf("registry found typecase %s", tname)
		return t, nil
	}
	if f, ok := fr.fonts[normalizedName]; ok {
		t, err := f.PrepareCase(size, dpi, fr.hinting)
		if err != nil {
			return nil, err
		}
		tracer().Infof("font registry has font %s, caches at %.2f", normalizedName, size)
		fr.typecases[tname] = t
		return t, nil
	}
	tracer().Infof("registry does not contain font %s", normalizedName)
	err := core.Error(core.EMISSING, "font %s not found in registry", normalizedName)
	//
	// store typecase from fallback font, if not present yet, and return it
	fname := "fallback"
	tname = appendSize(fname, size, dpi)
	if t, ok := fr.typecases[tname]; ok {
		return t, err
	}
	f := font.FallbackFont()
	t, e := f.PrepareCase(size, dpi, fr.hinting)
	if e != nil {
		return nil, e
	}
	tracer().Infof("font registry caches fallback font %s at %.2f", fname, size)
	fr.fonts[fname] = f
	fr.typecases[tname] = t
	return t, err
}

// Size returns the number of fonts and typecases in the registry.
func (fr *Registry) Size() (fonts int, typecases int) {
	fr.Lock()
	defer fr.Unlock()
	return len(fr.fonts), len(fr.typecases)
}

// LogFontList is a helper function to dump the list of known fonts and typecases
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	fr.Lock()
	defer fr.Unlock()
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	for _, k := range sortedKeys(fr.fonts) {
		tracer().Infof("font [%s] = %v", k, fr.fonts[k].Fontname)
	}
	for _, k := range sortedKeys(fr.typecases) {
		tracer().Infof("typecase [%s] = %v", k, fr.typecases[k].ScalableFontParent().Fontname)
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}

func appendSize(fname string, size float64, dpi float64) string {
	return fmt.Sprintf("%s-%g@%g", fname, size, dpi)
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
