package font

import (
	"sort"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
)

// The Go fonts are packaged with every binary and serve as reference fonts
// for a sweep.
var packaged = map[string][]byte{
	"go-regular":          goregular.TTF,
	"go-bold":             gobold.TTF,
	"go-italic":           goitalic.TTF,
	"go-bold-italic":      gobolditalic.TTF,
	"go-medium":           gomedium.TTF,
	"go-medium-italic":    gomediumitalic.TTF,
	"go-mono":             gomono.TTF,
	"go-mono-bold":        gomonobold.TTF,
	"go-mono-italic":      gomonoitalic.TTF,
	"go-mono-bold-italic": gomonobolditalic.TTF,
	"go-smallcaps":        gosmallcaps.TTF,
	"go-smallcaps-italic": gosmallcapsitalic.TTF,
}

// PackagedFont returns one of the Go fonts by its normalized name, e.g.
// "go-mono". The name is normalized before lookup, thus "Go Mono" will
// work as well.
func PackagedFont(name string) (*ScalableFont, bool) {
	bytez, ok := packaged[packagedKey(name)]
	if !ok {
		return nil, false
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		tracer().Errorf("packaged font %s is corrupt: %v", name, err)
		return nil, false
	}
	f.Filepath = "packaged"
	return f, true
}

// PackagedFontNames lists the names of all packaged fonts, sorted.
func PackagedFontNames() []string {
	names := make([]string, 0, len(packaged))
	for k := range packaged {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func packagedKey(name string) string {
	n := NormalizeFontname(name, 0, 0)
	if n == "go_sans" {
		return "go-regular"
	}
	b := []byte(n)
	for i := range b {
		if b[i] == '_' {
			b[i] = '-'
		}
	}
	return string(b)
}
