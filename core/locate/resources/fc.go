package resources

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/npillmayer/fontsweep/core"
	"github.com/npillmayer/fontsweep/core/font"
	"github.com/npillmayer/schuko"
	xfont "golang.org/x/image/font"
)

func findFontConfigBinary(conf schuko.Configuration) (string, error) {
	path := conf.GetString("fontconfig")
	if path == "" {
		tracer().Infof("fontconfig not configured: key 'fontconfig' should point location of 'fc-list' binary")
		return "", core.Error(core.EMISSING, "fontconfig not configured")
	}
	if !filepath.IsAbs(path) {
		return "", core.Error(core.EINVALID, "fontconfig binary fc-list must point to absolute path: %s", path)
	}
	if fi, err := os.Stat(path); err != nil || (fi.Mode().Perm()&0100) == 0 {
		return "", core.WrapError(err, core.EINVALID,
			"fontconfig configuration points to an invalid binary: %s", path)
	}
	return path, nil
}

// cacheFontConfigList writes the output of fc-list to the user's config
// directory, if not present already or if update is set.
func cacheFontConfigList(conf schuko.Configuration, update bool) (string, error) {
	dir, err := ConfigDirPath(conf)
	if err != nil {
		return "", err
	}
	fcListFilename := filepath.Join(dir, "fontlist.txt")
	if _, err := os.Stat(fcListFilename); err == nil && !update {
		return fcListFilename, nil
	}
	fcpath, err := findFontConfigBinary(conf)
	if err != nil {
		return "", err
	}
	if err = runFontConfig(fcpath, fcListFilename); err != nil {
		return "", core.WrapError(err, core.EIO,
			"fontconfig output file cannot be created: %s", fcListFilename)
	}
	return fcListFilename, nil
}

// runFontConfig collects the output of fc-list in a temporary file, which
// replaces fcListFilename only if fc-list succeeded.
func runFontConfig(fcpath, fcListFilename string) error {
	tmp, err := os.CreateTemp(filepath.Dir(fcListFilename), "fontlist-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename
	fccmd := exec.Command(fcpath)
	fccmd.Stdout = tmp
	err = fccmd.Run()
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		tracer().Errorf("fc-list failed: %v", err)
		return err
	}
	return os.Rename(tmp.Name(), fcListFilename)
}

// parseFontConfigList reads lines of fc-list output, which look like
//
//	/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf: DejaVu Sans:style=Bold
//
// Font collections (*.ttc) are skipped and counted.
func parseFontConfigList(r io.Reader) (descs []font.Descriptor, ttc int, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 3 {
			continue
		}
		fontpath := strings.TrimSpace(fields[0])
		fontname := strings.TrimSpace(fields[1])
		if comma := strings.Index(fontname, ","); comma > 0 {
			fontname = fontname[:comma]
		}
		fontname = strings.TrimPrefix(fontname, ".")
		fontvari := strings.ToLower(fields[2])
		if strings.HasSuffix(strings.ToLower(fontpath), ".ttc") {
			ttc++
			continue
		}
		desc := font.Descriptor{
			Family: fontname,
			Path:   fontpath,
		}
		switch {
		case strings.Contains(fontvari, "italic"), strings.Contains(fontvari, "oblique"):
			desc.Variants = []string{"italic"}
		case strings.Contains(fontvari, "regular"), strings.Contains(fontvari, "book"),
			strings.Contains(fontvari, "text"):
			desc.Variants = []string{"regular"}
		case strings.Contains(fontvari, "light"):
			desc.Variants = []string{"light"}
		case strings.Contains(fontvari, "bold"), strings.Contains(fontvari, "black"):
			desc.Variants = []string{"bold"}
		}
		descs = append(descs, desc)
	}
	return descs, ttc, scanner.Err()
}

func loadFontConfigList(conf schuko.Configuration) ([]font.Descriptor, bool) {
	fclist, err := cacheFontConfigList(conf, false)
	if err != nil {
		tracer().Infof("no fontconfig font list: %v", err)
		return nil, false
	}
	fc, err := os.Open(fclist)
	if err != nil {
		err = core.WrapError(err, core.EIO,
			"fontconfig font list cannot be opened: %s", fclist)
		core.UserError(err)
		return nil, false
	}
	defer fc.Close()
	descs, ttc, err := parseFontConfigList(fc)
	if err != nil {
		err = core.WrapError(err, core.EIO,
			"encountered a problem during reading of fontconfig font list: %s", fclist)
		core.UserError(err)
		return descs, false
	}
	if ttc > 0 {
		tracer().Infof("skipping %d platform fonts: TTC not supported", ttc)
	}
	return descs, true
}

var loadFontConfigListTask sync.Once
var loadedFontConfigListOK bool
var fontConfigDescriptors []font.Descriptor

// findFontConfigFont searches for a locally installed font variant using the fontconfig
// system (https://www.freedesktop.org/wiki/Software/fontconfig/).
// fontconfig has to be configured in the application configuration by
// setting the absolute path of the 'fc-list' binary.
//
// findFontConfigFont will copy the output of fc-list to the user's config
// directory once. Subsequent calls will use the cached entries to search for
// a font, given a name pattern, a style and a weight.
//
// We call the binary instead of using the C library because of possible version
// issues. If fontconfig is not configured, findFontConfigFont will silently return an
// empty font descriptor and an empty variant name.
func findFontConfigFont(conf schuko.Configuration, pattern string, style xfont.Style, weight xfont.Weight) (
	desc font.Descriptor, variant string) {
	//
	loadFontConfigListTask.Do(func() {
		fontConfigDescriptors, loadedFontConfigListOK = loadFontConfigList(conf)
		tracer().Infof("loaded fontconfig list")
	})
	if !loadedFontConfigListOK {
		return
	}
	var confidence font.MatchConfidence
	desc, variant, confidence = font.ClosestMatch(fontConfigDescriptors, pattern, style, weight)
	tracer().Debugf("closest fontconfig match confidence for %s|%s= %d", desc.Family, variant, confidence)
	if confidence > font.LowConfidence {
		return
	}
	return font.Descriptor{}, ""
}
