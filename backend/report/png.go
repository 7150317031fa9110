package report

import (
	"bufio"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/npillmayer/fontsweep/core"
)

// EncodePNG writes img to w in PNG format.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, img); err != nil {
		return core.WrapError(err, core.EIO, "cannot encode image as PNG")
	}
	return nil
}

// WritePNG creates (or truncates) a file and writes img to it in PNG format.
func WritePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return core.WrapError(err, core.EIO, "cannot open %s for write", path)
	}
	w := bufio.NewWriter(out)
	if err = EncodePNG(w, img); err == nil {
		err = w.Flush()
	}
	if cerr := out.Close(); err == nil && cerr != nil {
		err = core.WrapError(cerr, core.EIO, "cannot close %s", path)
	}
	if err != nil {
		return err
	}
	tracer().Infof("wrote %s", path)
	return nil
}
