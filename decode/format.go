package decode

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/wippyai/image-interop/errors"
)

// Format identifies an image container.
type Format string

const (
	FormatUnknown Format = ""
	FormatPNG     Format = "png"
	FormatJPEG    Format = "jpeg"
	FormatGIF     Format = "gif"
	FormatBMP     Format = "bmp"
	FormatTIFF    Format = "tiff"
	FormatWebP    Format = "webp"
)

var (
	pngMagic    = []byte("\x89PNG\r\n\x1a\n")
	jpegMagic   = []byte{0xFF, 0xD8, 0xFF}
	gif87Magic  = []byte("GIF87a")
	gif89Magic  = []byte("GIF89a")
	bmpMagic    = []byte("BM")
	tiffLEMagic = []byte("II*\x00")
	tiffBEMagic = []byte("MM\x00*")
	riffMagic   = []byte("RIFF")
	webpMagic   = []byte("WEBP")
)

// Formats lists every format the package can decode.
func Formats() []Format {
	return []Format{FormatPNG, FormatJPEG, FormatGIF, FormatBMP, FormatTIFF, FormatWebP}
}

// Sniff identifies the container from its leading bytes.
func Sniff(data []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return FormatPNG, nil
	case bytes.HasPrefix(data, jpegMagic):
		return FormatJPEG, nil
	case bytes.HasPrefix(data, gif87Magic), bytes.HasPrefix(data, gif89Magic):
		return FormatGIF, nil
	case bytes.HasPrefix(data, tiffLEMagic), bytes.HasPrefix(data, tiffBEMagic):
		return FormatTIFF, nil
	case len(data) >= 12 && bytes.HasPrefix(data, riffMagic) && bytes.Equal(data[8:12], webpMagic):
		return FormatWebP, nil
	case bytes.HasPrefix(data, bmpMagic):
		return FormatBMP, nil
	}
	return FormatUnknown, errors.UnknownFormat(data)
}

// codec pairs a container's full decoder with its header-only decoder.
type codec struct {
	decode func(io.Reader) (image.Image, error)
	config func(io.Reader) (image.Config, error)
}

var codecs = map[Format]codec{
	FormatPNG:  {png.Decode, png.DecodeConfig},
	FormatJPEG: {jpeg.Decode, jpeg.DecodeConfig},
	FormatGIF:  {gif.Decode, gif.DecodeConfig},
	FormatBMP:  {bmp.Decode, bmp.DecodeConfig},
	FormatTIFF: {tiff.Decode, tiff.DecodeConfig},
	FormatWebP: {webp.Decode, webp.DecodeConfig},
}
