package decode

import (
	"encoding/binary"
	"image/color"

	"github.com/wippyai/image-interop/errors"
	"github.com/wippyai/image-interop/pixbuf"
)

// PNG IHDR color types
const (
	pngColorGray      = 0
	pngColorRGB       = 2
	pngColorPalette   = 3
	pngColorGrayAlpha = 4
	pngColorRGBA      = 6
)

const (
	pngSigLen    = 8
	pngChunkHead = 8 // length + type
	pngChunkCRC  = 4
	pngIHDRLen   = 13
)

// pngLayout reads the IHDR color type and scans ancillary chunks ahead of
// the first IDAT for tRNS.
func pngLayout(data []byte) (pixbuf.Layout, error) {
	need := pngSigLen + pngChunkHead + pngIHDRLen
	if len(data) < need {
		return pixbuf.LayoutUnknown, errors.Truncated(errors.PhaseProbe, string(FormatPNG), need, len(data))
	}
	if string(data[12:16]) != "IHDR" {
		return pixbuf.LayoutUnknown, errors.InvalidData(errors.PhaseProbe, string(FormatPNG), "first chunk is not IHDR")
	}
	colorType := data[pngSigLen+pngChunkHead+9]

	var base pixbuf.Layout
	switch colorType {
	case pngColorGray:
		base = pixbuf.Grayscale
	case pngColorRGB, pngColorPalette:
		base = pixbuf.RGB
	case pngColorGrayAlpha:
		return pixbuf.GrayscaleAlpha, nil
	case pngColorRGBA:
		return pixbuf.RGBA, nil
	default:
		return pixbuf.LayoutUnknown, errors.New(errors.PhaseProbe, errors.KindInvalidData).
			Format(string(FormatPNG)).
			Value(colorType).
			Detail("invalid color type %d", colorType).
			Build()
	}

	if pngHasTransparency(data) {
		if base == pixbuf.Grayscale {
			return pixbuf.GrayscaleAlpha, nil
		}
		return pixbuf.RGBA, nil
	}
	return base, nil
}

func pngHasTransparency(data []byte) bool {
	off := pngSigLen
	for off+pngChunkHead <= len(data) {
		length := binary.BigEndian.Uint32(data[off:])
		kind := string(data[off+4 : off+8])
		switch kind {
		case "tRNS":
			return true
		case "IDAT", "IEND":
			return false
		}
		next := uint64(off) + pngChunkHead + uint64(length) + pngChunkCRC
		if next > uint64(len(data)) {
			return false
		}
		off = int(next)
	}
	return false
}

// modelLayout maps a codec color model to the layout it decodes into.
func modelLayout(m color.Model) pixbuf.Layout {
	switch m {
	case color.GrayModel, color.Gray16Model:
		return pixbuf.Grayscale
	case color.RGBAModel, color.RGBA64Model, color.YCbCrModel, color.CMYKModel:
		return pixbuf.RGB
	case color.NRGBAModel, color.NRGBA64Model, color.NYCbCrAModel, color.AlphaModel, color.Alpha16Model:
		return pixbuf.RGBA
	}
	if p, ok := m.(color.Palette); ok {
		for _, c := range p {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return pixbuf.RGBA
			}
		}
		return pixbuf.RGB
	}
	return pixbuf.RGBA
}

// nativeLayout returns the layout a format preserves by default.
func nativeLayout(format Format, data []byte, m color.Model) (pixbuf.Layout, error) {
	switch format {
	case FormatPNG:
		return pngLayout(data)
	case FormatJPEG:
		if m == color.GrayModel {
			return pixbuf.Grayscale, nil
		}
		return pixbuf.RGB, nil
	case FormatGIF:
		return pixbuf.RGBA, nil
	default:
		return modelLayout(m), nil
	}
}
