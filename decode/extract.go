package decode

import (
	"image"
	"image/color"

	"github.com/wippyai/image-interop/pixbuf"
)

// extract writes img into dst in row-major order using layout.
// dst must hold Dx*Dy*layout.Components() bytes.
func extract(dst []byte, img image.Image, layout pixbuf.Layout) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	n := layout.Components()
	stride := w * n

	switch src := img.(type) {
	case *image.Gray:
		if layout == pixbuf.Grayscale {
			for y := 0; y < h; y++ {
				row := src.Pix[y*src.Stride : y*src.Stride+w]
				copy(dst[y*stride:], row)
			}
			return
		}
	case *image.NRGBA:
		if layout == pixbuf.RGBA {
			for y := 0; y < h; y++ {
				row := src.Pix[y*src.Stride : y*src.Stride+w*4]
				copy(dst[y*stride:], row)
			}
			return
		}
	case *image.Paletted:
		lut := paletteLUT(src.Palette, layout)
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w]
			out := dst[y*stride : (y+1)*stride]
			for x, idx := range row {
				if int(idx) < len(src.Palette) {
					copy(out[x*n:x*n+n], lut[int(idx)*n:int(idx)*n+n])
				}
			}
		}
		return
	}

	for y := 0; y < h; y++ {
		out := dst[y*stride : (y+1)*stride]
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			writePixel(out[x*n:x*n+n], c, layout)
		}
	}
}

// paletteLUT pre-converts every palette entry to layout.
func paletteLUT(p color.Palette, layout pixbuf.Layout) []byte {
	n := layout.Components()
	lut := make([]byte, len(p)*n)
	for i, c := range p {
		writePixel(lut[i*n:i*n+n], color.NRGBAModel.Convert(c).(color.NRGBA), layout)
	}
	return lut
}

func writePixel(d []byte, c color.NRGBA, layout pixbuf.Layout) {
	switch layout {
	case pixbuf.Grayscale:
		d[0] = pixbuf.Luma(c.R, c.G, c.B)
	case pixbuf.GrayscaleAlpha:
		d[0], d[1] = pixbuf.Luma(c.R, c.G, c.B), c.A
	case pixbuf.RGB:
		d[0], d[1], d[2] = c.R, c.G, c.B
	case pixbuf.RGBA:
		d[0], d[1], d[2], d[3] = c.R, c.G, c.B, c.A
	}
}
