package pixbuf

import (
	imageinterop "github.com/wippyai/image-interop"
	"github.com/wippyai/image-interop/errors"
)

// Luma computes 8-bit luminance with integer weights 77/150/29.
func Luma(r, g, b byte) byte {
	return byte((uint32(r)*77 + uint32(g)*150 + uint32(b)*29) >> 8)
}

// Convert rewrites n pixels from src in layout from into dst in layout to.
// dst must hold n*to.Components() bytes and src n*from.Components() bytes.
func Convert(dst, src []byte, from, to Layout) error {
	fc, tc := from.Components(), to.Components()
	if fc == 0 || tc == 0 {
		return errors.Unsupported(errors.PhaseConvert, "conversion between "+from.String()+" and "+to.String())
	}
	n := len(src) / fc
	if len(src)%fc != 0 || len(dst) < n*tc {
		return errors.New(errors.PhaseConvert, errors.KindInvalidInput).
			Detail("src %d bytes (%s), dst %d bytes (%s)", len(src), from, len(dst), to).
			Build()
	}
	if from == to {
		copy(dst, src[:n*fc])
		return nil
	}

	for i := 0; i < n; i++ {
		s := src[i*fc : i*fc+fc]
		d := dst[i*tc : i*tc+tc]
		switch from {
		case Grayscale:
			fromGray(d, s[0], 255, to)
		case GrayscaleAlpha:
			fromGray(d, s[0], s[1], to)
		case RGB:
			fromColor(d, s[0], s[1], s[2], 255, to)
		case RGBA:
			fromColor(d, s[0], s[1], s[2], s[3], to)
		}
	}
	return nil
}

func fromGray(d []byte, y, a byte, to Layout) {
	switch to {
	case Grayscale:
		d[0] = y
	case GrayscaleAlpha:
		d[0], d[1] = y, a
	case RGB:
		d[0], d[1], d[2] = y, y, y
	case RGBA:
		d[0], d[1], d[2], d[3] = y, y, y, a
	}
}

func fromColor(d []byte, r, g, b, a byte, to Layout) {
	switch to {
	case Grayscale:
		d[0] = Luma(r, g, b)
	case GrayscaleAlpha:
		d[0], d[1] = Luma(r, g, b), a
	case RGB:
		d[0], d[1], d[2] = r, g, b
	case RGBA:
		d[0], d[1], d[2], d[3] = r, g, b, a
	}
}

// Converted returns a new buffer holding b's pixels in layout to.
func (b *Buffer) Converted(alloc imageinterop.Allocator, to Layout) (*Buffer, error) {
	src := b.Bytes()
	if src == nil {
		return nil, errors.AlreadyReleased()
	}
	out, err := New(alloc, b.width, b.height, to.Components())
	if err != nil {
		return nil, err
	}
	if err := Convert(out.pix, src, b.Layout(), to); err != nil {
		out.Release()
		return nil, err
	}
	return out, nil
}

// Expand returns a copy of b with gray layouts widened to RGB or RGBA.
func (b *Buffer) Expand(alloc imageinterop.Allocator) (*Buffer, error) {
	return b.Converted(alloc, b.Layout().Expanded())
}

// FlipVertical reverses row order in place.
func FlipVertical(pix []byte, stride, height int) {
	if stride <= 0 || height < 2 || len(pix) < stride*height {
		return
	}
	tmp := make([]byte, stride)
	for top, bottom := 0, height-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := pix[top*stride : (top+1)*stride]
		u := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, t)
		copy(t, u)
		copy(u, tmp)
	}
}

// FlipVertical reverses b's row order in place. It is a no-op once released.
func (b *Buffer) FlipVertical() {
	if pix := b.Bytes(); pix != nil {
		FlipVertical(pix, b.Stride(), b.height)
	}
}
