package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/image-interop/pixbuf"
)

// upperHalf renders the top pixel as foreground and the bottom as background.
const upperHalf = "▀"

// fitSize scales w x h to fit maxW x maxH cells, keeping aspect ratio.
// Each cell holds two vertical pixels, so maxH is in pixel rows.
func fitSize(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	sw, sh := maxW, h*maxW/w
	if sh > maxH {
		sw, sh = w*maxH/h, maxH
	}
	return max(sw, 1), max(sh, 1)
}

// rgbAt returns the color of pixel (x, y), compositing alpha onto black.
func rgbAt(buf *pixbuf.Buffer, x, y int) (r, g, b uint8) {
	row := buf.Row(y)
	c := buf.Components()
	if row == nil || x < 0 || (x+1)*c > len(row) {
		return 0, 0, 0
	}
	p := row[x*c : (x+1)*c]
	switch buf.Layout() {
	case pixbuf.Grayscale:
		return p[0], p[0], p[0]
	case pixbuf.GrayscaleAlpha:
		v := mul(p[0], p[1])
		return v, v, v
	case pixbuf.RGB:
		return p[0], p[1], p[2]
	case pixbuf.RGBA:
		return mul(p[0], p[3]), mul(p[1], p[3]), mul(p[2], p[3])
	}
	return 0, 0, 0
}

func mul(v, a uint8) uint8 {
	return uint8((uint16(v)*uint16(a) + 127) / 255)
}

func hex(r, g, b uint8) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

// renderPreview draws buf with nearest-neighbour sampling in at most
// maxW columns and maxH/2 lines.
func renderPreview(buf *pixbuf.Buffer, maxW, maxH int) string {
	if buf == nil || buf.Released() {
		return ""
	}
	w, h := fitSize(buf.Width(), buf.Height(), maxW, maxH)
	if w == 0 {
		return ""
	}

	var sb strings.Builder
	for cy := 0; cy < h; cy += 2 {
		for cx := 0; cx < w; cx++ {
			sx := cx * buf.Width() / w
			top := cy * buf.Height() / h
			style := lipgloss.NewStyle().Foreground(hex(rgbAt(buf, sx, top)))
			if cy+1 < h {
				bottom := (cy + 1) * buf.Height() / h
				style = style.Background(hex(rgbAt(buf, sx, bottom)))
			}
			sb.WriteString(style.Render(upperHalf))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
