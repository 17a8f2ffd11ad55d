package pixbuf

// Layout names the channel arrangement of a pixel.
type Layout uint8

const (
	LayoutUnknown Layout = iota
	Grayscale
	GrayscaleAlpha
	RGB
	RGBA
)

// LayoutFor returns the layout for a component count, or LayoutUnknown.
func LayoutFor(components int) Layout {
	if components < 1 || components > 4 {
		return LayoutUnknown
	}
	return Layout(components)
}

// Components returns the bytes per pixel, 0 for LayoutUnknown.
func (l Layout) Components() int {
	if l > RGBA {
		return 0
	}
	return int(l)
}

// HasAlpha reports whether the layout carries an alpha channel.
func (l Layout) HasAlpha() bool {
	return l == GrayscaleAlpha || l == RGBA
}

// Expanded returns the color layout a gray layout widens to.
func (l Layout) Expanded() Layout {
	switch l {
	case Grayscale:
		return RGB
	case GrayscaleAlpha:
		return RGBA
	default:
		return l
	}
}

func (l Layout) String() string {
	switch l {
	case Grayscale:
		return "grayscale"
	case GrayscaleAlpha:
		return "grayscale_alpha"
	case RGB:
		return "rgb"
	case RGBA:
		return "rgba"
	default:
		return "unknown"
	}
}
