package decode

import (
	"bytes"
	stderrors "errors"
	"image"
	"image/draw"
	"io"

	"go.uber.org/zap"

	imageinterop "github.com/wippyai/image-interop"
	"github.com/wippyai/image-interop/errors"
	"github.com/wippyai/image-interop/pixbuf"
)

// DefaultMaxPixels bounds width*height when no limit is configured.
const DefaultMaxPixels int64 = 1 << 28

// Info describes an encoded image without its pixels.
type Info struct {
	Format     Format
	Width      int
	Height     int
	Components int
}

// Layout returns the native channel layout.
func (i Info) Layout() pixbuf.Layout {
	return pixbuf.LayoutFor(i.Components)
}

// Decoder decodes encoded image bytes into pixel buffers.
type Decoder struct {
	alloc      imageinterop.Allocator
	formats    map[Format]codec
	maxPixels  int64
	components int
	flip       bool
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithComponents forces the output component count (1-4). 0 keeps the
// source layout.
func WithComponents(n int) Option {
	return func(d *Decoder) { d.components = n }
}

// WithFlipVertically makes the first row of output the bottom row of the image.
func WithFlipVertically(flip bool) Option {
	return func(d *Decoder) { d.flip = flip }
}

// WithMaxPixels rejects images whose width*height exceeds n. n <= 0 disables the limit.
func WithMaxPixels(n int64) Option {
	return func(d *Decoder) { d.maxPixels = n }
}

// WithFormats restricts decoding to the listed formats.
func WithFormats(formats ...Format) Option {
	return func(d *Decoder) {
		d.formats = make(map[Format]codec, len(formats))
		for _, f := range formats {
			if c, ok := codecs[f]; ok {
				d.formats[f] = c
			}
		}
	}
}

// WithAllocator sets the allocator for output buffers. Defaults to the Go heap.
func WithAllocator(a imageinterop.Allocator) Option {
	return func(d *Decoder) { d.alloc = a }
}

// New creates a decoder. Without options it accepts every supported format,
// preserves the source layout and allocates on the Go heap.
func New(opts ...Option) *Decoder {
	d := &Decoder{
		alloc:     pixbuf.HeapAllocator{},
		formats:   codecs,
		maxPixels: DefaultMaxPixels,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.alloc == nil {
		d.alloc = pixbuf.HeapAllocator{}
	}
	return d
}

var defaultDecoder = New()

// Decode decodes data with the default decoder.
func Decode(data []byte) (*pixbuf.Buffer, error) {
	return defaultDecoder.Decode(data)
}

// Probe reports header information with the default decoder.
func Probe(data []byte) (Info, error) {
	return defaultDecoder.Info(data)
}

// Info reads the container header.
func (d *Decoder) Info(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, errors.InvalidInput(errors.PhaseSniff, "empty input")
	}
	format, err := Sniff(data)
	if err != nil {
		return Info{}, err
	}
	c, ok := d.formats[format]
	if !ok {
		return Info{}, errors.Unsupported(errors.PhaseSniff, string(format)+" decoding is disabled")
	}

	cfg, err := c.config(bytes.NewReader(data))
	if err != nil {
		return Info{}, codecError(errors.PhaseProbe, format, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Info{}, errors.New(errors.PhaseProbe, errors.KindInvalidData).
			Format(string(format)).
			Detail("invalid dimensions %dx%d", cfg.Width, cfg.Height).
			Build()
	}

	layout, err := nativeLayout(format, data, cfg.ColorModel)
	if err != nil {
		return Info{}, err
	}

	return Info{
		Format:     format,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Components: layout.Components(),
	}, nil
}

// Decode decodes data into a new buffer owned by the caller.
func (d *Decoder) Decode(data []byte) (*pixbuf.Buffer, error) {
	info, err := d.Info(data)
	if err != nil {
		Logger().Debug("probe failed", zap.Int("len", len(data)), zap.Error(err))
		return nil, err
	}
	if d.maxPixels > 0 && int64(info.Width)*int64(info.Height) > d.maxPixels {
		return nil, errors.TooLarge(string(info.Format), info.Width, info.Height, d.maxPixels)
	}

	layout := info.Layout()
	if d.components != 0 {
		layout = pixbuf.LayoutFor(d.components)
		if layout == pixbuf.LayoutUnknown {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
				Value(d.components).
				Detail("requested components must be 0-4, got %d", d.components).
				Build()
		}
	}

	img, err := d.formats[info.Format].decode(bytes.NewReader(data))
	if err != nil {
		Logger().Debug("decode failed", zap.String("format", string(info.Format)), zap.Error(err))
		return nil, codecError(errors.PhaseDecode, info.Format, err)
	}
	if info.Format == FormatGIF {
		img = gifCanvas(img, info.Width, info.Height)
	}
	b := img.Bounds()
	if b.Dx() != info.Width || b.Dy() != info.Height {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Format(string(info.Format)).
			Detail("header %dx%d, decoded %dx%d", info.Width, info.Height, b.Dx(), b.Dy()).
			Build()
	}

	buf, err := pixbuf.New(d.alloc, info.Width, info.Height, layout.Components())
	if err != nil {
		return nil, err
	}
	extract(buf.Bytes(), img, layout)
	if d.flip {
		buf.FlipVertical()
	}

	Logger().Debug("decoded",
		zap.String("format", string(info.Format)),
		zap.Int("width", info.Width),
		zap.Int("height", info.Height),
		zap.Int("components", layout.Components()),
	)
	return buf, nil
}

// gifCanvas places a first frame smaller than the logical screen onto a
// transparent screen-sized canvas.
func gifCanvas(frame image.Image, width, height int) image.Image {
	screen := image.Rect(0, 0, width, height)
	if frame.Bounds() == screen {
		return frame
	}
	canvas := image.NewNRGBA(screen)
	draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Src)
	return canvas
}

func codecError(phase errors.Phase, format Format, err error) *errors.Error {
	if stderrors.Is(err, io.ErrUnexpectedEOF) || stderrors.Is(err, io.EOF) {
		return errors.New(phase, errors.KindTruncated).
			Format(string(format)).
			Cause(err).
			Build()
	}
	if stderrors.Is(err, image.ErrFormat) {
		return errors.New(phase, errors.KindUnsupported).
			Format(string(format)).
			Cause(err).
			Build()
	}
	if phase == errors.PhaseDecode {
		return errors.DecodeFailed(string(format), err)
	}
	return errors.InvalidData(phase, string(format), err.Error())
}
