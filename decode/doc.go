// Package decode turns encoded image bytes into pixbuf.Buffers.
//
// Supported containers are PNG, JPEG, GIF, BMP, TIFF and WebP. The format is
// identified from magic bytes, never from a file name:
//
//	format, err := decode.Sniff(data)
//
// # Component Detection
//
// By default the decoder preserves the channel layout the source encodes:
//
//	PNG   IHDR color type: gray 1, gray+alpha 2, RGB 3, RGBA 4,
//	      palette 3; a tRNS chunk adds an alpha channel
//	JPEG  gray 1, YCbCr and CMYK 3
//	GIF   4
//	BMP, TIFF, WebP  from the codec's color model
//
// WithComponents forces a layout. Color to gray uses the integer luminance
// (77r + 150g + 29b) >> 8. Sources with 16 bits per channel keep the high byte.
//
// # Header Probing
//
// Info reports dimensions and the native component count without decoding
// pixel data. Decode probes first, so WithMaxPixels rejects oversized images
// before any pixel storage is allocated.
//
// A Decoder is immutable after New and safe for concurrent use.
package decode
