package pixbuf

import (
	"bytes"
	"testing"

	"github.com/wippyai/image-interop/errors"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		from Layout
		to   Layout
		src  []byte
		want []byte
	}{
		{"gray to gray alpha", Grayscale, GrayscaleAlpha, []byte{10, 20}, []byte{10, 255, 20, 255}},
		{"gray to rgb", Grayscale, RGB, []byte{7}, []byte{7, 7, 7}},
		{"gray to rgba", Grayscale, RGBA, []byte{7}, []byte{7, 7, 7, 255}},
		{"gray alpha to gray", GrayscaleAlpha, Grayscale, []byte{5, 9}, []byte{5}},
		{"gray alpha to rgba", GrayscaleAlpha, RGBA, []byte{5, 9}, []byte{5, 5, 5, 9}},
		{"rgb to rgba", RGB, RGBA, []byte{1, 2, 3}, []byte{1, 2, 3, 255}},
		{"rgba to rgb", RGBA, RGB, []byte{1, 2, 3, 4}, []byte{1, 2, 3}},
		{"white rgb to gray", RGB, Grayscale, []byte{255, 255, 255}, []byte{255}},
		{"red rgb to gray", RGB, Grayscale, []byte{255, 0, 0}, []byte{76}},
		{"rgba to gray alpha", RGBA, GrayscaleAlpha, []byte{0, 255, 0, 128}, []byte{149, 128}},
		{"identity", RGB, RGB, []byte{4, 5, 6}, []byte{4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, len(tt.want))
			if err := Convert(dst, tt.src, tt.from, tt.to); err != nil {
				t.Fatalf("Convert failed: %v", err)
			}
			if !bytes.Equal(dst, tt.want) {
				t.Errorf("got %v, want %v", dst, tt.want)
			}
		})
	}
}

func TestConvert_Errors(t *testing.T) {
	if err := Convert(make([]byte, 4), []byte{1}, LayoutUnknown, RGBA); !errors.HasKind(err, errors.KindUnsupported) {
		t.Errorf("unknown layout: got %v", err)
	}
	if err := Convert(make([]byte, 2), []byte{1, 2, 3}, RGB, RGBA); !errors.HasKind(err, errors.KindInvalidInput) {
		t.Errorf("short dst: got %v", err)
	}
	if err := Convert(make([]byte, 8), []byte{1, 2, 3, 4}, RGB, RGBA); !errors.HasKind(err, errors.KindInvalidInput) {
		t.Errorf("ragged src: got %v", err)
	}
}

func TestBuffer_Expand(t *testing.T) {
	src, err := Wrap([]byte{10, 200, 30, 40}, 2, 1, 2)
	if err != nil {
		t.Fatal(err)
	}

	out, err := src.Expand(nil)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	defer out.Release()

	if out.Layout() != RGBA {
		t.Fatalf("Layout = %v, want rgba", out.Layout())
	}
	want := []byte{10, 10, 10, 200, 30, 30, 30, 40}
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("got %v, want %v", out.Bytes(), want)
	}

	src.Release()
	if _, err := src.Expand(nil); !errors.HasKind(err, errors.KindReleased) {
		t.Errorf("Expand after release: got %v", err)
	}
}

func TestFlipVertical(t *testing.T) {
	tests := []struct {
		name   string
		pix    []byte
		stride int
		height int
		want   []byte
	}{
		{"three rows", []byte{1, 1, 2, 2, 3, 3}, 2, 3, []byte{3, 3, 2, 2, 1, 1}},
		{"two rows", []byte{1, 2, 3, 4}, 2, 2, []byte{3, 4, 1, 2}},
		{"single row", []byte{1, 2}, 2, 1, []byte{1, 2}},
		{"short slice untouched", []byte{1, 2, 3}, 2, 2, []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			FlipVertical(tt.pix, tt.stride, tt.height)
			if !bytes.Equal(tt.pix, tt.want) {
				t.Errorf("got %v, want %v", tt.pix, tt.want)
			}
		})
	}
}

func TestBuffer_FlipVertical(t *testing.T) {
	buf, err := Wrap([]byte{1, 2, 3, 4, 5, 6}, 1, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	buf.FlipVertical()
	if !bytes.Equal(buf.Bytes(), []byte{4, 5, 6, 1, 2, 3}) {
		t.Errorf("got %v", buf.Bytes())
	}
	buf.Release()
	buf.FlipVertical()
}
