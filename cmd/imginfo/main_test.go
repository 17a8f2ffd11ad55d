package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/image-interop/decode"
	"github.com/wippyai/image-interop/pixbuf"
)

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{10, 10, 80, 48, 10, 10},
		{160, 80, 80, 48, 80, 40},
		{100, 400, 80, 40, 10, 40},
		{1000, 1, 10, 10, 10, 1},
		{0, 5, 10, 10, 0, 0},
		{5, 5, 0, 10, 0, 0},
	}
	for _, tt := range tests {
		w, h := fitSize(tt.w, tt.h, tt.maxW, tt.maxH)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("fitSize(%d,%d,%d,%d) = %d,%d, want %d,%d",
				tt.w, tt.h, tt.maxW, tt.maxH, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestRGBAt(t *testing.T) {
	tests := []struct {
		name  string
		pix   []byte
		comp  int
		wantR uint8
		wantG uint8
		wantB uint8
	}{
		{"gray", []byte{200}, 1, 200, 200, 200},
		{"gray alpha", []byte{200, 0}, 2, 0, 0, 0},
		{"rgb", []byte{1, 2, 3}, 3, 1, 2, 3},
		{"rgba opaque", []byte{10, 20, 30, 255}, 4, 10, 20, 30},
		{"rgba half", []byte{255, 0, 0, 128}, 4, 128, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := pixbuf.Wrap(tt.pix, 1, 1, tt.comp)
			if err != nil {
				t.Fatal(err)
			}
			r, g, b := rgbAt(buf, 0, 0)
			if r != tt.wantR || g != tt.wantG || b != tt.wantB {
				t.Fatalf("got %d,%d,%d", r, g, b)
			}
		})
	}
}

func TestRenderPreview(t *testing.T) {
	buf, err := pixbuf.Wrap(make([]byte, 4*5*3), 4, 5, 3)
	if err != nil {
		t.Fatal(err)
	}
	out := renderPreview(buf, 80, 48)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if n := strings.Count(lines[0], upperHalf); n != 4 {
		t.Fatalf("got %d cells, want 4", n)
	}

	buf.Release()
	if renderPreview(buf, 80, 48) != "" {
		t.Fatal("released buffer rendered")
	}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	b := writePNG(t, dir, "b.png", 2, 2)
	a := writePNG(t, dir, "a.png", 1, 1)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := listImages(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 || paths[0] != a || paths[1] != b {
		t.Fatalf("got %v", paths)
	}

	if _, err := listImages(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunDir(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "small.png", 3, 2)
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("\x89PNG\r\n\x1a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runDir(decode.New(), dir, &out); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	for _, want := range []string{"small.png", "grayscale", "broken.png"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}

	out.Reset()
	if err := runDir(decode.New(), t.TempDir(), &out); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "No images") {
		t.Fatalf("got %q", out.String())
	}
}

func TestDirRow(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(writePNG(t, dir, "a.png", 5, 4))
	if err != nil {
		t.Fatal(err)
	}
	row := dirRow("a.png", data, decode.New())
	want := []string{"a.png", "png", "5", "4", "1", "grayscale"}
	if strings.Join(row, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", row, want)
	}
	if row := dirRow("x", []byte("junk"), decode.New()); row[1] != "-" {
		t.Fatalf("got %v", row)
	}
}

func TestFormatList(t *testing.T) {
	if got, want := formatList(), "png, jpeg, gif, bmp, tiff, webp"; got != want {
		t.Fatalf("formatList() = %q, want %q", got, want)
	}
}

func TestDescribe(t *testing.T) {
	buf, _ := pixbuf.Wrap(make([]byte, 2*3*4), 2, 3, 4)
	info := decode.Info{Format: decode.FormatPNG, Width: 2, Height: 3, Components: 1}
	out := describe("x.png", info, buf)
	for _, want := range []string{"x.png", "png", "2x3", "1 (grayscale)", "4 (rgba)", "24"} {
		if !strings.Contains(out, want) {
			t.Errorf("describe missing %q:\n%s", want, out)
		}
	}
}

func TestInteractiveModel(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writePNG(t, dir, "alpha.png", 2, 2),
		writePNG(t, dir, "beta.png", 3, 1),
	}
	m := newInteractiveModel(decode.New(), paths)

	msg := m.Init()()
	m.Update(msg)
	if m.buf == nil || m.current != paths[0] {
		t.Fatalf("first image not loaded: %v", m.err)
	}
	first := m.buf

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.selected != 1 || cmd == nil {
		t.Fatal("down did not select next image")
	}
	m.Update(cmd())
	if m.current != paths[1] || m.buf.Width() != 3 {
		t.Fatal("second image not loaded")
	}
	if !first.Released() {
		t.Fatal("previous buffer not released")
	}

	// Results for a path that is no longer selected are discarded.
	stale := loadedMsg{path: paths[0], buf: first}
	m.Update(stale)
	if m.current != paths[1] {
		t.Fatal("stale result applied")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if m.state != stateFilter {
		t.Fatal("filter not focused")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("alp")})
	if len(m.visible) != 1 || m.visible[0] != paths[0] || m.selected != 0 {
		t.Fatalf("filter result %v, selected %d", m.visible, m.selected)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateBrowse {
		t.Fatal("enter did not leave filter")
	}

	if !strings.Contains(m.View(), "Image Inspector") {
		t.Fatal("view missing title")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q did not quit")
	}
	if m.buf != nil {
		t.Fatal("buffer not released on quit")
	}
}
