package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/image-interop/decode"
	"github.com/wippyai/image-interop/pixbuf"
)

func main() {
	var (
		file        = flag.String("file", "", "Image file to inspect")
		dir         = flag.String("dir", "", "List decodable images in a directory")
		comp        = flag.Int("comp", 0, "Force component count (1-4, 0 keeps the source layout)")
		flip        = flag.Bool("flip", false, "Flip decoded rows vertically")
		maxPixels   = flag.Int64("max-pixels", decode.DefaultMaxPixels, "Reject images larger than this many pixels (0 disables)")
		preview     = flag.Bool("preview", false, "Print a color preview when stdout is a terminal")
		verbose     = flag.Bool("v", false, "Debug logging to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		formats     = flag.Bool("formats", false, "List supported formats and exit")
	)
	flag.Parse()

	if *formats {
		fmt.Println(formatList())
		return
	}

	if (*file == "") == (*dir == "") {
		fmt.Fprintln(os.Stderr, "Usage: imginfo -file <image> [-comp N] [-flip] [-preview]")
		fmt.Fprintln(os.Stderr, "       imginfo -dir <directory>")
		fmt.Fprintln(os.Stderr, "       imginfo -file <image> | -dir <directory> -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "       imginfo -formats")
		fmt.Fprintf(os.Stderr, "Supported formats: %s\n", formatList())
		os.Exit(1)
	}
	if *comp < 0 || *comp > 4 {
		fmt.Fprintln(os.Stderr, "Error: -comp must be between 0 and 4")
		os.Exit(1)
	}

	if *verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			decode.SetLogger(l)
			defer l.Sync()
		}
	}

	dec := decode.New(
		decode.WithComponents(*comp),
		decode.WithFlipVertically(*flip),
		decode.WithMaxPixels(*maxPixels),
	)

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		paths := []string{*file}
		if *dir != "" {
			var err error
			if paths, err = listImages(*dir); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
		if err := runInteractive(dec, paths); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var err error
	if *dir != "" {
		err = runDir(dec, *dir, os.Stdout)
	} else {
		err = runFile(dec, *file, *preview && term.IsTerminal(int(os.Stdout.Fd())))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runFile(dec *decode.Decoder, path string, withPreview bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	info, err := dec.Info(data)
	if err != nil {
		return err
	}
	buf, err := dec.Decode(data)
	if err != nil {
		return err
	}
	defer buf.Release()

	fmt.Print(describe(path, info, buf))
	if withPreview {
		w, h := previewBounds()
		fmt.Println()
		fmt.Print(renderPreview(buf, w, h))
	}
	return nil
}

func runDir(dec *decode.Decoder, dir string, w io.Writer) error {
	paths, err := listImages(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintf(w, "No images in %s\n", dir)
		return nil
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"File", "Format", "Width", "Height", "Components", "Layout"}),
	)
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		table.Append(dirRow(filepath.Base(p), data, dec))
	}
	return table.Render()
}

func dirRow(name string, data []byte, dec *decode.Decoder) []string {
	info, err := dec.Info(data)
	if err != nil {
		return []string{name, "-", "-", "-", "-", err.Error()}
	}
	return []string{
		name,
		string(info.Format),
		strconv.Itoa(info.Width),
		strconv.Itoa(info.Height),
		strconv.Itoa(info.Components),
		info.Layout().String(),
	}
}

// listImages returns regular files in dir whose header is recognized.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		p := filepath.Join(dir, e.Name())
		ok, err := sniffFile(p)
		if err != nil {
			return nil, err
		}
		if ok {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func sniffFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	head := make([]byte, 16)
	n, _ := f.Read(head)
	_, err = decode.Sniff(head[:n])
	return err == nil, nil
}

func formatList() string {
	names := make([]string, 0, len(decode.Formats()))
	for _, f := range decode.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func describe(path string, info decode.Info, buf *pixbuf.Buffer) string {
	return fmt.Sprintf("File:       %s\nFormat:     %s\nSize:       %dx%d\nSource:     %d (%s)\nComponents: %d (%s)\nBytes:      %d\n",
		path, info.Format, info.Width, info.Height,
		info.Components, info.Layout(),
		buf.Components(), buf.Layout(),
		buf.Len())
}

func previewBounds() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 48
	}
	return w, 2 * (h - 10)
}
