// Package imageinterop exposes in-memory image decoding to foreign callers.
//
// The library decodes encoded image bytes (PNG, JPEG, GIF, BMP, TIFF, WebP)
// into flat, row-major pixel buffers and hands ownership of those buffers
// across a language boundary, either through a C ABI shared library or
// through a WebAssembly host module.
//
// # Architecture Overview
//
//	imageinterop/        Root package with core Memory and Allocator interfaces
//	├── decode/          Format sniffing, header probing and pixel decoding
//	├── pixbuf/          Release-once pixel buffers and layout helpers
//	├── cabi/            C allocator and the Go side of the C exports
//	├── wasmhost/        wazero host module exposing the same calls to guests
//	├── resource/        Handle table for buffers held by guests
//	├── errors/          Structured error types
//	└── cmd/
//	    ├── imageinterop/  c-shared library entry point
//	    └── imginfo/       inspection CLI
//
// # Quick Start
//
// Decode from Go:
//
//	dec := decode.New()
//	buf, err := dec.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer buf.Release()
//
//	fmt.Println(buf.Width(), buf.Height(), buf.Components())
//
// Build the shared library for a managed runtime:
//
//	go build -buildmode=c-shared -o libimageinterop.so ./cmd/imageinterop
//
// The library exports two C symbols:
//
//	unsigned char* load_image_from_memory(unsigned char* buffer, int len,
//	                                      int* x, int* y, int* comp);
//	void free_image(void* pixels);
//
// The generated header is not const-qualified; buffer is only read.
//
// # Pixel Layout
//
// A pixel buffer is width × height × components bytes, row-major, top row
// first unless vertical flipping is requested. Components are:
//
//	1  grey
//	2  grey, alpha
//	3  red, green, blue
//	4  red, green, blue, alpha
//
// # Ownership
//
// Every buffer returned by a load must be released exactly once. From Go,
// pixbuf.Buffer.Release enforces this; a second call returns an error and
// frees nothing. Through the C ABI, free_image on NULL or on a pointer
// that is no longer live is a no-op.
//
// # Thread Safety
//
// Decoders, the C exports and the wasm host are safe for concurrent use.
// A single pixbuf.Buffer should be released by one goroutine.
package imageinterop
