// Package cabi implements the Go side of the C ABI exported by
// cmd/imageinterop.
//
// Pixel buffers handed to C callers live in C heap memory allocated with
// malloc, so the caller may keep them after the Go call returns without
// violating cgo pointer rules. Every pointer returned by Load is recorded
// in a live set; Free releases only pointers in that set, which makes NULL,
// foreign and already-freed pointers harmless no-ops.
//
// Failure is reported only as a nil result. Decode errors are logged at
// debug level and otherwise discarded.
//
// # Configuration
//
// LoadConfig reads, after an optional dotenv file named by IMAGEINTEROP_ENV_FILE:
//
//	IMAGEINTEROP_DEBUG       "true" enables a development logger
//	IMAGEINTEROP_FLIP        "true" flips output vertically
//	IMAGEINTEROP_MAX_PIXELS  width*height limit, 0 disables
package cabi
