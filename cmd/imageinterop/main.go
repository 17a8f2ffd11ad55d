// Command imageinterop builds the C shared library exposing
// load_image_from_memory and free_image.
//
//	go build -buildmode=c-shared -o libimageinterop.so ./cmd/imageinterop
//
// The build also emits libimageinterop.h with the two prototypes.
package main

/*
#include <stdlib.h>
*/
import "C"
import (
	"fmt"
	"os"
	"unsafe"

	"github.com/wippyai/image-interop/cabi"
)

func init() {
	cfg, err := cabi.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "imageinterop: %v\n", err)
	}
	cabi.Configure(cfg)
}

//export load_image_from_memory
func load_image_from_memory(buffer *C.uchar, length C.int, x, y, comp *C.int) *C.uchar {
	p := cabi.Load(
		unsafe.Pointer(buffer),
		int(length),
		(*int32)(unsafe.Pointer(x)),
		(*int32)(unsafe.Pointer(y)),
		(*int32)(unsafe.Pointer(comp)),
	)
	return (*C.uchar)(p)
}

//export free_image
func free_image(pixels unsafe.Pointer) {
	cabi.Free(pixels)
}

func main() {}
