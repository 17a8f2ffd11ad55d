// Package wasmhost exposes image loading to WebAssembly guests as a wazero
// host module.
//
// The module mirrors the C ABI, except that the host keeps pixels in Go
// memory and hands the guest a u32 handle:
//
//	load_image_from_memory(ptr, len, x_ptr, y_ptr, comp_ptr) -> handle
//	image_copy(handle, dst, cap) -> u32
//	free_image(handle)
//
// Width, height and components are written as little-endian u32 values at
// x_ptr, y_ptr and comp_ptr. Handle 0 means failure. image_copy returns the
// number of bytes written, or 0 if the handle is unknown or cap is smaller
// than width*height*components. free_image ignores unknown handles.
//
// Basic usage:
//
//	r := wazero.NewRuntime(ctx)
//	host := wasmhost.New()
//	if _, err := host.Instantiate(ctx, r); err != nil {
//	    return err
//	}
//	defer host.Close()
//	// instantiate guest modules importing "image"
package wasmhost
