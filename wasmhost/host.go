package wasmhost

import (
	"context"
	"math"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/image-interop/decode"
	"github.com/wippyai/image-interop/errors"
	"github.com/wippyai/image-interop/pixbuf"
	"github.com/wippyai/image-interop/resource"
)

// loadedImage is a decoded buffer owned by a guest handle. mu is held for
// reading while pixels are copied out so Drop cannot free them mid-copy.
type loadedImage struct {
	buf *pixbuf.Buffer
	mu  sync.RWMutex
}

func (i *loadedImage) Drop() {
	i.mu.Lock()
	defer i.mu.Unlock()
	_ = i.buf.Release()
}

// copyTo writes the pixels to mem at dst if they fit in capacity and
// returns the number of bytes written.
func (i *loadedImage) copyTo(mem *Memory, dst, capacity uint32) (uint32, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	pix := i.buf.Bytes()
	if pix == nil {
		return 0, errors.AlreadyReleased()
	}
	if uint64(len(pix)) > uint64(capacity) {
		return 0, errors.New(errors.PhaseHost, errors.KindOutOfBounds).
			Detail("capacity %d below image size %d", capacity, len(pix)).
			Build()
	}
	if err := mem.Write(dst, pix); err != nil {
		return 0, err
	}
	return uint32(len(pix)), nil
}

// Host owns the images loaded by guests of one runtime.
type Host struct {
	decoder *decode.Decoder
	images  *resource.Table[*loadedImage]
	name    string
}

// Option configures a Host.
type Option func(*Host)

// WithDecoder replaces the default decoder.
func WithDecoder(d *decode.Decoder) Option {
	return func(h *Host) { h.decoder = d }
}

// WithModuleName changes the import module name from "image".
func WithModuleName(name string) Option {
	return func(h *Host) { h.name = name }
}

// New creates a Host.
func New(opts ...Option) *Host {
	h := &Host{
		decoder: decode.New(),
		images:  resource.NewTable[*loadedImage](),
		name:    ModuleName,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.images.Subscribe(resource.ObserverFunc(func(e resource.Event) {
		Logger().Debug("image handle",
			zap.Stringer("event", e.Type),
			zap.Uint32("handle", uint32(e.Handle)),
		)
	}))
	return h
}

// Instantiate registers the host module in r.
func (h *Host) Instantiate(ctx context.Context, r wazero.Runtime) (api.Module, error) {
	handlers := map[string]api.GoModuleFunc{
		FuncLoad: h.load,
		FuncCopy: h.copyPixels,
		FuncFree: h.free,
	}

	builder := r.NewHostModuleBuilder(h.name)
	for _, sig := range Signatures() {
		params, results := sig.Flat()
		builder.NewFunctionBuilder().
			WithGoModuleFunction(handlers[sig.Name], params, results).
			WithName(sig.Name).
			Export(sig.Name)
	}

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHost, errors.KindInvalidInput, err, "instantiate host module "+h.name)
	}
	Logger().Debug("host module instantiated", zap.String("module", h.name))
	return mod, nil
}

// Live returns the number of images held for guests.
func (h *Host) Live() int {
	return h.images.Len()
}

// Close releases every outstanding image. Later loads fail.
func (h *Host) Close() error {
	return h.images.Close()
}

// Load decodes data for a guest and returns its handle, or 0 on failure.
func (h *Host) Load(data []byte) (resource.Handle, pixbuf.Layout, int, int) {
	buf, err := h.decoder.Decode(data)
	if err != nil {
		Logger().Debug("decode failed", zap.Int("len", len(data)), zap.Error(err))
		return 0, pixbuf.LayoutUnknown, 0, 0
	}
	if int64(buf.Width()) > math.MaxUint32 || int64(buf.Height()) > math.MaxUint32 {
		_ = buf.Release()
		return 0, pixbuf.LayoutUnknown, 0, 0
	}
	handle := h.images.Insert(&loadedImage{buf: buf})
	if handle == 0 {
		_ = buf.Release()
		Logger().Debug("no handle available", zap.Int("live", h.images.Len()))
		return 0, pixbuf.LayoutUnknown, 0, 0
	}
	return handle, buf.Layout(), buf.Width(), buf.Height()
}

// load_image_from_memory(ptr, len, x_ptr, y_ptr, comp_ptr) -> handle
func (h *Host) load(ctx context.Context, mod api.Module, stack []uint64) {
	ptr := api.DecodeU32(stack[0])
	length := api.DecodeU32(stack[1])
	xPtr := api.DecodeU32(stack[2])
	yPtr := api.DecodeU32(stack[3])
	compPtr := api.DecodeU32(stack[4])
	stack[0] = 0

	mem := WrapMemory(mod.Memory())
	if mem == nil || length == 0 {
		return
	}
	for _, p := range []uint32{xPtr, yPtr, compPtr} {
		if !mem.fits(p, 4) {
			Logger().Debug("output pointer out of bounds", zap.Uint32("ptr", p))
			return
		}
	}
	data, err := mem.Read(ptr, length)
	if err != nil {
		Logger().Debug("input out of bounds", zap.Error(err))
		return
	}

	handle, layout, w, hgt := h.Load(data)
	if handle == 0 {
		return
	}
	_ = mem.WriteU32(xPtr, uint32(w))
	_ = mem.WriteU32(yPtr, uint32(hgt))
	_ = mem.WriteU32(compPtr, uint32(layout.Components()))

	Logger().Debug("image loaded",
		zap.Uint32("handle", uint32(handle)),
		zap.Int("width", w),
		zap.Int("height", hgt),
		zap.Stringer("layout", layout),
	)
	stack[0] = api.EncodeU32(uint32(handle))
}

// image_copy(handle, dst, cap) -> u32
func (h *Host) copyPixels(ctx context.Context, mod api.Module, stack []uint64) {
	handle := resource.Handle(api.DecodeU32(stack[0]))
	dst := api.DecodeU32(stack[1])
	capacity := api.DecodeU32(stack[2])
	stack[0] = 0

	img, ok := h.images.Get(handle)
	if !ok {
		Logger().Debug("copy failed", zap.Error(errors.NotFound(errors.PhaseHost, "image handle", uint32(handle))))
		return
	}
	mem := WrapMemory(mod.Memory())
	if mem == nil {
		return
	}
	n, err := img.copyTo(mem, dst, capacity)
	if err != nil {
		Logger().Debug("copy failed", zap.Uint32("handle", uint32(handle)), zap.Error(err))
		return
	}
	stack[0] = api.EncodeU32(n)
}

// free_image(handle)
func (h *Host) free(ctx context.Context, mod api.Module, stack []uint64) {
	handle := resource.Handle(api.DecodeU32(stack[0]))
	if _, ok := h.images.Remove(handle); !ok && handle != 0 {
		Logger().Debug("free ignored", zap.Error(errors.NotFound(errors.PhaseHost, "image handle", uint32(handle))))
	}
}
