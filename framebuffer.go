package splash

import (
	"fmt"

	"github.com/BeatGlow/splash/pixel"
)

// Framebuffer is a kernel-allocated dumb buffer, mapped into process
// memory and registered as an XRGB8888 scanout object.
type Framebuffer struct {
	ID     uint32 // scanout object id, used for presentation
	Handle uint32 // dumb buffer handle, used for memory operations
	Width  uint32
	Height uint32
	Stride uint32 // bytes per row; ≥ 4× width
	Size   uint64 // total allocation, equals len(Data)
	Data   []byte // mapped pixels
}

// createFramebuffer allocates a width×height dumb buffer, registers it
// for scanout and maps it. On failure, the steps that already succeeded
// are undone in reverse order; no kernel object survives an error. The
// returned mapping is filled all white, so an output never scans out
// uninitialized memory.
func createFramebuffer(dev Device, width, height uint16) (*Framebuffer, error) {
	dumb, err := dev.CreateDumb(width, height)
	if err != nil {
		return nil, fmt.Errorf("create dumb buffer: %w", err)
	}

	id, err := dev.AddFB(width, height, dumb.Pitch, dumb.Handle)
	if err != nil {
		_ = dev.DestroyDumb(dumb.Handle)
		return nil, fmt.Errorf("add framebuffer: %w", err)
	}

	offset, err := dev.MapDumb(dumb.Handle)
	if err != nil {
		_ = dev.RmFB(id)
		_ = dev.DestroyDumb(dumb.Handle)
		return nil, fmt.Errorf("map dumb buffer: %w", err)
	}

	data, err := dev.Map(offset, dumb.Size)
	if err != nil {
		_ = dev.RmFB(id)
		_ = dev.DestroyDumb(dumb.Handle)
		return nil, fmt.Errorf("mmap: %w", err)
	}

	for i := range data {
		data[i] = 0xff
	}

	return &Framebuffer{
		ID:     id,
		Handle: dumb.Handle,
		Width:  uint32(width),
		Height: uint32(height),
		Stride: dumb.Pitch,
		Size:   dumb.Size,
		Data:   data,
	}, nil
}

// destroy unmaps the buffer, unregisters the scanout object and
// releases the allocation, in that order. Safe on a nil framebuffer.
func (fb *Framebuffer) destroy(dev Device) {
	if fb == nil {
		return
	}
	if fb.Data != nil {
		_ = dev.Unmap(fb.Data)
		fb.Data = nil
	}
	_ = dev.RmFB(fb.ID)
	_ = dev.DestroyDumb(fb.Handle)
}

// Image returns the mapped pixels as a drawable image.
func (fb *Framebuffer) Image() *pixel.XRGBImage {
	return pixel.NewXRGBImage(fb.Data, int(fb.Width), int(fb.Height), int(fb.Stride))
}
