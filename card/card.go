// Package card wraps the DRM adapter device: opening the card node,
// enumerating its resources, and the dumb-buffer and CRTC operations
// the presentation lifecycle needs.
package card

import (
	"fmt"
	"os"

	"github.com/kytart/godrm/pkg/drm"
	"github.com/kytart/godrm/pkg/mode"
	"launchpad.net/gommap"
)

// Card is an open DRM adapter device (/dev/dri/card<N>).
type Card struct {
	f *os.File
}

// Open the DRM card with the given index. The card must support dumb
// buffers; one that does not is rejected here, before any display
// state exists.
func Open(index int) (*Card, error) {
	f, err := drm.OpenCard(index)
	if err != nil {
		return nil, fmt.Errorf("card: open card %d: %w", index, err)
	}
	if !drm.HasDumbBuffer(f) {
		_ = f.Close()
		return nil, fmt.Errorf("card: card %d does not support dumb buffers", index)
	}
	return &Card{f: f}, nil
}

// Resources returns the card's CRTC, connector and encoder id pools.
func (c *Card) Resources() (*mode.Resources, error) {
	return mode.GetResources(c.f)
}

// Connector queries one connector by id.
func (c *Card) Connector(id uint32) (*mode.Connector, error) {
	return mode.GetConnector(c.f, id)
}

// Encoder queries one encoder by id.
func (c *Card) Encoder(id uint32) (*mode.Encoder, error) {
	return mode.GetEncoder(c.f, id)
}

// CreateDumb allocates a width×height 32 bpp dumb buffer. The kernel
// chooses the row pitch and total size; both may exceed the naive
// width×height×4 product.
func (c *Card) CreateDumb(width, height uint16) (*mode.FB, error) {
	return mode.CreateFB(c.f, width, height, 32)
}

// AddFB registers a dumb buffer as an XRGB8888 scanout object and
// returns its framebuffer id.
func (c *Card) AddFB(width, height uint16, pitch, handle uint32) (uint32, error) {
	return mode.AddFB(c.f, width, height, 24, 32, pitch, handle)
}

// MapDumb returns the fake mmap offset for a dumb buffer handle.
func (c *Card) MapDumb(handle uint32) (uint64, error) {
	return mode.MapDumb(c.f, handle)
}

// Map maps size bytes of the card at the given offset for read-write.
func (c *Card) Map(offset, size uint64) ([]byte, error) {
	m, err := gommap.MapAt(0, c.f.Fd(), int64(offset), int64(size),
		gommap.PROT_READ|gommap.PROT_WRITE, gommap.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Unmap releases a mapping obtained from [Card.Map].
func (c *Card) Unmap(data []byte) error {
	return gommap.MMap(data).UnsafeUnmap()
}

// RmFB unregisters a scanout object.
func (c *Card) RmFB(id uint32) error {
	return mode.RmFB(c.f, id)
}

// DestroyDumb releases a dumb buffer allocation.
func (c *Card) DestroyDumb(handle uint32) error {
	return mode.DestroyDumb(c.f, handle)
}

// Crtc returns the current configuration of a CRTC.
func (c *Card) Crtc(id uint32) (*mode.Crtc, error) {
	return mode.GetCrtc(c.f, id)
}

// SetCrtc binds a framebuffer to a CRTC driving the given connector.
// A nil mode leaves the CRTC's mode invalid, which disables it when
// fb is zero.
func (c *Card) SetCrtc(crtc, fb, x, y uint32, connector uint32, m *mode.Info) error {
	return mode.SetCrtc(c.f, crtc, fb, x, y, &connector, 1, m)
}

// Close the card device.
func (c *Card) Close() error {
	return c.f.Close()
}
