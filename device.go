package splash

import "github.com/kytart/godrm/pkg/mode"

// Device is the subset of DRM adapter operations the session lifecycle
// needs. [card.Card] implements it; tests substitute a scripted fake.
type Device interface {
	// Resources returns the adapter's CRTC, connector and encoder pools.
	Resources() (*mode.Resources, error)

	// Connector queries one connector by id.
	Connector(id uint32) (*mode.Connector, error)

	// Encoder queries one encoder by id.
	Encoder(id uint32) (*mode.Encoder, error)

	// CreateDumb allocates a 32 bpp dumb buffer; the kernel reports the
	// actual pitch and size.
	CreateDumb(width, height uint16) (*mode.FB, error)

	// AddFB registers a dumb buffer as a scanout object.
	AddFB(width, height uint16, pitch, handle uint32) (uint32, error)

	// MapDumb returns the mmap offset for a dumb buffer handle.
	MapDumb(handle uint32) (uint64, error)

	// Map maps size bytes at the given device offset.
	Map(offset, size uint64) ([]byte, error)

	// Unmap releases a mapping returned by Map.
	Unmap(data []byte) error

	// RmFB unregisters a scanout object.
	RmFB(id uint32) error

	// DestroyDumb releases a dumb buffer allocation.
	DestroyDumb(handle uint32) error

	// Crtc returns the current configuration of a CRTC.
	Crtc(id uint32) (*mode.Crtc, error)

	// SetCrtc binds a framebuffer to a CRTC driving the connector.
	SetCrtc(crtc, fb, x, y uint32, connector uint32, m *mode.Info) error

	// Close the adapter device.
	Close() error
}
