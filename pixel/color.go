package pixel

import "image/color"

// XRGBModel is the color model of [XRGBImage].
var XRGBModel color.Model = color.ModelFunc(xrgbModel)

// XRGB represents a packed 32-bit RGB color with 8 unused padding bits
// and no alpha.
type XRGB struct {
	R, G, B uint8
}

func (c XRGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

func xrgbModel(c color.Color) color.Color {
	if _, ok := c.(XRGB); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return XRGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}
