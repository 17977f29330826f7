package pixel

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values, typically a memory-mapped dumb buffer.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	// Scanout buffers may pad it beyond 4× the width.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

// XRGBImage is a packed 32-bit RGB image with the high byte unused, the
// little-endian XRGB8888 scanout layout.
type XRGBImage struct {
	Buffer
}

var _ Image = (*XRGBImage)(nil)

// NewXRGBImage returns an image of the given dimensions backed by pix,
// which must hold at least stride×h bytes.
func NewXRGBImage(pix []byte, w, h, stride int) *XRGBImage {
	return &XRGBImage{Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    pix,
		Stride: stride,
	}}
}

func (i *XRGBImage) ColorModel() color.Model {
	return XRGBModel
}

func (i *XRGBImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(i.Rect)) {
		return XRGB{}
	}
	v := binary.LittleEndian.Uint32(i.Pix[i.offset(x, y):])
	return XRGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

func (i *XRGBImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(i.Rect)) {
		return
	}
	v := xrgbModel(c).(XRGB)
	binary.LittleEndian.PutUint32(i.Pix[i.offset(x, y):],
		uint32(v.R)<<16|uint32(v.G)<<8|uint32(v.B))
}

func (i *XRGBImage) offset(x, y int) int {
	return (y-i.Rect.Min.Y)*i.Stride + (x-i.Rect.Min.X)*4
}

func (i *XRGBImage) Clear() {
	for j := range i.Pix {
		i.Pix[j] = 0x00
	}
}

func (i *XRGBImage) Fill(c color.Color) {
	r := i.Rect
	if r.Empty() {
		return
	}
	// Write the first row pixel by pixel, then replicate it.
	for x := r.Min.X; x < r.Max.X; x++ {
		i.Set(x, r.Min.Y, c)
	}
	start := i.offset(r.Min.X, r.Min.Y)
	row := i.Pix[start : start+r.Dx()*4]
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		copy(i.Pix[i.offset(r.Min.X, y):], row)
	}
}
