package pixel

import (
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestXRGBImage(t *testing.T) {
	testCases := []image.Point{
		image.Point{},
		image.Pt(1, 1),
		image.Pt(2, 2),
		image.Pt(256, 32),
		image.Pt(640, 480),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := NewXRGBImage(make([]byte, test.X*test.Y*4), test.X, test.Y, test.X*4)
			testImage(it, i)
		})
	}
}

// Scanout buffers can have a row pitch beyond 4× the width.
func TestXRGBImagePadded(t *testing.T) {
	const (
		w      = 100
		h      = 8
		stride = 448 // 64-byte aligned
	)
	i := NewXRGBImage(make([]byte, stride*h), w, h, stride)
	testImage(t, i)

	i.Clear()
	i.Set(1, 1, XRGB{R: 0xff})
	if got := i.At(1, 1); got != (XRGB{R: 0xff}) {
		t.Errorf("At(1,1) = %v, expected pure red", got)
	}
	if got := i.At(1, 0); got != (XRGB{}) {
		t.Errorf("At(1,0) = %v, expected black", got)
	}
}

func testImage(t *testing.T, i Image) {
	t.Helper()
	r := i.Bounds()

	i.Fill(color.White)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if got := i.At(x, y); got != (XRGB{0xff, 0xff, 0xff}) {
				t.Fatalf("At(%d,%d) = %v after Fill(white)", x, y, got)
			}
		}
	}

	rnd := rand.New(rand.NewSource(0xbea7610))
	for n := 0; n < 256; n++ {
		var (
			x = r.Min.X + rnd.Intn(r.Dx()+1)
			y = r.Min.Y + rnd.Intn(r.Dy()+1)
			c = XRGB{R: uint8(rnd.Intn(256)), G: uint8(rnd.Intn(256)), B: uint8(rnd.Intn(256))}
		)
		i.Set(x, y, c)
		if !(image.Point{X: x, Y: y}.In(r)) {
			continue // out-of-bounds Set is a no-op
		}
		if got := i.At(x, y); got != c {
			t.Fatalf("At(%d,%d) = %v, expected %v", x, y, got, c)
		}
	}

	i.Clear()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if got := i.At(x, y); got != (XRGB{}) {
				t.Fatalf("At(%d,%d) = %v after Clear", x, y, got)
			}
		}
	}
}

func TestXRGBModel(t *testing.T) {
	testCases := []struct {
		in   color.Color
		want XRGB
	}{
		{color.White, XRGB{0xff, 0xff, 0xff}},
		{color.Black, XRGB{}},
		{color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}, XRGB{0x12, 0x34, 0x56}},
		{XRGB{1, 2, 3}, XRGB{1, 2, 3}},
	}
	for _, test := range testCases {
		if got := XRGBModel.Convert(test.in); got != test.want {
			t.Errorf("Convert(%v) = %v, expected %v", test.in, got, test.want)
		}
	}
}
