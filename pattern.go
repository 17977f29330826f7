package splash

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/BeatGlow/splash/draw"
	"github.com/BeatGlow/splash/pixel"
)

// Full-intensity bars, like the top row of a SMPTE chart.
var barColors = []color.Color{
	pixel.XRGB{R: 0xff, G: 0xff, B: 0xff},
	pixel.XRGB{R: 0xff, G: 0xff},
	pixel.XRGB{G: 0xff, B: 0xff},
	pixel.XRGB{G: 0xff},
	pixel.XRGB{R: 0xff, B: 0xff},
	pixel.XRGB{R: 0xff},
	pixel.XRGB{B: 0xff},
	pixel.XRGB{},
}

// drawPattern paints vertical color bars with a border and a label
// naming the output and its mode. Used when no payload is configured.
func drawPattern(img *pixel.XRGBImage, label string) {
	r := img.Bounds()
	if r.Empty() {
		return
	}

	barW := r.Dx() / len(barColors)
	if barW == 0 {
		barW = 1
	}
	for i, c := range barColors {
		x0 := r.Min.X + i*barW
		x1 := x0 + barW
		if i == len(barColors)-1 {
			x1 = r.Max.X
		}
		draw.Box(img, image.Rect(x0, r.Min.Y, x1, r.Max.Y), c)
	}
	draw.Rectangle(img, r, pixel.XRGB{R: 0xff, G: 0xff, B: 0xff})

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(pixel.XRGB{}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(r.Min.X+8, r.Min.Y+18),
	}
	d.DrawString(label)
}
