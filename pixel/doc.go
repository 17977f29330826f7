// Package pixel implements the packed 32-bit XRGB image layout used by
// dumb-buffer scanout, compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces.
package pixel
